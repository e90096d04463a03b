package youtube

import (
	"context"
	"errors"
	"time"

	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/metrics"
	"github.com/bilgisen/ytfeed/internal/models"
	"google.golang.org/api/googleapi"
	yt "google.golang.org/api/youtube/v3"
)

// ErrUploadsNotFound is returned when the channel lookup yields no uploads collection.
var ErrUploadsNotFound = errors.New("uploads playlist not found")

// CatalogFetcher lists every upload of a channel through the Data API.
type CatalogFetcher struct {
	svc        *yt.Service
	normalizer *Normalizer
	timeout    time.Duration
	now        func() time.Time
}

func NewCatalogFetcher(svc *yt.Service, normalizer *Normalizer, cfg *config.Config) *CatalogFetcher {
	return &CatalogFetcher{
		svc:        svc,
		normalizer: normalizer,
		timeout:    cfg.OutboundTimeout,
		now:        time.Now,
	}
}

// FetchAllVideos pages through the channel's uploads collection. The only
// error it returns is ErrUploadsNotFound; any other failure ends pagination
// and the pages collected so far are returned.
func (f *CatalogFetcher) FetchAllVideos(ctx context.Context, channelID string) ([]models.VideoRecord, error) {
	log := logger.With("catalog")
	start := f.now()

	uploadsID, err := f.uploadsPlaylistID(ctx, channelID)
	if errors.Is(err, ErrUploadsNotFound) {
		return nil, err
	}
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues(metrics.StageUploadsLookup).Inc()
		log.Error().Err(err).Str("channel_id", channelID).Msg("Uploads lookup failed")
		return nil, nil
	}

	var videos []models.VideoRecord
	pageToken := ""
	for page := 1; ; page++ {
		resp, err := f.playlistPage(ctx, uploadsID, pageToken)
		if err != nil {
			metrics.UpstreamFailures.WithLabelValues(metrics.StagePlaylistPage).Inc()
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) {
				log.Warn().
					Int("api_status", apiErr.Code).
					Str("api_message", apiErr.Message).
					Int("page", page).
					Int("collected", len(videos)).
					Msg("Provider error, stopping pagination")
			} else {
				log.Error().
					Err(err).
					Int("page", page).
					Int("collected", len(videos)).
					Msg("Playlist page request failed, stopping pagination")
			}
			break
		}

		for _, item := range resp.Items {
			if v, ok := f.normalizer.FromPlaylistItem(item, start); ok {
				videos = append(videos, v)
			}
		}

		// a repeated token would never terminate
		if resp.NextPageToken == "" || resp.NextPageToken == pageToken {
			break
		}
		pageToken = resp.NextPageToken
	}

	log.Info().
		Str("channel_id", channelID).
		Int("count", len(videos)).
		Dur("duration", f.now().Sub(start)).
		Msg("Fetched catalog")

	return videos, nil
}

func (f *CatalogFetcher) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.svc.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	if len(resp.Items) == 0 {
		return "", ErrUploadsNotFound
	}
	details := resp.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return "", ErrUploadsNotFound
	}
	return details.RelatedPlaylists.Uploads, nil
}

func (f *CatalogFetcher) playlistPage(ctx context.Context, playlistID, pageToken string) (*yt.PlaylistItemListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	call := f.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(MaxPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	return call.Do()
}
