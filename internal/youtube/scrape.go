package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/metrics"
	"github.com/bilgisen/ytfeed/internal/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

// BrowserUserAgent is sent with the channel page request; without it the
// platform serves markup that carries no watch links.
const BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

var watchLinkRE = regexp.MustCompile(`watch\?v=([A-Za-z0-9_-]{11})`)

// ScrapeFetcher lists recent uploads without credentials by reading the
// public channel page and hydrating each video through oEmbed.
type ScrapeFetcher struct {
	client      *resty.Client
	normalizer  *Normalizer
	baseURL     string
	handle      string
	maxVideos   int
	concurrency int
	now         func() time.Time
}

// NewHTTPClient returns the resty client used for unauthenticated page and oEmbed calls.
func NewHTTPClient(cfg *config.Config) *resty.Client {
	return resty.New().
		SetTimeout(cfg.OutboundTimeout).
		SetHeader("Accept-Language", "en-US,en;q=0.9")
}

func NewScrapeFetcher(client *resty.Client, normalizer *Normalizer, cfg *config.Config) *ScrapeFetcher {
	maxVideos, concurrency := cfg.FallbackMaxVideos, cfg.HydrationConcurrency
	if maxVideos <= 0 {
		maxVideos = 50
	}
	if concurrency <= 0 {
		concurrency = 10
	}

	return &ScrapeFetcher{
		client:      client,
		normalizer:  normalizer,
		baseURL:     strings.TrimRight(cfg.WebBaseURL, "/"),
		handle:      cfg.ChannelHandle,
		maxVideos:   maxVideos,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// FetchVideos returns at most maxVideos records. A failed channel page
// yields an empty result; a failed hydration drops only that video.
func (s *ScrapeFetcher) FetchVideos(ctx context.Context) []models.VideoRecord {
	log := logger.With("scrape")
	fetchedAt := s.now()

	page, err := s.channelPage(ctx)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues(metrics.StageChannelPage).Inc()
		log.Error().Err(err).Str("handle", s.handle).Msg("Channel page fetch failed")
		return []models.VideoRecord{}
	}

	ids := ExtractVideoIDs(page, s.maxVideos)
	log.Debug().Int("ids", len(ids)).Msg("Extracted watch links")

	results := make([]*models.VideoRecord, len(ids))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			info, err := s.embedInfo(ctx, id)
			if err != nil {
				metrics.UpstreamFailures.WithLabelValues(metrics.StageOEmbed).Inc()
				log.Debug().Err(err).Str("video_id", id).Msg("Dropping video, oEmbed failed")
				return nil
			}
			rec := s.normalizer.FromEmbed(id, info, fetchedAt)
			results[i] = &rec
			return nil
		})
	}
	_ = g.Wait()

	videos := make([]models.VideoRecord, 0, len(ids))
	for _, r := range results {
		if r != nil {
			videos = append(videos, *r)
		}
	}

	log.Info().
		Int("candidates", len(ids)).
		Int("count", len(videos)).
		Dur("duration", s.now().Sub(fetchedAt)).
		Msg("Fetched videos from channel page")

	return videos
}

// ExtractVideoIDs returns the distinct watch-link identifiers in markup in
// first-seen order, truncated to max.
func ExtractVideoIDs(markup string, max int) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, m := range watchLinkRE.FindAllStringSubmatch(markup, -1) {
		if len(ids) >= max {
			break
		}
		id := m[1]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (s *ScrapeFetcher) channelPage(ctx context.Context) (string, error) {
	pageURL := fmt.Sprintf("%s/@%s/videos", s.baseURL, url.PathEscape(s.handle))

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", BrowserUserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch channel page %s: %w", pageURL, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), pageURL)
	}
	return resp.String(), nil
}

func (s *ScrapeFetcher) embedInfo(ctx context.Context, id string) (EmbedInfo, error) {
	var info EmbedInfo

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"url":    watchURLPrefix + id,
			"format": "json",
		}).
		Get(s.baseURL + "/oembed")
	if err != nil {
		return info, fmt.Errorf("oembed request for %s: %w", id, err)
	}
	if !resp.IsSuccess() {
		return info, fmt.Errorf("unexpected status code %d from oembed for %s", resp.StatusCode(), id)
	}
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return info, fmt.Errorf("failed to parse oembed response for %s: %w", id, err)
	}
	return info, nil
}
