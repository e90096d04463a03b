package feed

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/metrics"
	"github.com/bilgisen/ytfeed/internal/models"
)

// Processor runs the aggregation policy: the primary source when present,
// the fallback source whenever the primary produced nothing.
type Processor struct {
	primary  Source
	fallback Source
	channel  models.Channel
	now      func() time.Time
}

// NewProcessor builds a processor. primary may be nil when no credential is configured.
func NewProcessor(cfg *config.Config, primary, fallback Source) *Processor {
	return &Processor{
		primary:  primary,
		fallback: fallback,
		channel: models.Channel{
			Name:   cfg.ChannelName,
			URL:    cfg.ChannelURL,
			Handle: cfg.ChannelHandle,
		},
		now: time.Now,
	}
}

// Channel returns the channel the processor aggregates.
func (p *Processor) Channel() models.Channel {
	return p.channel
}

// Aggregate fetches, deduplicates and sorts the channel's videos. An error
// means neither path could run to completion.
func (p *Processor) Aggregate(ctx context.Context) (*models.VideosResponse, error) {
	log := logger.With("aggregate")
	start := p.now()

	var (
		videos  []models.VideoRecord
		usedAPI bool
	)

	if p.primary != nil {
		got, err := safeFetch(ctx, p.primary)
		if err != nil {
			log.Warn().Err(err).Str("source", p.primary.Name()).Msg("Primary source failed")
		}
		if len(got) > 0 {
			videos, usedAPI = got, true
		}
	}

	if len(videos) == 0 {
		log.Info().Str("handle", p.channel.Handle).Msg("Falling back to channel page")
		got, err := safeFetch(ctx, p.fallback)
		if err != nil {
			return nil, fmt.Errorf("fallback source %s: %w", p.fallback.Name(), err)
		}
		videos = got
	}

	videos = SortByRecency(Dedupe(videos))

	path := metrics.PathFallback
	if usedAPI {
		path = metrics.PathAPI
	}
	metrics.FetchPathTotal.WithLabelValues(path).Inc()
	metrics.VideosReturned.Set(float64(len(videos)))

	log.Info().
		Str("path", path).
		Int("count", len(videos)).
		Dur("duration", p.now().Sub(start)).
		Msg("Aggregated videos")

	return &models.VideosResponse{
		Success:    true,
		Channel:    p.channel,
		Videos:     videos,
		TotalCount: len(videos),
		UsedAPI:    usedAPI,
		FetchedAt:  p.now().UTC(),
	}, nil
}

// safeFetch converts a panicking source into an error.
func safeFetch(ctx context.Context, s Source) (videos []models.VideoRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			videos, err = nil, fmt.Errorf("source %s panicked: %v", s.Name(), r)
		}
	}()
	return s.Fetch(ctx)
}

// Dedupe drops repeated ids, keeping the first occurrence.
func Dedupe(videos []models.VideoRecord) []models.VideoRecord {
	seen := make(map[string]struct{}, len(videos))
	out := make([]models.VideoRecord, 0, len(videos))
	for _, v := range videos {
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SortByRecency orders videos newest first. Ties keep their input order.
func SortByRecency(videos []models.VideoRecord) []models.VideoRecord {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].PublishedAt.After(videos[j].PublishedAt)
	})
	return videos
}
