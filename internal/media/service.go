// Package media serves the classified appearance views and keeps the last
// good pipeline result available for when the pipeline cannot run.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bilgisen/ytfeed/internal/cache"
	"github.com/bilgisen/ytfeed/internal/classify"
	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/metrics"
	"github.com/bilgisen/ytfeed/internal/models"
	"github.com/bilgisen/ytfeed/internal/storage"
)

// Where a listing came from.
const (
	SourceLive        = "live"
	SourceCache       = "cache"
	SourceArchive     = "archive"
	SourcePlaceholder = "placeholder"
)

// MaxLimit caps the limit query parameter.
const MaxLimit = 100

// Pipeline produces a fresh aggregated result.
type Pipeline interface {
	Aggregate(ctx context.Context) (*models.VideosResponse, error)
}

// Query selects a view over the appearances.
type Query struct {
	Featured bool `query:"featured"`
	Limit    int  `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Listing is the body of the appearances endpoint.
type Listing struct {
	Items       []models.Appearance `json:"items"`
	Source      string              `json:"source"`
	LastFetched *time.Time          `json:"lastFetched"`
	Total       int                 `json:"total"`
}

type Service struct {
	pipeline      Pipeline
	cache         cache.RedisInterface
	archive       storage.Archive
	classifier    *classify.Classifier
	placeholders  []models.Appearance
	cacheKey      string
	ttl           time.Duration
	featuredCount int
}

// NewService wires the appearance service. c and archive may be nil.
func NewService(cfg *config.Config, pipeline Pipeline, c cache.RedisInterface, archive storage.Archive, placeholders []models.Appearance) *Service {
	featured := cfg.FeaturedCount
	if featured < 0 {
		featured = classify.DefaultFeaturedCount
	}
	return &Service{
		pipeline:      pipeline,
		cache:         c,
		archive:       archive,
		classifier:    classify.New(cfg.ChannelName, featured),
		placeholders:  placeholders,
		cacheKey:      cache.SnapshotKey(cfg.ChannelHandle),
		ttl:           cfg.CacheTTL,
		featuredCount: featured,
	}
}

// Refresh runs the pipeline once and persists a non-empty result.
func (s *Service) Refresh(ctx context.Context) (*models.VideosResponse, error) {
	snap, err := s.pipeline.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	if len(snap.Videos) == 0 {
		return snap, errors.New("aggregate returned no videos")
	}
	s.persist(ctx, snap)
	return snap, nil
}

// Snapshot returns the freshest available envelope and the source that
// produced it. A cached envelope younger than the cache TTL is served without
// touching the pipeline. A nil envelope means only the placeholder set is left.
func (s *Service) Snapshot(ctx context.Context) (*models.VideosResponse, string) {
	log := logger.With("media")

	if snap, err := s.fromCache(ctx); err == nil {
		return snap, SourceCache
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Msg("Cache snapshot unreadable")
	}

	snap, err := s.Refresh(ctx)
	if err == nil {
		return snap, SourceLive
	}
	log.Warn().Err(err).Msg("Live pipeline unavailable, trying archive")

	if s.archive != nil {
		snap, err := s.archive.Latest(ctx)
		if err == nil && len(snap.Videos) > 0 {
			return snap, SourceArchive
		}
		if err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
			log.Warn().Err(err).Msg("Archive snapshot unreadable")
		}
	}

	return nil, SourcePlaceholder
}

// List returns the appearances view selected by q.
func (s *Service) List(ctx context.Context, q Query) Listing {
	snap, source := s.Snapshot(ctx)
	metrics.AppearanceSourceTotal.WithLabelValues(source).Inc()

	var (
		items       []models.Appearance
		lastFetched *time.Time
	)
	if snap != nil {
		items = s.classifier.Appearances(snap.Videos)
		ts := snap.FetchedAt
		lastFetched = &ts
	} else {
		items = append([]models.Appearance(nil), s.placeholders...)
	}

	items = View(items, q, s.featuredCount)
	return Listing{
		Items:       items,
		Source:      source,
		LastFetched: lastFetched,
		Total:       len(items),
	}
}

// View applies the featured filter and limit to items.
func View(items []models.Appearance, q Query, featuredCount int) []models.Appearance {
	if q.Featured {
		featured := make([]models.Appearance, 0, featuredCount)
		for _, it := range items {
			if len(featured) == featuredCount {
				break
			}
			if it.Featured {
				featured = append(featured, it)
			}
		}
		items = featured
	}

	limit := q.Limit
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []models.Appearance{}
	}
	return items
}

// ClearCache purges the hot snapshot cache.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}

func (s *Service) fromCache(ctx context.Context) (*models.VideosResponse, error) {
	if s.cache == nil {
		return nil, cache.ErrMiss
	}
	data, err := s.cache.Get(ctx, s.cacheKey)
	if err != nil {
		return nil, err
	}
	var snap models.VideosResponse
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached snapshot: %w", err)
	}
	if len(snap.Videos) == 0 {
		return nil, cache.ErrMiss
	}
	return &snap, nil
}

// persist stores snap in the cache and the archive; failures are only logged.
func (s *Service) persist(ctx context.Context, snap *models.VideosResponse) {
	log := logger.With("media")

	data, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal snapshot")
		return
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cacheKey, data, s.ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to cache snapshot")
		}
	}

	if s.archive == nil {
		return
	}
	if err := s.archive.Save(ctx, snap); err != nil {
		log.Warn().Err(err).Msg("Failed to archive snapshot")
		return
	}
	log.Debug().Int("count", len(snap.Videos)).Msg("Snapshot persisted")
}
