package feed

import (
	"context"

	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/models"
)

// Source is one strategy for retrieving a channel's videos.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.VideoRecord, error)
}

// ChannelResolver maps a handle to a channel identifier.
type ChannelResolver interface {
	ResolveChannelID(ctx context.Context, handle string) (string, bool)
}

// CatalogLister lists every upload of a resolved channel.
type CatalogLister interface {
	FetchAllVideos(ctx context.Context, channelID string) ([]models.VideoRecord, error)
}

// PageScraper lists recent uploads without credentials.
type PageScraper interface {
	FetchVideos(ctx context.Context) []models.VideoRecord
}

// APISource is the authenticated path: resolve the handle, then list the catalog.
type APISource struct {
	handle   string
	resolver ChannelResolver
	catalog  CatalogLister
}

func NewAPISource(handle string, resolver ChannelResolver, catalog CatalogLister) *APISource {
	return &APISource{handle: handle, resolver: resolver, catalog: catalog}
}

func (s *APISource) Name() string { return "api" }

// Fetch returns no records and no error when the handle cannot be resolved.
func (s *APISource) Fetch(ctx context.Context) ([]models.VideoRecord, error) {
	channelID, ok := s.resolver.ResolveChannelID(ctx, s.handle)
	if !ok {
		return nil, nil
	}
	logger.Get().Debug().Str("handle", s.handle).Str("channel_id", channelID).Msg("Using Data API catalog")
	return s.catalog.FetchAllVideos(ctx, channelID)
}

// ScrapeSource is the degraded, credential-free path.
type ScrapeSource struct {
	scraper PageScraper
}

func NewScrapeSource(scraper PageScraper) *ScrapeSource {
	return &ScrapeSource{scraper: scraper}
}

func (s *ScrapeSource) Name() string { return "fallback" }

func (s *ScrapeSource) Fetch(ctx context.Context) ([]models.VideoRecord, error) {
	return s.scraper.FetchVideos(ctx), nil
}
