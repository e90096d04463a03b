package feed

import (
	"context"
	"fmt"

	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/youtube"
)

// NewPipeline wires the production sources for cfg. The Data API source is
// only present when an API key is configured.
func NewPipeline(ctx context.Context, cfg *config.Config) (*Processor, error) {
	normalizer := youtube.NewNormalizer(cfg)

	scraper := youtube.NewScrapeFetcher(youtube.NewHTTPClient(cfg), normalizer, cfg)
	fallback := NewScrapeSource(scraper)

	var primary Source
	if cfg.HasAPIKey() {
		svc, err := youtube.NewDataService(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("data api: %w", err)
		}
		primary = NewAPISource(
			cfg.ChannelHandle,
			youtube.NewResolver(svc, cfg),
			youtube.NewCatalogFetcher(svc, normalizer, cfg),
		)
	} else {
		logger.Get().Info().Msg("No YouTube API key configured, using channel page only")
	}

	return NewProcessor(cfg, primary, fallback), nil
}
