// Command snapshot runs the video pipeline once and persists the result to
// the snapshot cache and archive. It exits non-zero when nothing was fetched.
package main

import (
	"context"
	"os"

	"github.com/bilgisen/ytfeed/internal/cache"
	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/feed"
	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/media"
	"github.com/bilgisen/ytfeed/internal/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Output: "stderr"}); err != nil {
		panic(err)
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*4)
	defer cancel()

	// an in-memory cache would not outlive this process
	var snapshots cache.RedisInterface
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize snapshot cache")
		}
		defer rc.Close()
		snapshots = rc
	} else {
		log.Warn().Msg("REDIS_URL not set, only the archive will keep this snapshot")
	}

	archive, err := storage.NewArchive(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot archive")
	}

	pipeline, err := feed.NewPipeline(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize video pipeline")
	}

	snap, err := media.NewService(cfg, pipeline, snapshots, archive, nil).Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Snapshot run failed")
		if snapshots != nil {
			snapshots.Close()
		}
		os.Exit(1)
	}

	log.Info().
		Int("count", snap.TotalCount).
		Bool("used_api", snap.UsedAPI).
		Time("fetched_at", snap.FetchedAt).
		Msg("Snapshot stored")
}
