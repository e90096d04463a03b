package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/ytfeed/internal/api"
	"github.com/bilgisen/ytfeed/internal/cache"
	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/feed"
	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/media"
	"github.com/bilgisen/ytfeed/internal/middleware"
	"github.com/bilgisen/ytfeed/internal/storage"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	output := cfg.LogFile
	if output == "" {
		output = "stdout"
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("handle", cfg.ChannelHandle).Msg("Starting application...")

	ctx := context.Background()

	snapshots, err := cache.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot cache")
	}
	defer func() {
		log.Info().Msg("Closing snapshot cache...")
		if err := snapshots.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing snapshot cache")
		}
	}()

	archive, err := storage.NewArchive(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot archive")
	}

	placeholders, err := storage.LoadPlaceholders(cfg.PlaceholderPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load placeholder dataset")
	}

	pipeline, err := feed.NewPipeline(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize video pipeline")
	}

	appearances := media.NewService(cfg, pipeline, snapshots, archive, placeholders)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	api.SetupRoutes(app, api.NewHandlers(pipeline, appearances), cfg)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
