package youtube

import (
	"context"
	"fmt"
	"strings"

	"github.com/bilgisen/ytfeed/internal/config"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	// MaxPageSize is the largest page the Data API serves for playlist items.
	MaxPageSize = 50

	watchURLPrefix = "https://www.youtube.com/watch?v="
)

// NewDataService builds a Data API v3 client authenticated with the configured API key.
func NewDataService(ctx context.Context, cfg *config.Config) (*yt.Service, error) {
	if !cfg.HasAPIKey() {
		return nil, fmt.Errorf("youtube api key is not configured")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.YouTubeAPIKey)}
	if cfg.DataAPIEndpoint != "" {
		endpoint := cfg.DataAPIEndpoint
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return svc, nil
}
