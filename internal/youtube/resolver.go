package youtube

import (
	"context"
	"time"

	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/bilgisen/ytfeed/internal/metrics"
	yt "google.golang.org/api/youtube/v3"
)

// Resolver maps a channel handle to the platform channel identifier.
type Resolver struct {
	svc     *yt.Service
	timeout time.Duration
}

func NewResolver(svc *yt.Service, cfg *config.Config) *Resolver {
	return &Resolver{
		svc:     svc,
		timeout: cfg.OutboundTimeout,
	}
}

// ResolveChannelID tries a channel-scoped keyword search first and a direct
// handle lookup second. Failures of either attempt are logged and skipped;
// ok is false when neither produced an identifier.
func (r *Resolver) ResolveChannelID(ctx context.Context, handle string) (string, bool) {
	log := logger.With("resolver")

	if id, err := r.searchLookup(ctx, handle); err != nil {
		metrics.UpstreamFailures.WithLabelValues(metrics.StageResolveSearch).Inc()
		log.Warn().Err(err).Str("handle", handle).Msg("Channel search lookup failed")
	} else if id != "" {
		log.Debug().Str("handle", handle).Str("channel_id", id).Msg("Resolved channel via search")
		return id, true
	}

	if id, err := r.handleLookup(ctx, handle); err != nil {
		metrics.UpstreamFailures.WithLabelValues(metrics.StageResolveHandle).Inc()
		log.Warn().Err(err).Str("handle", handle).Msg("Channel handle lookup failed")
	} else if id != "" {
		log.Debug().Str("handle", handle).Str("channel_id", id).Msg("Resolved channel via handle")
		return id, true
	}

	log.Warn().Str("handle", handle).Msg("Channel not found")
	return "", false
}

func (r *Resolver) searchLookup(ctx context.Context, handle string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.svc.Search.List([]string{"snippet"}).
		Q(handle).
		Type("channel").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	for _, item := range resp.Items {
		if item.Snippet != nil && item.Snippet.ChannelId != "" {
			return item.Snippet.ChannelId, nil
		}
		if item.Id != nil && item.Id.ChannelId != "" {
			return item.Id.ChannelId, nil
		}
	}
	return "", nil
}

func (r *Resolver) handleLookup(ctx context.Context, handle string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.svc.Channels.List([]string{"id"}).
		ForHandle(handle).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	if len(resp.Items) > 0 {
		return resp.Items[0].Id, nil
	}
	return "", nil
}
