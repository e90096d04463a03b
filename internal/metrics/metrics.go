// Package metrics provides Prometheus metrics for the video aggregation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stages of the pipeline whose failures are swallowed rather than returned.
const (
	StageResolveSearch = "resolve_search"
	StageResolveHandle = "resolve_handle"
	StageUploadsLookup = "uploads_lookup"
	StagePlaylistPage  = "playlist_page"
	StageChannelPage   = "channel_page"
	StageOEmbed        = "oembed"
)

// Fetch paths.
const (
	PathAPI      = "api"
	PathFallback = "fallback"
)

var (
	// FetchPathTotal counts which path populated an aggregated result.
	FetchPathTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytfeed_fetch_path_total",
		Help: "Total number of aggregated results, by the fetch path that produced them.",
	}, []string{"path"})

	// UpstreamFailures counts swallowed upstream failures by pipeline stage.
	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytfeed_upstream_failures_total",
		Help: "Total number of upstream failures absorbed by the pipeline, by stage.",
	}, []string{"stage"})

	// VideosReturned tracks the size of the last aggregated result.
	VideosReturned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ytfeed_videos_returned",
		Help: "Number of videos in the most recent aggregated result.",
	})

	// AppearanceSourceTotal counts which source served the appearances view.
	AppearanceSourceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytfeed_appearance_source_total",
		Help: "Total number of appearance listings served, by source (live, cache, archive, placeholder).",
	}, []string{"source"})
)
