package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/stretchr/testify/require"
	yt "google.golang.org/api/youtube/v3"
)

const testAPIKey = "test-key"

// fakeDataAPI stands in for the Data API v3 endpoints the pipeline calls.
type fakeDataAPI struct {
	search        http.HandlerFunc
	channelHandle http.HandlerFunc
	channelByID   http.HandlerFunc
	playlistItems http.HandlerFunc

	calls atomic.Int64
}

func (f *fakeDataAPI) serve(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	route := func(h *http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.calls.Add(1)
			if r.URL.Query().Get("key") != testAPIKey {
				writeAPIError(w, http.StatusForbidden, "missing key")
				return
			}
			if *h == nil {
				writeAPIError(w, http.StatusNotFound, "not stubbed")
				return
			}
			(*h)(w, r)
		}
	}
	mux.HandleFunc("/youtube/v3/search", route(&f.search))
	mux.HandleFunc("/youtube/v3/playlistItems", route(&f.playlistItems))
	mux.HandleFunc("/youtube/v3/channels", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("forHandle") != "" {
			route(&f.channelHandle)(w, r)
			return
		}
		route(&f.channelByID)(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(dataAPI, web string) *config.Config {
	cfg := config.FromEnv()
	cfg.YouTubeAPIKey = testAPIKey
	cfg.ChannelHandle = "testchannel"
	cfg.ChannelName = "Test Channel"
	cfg.ChannelURL = "https://www.youtube.com/@testchannel"
	cfg.DataAPIEndpoint = dataAPI
	if web != "" {
		cfg.WebBaseURL = web
	}
	cfg.OutboundTimeout = 2 * time.Second
	return cfg
}

func newTestService(t *testing.T, cfg *config.Config) *yt.Service {
	t.Helper()
	svc, err := NewDataService(context.Background(), cfg)
	require.NoError(t, err)
	return svc
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":%q,"errors":[{"reason":"test","message":%q}]}}`, code, msg, msg)
}

func channelsResponse(id, uploads string) map[string]any {
	item := map[string]any{"id": id}
	if uploads != "" {
		item["contentDetails"] = map[string]any{
			"relatedPlaylists": map[string]any{"uploads": uploads},
		}
	}
	return map[string]any{"items": []any{item}}
}

func playlistItem(id, title string, published time.Time) map[string]any {
	return map[string]any{
		"snippet": map[string]any{
			"title":        title,
			"publishedAt":  published.Format(time.RFC3339),
			"channelTitle": "Test Channel",
			"description":  "about " + title,
			"resourceId":   map[string]any{"kind": "youtube#video", "videoId": id},
			"thumbnails": map[string]any{
				"high":   map[string]any{"url": "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"},
				"maxres": map[string]any{"url": "https://i.ytimg.com/vi/" + id + "/maxresdefault.jpg"},
			},
		},
		"contentDetails": map[string]any{"videoId": id},
	}
}
