package youtube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	yt "google.golang.org/api/youtube/v3"
)

func TestNormalizerTimestamp(t *testing.T) {
	n := NewNormalizer(testConfig("", ""))
	fallback := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-05-06T07:08:09Z", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{"2024-05-06T07:08:09.123Z", time.Date(2024, 5, 6, 7, 8, 9, 123e6, time.UTC)},
		{"2024-05-06T12:08:09+05:00", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{"2024-05-06", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"", fallback},
		{"yesterday", fallback},
	}
	for _, tt := range tests {
		got := n.Timestamp(tt.raw, fallback)
		assert.True(t, tt.want.Equal(got), "Timestamp(%q) = %v, want %v", tt.raw, got, tt.want)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestNormalizerCleanText(t *testing.T) {
	n := NewNormalizer(testConfig("", ""))
	assert.Equal(t, "Court & Law today", n.CleanText("  Court &amp; <b>Law</b>\n today "))
	assert.Empty(t, n.CleanText("   "))
}

func TestFromPlaylistItemFallsBackToContentDetails(t *testing.T) {
	n := NewNormalizer(testConfig("", ""))
	fetchedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	item := &yt.PlaylistItem{
		Snippet: &yt.PlaylistItemSnippet{Title: "T"},
		ContentDetails: &yt.PlaylistItemContentDetails{
			VideoId:          "abcdefghijk",
			VideoPublishedAt: "2024-02-03T04:05:06Z",
		},
	}
	v, ok := n.FromPlaylistItem(item, fetchedAt)
	assert.True(t, ok)
	assert.Equal(t, "abcdefghijk", v.ID)
	assert.Equal(t, time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC), v.PublishedAt)

	_, ok = n.FromPlaylistItem(&yt.PlaylistItem{}, fetchedAt)
	assert.False(t, ok)
	_, ok = n.FromPlaylistItem(nil, fetchedAt)
	assert.False(t, ok)
}

func TestTitlesAreKeptVerbatim(t *testing.T) {
	n := NewNormalizer(testConfig("", ""))
	fetchedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want string
	}{
		{"DMK vs BJP <Interview> Tamil", "DMK vs BJP <Interview> Tamil"},
		{"a<b and c>d", "a<b and c>d"},
		{"AT&amp;T court   case", "AT&amp;T court   case"},
		{"  padded  ", "padded"},
		{"   ", UntitledVideo},
	}
	for _, tt := range tests {
		item := &yt.PlaylistItem{Snippet: &yt.PlaylistItemSnippet{
			Title:      tt.raw,
			ResourceId: &yt.ResourceId{VideoId: "abcdefghijk"},
		}}
		v, ok := n.FromPlaylistItem(item, fetchedAt)
		assert.True(t, ok)
		assert.Equal(t, tt.want, v.Title, tt.raw)

		assert.Equal(t, tt.want, n.FromEmbed("abcdefghijk", EmbedInfo{Title: tt.raw}, fetchedAt).Title, tt.raw)
	}
}
