package youtube

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/models"
	yt "google.golang.org/api/youtube/v3"
)

// UntitledVideo is used when a source provides no title.
const UntitledVideo = "Untitled Video"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// EmbedInfo is the subset of the oEmbed document the fallback path reads
type EmbedInfo struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	AuthorURL  string `json:"author_url"`
}

// Normalizer maps raw results of either fetch path to models.VideoRecord. It does no I/O.
type Normalizer struct {
	channelName  string
	channelURL   string
	htmlTagRegex *regexp.Regexp
}

func NewNormalizer(cfg *config.Config) *Normalizer {
	return &Normalizer{
		channelName:  cfg.ChannelName,
		channelURL:   cfg.ChannelURL,
		htmlTagRegex: regexp.MustCompile(`<[^>]*>`),
	}
}

// CleanText removes markup, unescapes entities and collapses whitespace
func (n *Normalizer) CleanText(input string) string {
	cleaned := n.htmlTagRegex.ReplaceAllString(input, " ")
	cleaned = html.UnescapeString(cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

// Timestamp parses raw in any of the accepted layouts and returns it in UTC.
// Unparseable or empty input yields fallback.
func (n *Normalizer) Timestamp(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC()
			}
		}
	}
	return fallback.UTC()
}

// FromPlaylistItem converts one uploads playlist item. ok is false when the
// item carries no valid video identifier.
func (n *Normalizer) FromPlaylistItem(item *yt.PlaylistItem, fetchedAt time.Time) (models.VideoRecord, bool) {
	if item == nil || item.Snippet == nil {
		return models.VideoRecord{}, false
	}
	snippet := item.Snippet

	var id string
	if snippet.ResourceId != nil {
		id = snippet.ResourceId.VideoId
	}
	if id == "" && item.ContentDetails != nil {
		id = item.ContentDetails.VideoId
	}
	if !models.ValidVideoID(id) {
		return models.VideoRecord{}, false
	}

	published := snippet.PublishedAt
	if published == "" && item.ContentDetails != nil {
		published = item.ContentDetails.VideoPublishedAt
	}

	return models.VideoRecord{
		ID:           id,
		Title:        n.title(snippet.Title),
		PublishedAt:  n.Timestamp(published, fetchedAt),
		ChannelName:  n.orDefault(n.CleanText(snippet.ChannelTitle), n.channelName),
		ChannelURL:   n.channelURL,
		Description:  strings.TrimSpace(snippet.Description),
		ThumbnailURL: bestThumbnail(snippet.Thumbnails),
	}, true
}

// FromEmbed converts an oEmbed lookup. The embed document has no publish
// time, so fetchedAt stands in for it.
func (n *Normalizer) FromEmbed(id string, info EmbedInfo, fetchedAt time.Time) models.VideoRecord {
	return models.VideoRecord{
		ID:          id,
		Title:       n.title(info.Title),
		PublishedAt: fetchedAt.UTC(),
		ChannelName: n.orDefault(n.CleanText(info.AuthorName), n.channelName),
		ChannelURL:  n.orDefault(strings.TrimSpace(info.AuthorURL), n.channelURL),
	}
}

// title keeps provider titles verbatim apart from surrounding whitespace.
func (n *Normalizer) title(raw string) string {
	return n.orDefault(strings.TrimSpace(raw), UntitledVideo)
}

func (n *Normalizer) orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// bestThumbnail prefers maxres, then high, then nothing.
func bestThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*yt.Thumbnail{t.Maxres, t.High} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
