package classify

import (
	"testing"
	"time"

	"github.com/bilgisen/ytfeed/internal/models"
	"github.com/stretchr/testify/assert"
)

const owner = "Nanda Third Eye"

func video(title, channel string) models.VideoRecord {
	return models.VideoRecord{
		ID:          "abcdefghijk",
		Title:       title,
		ChannelName: channel,
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestClassifyTopics(t *testing.T) {
	c := New(owner, DefaultFeaturedCount)

	tests := []struct {
		title string
		want  string
	}{
		{"Election results explained", "Election Analysis"},
		{"தேர்தல் 2026", "Election Analysis"},
		{"DMK strategy", "Party Politics"},
		{"BJP in the south", "BJP Politics"},
		{"Vijay launches TVK", "TVK Politics"},
		{"Seeman speech", "NTK Politics"},
		{"Supreme Court verdict", "Legal & Constitutional"},
		{"New law passed", "Legal & Constitutional"},
		{"Women in politics", "Social Issues"},
		{"India and geopolitics", "Geopolitics"},
		{"A quiet evening", DefaultTopic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(video(tt.title, "Other"), 10).Topic, tt.title)
	}
}

func TestClassifyTopicPrecedence(t *testing.T) {
	c := New(owner, DefaultFeaturedCount)

	// election is listed before court, so it wins regardless of keyword position
	res := c.Classify(video("Supreme Court hearing on election bonds", "Other"), 0)
	assert.Equal(t, "Election Analysis", res.Topic)

	// dmk precedes law
	res = c.Classify(video("New law and the DMK", "Other"), 0)
	assert.Equal(t, "Party Politics", res.Topic)
}

func TestClassifyRoles(t *testing.T) {
	c := New(owner, DefaultFeaturedCount)

	tests := []struct {
		title   string
		channel string
		want    models.Role
	}{
		{"On Times Now tonight", "Times Now", models.RoleGuestAnalyst},
		{"CNN debate special", "CNN", models.RoleGuestAnalyst},
		{"The great debate", "Other", models.RoleDebate},
		{"DMK vs BJP", "Other", models.RoleDebate},
		{"Expert panel", "Other", models.RolePanelist},
		{"Exclusive interview", "Other", models.RoleInterview},
		{"My weekly talk", owner, models.RoleSpeaker},
		{"My weekly talk", "nanda third eye", models.RoleCommentary},
		{"My weekly talk", owner + " ", models.RoleCommentary},
		{"My weekly talk", "Other", models.RoleCommentary},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(video(tt.title, tt.channel), 10).Role, tt.title)
	}
}

func TestClassifyFeaturedAndDeterminism(t *testing.T) {
	c := New(owner, 6)
	v := video("Election debate", owner)

	for i := 0; i < 8; i++ {
		first := c.Classify(v, i)
		assert.Equal(t, first, c.Classify(v, i))
		assert.Equal(t, i < 6, first.Featured, "index %d", i)
	}
	assert.False(t, c.Classify(v, -1).Featured)
}

func TestAppearances(t *testing.T) {
	c := New(owner, 1)
	videos := []models.VideoRecord{video("Panel on law", "Other"), video("Chat", owner)}
	videos[1].ID = "zyxwvutsrqp"

	got := c.Appearances(videos)
	assert.Len(t, got, 2)
	assert.Equal(t, "yt-abcdefghijk", got[0].ID)
	assert.Equal(t, "abcdefghijk", got[0].YouTubeID)
	assert.Equal(t, models.RolePanelist, got[0].Role)
	assert.Equal(t, "Legal & Constitutional", got[0].Topic)
	assert.True(t, got[0].Featured)
	assert.Equal(t, models.RoleSpeaker, got[1].Role)
	assert.False(t, got[1].Featured)
}
