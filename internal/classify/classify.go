// Package classify derives a topic and a role for each video from keyword
// heuristics over its title and channel.
package classify

import (
	"strings"

	"github.com/bilgisen/ytfeed/internal/models"
)

const (
	// DefaultTopic is used when no topic rule matches.
	DefaultTopic = "Political Analysis"
	// DefaultRole is used when no role rule matches.
	DefaultRole = models.RoleCommentary
	// DefaultFeaturedCount is the number of leading records marked featured.
	DefaultFeaturedCount = 6
)

// TopicRule assigns Topic when the lowercased title contains any keyword.
type TopicRule struct {
	Topic    string
	Keywords []string
}

// RoleRule assigns Role when Match reports true.
type RoleRule struct {
	Role  models.Role
	Match func(title, channel string) bool
}

// TopicRules are evaluated in order; the first match wins.
var TopicRules = []TopicRule{
	{"Election Analysis", []string{"election", "தேர்தல்"}},
	{"Party Politics", []string{"dmk", "திமுக"}},
	{"BJP Politics", []string{"bjp", "பாஜக"}},
	{"TVK Politics", []string{"vijay", "tvk", "விஜய்"}},
	{"NTK Politics", []string{"seeman", "ntk", "சீமான்"}},
	{"Legal & Constitutional", []string{"supreme court", "court", "law"}},
	{"Social Issues", []string{"women", "பெண்"}},
	{"Geopolitics", []string{"india", "geopolit"}},
}

// Result is the outcome of classifying one record
type Result struct {
	Topic    string
	Role     models.Role
	Featured bool
}

// Classifier is pure and safe for concurrent use.
type Classifier struct {
	topics        []TopicRule
	roles         []RoleRule
	featuredCount int
}

// New returns a classifier using the built-in rules. ownerChannel is the
// channel whose own uploads count as the speaker role.
func New(ownerChannel string, featuredCount int) *Classifier {
	if featuredCount < 0 {
		featuredCount = DefaultFeaturedCount
	}
	return &Classifier{
		topics:        TopicRules,
		roles:         RoleRules(ownerChannel),
		featuredCount: featuredCount,
	}
}

// RoleRules returns the ordered role rules for the given owner channel.
func RoleRules(ownerChannel string) []RoleRule {
	return []RoleRule{
		{models.RoleGuestAnalyst, titleContains("times now", "cnn", "news18")},
		{models.RoleDebate, titleContains("debate", "vs")},
		{models.RolePanelist, titleContains("panel")},
		{models.RoleInterview, titleContains("interview")},
		{models.RoleSpeaker, func(_, channel string) bool {
			return ownerChannel != "" && channel == ownerChannel
		}},
	}
}

func titleContains(keywords ...string) func(title, channel string) bool {
	return func(title, _ string) bool {
		return containsAny(title, keywords)
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Classify tags v, which sits at position index in its result set.
func (c *Classifier) Classify(v models.VideoRecord, index int) Result {
	title := strings.ToLower(v.Title)

	res := Result{
		Topic:    DefaultTopic,
		Role:     DefaultRole,
		Featured: index >= 0 && index < c.featuredCount,
	}

	for _, r := range c.topics {
		if containsAny(title, r.Keywords) {
			res.Topic = r.Topic
			break
		}
	}

	for _, r := range c.roles {
		if r.Match(title, v.ChannelName) {
			res.Role = r.Role
			break
		}
	}

	return res
}

// Appearance wraps v with its classification.
func (c *Classifier) Appearance(v models.VideoRecord, index int) models.Appearance {
	res := c.Classify(v, index)
	return models.Appearance{
		ID:          "yt-" + v.ID,
		Title:       v.Title,
		YouTubeID:   v.ID,
		ChannelName: v.ChannelName,
		ChannelURL:  v.ChannelURL,
		Role:        res.Role,
		Topic:       res.Topic,
		Description: v.Description,
		PublishedAt: v.PublishedAt,
		Featured:    res.Featured,
	}
}

// Appearances classifies a whole result set in order.
func (c *Classifier) Appearances(videos []models.VideoRecord) []models.Appearance {
	out := make([]models.Appearance, 0, len(videos))
	for i, v := range videos {
		out = append(out, c.Appearance(v, i))
	}
	return out
}
