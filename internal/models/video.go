package models

import (
	"regexp"
	"time"
)

// VideoRecord is the canonical shape of one channel upload, whichever path fetched it
type VideoRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishedAt"`
	ChannelName  string    `json:"channelName"`
	ChannelURL   string    `json:"channelUrl"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
}

var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidVideoID reports whether id is an 11 character platform video identifier.
func ValidVideoID(id string) bool {
	return videoIDRE.MatchString(id)
}

// Channel identifies the single channel a response describes
type Channel struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Handle string `json:"handle"`
}
