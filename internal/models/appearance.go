package models

import "time"

// Role describes the part the channel owner played in an appearance
type Role string

const (
	RoleGuestAnalyst Role = "guest-analyst"
	RolePanelist     Role = "panelist"
	RoleSpeaker      Role = "speaker"
	RoleInterview    Role = "interview"
	RoleDebate       Role = "debate"
	RoleCommentary   Role = "commentary"
)

var roleLabels = map[Role]string{
	RoleGuestAnalyst: "Guest Analyst",
	RolePanelist:     "Panelist",
	RoleSpeaker:      "Speaker",
	RoleInterview:    "Interview",
	RoleDebate:       "Debate Participant",
	RoleCommentary:   "Expert Commentary",
}

// Label returns the display label of the role, or the raw value when unknown.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// Valid reports whether r is one of the fixed roles.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Appearance is a classified VideoRecord as shown on the media pages
type Appearance struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	YouTubeID   string    `json:"youtubeId"`
	ChannelName string    `json:"channelName"`
	ChannelURL  string    `json:"channelUrl,omitempty"`
	Role        Role      `json:"role"`
	Topic       string    `json:"topic"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Featured    bool      `json:"featured"`
}
