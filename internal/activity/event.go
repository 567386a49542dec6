package activity

import (
	"time"

	"github.com/dustin/go-humanize"
)

type Action string

const (
	ActionCompleted Action = "completed"
	ActionCommented Action = "commented on"
	ActionUploaded  Action = "uploaded"
	ActionCreated   Action = "created"
	ActionLogged    Action = "logged time on"
	ActionPosted    Action = "posted in"
)

type Event struct {
	ID        int       `json:"id"`
	User      string    `json:"user"`
	Action    Action    `json:"action"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
}

// Ago renders the event time relative to now ("2 hours ago").
func (e Event) Ago(now time.Time) string {
	return humanize.RelTime(e.Timestamp, now, "ago", "from now")
}

// Seed is the yaml form of a dashboard activity row.
type Seed struct {
	User       string `yaml:"user"`
	Action     Action `yaml:"action"`
	Target     string `yaml:"target"`
	AgeMinutes int    `yaml:"age_minutes"`
}
