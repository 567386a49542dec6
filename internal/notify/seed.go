package notify

import (
	"time"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

// Seed is the yaml form of a starting notification.
type Seed struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Message    string `yaml:"message"`
	Kind       Kind   `yaml:"type"`
	AgeMinutes int    `yaml:"age_minutes"`
}

// FromSeed stamps seed notifications relative to the clock.
func FromSeed(c clock.Clock, seeds []Seed) []Notification {
	now := c.Now()
	out := make([]Notification, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, Notification{
			ID:        s.ID,
			Title:     s.Title,
			Message:   s.Message,
			Kind:      s.Kind,
			Timestamp: now.Add(-time.Duration(s.AgeMinutes) * time.Minute),
		})
	}
	return out
}
