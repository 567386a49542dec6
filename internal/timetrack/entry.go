package timetrack

import (
	"time"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

type Entry struct {
	ID          string     `json:"id"`
	Project     string     `json:"project"`
	Task        string     `json:"task"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Duration    int        `json:"duration"`
	Description string     `json:"description"`
}

func (e Entry) DurationLabel() string { return FormatDuration(e.Duration) }

type ProjectHours struct {
	Name       string `json:"name" yaml:"name"`
	Hours      int    `json:"hours" yaml:"hours"`
	Percentage int    `json:"percentage" yaml:"percentage"`
	Color      string `json:"color" yaml:"color"`
}

// Summary is the weekly per-project breakdown.
type Summary struct {
	Projects []ProjectHours `json:"projects"`
}

func (s Summary) TotalHours() int {
	total := 0
	for _, p := range s.Projects {
		total += p.Hours
	}
	return total
}

// EntrySeed is the yaml form of a recent entry; times are relative to boot.
type EntrySeed struct {
	ID          string `yaml:"id"`
	Project     string `yaml:"project"`
	Task        string `yaml:"task"`
	StartedAgo  int    `yaml:"started_hours_ago"`
	EndedAgo    int    `yaml:"ended_hours_ago"`
	Duration    int    `yaml:"duration"`
	Description string `yaml:"description"`
}

func EntriesFromSeed(c clock.Clock, seeds []EntrySeed) []Entry {
	now := c.Now()
	out := make([]Entry, 0, len(seeds))
	for _, s := range seeds {
		end := now.Add(-time.Duration(s.EndedAgo) * time.Hour)
		out = append(out, Entry{
			ID:          s.ID,
			Project:     s.Project,
			Task:        s.Task,
			StartTime:   now.Add(-time.Duration(s.StartedAgo) * time.Hour),
			EndTime:     &end,
			Duration:    s.Duration,
			Description: s.Description,
		})
	}
	return out
}
