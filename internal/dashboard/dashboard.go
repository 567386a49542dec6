// Package dashboard assembles the landing page overview from the other
// domain packages.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sahuAhmadzafar/PMT/internal/activity"
	"github.com/sahuAhmadzafar/PMT/internal/project"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

type Stat struct {
	Name   string `json:"name" yaml:"name"`
	Value  string `json:"value" yaml:"value"`
	Change string `json:"change" yaml:"change"`
	Trend  Trend  `json:"trend" yaml:"trend"`
	Icon   string `json:"icon" yaml:"icon"`
}

type ActivityRow struct {
	Initials string
	User     string
	Action   string
	Target   string
	Ago      string
}

type Overview struct {
	Stats    []Stat
	Projects []project.Project
	Activity []ActivityRow
}

type Service struct {
	stats    []Stat
	projects project.Repository
	feed     activity.Repository
	limit    int
}

func NewService(stats []Stat, projects project.Repository, feed activity.Repository) *Service {
	return &Service{stats: stats, projects: projects, feed: feed, limit: 4}
}

func (s *Service) Overview(ctx context.Context, now time.Time) (Overview, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list projects: %w", err)
	}
	active := project.Active(all)
	if len(active) > s.limit {
		active = active[:s.limit]
	}

	events := s.feed.Recent(s.limit)
	rows := make([]ActivityRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, ActivityRow{
			Initials: Initials(e.User),
			User:     e.User,
			Action:   string(e.Action),
			Target:   e.Target,
			Ago:      e.Ago(now),
		})
	}

	return Overview{
		Stats:    append([]Stat(nil), s.stats...),
		Projects: active,
		Activity: rows,
	}, nil
}

// Initials takes the first letter of each word: "Sarah Miller" -> "SM".
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}
