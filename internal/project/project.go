package project

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

type Status string

const (
	StatusOnTrack   Status = "on-track"
	StatusAtRisk    Status = "at-risk"
	StatusCompleted Status = "completed"
)

// Label is the badge text shown on a project card.
func (s Status) Label() string {
	switch s {
	case StatusOnTrack:
		return "On Track"
	case StatusAtRisk:
		return "At Risk"
	case StatusCompleted:
		return "Done"
	default:
		return string(s)
	}
}

type TaskCounts struct {
	Completed int `json:"completed" yaml:"completed"`
	Total     int `json:"total" yaml:"total"`
}

type Budget struct {
	Spent int64 `json:"spent" yaml:"spent"`
	Total int64 `json:"total" yaml:"total"`
}

// SpentLabel renders spent money in thousands ("$45k").
func (b Budget) SpentLabel() string {
	return fmt.Sprintf("$%dk", b.Spent/1000)
}

func (b Budget) TotalLabel() string {
	return "$" + humanize.Comma(b.Total)
}

type Project struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Progress    int        `json:"progress" yaml:"progress"`
	Status      Status     `json:"status" yaml:"status"`
	Team        []string   `json:"team" yaml:"team"`
	DueDate     string     `json:"dueDate" yaml:"due_date"`
	Tasks       TaskCounts `json:"tasks" yaml:"tasks"`
	Budget      Budget     `json:"budget" yaml:"budget"`
	Color       string     `json:"color,omitempty" yaml:"color"`
}
