// Package seed loads the embedded mock data every page starts from.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sahuAhmadzafar/PMT/internal/activity"
	"github.com/sahuAhmadzafar/PMT/internal/chat"
	"github.com/sahuAhmadzafar/PMT/internal/dashboard"
	"github.com/sahuAhmadzafar/PMT/internal/gantt"
	"github.com/sahuAhmadzafar/PMT/internal/kanban"
	"github.com/sahuAhmadzafar/PMT/internal/notify"
	"github.com/sahuAhmadzafar/PMT/internal/project"
	"github.com/sahuAhmadzafar/PMT/internal/settings"
	"github.com/sahuAhmadzafar/PMT/internal/site"
	"github.com/sahuAhmadzafar/PMT/internal/team"
	"github.com/sahuAhmadzafar/PMT/internal/timetrack"
)

//go:embed seed.yml
var embedded []byte

type Data struct {
	Kanban        []kanban.Column   `yaml:"kanban"`
	Gantt         []gantt.Node      `yaml:"gantt"`
	Notifications []notify.Seed     `yaml:"notifications"`
	Projects      []project.Project `yaml:"projects"`
	Team          []team.Member     `yaml:"team"`
	Chat          chat.Seed         `yaml:"chat"`
	TimeTracking  TimeTracking      `yaml:"time_tracking"`
	Dashboard     Dashboard         `yaml:"dashboard"`
	Settings      settings.Seed     `yaml:"settings"`
	Site          Site              `yaml:"site"`
}

type TimeTracking struct {
	Projects []string                 `yaml:"projects"`
	Entries  []timetrack.EntrySeed    `yaml:"entries"`
	Weekly   []timetrack.ProjectHours `yaml:"weekly"`
}

type Dashboard struct {
	Stats    []dashboard.Stat `yaml:"stats"`
	Activity []activity.Seed  `yaml:"activity"`
}

type Site struct {
	Categories []site.Category `yaml:"categories"`
	Nav        []site.NavLink  `yaml:"nav"`
	Projects   []site.Project  `yaml:"projects"`
}

// Default returns the embedded data set.
func Default() (*Data, error) {
	return Parse(embedded)
}

// LoadFile reads an alternate data set from disk.
func LoadFile(path string) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if _, err := kanban.NewBoard(d.Kanban); err != nil {
		return nil, fmt.Errorf("seed kanban: %w", err)
	}
	if _, err := gantt.Build(d.Gantt, nil); err != nil {
		return nil, fmt.Errorf("seed gantt: %w", err)
	}
	return &d, nil
}
