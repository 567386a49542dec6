package gantt

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Node is the seed form of a task tree.
type Node struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Progress int    `yaml:"progress"`
	Assignee string `yaml:"assignee"`
	Expanded bool   `yaml:"expanded"`
	Subtasks []Node `yaml:"subtasks"`
}

// Build parses seed nodes into a forest. Dates are calendar days in loc.
func Build(nodes []Node, loc *time.Location) (*Forest, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := NewForest()
	var add func(parent TaskID, n Node) error
	add = func(parent TaskID, n Node) error {
		start, err := time.ParseInLocation(dateLayout, n.Start, loc)
		if err != nil {
			return fmt.Errorf("task %s start: %w", n.ID, err)
		}
		end, err := time.ParseInLocation(dateLayout, n.End, loc)
		if err != nil {
			return fmt.Errorf("task %s end: %w", n.ID, err)
		}
		t := Task{
			ID:       TaskID(n.ID),
			Name:     n.Name,
			Start:    start,
			End:      end,
			Progress: n.Progress,
			Assignee: n.Assignee,
		}
		if err := f.Add(parent, t, n.Expanded); err != nil {
			return err
		}
		for _, c := range n.Subtasks {
			if err := add(t.ID, c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, n := range nodes {
		if err := add("", n); err != nil {
			return nil, err
		}
	}
	return f, nil
}
