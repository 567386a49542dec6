package gantt

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrDuplicateID   = errors.New("duplicate gantt task id")
	ErrUnknownParent = errors.New("unknown parent task")
	ErrInvertedRange = errors.New("task ends before it starts")
	ErrProgressRange = errors.New("progress outside 0-100")
)

type TaskID string

type Task struct {
	ID       TaskID    `json:"id"`
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Progress int       `json:"progress"`
	Assignee string    `json:"assignee"`
}

func (t Task) validate() error {
	if t.End.Before(t.Start) {
		return fmt.Errorf("%w: %s", ErrInvertedRange, t.ID)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("%w: %s has %d", ErrProgressRange, t.ID, t.Progress)
	}
	return nil
}

type node struct {
	task     Task
	depth    int
	children []int
	expanded bool
}

// Forest is an arena of gantt tasks. Nodes are addressed by id through an
// index; parent->children links are ordered index slices.
type Forest struct {
	mu    sync.Mutex
	nodes []node
	index map[TaskID]int
	roots []int
}

func NewForest() *Forest {
	return &Forest{index: make(map[TaskID]int)}
}

// Add appends t under parent ("" for a root).
func (f *Forest) Add(parent TaskID, t Task, expanded bool) error {
	if err := t.validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, dup := f.index[t.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}

	n := node{task: t, expanded: expanded}
	idx := len(f.nodes)
	if parent == "" {
		f.roots = append(f.roots, idx)
	} else {
		p, ok := f.index[parent]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownParent, parent)
		}
		n.depth = f.nodes[p].depth + 1
		f.nodes[p].children = append(f.nodes[p].children, idx)
	}
	f.nodes = append(f.nodes, n)
	f.index[t.ID] = idx
	return nil
}

// Toggle flips one node's expanded flag. Unknown ids are a no-op.
func (f *Forest) Toggle(id TaskID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx, ok := f.index[id]
	if !ok {
		return false
	}
	f.nodes[idx].expanded = !f.nodes[idx].expanded
	return true
}

// Expanded reports a node's flag and whether the node exists.
func (f *Forest) Expanded(id TaskID) (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx, ok := f.index[id]
	if !ok {
		return false, false
	}
	return f.nodes[idx].expanded, true
}

func (f *Forest) Task(id TaskID) (Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx, ok := f.index[id]
	if !ok {
		return Task{}, false
	}
	return f.nodes[idx].task, true
}

// Clone copies the arena including expansion state.
func (f *Forest) Clone() *Forest {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := &Forest{
		nodes: make([]node, len(f.nodes)),
		index: make(map[TaskID]int, len(f.index)),
		roots: append([]int(nil), f.roots...),
	}
	for i, n := range f.nodes {
		n.children = append([]int(nil), n.children...)
		out.nodes[i] = n
	}
	for id, idx := range f.index {
		out.index[id] = idx
	}
	return out
}

// Row is one visible line of the chart.
type Row struct {
	Task        Task   `json:"task"`
	Depth       int    `json:"depth"`
	IndentPx    int    `json:"indentPx"`
	HasChildren bool   `json:"hasChildren"`
	Expanded    bool   `json:"expanded"`
	DateLabel   string `json:"dateLabel"`
	Bar         Bar    `json:"bar"`
}

// Rows walks the forest in pre-order and skips the subtrees of collapsed nodes.
func (f *Forest) Rows(w Window, indentPx int) []Row {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([]Row, 0, len(f.nodes))
	var walk func(idx int)
	walk = func(idx int) {
		n := f.nodes[idx]
		rows = append(rows, Row{
			Task:        n.task,
			Depth:       n.depth,
			IndentPx:    n.depth * indentPx,
			HasChildren: len(n.children) > 0,
			Expanded:    n.expanded,
			DateLabel:   n.task.Start.Format("Jan 2") + " - " + n.task.End.Format("Jan 2"),
			Bar:         w.Bar(n.task),
		})
		if !n.expanded {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	for _, r := range f.roots {
		walk(r)
	}
	return rows
}
