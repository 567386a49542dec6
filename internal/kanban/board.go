package kanban

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateTask   = errors.New("duplicate task id")
	ErrDuplicateColumn = errors.New("duplicate column id")
	ErrInvalidTask     = errors.New("invalid task")
)

type (
	TaskID   string
	ColumnID string
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a card on the board. DueDate is a display label, never parsed.
type Task struct {
	ID          TaskID   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Assignees   []string `json:"assignees" yaml:"assignees"`
	DueDate     string   `json:"dueDate" yaml:"due_date"`
	Comments    int      `json:"comments" yaml:"comments"`
	Attachments int      `json:"attachments" yaml:"attachments"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}

// Column is a lane. Task order is display order.
type Column struct {
	ID    ColumnID `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Tasks []Task   `json:"tasks" yaml:"tasks"`
}

// Board holds the ordered columns. A task id appears in exactly one column.
type Board struct {
	Columns []Column `json:"columns"`
}

// NewBoard copies the seed columns and checks the board invariants.
func NewBoard(columns []Column) (Board, error) {
	b := Board{Columns: cloneColumns(columns)}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

func (b Board) Validate() error {
	cols := make(map[ColumnID]struct{}, len(b.Columns))
	tasks := make(map[TaskID]ColumnID)
	for _, c := range b.Columns {
		if _, dup := cols[c.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateColumn, c.ID)
		}
		cols[c.ID] = struct{}{}
		for _, t := range c.Tasks {
			if prev, dup := tasks[t.ID]; dup {
				return fmt.Errorf("%w: %s in %s and %s", ErrDuplicateTask, t.ID, prev, c.ID)
			}
			tasks[t.ID] = c.ID
			if t.ID == "" || !t.Priority.Valid() || t.Comments < 0 || t.Attachments < 0 {
				return fmt.Errorf("%w: %q", ErrInvalidTask, t.ID)
			}
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand to renderers.
func (b Board) Clone() Board {
	return Board{Columns: cloneColumns(b.Columns)}
}

func (b Board) columnIndex(id ColumnID) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// Column returns the column by id.
func (b Board) Column(id ColumnID) (Column, bool) {
	i := b.columnIndex(id)
	if i < 0 {
		return Column{}, false
	}
	return b.Columns[i], true
}

// Locate returns the column currently owning the task.
func (b Board) Locate(id TaskID) (ColumnID, bool) {
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			if t.ID == id {
				return c.ID, true
			}
		}
	}
	return "", false
}

// move removes the task from source and appends it to target.
// Soft failure: returns false and leaves the board untouched if any reference is stale.
func (b *Board) move(id TaskID, source, target ColumnID) bool {
	si := b.columnIndex(source)
	ti := b.columnIndex(target)
	if si < 0 || ti < 0 || si == ti {
		return false
	}

	src := b.Columns[si].Tasks
	pos := -1
	for i := range src {
		if src[i].ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}
	moved := src[pos]

	kept := make([]Task, 0, len(src)-1)
	kept = append(kept, src[:pos]...)
	kept = append(kept, src[pos+1:]...)

	dst := make([]Task, 0, len(b.Columns[ti].Tasks)+1)
	dst = append(dst, b.Columns[ti].Tasks...)
	dst = append(dst, moved)

	b.Columns[si].Tasks = kept
	b.Columns[ti].Tasks = dst
	return true
}

func cloneColumns(in []Column) []Column {
	out := make([]Column, len(in))
	for i, c := range in {
		tasks := make([]Task, len(c.Tasks))
		for j, t := range c.Tasks {
			t.Assignees = append([]string(nil), t.Assignees...)
			t.Tags = append([]string(nil), t.Tags...)
			tasks[j] = t
		}
		out[i] = Column{ID: c.ID, Title: c.Title, Tasks: tasks}
	}
	return out
}
