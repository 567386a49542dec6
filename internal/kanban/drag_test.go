package kanban

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(id string) Task {
	return Task{ID: TaskID(id), Title: "task " + id, Priority: PriorityMedium, Assignees: []string{"JD"}}
}

func testBoard(t *testing.T) Board {
	t.Helper()
	b, err := NewBoard([]Column{
		{ID: "todo", Title: "To Do", Tasks: []Task{task("1"), task("2")}},
		{ID: "in-progress", Title: "In Progress", Tasks: []Task{task("3")}},
		{ID: "review", Title: "Review", Tasks: []Task{task("4")}},
		{ID: "done", Title: "Done", Tasks: nil},
	})
	require.NoError(t, err)
	return b
}

func taskIDs(c Column) []TaskID {
	ids := make([]TaskID, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func occurrences(b Board, id TaskID) int {
	n := 0
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			if t.ID == id {
				n++
			}
		}
	}
	return n
}

func TestDrop_MovesTaskToEndOfTarget(t *testing.T) {
	m := NewMachine(testBoard(t))
	before := m.Board()

	m.BeginDrag("1", "todo")
	assert.True(t, m.Drop("in-progress"))

	after := m.Board()
	todo, _ := after.Column("todo")
	inProgress, _ := after.Column("in-progress")

	assert.Equal(t, []TaskID{"2"}, taskIDs(todo))
	assert.Equal(t, []TaskID{"3", "1"}, taskIDs(inProgress))
	assert.Equal(t, 1, occurrences(after, "1"))

	// Untouched columns keep identical contents.
	for _, id := range []ColumnID{"review", "done"} {
		was, _ := before.Column(id)
		now, _ := after.Column(id)
		if diff := cmp.Diff(was, now); diff != "" {
			t.Fatalf("column %s changed (-before +after):\n%s", id, diff)
		}
	}

	_, dragging := m.Dragging()
	assert.False(t, dragging)
}

func TestDrop_SameColumnIsIdentity(t *testing.T) {
	m := NewMachine(testBoard(t))
	before := m.Board()

	m.BeginDrag("2", "todo")
	assert.False(t, m.Drop("todo"))

	if diff := cmp.Diff(before, m.Board()); diff != "" {
		t.Fatalf("board changed on same-column drop:\n%s", diff)
	}
	_, dragging := m.Dragging()
	assert.False(t, dragging)
}

func TestDrop_WithoutDragIsNoop(t *testing.T) {
	m := NewMachine(testBoard(t))
	before := m.Board()

	assert.False(t, m.Drop("done"))
	assert.Empty(t, cmp.Diff(before, m.Board()))
}

func TestDrop_StaleReferencesAreNoops(t *testing.T) {
	cases := []struct {
		name   string
		task   TaskID
		source ColumnID
		target ColumnID
	}{
		{"task not in source", "3", "todo", "done"},
		{"unknown task", "99", "todo", "done"},
		{"unknown source", "1", "backlog", "done"},
		{"unknown target", "1", "todo", "archive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine(testBoard(t))
			before := m.Board()

			m.BeginDrag(tc.task, tc.source)
			assert.False(t, m.Drop(tc.target))
			assert.Empty(t, cmp.Diff(before, m.Board()))

			_, dragging := m.Dragging()
			assert.False(t, dragging)
		})
	}
}

func TestBeginDrag_LastWriterWins(t *testing.T) {
	m := NewMachine(testBoard(t))

	m.BeginDrag("1", "todo")
	m.BeginDrag("3", "in-progress")

	d, ok := m.Dragging()
	require.True(t, ok)
	assert.Equal(t, Drag{TaskID: "3", Source: "in-progress"}, d)

	assert.True(t, m.Drop("done"))
	after := m.Board()
	todo, _ := after.Column("todo")
	done, _ := after.Column("done")
	assert.Equal(t, []TaskID{"1", "2"}, taskIDs(todo))
	assert.Equal(t, []TaskID{"3"}, taskIDs(done))
}

func TestDragOver_DoesNotChangeState(t *testing.T) {
	m := NewMachine(testBoard(t))
	before := m.Board()

	assert.True(t, m.DragOver())
	_, dragging := m.Dragging()
	assert.False(t, dragging)

	m.BeginDrag("1", "todo")
	assert.True(t, m.DragOver())
	d, ok := m.Dragging()
	require.True(t, ok)
	assert.Equal(t, TaskID("1"), d.TaskID)
	assert.Empty(t, cmp.Diff(before, m.Board()))
}

func TestScenarioA_TodoToDone(t *testing.T) {
	b, err := NewBoard([]Column{
		{ID: "todo", Title: "To Do", Tasks: []Task{task("task1")}},
		{ID: "done", Title: "Done"},
	})
	require.NoError(t, err)
	m := NewMachine(b)

	m.BeginDrag("task1", "todo")
	m.Drop("done")

	after := m.Board()
	todo, _ := after.Column("todo")
	done, _ := after.Column("done")
	assert.Empty(t, todo.Tasks)
	assert.Equal(t, []TaskID{"task1"}, taskIDs(done))
}

func TestScenarioB_DropBackIntoTodo(t *testing.T) {
	b, err := NewBoard([]Column{
		{ID: "todo", Title: "To Do", Tasks: []Task{task("task1")}},
		{ID: "done", Title: "Done"},
	})
	require.NoError(t, err)
	m := NewMachine(b)

	m.BeginDrag("task1", "todo")
	m.Drop("todo")

	assert.Empty(t, cmp.Diff(b, m.Board()))
	_, dragging := m.Dragging()
	assert.False(t, dragging)
}

func TestMoves_NeverDuplicateOrOrphan(t *testing.T) {
	m := NewMachine(testBoard(t))
	moves := []struct {
		task   TaskID
		target ColumnID
	}{
		{"1", "done"}, {"3", "review"}, {"1", "todo"}, {"4", "done"}, {"2", "in-progress"},
	}
	for _, mv := range moves {
		src, ok := m.Board().Locate(mv.task)
		require.True(t, ok)
		m.BeginDrag(mv.task, src)
		m.Drop(mv.target)
	}

	final := m.Board()
	require.NoError(t, final.Validate())
	for _, id := range []TaskID{"1", "2", "3", "4"} {
		assert.Equal(t, 1, occurrences(final, id), "task %s", id)
	}
	done, _ := final.Column("done")
	assert.Equal(t, []TaskID{"4"}, taskIDs(done))
}

func TestBoardSnapshot_IsIsolated(t *testing.T) {
	m := NewMachine(testBoard(t))
	snap := m.Board()
	snap.Columns[0].Tasks[0].Title = "mutated"
	snap.Columns[0].Tasks[0].Tags = append(snap.Columns[0].Tasks[0].Tags, "x")

	fresh := m.Board()
	assert.Equal(t, "task 1", fresh.Columns[0].Tasks[0].Title)
	assert.Empty(t, fresh.Columns[0].Tasks[0].Tags)
}

func TestNewBoard_RejectsDuplicates(t *testing.T) {
	_, err := NewBoard([]Column{
		{ID: "a", Tasks: []Task{task("1")}},
		{ID: "b", Tasks: []Task{task("1")}},
	})
	assert.ErrorIs(t, err, ErrDuplicateTask)

	_, err = NewBoard([]Column{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	bad := task("1")
	bad.Priority = "urgent"
	_, err = NewBoard([]Column{{ID: "a", Tasks: []Task{bad}}})
	assert.ErrorIs(t, err, ErrInvalidTask)
}
