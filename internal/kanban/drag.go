package kanban

import "sync"

// Drag is the pair captured when a drag gesture starts.
type Drag struct {
	TaskID TaskID   `json:"taskId"`
	Source ColumnID `json:"columnId"`
}

// Machine owns a board and applies at most one move per completed drag gesture.
// States: idle (no drag) and dragging (one captured Drag).
type Machine struct {
	mu    sync.Mutex
	board Board
	drag  *Drag
}

func NewMachine(b Board) *Machine {
	return &Machine{board: b.Clone()}
}

// Board returns a snapshot of the current board.
func (m *Machine) Board() Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Clone()
}

// Dragging reports the active drag, if any.
func (m *Machine) Dragging() (Drag, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.drag == nil {
		return Drag{}, false
	}
	return *m.drag, true
}

// BeginDrag enters the dragging state. A second call overwrites the captured pair.
func (m *Machine) BeginDrag(id TaskID, source ColumnID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drag = &Drag{TaskID: id, Source: source}
}

// DragOver accepts the pending drop. It never changes state.
func (m *Machine) DragOver() bool {
	return true
}

// Drop commits the active drag into target and returns to idle.
// Dropping with no drag, into the source column, or with a stale reference
// leaves the board unchanged. It reports whether a task moved.
func (m *Machine) Drop(target ColumnID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.drag == nil {
		return false
	}
	d := *m.drag
	m.drag = nil

	if d.Source == target {
		return false
	}
	return m.board.move(d.TaskID, d.Source, target)
}

// Reset replaces the board and cancels any drag.
func (m *Machine) Reset(b Board) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.board = b.Clone()
	m.drag = nil
}
