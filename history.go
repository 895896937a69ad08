package ink

// DefaultHistoryLimit bounds each history stack.
const DefaultHistoryLimit = 50

// History holds the bounded undo and redo stacks. It stores states only;
// deciding when to push and which state to restore is the StateManager's
// job. When a stack is full the oldest entry is evicted from the bottom,
// so the most recent states always survive.
type History struct {
	limit int
	undo  []*SurfaceState
	redo  []*SurfaceState
}

// NewHistory creates empty stacks. A non-positive limit selects
// DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Limit returns the per-stack capacity.
func (h *History) Limit() int { return h.limit }

// UndoDepth returns the number of states reachable by undo.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of states reachable by redo.
func (h *History) RedoDepth() int { return len(h.redo) }

// PushUndo pushes a state onto the undo stack, evicting the oldest entry
// when the stack is at capacity.
func (h *History) PushUndo(st *SurfaceState) {
	if len(h.undo) >= h.limit {
		n := copy(h.undo, h.undo[1:])
		h.undo = h.undo[:n]
	}
	h.undo = append(h.undo, st)
}

// PushRedo pushes a state onto the redo stack, evicting the oldest entry
// when the stack is at capacity.
func (h *History) PushRedo(st *SurfaceState) {
	if len(h.redo) >= h.limit {
		n := copy(h.redo, h.redo[1:])
		h.redo = h.redo[:n]
	}
	h.redo = append(h.redo, st)
}

// PopUndo removes and returns the most recent undo state.
func (h *History) PopUndo() (*SurfaceState, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	st := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return st, true
}

// PopRedo removes and returns the most recent redo state.
func (h *History) PopRedo() (*SurfaceState, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	st := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return st, true
}

// ClearRedo empties the redo stack. Every newly committed action does
// this: the timeline stays linear, and an action after an undo abandons
// the undone states for good.
func (h *History) ClearRedo() {
	h.redo = h.redo[:0]
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
