package ink

import (
	"context"
	"errors"
	"testing"

	"github.com/vellumnote/ink/store"
)

func newTestManager(t *testing.T) (*Surface, *StateManager) {
	t.Helper()
	s := NewSurface(40, 30, nil)
	m, err := NewStateManager(s, 0)
	if err != nil {
		t.Fatalf("NewStateManager() error: %v", err)
	}
	return s, m
}

// commit applies one mutation and records it, the way the engine does at
// pointer-up.
func commit(t *testing.T, s *Surface, m *StateManager, st *Stroke) {
	t.Helper()
	if err := s.AddStroke(st); err != nil {
		t.Fatalf("AddStroke() error: %v", err)
	}
	if err := m.SaveState(); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}
}

// TestStateManagerBaseline tests that a fresh manager captures the empty
// surface as its baseline with no history.
func TestStateManagerBaseline(t *testing.T) {
	_, m := newTestManager(t)

	if m.Current() == nil {
		t.Fatal("Current() = nil, want baseline state")
	}
	if m.CanUndo() || m.CanRedo() {
		t.Errorf("fresh manager: CanUndo=%v CanRedo=%v, want false/false", m.CanUndo(), m.CanRedo())
	}
	if m.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", m.Mode())
	}
}

// TestStateManagerUndoRedo tests the full cycle: mutate, undo back to
// empty, redo forward again.
func TestStateManagerUndoRedo(t *testing.T) {
	s, m := newTestManager(t)

	commit(t, s, m, lineStroke(5, 15, 35, 15, 4))
	if !m.CanUndo() {
		t.Fatal("CanUndo() = false after a committed mutation")
	}

	if err := m.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if s.StrokeCount() != 0 {
		t.Errorf("StrokeCount() = %d after undo, want 0", s.StrokeCount())
	}
	if !m.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}

	if err := m.Redo(); err != nil {
		t.Fatalf("Redo() error: %v", err)
	}
	if s.StrokeCount() != 1 {
		t.Errorf("StrokeCount() = %d after redo, want 1", s.StrokeCount())
	}
	if m.Mode() != ModeIdle {
		t.Errorf("Mode() = %v after redo, want idle", m.Mode())
	}
}

// TestStateManagerCountSymmetry tests that N committed mutations are
// undoable by exactly N undos, and N redos bring everything back.
func TestStateManagerCountSymmetry(t *testing.T) {
	s, m := newTestManager(t)

	const n = 7
	for i := 0; i < n; i++ {
		commit(t, s, m, lineStroke(2, float64(2+3*i), 38, float64(2+3*i), 2))
	}
	if m.UndoDepth() != n {
		t.Fatalf("UndoDepth() = %d, want %d", m.UndoDepth(), n)
	}

	for i := n - 1; i >= 0; i-- {
		if err := m.Undo(); err != nil {
			t.Fatalf("Undo() #%d error: %v", n-i, err)
		}
		if s.StrokeCount() != i {
			t.Fatalf("StrokeCount() = %d after undo, want %d", s.StrokeCount(), i)
		}
	}
	if err := m.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Undo() past the baseline = %v, want ErrNoHistory", err)
	}

	for i := 1; i <= n; i++ {
		if err := m.Redo(); err != nil {
			t.Fatalf("Redo() #%d error: %v", i, err)
		}
		if s.StrokeCount() != i {
			t.Fatalf("StrokeCount() = %d after redo, want %d", s.StrokeCount(), i)
		}
	}
	if err := m.Redo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Redo() past the tip = %v, want ErrNoHistory", err)
	}
}

// TestStateManagerNoHistoryLeavesSurface tests that failed undo and redo
// calls do not disturb the surface.
func TestStateManagerNoHistoryLeavesSurface(t *testing.T) {
	s, m := newTestManager(t)
	commit(t, s, m, lineStroke(5, 15, 35, 15, 4))

	if err := m.Redo(); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("Redo() with nothing undone = %v, want ErrNoHistory", err)
	}
	if s.StrokeCount() != 1 {
		t.Errorf("failed redo changed the surface: %d strokes", s.StrokeCount())
	}
}

// TestStateManagerRedoCleared tests that committing after an undo abandons
// the redo branch.
func TestStateManagerRedoCleared(t *testing.T) {
	s, m := newTestManager(t)

	commit(t, s, m, lineStroke(2, 5, 38, 5, 2))
	commit(t, s, m, lineStroke(2, 10, 38, 10, 2))

	if err := m.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if m.RedoDepth() != 1 {
		t.Fatalf("RedoDepth() = %d after undo, want 1", m.RedoDepth())
	}

	commit(t, s, m, lineStroke(2, 20, 38, 20, 2))

	if m.RedoDepth() != 0 {
		t.Errorf("RedoDepth() = %d after a new commit, want 0", m.RedoDepth())
	}
	if err := m.Redo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Redo() on abandoned branch = %v, want ErrNoHistory", err)
	}
}

// TestStateManagerBound tests that history never exceeds its limit while
// the most recent states stay reachable.
func TestStateManagerBound(t *testing.T) {
	s := NewSurface(40, 30, nil)
	m, err := NewStateManager(s, 3)
	if err != nil {
		t.Fatalf("NewStateManager() error: %v", err)
	}

	for i := 0; i < 8; i++ {
		commit(t, s, m, lineStroke(2, float64(2+3*i), 38, float64(2+3*i), 2))
	}
	if m.UndoDepth() != 3 {
		t.Fatalf("UndoDepth() = %d, want 3", m.UndoDepth())
	}

	// Only the last three commits are reachable.
	for i := 0; i < 3; i++ {
		if err := m.Undo(); err != nil {
			t.Fatalf("Undo() #%d error: %v", i+1, err)
		}
	}
	if s.StrokeCount() != 5 {
		t.Errorf("StrokeCount() = %d at the bottom of bounded history, want 5", s.StrokeCount())
	}
	if err := m.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Undo() past evicted history = %v, want ErrNoHistory", err)
	}
}

// TestStateManagerClearHistory tests dropping the timeline without touching
// the surface.
func TestStateManagerClearHistory(t *testing.T) {
	s, m := newTestManager(t)
	commit(t, s, m, lineStroke(5, 15, 35, 15, 4))
	if err := m.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	commit(t, s, m, lineStroke(5, 20, 35, 20, 4))

	m.ClearHistory()

	if m.CanUndo() || m.CanRedo() {
		t.Errorf("after ClearHistory: CanUndo=%v CanRedo=%v", m.CanUndo(), m.CanRedo())
	}
	if s.StrokeCount() != 1 {
		t.Errorf("ClearHistory changed the surface: %d strokes", s.StrokeCount())
	}
}

// TestStateManagerPersistRoundTrip tests SaveTo and LoadFrom through an
// in-memory store: content returns, and the load records nothing.
func TestStateManagerPersistRoundTrip(t *testing.T) {
	s, m := newTestManager(t)
	ctx := context.Background()

	commit(t, s, m, lineStroke(5, 15, 35, 15, 4))

	st, err := store.NewMemStore()
	if err != nil {
		t.Fatalf("NewMemStore() error: %v", err)
	}
	defer st.Close()

	if err := m.SaveTo(ctx, st, "page-1"); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	// Keep drawing after the save.
	commit(t, s, m, lineStroke(5, 25, 35, 25, 4))
	depthBefore := m.UndoDepth()

	if err := m.LoadFrom(ctx, st, "page-1"); err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if s.StrokeCount() != 1 {
		t.Errorf("StrokeCount() = %d after load, want 1", s.StrokeCount())
	}
	if m.UndoDepth() != depthBefore {
		t.Errorf("LoadFrom recorded history: depth %d, want %d", m.UndoDepth(), depthBefore)
	}
	if m.Mode() != ModeIdle {
		t.Errorf("Mode() = %v after load, want idle", m.Mode())
	}
}

// TestStateManagerLoadMissing tests the not-found path.
func TestStateManagerLoadMissing(t *testing.T) {
	_, m := newTestManager(t)

	st, err := store.NewMemStore()
	if err != nil {
		t.Fatalf("NewMemStore() error: %v", err)
	}
	defer st.Close()

	err = m.LoadFrom(context.Background(), st, "absent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("LoadFrom(absent) = %v, want ErrNotFound", err)
	}
}

// TestStateManagerLoadCorrupt tests that corrupted snapshots are rejected
// as serialization failures and the surface is left alone.
func TestStateManagerLoadCorrupt(t *testing.T) {
	s, m := newTestManager(t)
	commit(t, s, m, lineStroke(5, 15, 35, 15, 4))

	st, err := store.NewMemStore()
	if err != nil {
		t.Fatalf("NewMemStore() error: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.Save(ctx, "bad", []byte("{not json")); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	err = m.LoadFrom(ctx, st, "bad")
	if !errors.Is(err, ErrSerialization) {
		t.Fatalf("LoadFrom(corrupt) = %v, want ErrSerialization", err)
	}
	if s.StrokeCount() != 1 {
		t.Errorf("failed load changed the surface: %d strokes", s.StrokeCount())
	}
}
