package ink

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestSnapshotRoundTrip tests that a captured state decodes back to the
// same background, strokes, tools, configs, and point widths.
func TestSnapshotRoundTrip(t *testing.T) {
	s := NewSurface(64, 48, nil)
	_ = s.SetBackground(Hex("#fdf6e3"))

	cal := DefaultBrush(ToolCalligraphy)
	_ = s.AddStroke(&Stroke{
		Tool:   ToolCalligraphy,
		Config: cal,
		Points: []StrokePoint{
			{X: 4, Y: 8, Width: 1.5},
			{X: 20, Y: 12, Width: 4.25},
			{X: 36, Y: 9, Width: 2},
		},
	})
	mk := DefaultBrush(ToolMarker)
	_ = s.AddStroke(&Stroke{
		Tool:   ToolMarker,
		Config: mk,
		Points: []StrokePoint{{X: 10, Y: 30, Width: 8}, {X: 50, Y: 30, Width: 8}},
	})

	st, err := CaptureState(s)
	if err != nil {
		t.Fatalf("CaptureState() error: %v", err)
	}
	if st.Width() != 64 || st.Height() != 48 {
		t.Errorf("state dimensions = %dx%d, want 64x48", st.Width(), st.Height())
	}
	if st.ID() == "" {
		t.Error("state ID is empty")
	}

	wire, err := EncodeState(st)
	if err != nil {
		t.Fatalf("EncodeState() error: %v", err)
	}
	back, err := DecodeState(wire)
	if err != nil {
		t.Fatalf("DecodeState() error: %v", err)
	}
	if back.ID() != st.ID() || back.Width() != st.Width() || back.Height() != st.Height() {
		t.Errorf("envelope fields changed: %q %dx%d", back.ID(), back.Width(), back.Height())
	}

	bg, strokes, err := decodeGraph(back.data)
	if err != nil {
		t.Fatalf("decodeGraph() error: %v", err)
	}
	if !colorNear(bg, Hex("#fdf6e3"), 1.0/255) {
		t.Errorf("background = %+v, want #fdf6e3", bg)
	}
	if len(strokes) != 2 {
		t.Fatalf("decoded %d strokes, want 2", len(strokes))
	}

	got := strokes[0]
	if got.Tool != ToolCalligraphy {
		t.Errorf("stroke 0 tool = %v, want calligraphy", got.Tool)
	}
	if len(got.Points) != 3 {
		t.Fatalf("stroke 0 has %d points, want 3", len(got.Points))
	}
	if got.Points[1].Width != 4.25 {
		t.Errorf("stroke 0 point 1 width = %g, want 4.25", got.Points[1].Width)
	}
	if got.Config.Smoothing != cal.Smoothing || got.Config.MaxWidth != cal.MaxWidth {
		t.Errorf("stroke 0 config = %+v, want %+v", got.Config, cal)
	}

	if strokes[1].Tool != ToolMarker || strokes[1].Config.Texture != TextureGrain {
		t.Errorf("stroke 1 = %v/%q, want marker with grain", strokes[1].Tool, strokes[1].Config.Texture)
	}
}

// TestSnapshotRestoreEquivalence tests that applying a decoded snapshot
// reproduces the original baked pixels.
func TestSnapshotRestoreEquivalence(t *testing.T) {
	src := NewSurface(32, 32, nil)
	_ = src.AddStroke(lineStroke(4, 16, 28, 16, 5))
	st, err := CaptureState(src)
	if err != nil {
		t.Fatalf("CaptureState() error: %v", err)
	}

	bg, strokes, err := decodeGraph(st.data)
	if err != nil {
		t.Fatalf("decodeGraph() error: %v", err)
	}
	dst := NewSurface(8, 8, nil)
	if err := dst.Restore(st.Width(), st.Height(), bg, strokes); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	a, b := src.Baked().Data(), dst.Baked().Data()
	if len(a) != len(b) {
		t.Fatalf("pixel buffer sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel data differs at byte %d: %d vs %d", i, a[i], b[i])
		}
	}
}

// TestDecodeStateRejections tests the all-or-nothing decode policy.
func TestDecodeStateRejections(t *testing.T) {
	valid := func() stateEnvelope {
		return stateEnvelope{
			Version: snapshotVersion,
			ID:      "test",
			Width:   10,
			Height:  10,
			Data:    json.RawMessage(`{"background":"#ffffffff","strokes":[]}`),
		}
	}

	tests := []struct {
		name   string
		mutate func(*stateEnvelope)
	}{
		{"future version", func(e *stateEnvelope) { e.Version = 99 }},
		{"zero width", func(e *stateEnvelope) { e.Width = 0 }},
		{"negative height", func(e *stateEnvelope) { e.Height = -4 }},
		{"unknown tool", func(e *stateEnvelope) {
			e.Data = json.RawMessage(`{"background":"#ffffffff","strokes":[{"tool":"quill","config":{"min_width":1,"max_width":2,"smoothing":0,"pressure_sensitivity":1,"opacity":1,"color":"#000000ff"},"points":[[0,0,1]]}]}`)
		}},
		{"malformed background", func(e *stateEnvelope) {
			e.Data = json.RawMessage(`{"background":"#zzzzzz","strokes":[]}`)
		}},
		{"missing background", func(e *stateEnvelope) {
			e.Data = json.RawMessage(`{"strokes":[]}`)
		}},
		{"malformed stroke color", func(e *stateEnvelope) {
			e.Data = json.RawMessage(`{"background":"#ffffffff","strokes":[{"tool":"pen","config":{"min_width":1,"max_width":2,"smoothing":0,"pressure_sensitivity":1,"opacity":1,"color":"#12345"},"points":[[0,0,1]]}]}`)
		}},
		{"invalid config", func(e *stateEnvelope) {
			e.Data = json.RawMessage(`{"background":"#ffffffff","strokes":[{"tool":"pen","config":{"min_width":5,"max_width":2,"smoothing":0,"pressure_sensitivity":1,"opacity":1,"color":"#000000ff"},"points":[[0,0,1]]}]}`)
		}},
		{"garbled graph", func(e *stateEnvelope) { e.Data = json.RawMessage(`[1,2`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := valid()
			tt.mutate(&env)
			wire, err := json.Marshal(env)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if _, err := DecodeState(wire); !errors.Is(err, ErrSerialization) {
				t.Errorf("DecodeState() = %v, want ErrSerialization", err)
			}
		})
	}

	if _, err := DecodeState([]byte("not json at all")); !errors.Is(err, ErrSerialization) {
		t.Errorf("DecodeState(garbage) = %v, want ErrSerialization", err)
	}
}

// TestDecodeGraphAllOrNothing tests that one bad stroke fails the whole
// graph rather than dropping it.
func TestDecodeGraphAllOrNothing(t *testing.T) {
	data := []byte(`{"background":"#ffffffff","strokes":[
		{"tool":"pen","config":{"min_width":1,"max_width":2,"smoothing":0,"pressure_sensitivity":1,"opacity":1,"color":"#000000ff"},"points":[[0,0,1]]},
		{"tool":"pen","config":{"min_width":1,"max_width":2,"smoothing":9,"pressure_sensitivity":1,"opacity":1,"color":"#000000ff"},"points":[[0,0,1]]}
	]}`)

	_, strokes, err := decodeGraph(data)
	if !errors.Is(err, ErrSerialization) {
		t.Fatalf("decodeGraph() = %v, want ErrSerialization", err)
	}
	if strokes != nil {
		t.Errorf("decodeGraph() returned partial strokes alongside an error")
	}
}
