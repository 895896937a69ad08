package ink

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion is the serialization format version. Decoders reject
// versions they do not recognize rather than guessing at the layout.
const snapshotVersion = 1

// stateEnvelope is the persisted form of a SurfaceState.
type stateEnvelope struct {
	Version int             `json:"version"`
	ID      string          `json:"id"`
	TimeMs  int64           `json:"time_ms"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Data    json.RawMessage `json:"data"`
}

// surfaceGraph is the serialized surface content: the background plus the
// committed strokes in commit order. Stroke points are [x, y, width]
// triples; widths are final rendered values, so replay needs no pressure
// or tool-direction recomputation.
type surfaceGraph struct {
	Background string         `json:"background"`
	Strokes    []strokeRecord `json:"strokes"`
}

type strokeRecord struct {
	Tool   string       `json:"tool"`
	Config configRecord `json:"config"`
	Points [][3]float64 `json:"points"`
}

type configRecord struct {
	MinWidth            float64 `json:"min_width"`
	MaxWidth            float64 `json:"max_width"`
	Smoothing           float64 `json:"smoothing"`
	PressureSensitivity float64 `json:"pressure_sensitivity"`
	Opacity             float64 `json:"opacity"`
	Flow                float64 `json:"flow,omitempty"`
	Color               string  `json:"color"`
	Texture             string  `json:"texture,omitempty"`
}

func recordConfig(c BrushConfig) configRecord {
	return configRecord{
		MinWidth:            c.MinWidth,
		MaxWidth:            c.MaxWidth,
		Smoothing:           c.Smoothing,
		PressureSensitivity: c.PressureSensitivity,
		Opacity:             c.Opacity,
		Flow:                c.Flow,
		Color:               c.Color.HexString(),
		Texture:             c.Texture,
	}
}

func (r configRecord) config() (BrushConfig, error) {
	c, err := ParseHex(r.Color)
	if err != nil {
		return BrushConfig{}, err
	}
	return BrushConfig{
		MinWidth:            r.MinWidth,
		MaxWidth:            r.MaxWidth,
		Smoothing:           r.Smoothing,
		PressureSensitivity: r.PressureSensitivity,
		Opacity:             r.Opacity,
		Flow:                r.Flow,
		Color:               c,
		Texture:             r.Texture,
	}, nil
}

// encodeGraph serializes surface content.
func encodeGraph(s *Surface) ([]byte, error) {
	g := surfaceGraph{
		Background: s.background.HexString(),
		Strokes:    make([]strokeRecord, len(s.strokes)),
	}
	for i, st := range s.strokes {
		rec := strokeRecord{
			Tool:   st.Tool.String(),
			Config: recordConfig(st.Config),
			Points: make([][3]float64, len(st.Points)),
		}
		for j, p := range st.Points {
			rec.Points[j] = [3]float64{p.X, p.Y, p.Width}
		}
		g.Strokes[i] = rec
	}
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("%w: encode surface: %v", ErrSerialization, err)
	}
	return data, nil
}

// decodeGraph rebuilds surface content from its serialized form. Unknown
// tools, malformed colors, and out-of-range configs fail the whole decode;
// a snapshot is either applied completely or not at all.
func decodeGraph(data []byte) (RGBA, []*Stroke, error) {
	var g surfaceGraph
	if err := json.Unmarshal(data, &g); err != nil {
		return RGBA{}, nil, fmt.Errorf("%w: decode surface: %v", ErrSerialization, err)
	}

	bg, err := ParseHex(g.Background)
	if err != nil {
		return RGBA{}, nil, fmt.Errorf("%w: background: %v", ErrSerialization, err)
	}

	strokes := make([]*Stroke, len(g.Strokes))
	for i, rec := range g.Strokes {
		tool, err := ParseToolKind(rec.Tool)
		if err != nil {
			return RGBA{}, nil, fmt.Errorf("%w: stroke %d: unknown tool %q", ErrSerialization, i, rec.Tool)
		}
		cfg, err := rec.Config.config()
		if err != nil {
			return RGBA{}, nil, fmt.Errorf("%w: stroke %d: %v", ErrSerialization, i, err)
		}
		if err := cfg.Validate(); err != nil {
			return RGBA{}, nil, fmt.Errorf("%w: stroke %d: %v", ErrSerialization, i, err)
		}
		points := make([]StrokePoint, len(rec.Points))
		for j, p := range rec.Points {
			points[j] = StrokePoint{X: p[0], Y: p[1], Width: p[2]}
		}
		strokes[i] = &Stroke{Tool: tool, Config: cfg, Points: points}
	}
	return bg, strokes, nil
}

// EncodeState serializes a SurfaceState for persistence.
func EncodeState(st *SurfaceState) ([]byte, error) {
	env := stateEnvelope{
		Version: snapshotVersion,
		ID:      st.id,
		TimeMs:  st.timeMs,
		Width:   st.width,
		Height:  st.height,
		Data:    st.data,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: encode state: %v", ErrSerialization, err)
	}
	return data, nil
}

// DecodeState deserializes a persisted SurfaceState. The content graph is
// decoded eagerly so corruption surfaces here, not later inside a restore.
func DecodeState(data []byte) (*SurfaceState, error) {
	var env stateEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: decode state: %v", ErrSerialization, err)
	}
	if env.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", ErrSerialization, env.Version)
	}
	if env.Width <= 0 || env.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrSerialization, env.Width, env.Height)
	}
	if _, _, err := decodeGraph(env.Data); err != nil {
		return nil, err
	}
	return &SurfaceState{
		id:     env.ID,
		timeMs: env.TimeMs,
		width:  env.Width,
		height: env.Height,
		data:   env.Data,
	}, nil
}
