package ink

// session is the in-flight capture state for one pointer. A session is
// created at pointer-down with a snapshot of the active brush config,
// feeds every event through pressure estimation into the smoother, and
// dies at pointer-up (commit) or pointer-cancel (discard). Config edits
// made while a session is open never affect it.
type session struct {
	id       int
	tool     ToolKind
	config   BrushConfig
	style    toolStyle
	smoother *Smoother
	pressure *PressureEstimator
}

func newSession(id int, tool ToolKind, config BrushConfig, window int, maxSpeed float64) *session {
	est := NewPressureEstimator()
	est.Window = window
	est.MaxSpeed = maxSpeed
	return &session{
		id:       id,
		tool:     tool,
		config:   config,
		style:    styleFor(tool),
		smoother: NewSmoother(config.Smoothing),
		pressure: est,
	}
}

// addPoint feeds one event into the session.
func (s *session) addPoint(ev PointerEvent) {
	pr := s.pressure.Estimate(ev)
	s.smoother.AddPoint(Pt(ev.X, ev.Y), pr)
}

// stroke builds the complete in-progress stroke from the smoothed path.
// Widths are finalized here: pressure response and nib direction are both
// baked into each point, so a committed stroke replays identically from
// its points alone, with no tool state needed.
func (s *session) stroke() *Stroke {
	pts := s.smoother.Flatten(DefaultFlattenTolerance)
	if len(pts) == 0 {
		return nil
	}
	out := make([]StrokePoint, len(pts))
	for i, p := range pts {
		w := s.config.WidthAt(p.Pressure)
		if s.style.nibbed {
			w *= nibWidthFactor(moveAngle(pts, i), s.style.nib)
		}
		out[i] = StrokePoint{X: p.X, Y: p.Y, Width: w}
	}
	return &Stroke{Tool: s.tool, Config: s.config, Points: out}
}

// moveAngle returns the travel direction at index i, leaning on the
// following segment at the stroke start.
func moveAngle(pts []SmoothedPoint, i int) float64 {
	if len(pts) < 2 {
		return 0
	}
	if i == 0 {
		return pts[1].Point.Sub(pts[0].Point).Angle()
	}
	return pts[i].Point.Sub(pts[i-1].Point).Angle()
}
