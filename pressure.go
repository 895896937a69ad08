package ink

// Pressure estimation constants.
const (
	// pressureFloor is the minimum simulated pressure; fast flicks never
	// drop a stroke to zero width.
	pressureFloor = 0.1

	// pressureInitial is the simulated pressure for the first point of a
	// session, before any velocity exists.
	pressureInitial = 0.5

	// DefaultPressureWindow is the number of recent velocity samples
	// averaged when simulating pressure.
	DefaultPressureWindow = 5

	// DefaultPressureMaxSpeed is the pointer speed in px/ms that maps to
	// minimum simulated pressure.
	DefaultPressureMaxSpeed = 2.0
)

// PressureEstimator produces a pressure value in [0, 1] for each pointer
// event. Hardware pressure is passed through when the device reports it;
// otherwise pressure is simulated from pointer velocity, with slow strokes
// reading as heavy and fast strokes as light.
//
// One estimator belongs to one capture session. It is not goroutine-safe.
type PressureEstimator struct {
	// Window is the number of velocity samples averaged. Zero or negative
	// means DefaultPressureWindow.
	Window int

	// MaxSpeed is the speed in px/ms mapped to minimum pressure. Zero or
	// negative means DefaultPressureMaxSpeed.
	MaxSpeed float64

	samples []float64
	next    int

	last     Point
	lastTime int64
	started  bool
}

// NewPressureEstimator creates an estimator with default tuning.
func NewPressureEstimator() *PressureEstimator {
	return &PressureEstimator{}
}

// Estimate returns the pressure for the event. Motion history is updated on
// every call, so a device that loses hardware pressure mid-stroke degrades
// to velocity simulation without a discontinuity in state.
func (e *PressureEstimator) Estimate(ev PointerEvent) float64 {
	p := Pt(ev.X, ev.Y)

	simulated := pressureInitial
	if e.started {
		dt := ev.TimeMs - e.lastTime
		if dt < 1 {
			dt = 1
		}
		speed := p.Distance(e.last) / float64(dt)
		e.push(speed)
		simulated = e.simulate()
	}

	e.last = p
	e.lastTime = ev.TimeMs
	e.started = true

	if ev.Pressure > 0 {
		return clamp01(ev.Pressure)
	}
	return simulated
}

// push records a velocity sample in the rolling window.
func (e *PressureEstimator) push(speed float64) {
	if e.samples == nil {
		n := e.Window
		if n <= 0 {
			n = DefaultPressureWindow
		}
		e.samples = make([]float64, 0, n)
	}
	if len(e.samples) < cap(e.samples) {
		e.samples = append(e.samples, speed)
		return
	}
	e.samples[e.next] = speed
	e.next = (e.next + 1) % len(e.samples)
}

// simulate converts the averaged velocity window into a pressure value.
func (e *PressureEstimator) simulate() float64 {
	if len(e.samples) == 0 {
		return pressureInitial
	}
	sum := 0.0
	for _, v := range e.samples {
		sum += v
	}
	avg := sum / float64(len(e.samples))

	maxSpeed := e.MaxSpeed
	if maxSpeed <= 0 {
		maxSpeed = DefaultPressureMaxSpeed
	}
	p := 1 - avg/maxSpeed
	if p < pressureFloor {
		return pressureFloor
	}
	if p > 1 {
		return 1
	}
	return p
}

// Reset clears all motion history for a new session.
func (e *PressureEstimator) Reset() {
	e.samples = e.samples[:0]
	e.next = 0
	e.last = Point{}
	e.lastTime = 0
	e.started = false
}
