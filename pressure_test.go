package ink

import (
	"math"
	"testing"
)

// TestPressureFirstPoint tests that the first point of a session reads the
// neutral simulated pressure when the device reports none.
func TestPressureFirstPoint(t *testing.T) {
	e := NewPressureEstimator()
	got := e.Estimate(PointerEvent{X: 10, Y: 10, TimeMs: 0})
	if got != pressureInitial {
		t.Errorf("first point pressure = %g, want %g", got, pressureInitial)
	}
}

// TestPressureHardwarePassthrough tests that reported hardware pressure is
// used directly, clamped to [0, 1].
func TestPressureHardwarePassthrough(t *testing.T) {
	tests := []struct {
		name     string
		pressure float64
		want     float64
	}{
		{"light", 0.25, 0.25},
		{"full", 1.0, 1.0},
		{"over range", 1.5, 1.0},
		{"tiny", 0.01, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewPressureEstimator()
			got := e.Estimate(PointerEvent{X: 0, Y: 0, Pressure: tt.pressure})
			if got != tt.want {
				t.Errorf("Estimate() = %g, want %g", got, tt.want)
			}
		})
	}
}

// TestPressureSlowIsHeavy tests that slow movement simulates near-full
// pressure and fast movement simulates light pressure.
func TestPressureSlowIsHeavy(t *testing.T) {
	slow := NewPressureEstimator()
	slow.Estimate(PointerEvent{X: 0, Y: 0, TimeMs: 0})
	slowP := 0.0
	for i := 1; i <= 6; i++ {
		// 1 px per 16 ms
		slowP = slow.Estimate(PointerEvent{X: float64(i), Y: 0, TimeMs: int64(i) * 16})
	}

	fast := NewPressureEstimator()
	fast.Estimate(PointerEvent{X: 0, Y: 0, TimeMs: 0})
	fastP := 0.0
	for i := 1; i <= 6; i++ {
		// 40 px per 16 ms
		fastP = fast.Estimate(PointerEvent{X: float64(i) * 40, Y: 0, TimeMs: int64(i) * 16})
	}

	if slowP <= fastP {
		t.Errorf("slow pressure %g should exceed fast pressure %g", slowP, fastP)
	}
	if slowP < 0.9 {
		t.Errorf("near-stationary stroke pressure = %g, want close to 1", slowP)
	}
}

// TestPressureFloor tests that even an extreme flick never drops below the
// floor, so strokes keep a visible width.
func TestPressureFloor(t *testing.T) {
	e := NewPressureEstimator()
	e.Estimate(PointerEvent{X: 0, Y: 0, TimeMs: 0})

	var got float64
	for i := 1; i <= 10; i++ {
		got = e.Estimate(PointerEvent{X: float64(i) * 500, Y: 0, TimeMs: int64(i)})
	}
	if got != pressureFloor {
		t.Errorf("flick pressure = %g, want floor %g", got, pressureFloor)
	}
}

// TestPressureWindowAverages tests that simulation averages the recent
// velocity window rather than reacting to a single sample: one fast sample
// among slow ones moves the needle only partway.
func TestPressureWindowAverages(t *testing.T) {
	e := NewPressureEstimator()
	e.Estimate(PointerEvent{X: 0, Y: 0, TimeMs: 0})

	x := 0.0
	var tms int64
	steady := 0.0
	for i := 0; i < DefaultPressureWindow; i++ {
		x += 1
		tms += 10
		steady = e.Estimate(PointerEvent{X: x, Y: 0, TimeMs: tms})
	}

	// One sudden jump.
	x += 30
	tms += 10
	spiked := e.Estimate(PointerEvent{X: x, Y: 0, TimeMs: tms})

	if spiked >= steady {
		t.Fatalf("spike did not reduce pressure: steady %g, spiked %g", steady, spiked)
	}
	if spiked <= pressureFloor {
		t.Errorf("one fast sample floored the pressure at %g; the window should damp it", spiked)
	}
}

// TestPressureHardwareLossMidStroke tests that losing hardware pressure
// mid-stroke falls back to velocity simulation without resetting motion
// history.
func TestPressureHardwareLossMidStroke(t *testing.T) {
	e := NewPressureEstimator()
	e.Estimate(PointerEvent{X: 0, Y: 0, Pressure: 0.8, TimeMs: 0})
	e.Estimate(PointerEvent{X: 1, Y: 0, Pressure: 0.8, TimeMs: 16})

	// Hardware drops out; slow movement should simulate heavy pressure
	// immediately because velocity history was maintained throughout.
	got := e.Estimate(PointerEvent{X: 2, Y: 0, TimeMs: 32})
	if got < 0.9 {
		t.Errorf("pressure after hardware loss = %g, want near 1 for slow motion", got)
	}
}

// TestPressureZeroTimeDelta tests that two events on the same millisecond
// do not divide by zero.
func TestPressureZeroTimeDelta(t *testing.T) {
	e := NewPressureEstimator()
	e.Estimate(PointerEvent{X: 0, Y: 0, TimeMs: 5})
	got := e.Estimate(PointerEvent{X: 3, Y: 4, TimeMs: 5})
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("pressure = %v for zero time delta", got)
	}
	if got < 0 || got > 1 {
		t.Errorf("pressure = %g outside [0, 1]", got)
	}
}

// TestPressureCustomTuning tests that Window and MaxSpeed overrides take
// effect.
func TestPressureCustomTuning(t *testing.T) {
	// With a high MaxSpeed the same motion reads as slower, so pressure
	// comes out higher.
	loose := &PressureEstimator{MaxSpeed: 50}
	tight := &PressureEstimator{MaxSpeed: 0.5}

	feed := func(e *PressureEstimator) float64 {
		e.Estimate(PointerEvent{X: 0, Y: 0, TimeMs: 0})
		var p float64
		for i := 1; i <= 6; i++ {
			p = e.Estimate(PointerEvent{X: float64(i) * 5, Y: 0, TimeMs: int64(i) * 10})
		}
		return p
	}

	if lp, tp := feed(loose), feed(tight); lp <= tp {
		t.Errorf("MaxSpeed 50 pressure %g should exceed MaxSpeed 0.5 pressure %g", lp, tp)
	}
}

// TestPressureReset tests that Reset clears motion history so the next
// point reads as a fresh session start.
func TestPressureReset(t *testing.T) {
	e := NewPressureEstimator()
	e.Estimate(PointerEvent{X: 0, Y: 0, TimeMs: 0})
	e.Estimate(PointerEvent{X: 100, Y: 0, TimeMs: 1})
	e.Reset()

	got := e.Estimate(PointerEvent{X: 200, Y: 0, TimeMs: 2})
	if got != pressureInitial {
		t.Errorf("pressure after Reset = %g, want %g", got, pressureInitial)
	}
}
