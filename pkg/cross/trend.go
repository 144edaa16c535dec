package cross

import (
	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

type Trend int

const (
	Flat Trend = 0
	Up   Trend = 1
	Down Trend = -1
)

func (t Trend) Value() fixedpoint.Value {
	return fixedpoint.NewFromInt(int64(t))
}

func (t Trend) String() string {
	switch t {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "flat"
}

// Tracker turns crosses of two series into a trend and counts the steps since
// the trend was last set.
//
//go:generate callbackgen -type Tracker
type Tracker struct {
	detector Detector
	trend    Trend
	since    int

	crossCallbacks []func(c Type, trend Trend)
}

// Update compares a with b. A cross over sets the trend to Up, a cross under
// sets it to Down, and either resets the counter. Otherwise the counter grows.
func (t *Tracker) Update(a, b fixedpoint.Value) Type {
	c := t.detector.Update(a, b)
	switch c {
	case Over:
		t.Set(Up)
	case Under:
		t.Set(Down)
	default:
		t.Hold()
	}

	if c != None {
		t.EmitCross(c, t.trend)
	}
	return c
}

// Set moves the tracker to trend and resets the counter, even when the trend
// does not change.
func (t *Tracker) Set(trend Trend) {
	t.trend = trend
	t.since = 0
}

// Hold records one more step without a trend change.
func (t *Tracker) Hold() {
	t.since++
}

func (t *Tracker) Trend() Trend {
	return t.trend
}

func (t *Tracker) Since() int {
	return t.since
}

func (t *Tracker) SinceValue() fixedpoint.Value {
	return fixedpoint.NewFromInt(int64(t.since))
}
