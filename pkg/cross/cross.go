// Package cross detects when one series crosses another and keeps the trend
// state that follows from those crosses.
package cross

import (
	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

// Type is the signed result of comparing two series on one step.
type Type int

const (
	None  Type = 0
	Over  Type = 1
	Under Type = -1
)

func (t Type) Value() fixedpoint.Value {
	return fixedpoint.NewFromInt(int64(t))
}

func (t Type) String() string {
	switch t {
	case Over:
		return "over"
	case Under:
		return "under"
	}
	return "none"
}

// Detector compares the sign of a-b with the one seen on the previous step.
//
// a crosses over b when the previous delta was negative and the current one is
// zero or positive; it crosses under when the previous delta was positive and
// the current one is zero or negative. The previous delta starts at zero, so
// the first step never reports a cross.
type Detector struct {
	lastDelta fixedpoint.Value
}

func (d *Detector) Update(a, b fixedpoint.Value) Type {
	last := d.lastDelta
	delta := a.Sub(b)
	d.lastDelta = delta

	switch {
	case last.Sign() < 0 && delta.Sign() >= 0:
		return Over
	case last.Sign() > 0 && delta.Sign() <= 0:
		return Under
	}
	return None
}
