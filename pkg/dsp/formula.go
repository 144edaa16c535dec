package dsp

import (
	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

var (
	hilbertA = fixedpoint.MustNewFromString("0.0962")
	hilbertB = fixedpoint.MustNewFromString("0.5769")

	bandwidthSlope  = fixedpoint.MustNewFromString("0.075")
	bandwidthOffset = fixedpoint.MustNewFromString("0.54")

	alpha02 = fixedpoint.MustNewFromString("0.2")
	alpha08 = fixedpoint.MustNewFromString("0.8")

	periodCeilRatio  = fixedpoint.MustNewFromString("1.5")
	periodFloorRatio = fixedpoint.MustNewFromString("0.67")

	smoothPeriodAlpha = fixedpoint.MustNewFromString("0.33")
	smoothPeriodDecay = fixedpoint.MustNewFromString("0.67")

	half       = fixedpoint.MustNewFromString("0.5")
	q3Slope    = fixedpoint.MustNewFromString("0.1759")
	q3Offset   = fixedpoint.MustNewFromString("0.4607")
	i3Gain     = fixedpoint.MustNewFromString("1.57")
	fullCircle = fixedpoint.NewFromInt(360)

	snrAlpha = fixedpoint.MustNewFromString("0.33")
	snrDecay = fixedpoint.MustNewFromString("0.67")
	ln10     = fixedpoint.Ln(fixedpoint.Ten)
)

const (
	MinPeriod = 6
	MaxPeriod = 50
)

var (
	minPeriod = fixedpoint.NewFromInt(MinPeriod)
	maxPeriod = fixedpoint.NewFromInt(MaxPeriod)
)

// Smooth is the 4-3-2-1 weighted average of the price and its three previous values.
func Smooth(price, price1, price2, price3 fixedpoint.Value) fixedpoint.Value {
	return fixedpoint.Four.Mul(price).
		Add(fixedpoint.Three.Mul(price1)).
		Add(fixedpoint.Two.Mul(price2)).
		Add(price3).
		Div(fixedpoint.Ten)
}

// bandwidth scales the Hilbert transform output by the previous period.
func bandwidth(period1 fixedpoint.Value) fixedpoint.Value {
	return bandwidthSlope.Mul(period1).Add(bandwidthOffset)
}

// hilbert is the four tap Hilbert transform approximation shared by every
// quadrature stage.
func hilbert(x, xa, xb, xc, period1 fixedpoint.Value) fixedpoint.Value {
	return hilbertA.Mul(x).
		Add(hilbertB.Mul(xa)).
		Sub(hilbertB.Mul(xb)).
		Sub(hilbertA.Mul(xc)).
		Mul(bandwidth(period1))
}

// Detrender removes the trend from the smoothed price using smooth values 0, 2, 4 and 6 bars ago.
func Detrender(smooth, smooth2, smooth4, smooth6, period1 fixedpoint.Value) fixedpoint.Value {
	return hilbert(smooth, smooth2, smooth4, smooth6, period1)
}

// Quadrature computes Q1 from detrender values 0, 2, 4 and 6 bars ago.
func Quadrature(detrender, detrender2, detrender4, detrender6, period1 fixedpoint.Value) fixedpoint.Value {
	return hilbert(detrender, detrender2, detrender4, detrender6, period1)
}

// PhaseAdvance advances a component by 90 degrees using its values 0, 1, 3 and 5 bars ago.
// Applied to I1 it yields jI, applied to Q1 it yields jQ.
func PhaseAdvance(x, x1, x3, x5, period1 fixedpoint.Value) fixedpoint.Value {
	return hilbert(x, x1, x3, x5, period1)
}

func SmoothI2(i1, jq, i21 fixedpoint.Value) fixedpoint.Value {
	return alpha02.Mul(i1.Sub(jq)).Add(alpha08.Mul(i21))
}

func SmoothQ2(q1, ji, q21 fixedpoint.Value) fixedpoint.Value {
	return alpha02.Mul(q1.Add(ji)).Add(alpha08.Mul(q21))
}

// Real is the smoothed dot product of the current and previous phasor.
func Real(i2, i21, q2, q21, re1 fixedpoint.Value) fixedpoint.Value {
	return alpha02.Mul(i2.Mul(i21).Add(q2.Mul(q21))).Add(alpha08.Mul(re1))
}

// Imaginary is the smoothed cross product of the current and previous phasor.
func Imaginary(i2, q2, i21, q21, im1 fixedpoint.Value) fixedpoint.Value {
	return alpha02.Mul(i2.Mul(q21).Sub(q2.Mul(i21))).Add(alpha08.Mul(im1))
}

// ClampPeriod limits period to [0.67, 1.5] times the previous period and then to [MinPeriod, MaxPeriod].
func ClampPeriod(period, period1 fixedpoint.Value) fixedpoint.Value {
	if upper := periodCeilRatio.Mul(period1); period.Compare(upper) > 0 {
		period = upper
	}
	if lower := periodFloorRatio.Mul(period1); period.Compare(lower) < 0 {
		period = lower
	}
	if period.Compare(minPeriod) < 0 {
		period = minPeriod
	}
	if period.Compare(maxPeriod) > 0 {
		period = maxPeriod
	}
	return period
}

// Period measures the phase rotation between two bars, 360/atan(im/re) with
// the arc tangent in radians, and returns the clamped measurement together with
// its smoothed value. When im or re is zero the measurement is 0 before clamping.
func Period(im, re, period1 fixedpoint.Value) (inst, period fixedpoint.Value) {
	inst = fixedpoint.Zero
	if !im.IsZero() && !re.IsZero() {
		inst = fullCircle.Div(fixedpoint.Atan(im.Div(re)))
	}

	inst = ClampPeriod(inst, period1)
	period = alpha02.Mul(inst).Add(alpha08.Mul(period1))
	return inst, period
}

func SmoothPeriod(period, smoothPeriod1 fixedpoint.Value) fixedpoint.Value {
	return smoothPeriodAlpha.Mul(period).Add(smoothPeriodDecay.Mul(smoothPeriod1))
}

// Q3 is the quadrature component of the smoothed price used by the signal to noise ratio.
func Q3(smooth, smooth2, smoothPeriod fixedpoint.Value) fixedpoint.Value {
	return half.Mul(smooth.Sub(smooth2)).Mul(q3Slope.Mul(smoothPeriod).Add(q3Offset))
}

// HalfCycle is ceil(smoothPeriod / 2), the number of Q3 values summed into I3.
func HalfCycle(smoothPeriod fixedpoint.Value) int {
	n := int(smoothPeriod.Div(fixedpoint.Two).Ceil().Int64())
	if n < 1 {
		n = 1
	}
	return n
}

// InPhase3 sums the current Q3 with the previous HalfCycle-1 values and scales
// the sum by 1.57 / (smoothPeriod / 2). history holds the previous Q3 values,
// newest first.
func InPhase3(q3 fixedpoint.Value, history func(lag int) fixedpoint.Value, smoothPeriod fixedpoint.Value) fixedpoint.Value {
	sum := q3
	for lag := 0; lag < HalfCycle(smoothPeriod)-1; lag++ {
		sum = sum.Add(history(lag))
	}
	return i3Gain.Mul(sum).Div(smoothPeriod.Div(fixedpoint.Two))
}

// SNR converts the signal and noise power ratio to decibels and smooths it.
// It is 0 when either power is 0.
func SNR(signal, noise, snr1 fixedpoint.Value) fixedpoint.Value {
	if signal.IsZero() || noise.IsZero() {
		return fixedpoint.Zero
	}

	db := fixedpoint.Ten.Mul(fixedpoint.Ln(signal.Div(noise))).Div(ln10)
	return snrAlpha.Mul(db).Add(snrDecay.Mul(snr1))
}
