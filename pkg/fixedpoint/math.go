package fixedpoint

import "math"

// The functions below leave the decimal domain for exactly one float64
// operation and convert the result back immediately.

// Atan returns the arc tangent of v in radians.
func Atan(v Value) Value {
	return NewFromFloat(math.Atan(v.Float64()))
}

func Sin(v Value) Value {
	return NewFromFloat(math.Sin(v.Float64()))
}

func Cos(v Value) Value {
	return NewFromFloat(math.Cos(v.Float64()))
}

func Exp(v Value) Value {
	return NewFromFloat(math.Exp(v.Float64()))
}

// Sqrt returns Zero for negative input.
func Sqrt(v Value) Value {
	if v.Sign() < 0 {
		return Zero
	}
	return NewFromFloat(math.Sqrt(v.Float64()))
}

// Ln returns Zero for non-positive input.
func Ln(v Value) Value {
	if v.Sign() <= 0 {
		return Zero
	}
	return NewFromFloat(math.Log(v.Float64()))
}

func Min(a, b Value) Value {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

func Max(a, b Value) Value {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}
