package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

func v(s string) fixedpoint.Value {
	return fixedpoint.MustNewFromString(s)
}

func TestSmooth(t *testing.T) {
	// (4*10 + 3*20 + 2*30 + 40) / 10
	assert.Equal(t, "20", Smooth(v("10"), v("20"), v("30"), v("40")).String())
	assert.Equal(t, "7", Smooth(v("7"), v("7"), v("7"), v("7")).String())
}

func TestHilbert_ConstantInput(t *testing.T) {
	x := v("123.456")
	assert.True(t, Detrender(x, x, x, x, v("15")).IsZero())
	assert.True(t, Quadrature(x, x, x, x, v("6")).IsZero())
}

func TestDetrender(t *testing.T) {
	// 0.0962 * 1 * (0.075 * 0 + 0.54)
	assert.Equal(t, "0.051948", Detrender(fixedpoint.One, fixedpoint.Zero, fixedpoint.Zero, fixedpoint.Zero, fixedpoint.Zero).String())
}

func TestClampPeriod(t *testing.T) {
	tests := []struct {
		name    string
		period  string
		period1 string
		want    string
	}{
		{name: "zero measurement rises to the floor", period: "0", period1: "0", want: "6"},
		{name: "inside every bound", period: "20", period1: "18", want: "20"},
		{name: "limited to 1.5 times the previous period", period: "40", period1: "20", want: "30"},
		{name: "limited to 0.67 times the previous period", period: "8", period1: "20", want: "13.4"},
		{name: "ceiling", period: "70", period1: "48", want: "50"},
		{name: "floor", period: "3", period1: "4", want: "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPeriod(v(tt.period), v(tt.period1)).String())
		})
	}
}

func TestPeriod_FirstBar(t *testing.T) {
	inst, period := Period(fixedpoint.Zero, fixedpoint.Zero, fixedpoint.Zero)
	assert.Equal(t, "6", inst.String())
	assert.Equal(t, "1.2", period.String())
}

func TestPeriod_Measurement(t *testing.T) {
	// atan(1) = pi/4, 360 / (pi/4) = 458.37, limited to 1.5 times the previous period
	inst, period := Period(fixedpoint.One, fixedpoint.One, v("20"))
	assert.Equal(t, "30", inst.String())
	assert.Equal(t, "22", period.String())

	// a negative rotation is limited to 0.67 times the previous period
	inst, _ = Period(fixedpoint.One.Neg(), fixedpoint.One, v("20"))
	assert.Equal(t, "13.4", inst.String())

	// 360 / atan(2000) = 229.23 inside the widest bounds is only limited by the ceiling
	inst, _ = Period(v("2000"), fixedpoint.One, v("200"))
	assert.Equal(t, "50", inst.String())
}

func TestSmoothPeriod(t *testing.T) {
	assert.Equal(t, "16.65", SmoothPeriod(v("20"), v("15")).String())
}

func TestHalfCycle(t *testing.T) {
	assert.Equal(t, 5, HalfCycle(v("10")))
	assert.Equal(t, 6, HalfCycle(v("10.2")))
	assert.Equal(t, 25, HalfCycle(v("50")))
	assert.Equal(t, 1, HalfCycle(fixedpoint.Zero))
}

func TestInPhase3(t *testing.T) {
	var lags []int
	history := func(lag int) fixedpoint.Value {
		lags = append(lags, lag)
		return fixedpoint.One
	}

	// five values including the current one, 1.57 * 5 / 5
	i3 := InPhase3(fixedpoint.One, history, v("10"))
	assert.Equal(t, "1.57", i3.String())
	assert.Equal(t, []int{0, 1, 2, 3}, lags)
}

func TestSNR(t *testing.T) {
	assert.True(t, SNR(fixedpoint.Zero, fixedpoint.One, v("5")).IsZero())
	assert.True(t, SNR(fixedpoint.One, fixedpoint.Zero, v("5")).IsZero())

	// ten times the power is 10 dB, 0.33 * 10 + 0.67 * 0
	assert.InDelta(t, 3.3, SNR(fixedpoint.Ten, fixedpoint.One, fixedpoint.Zero).Float64(), 1e-9)
	assert.InDelta(t, 0.67, SNR(fixedpoint.One, fixedpoint.One, fixedpoint.One).Float64(), 1e-9)
}
