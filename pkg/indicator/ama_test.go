package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/cyclekit/pkg/cross"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
)

func TestNewAdaptiveMovingAverage_InvalidLimits(t *testing.T) {
	tests := []struct {
		name       string
		fast, slow string
	}{
		{"zero slow limit", "0.5", "0"},
		{"slow above fast", "0.05", "0.5"},
		{"fast above one", "1.5", "0.05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAdaptiveMovingAverage(fixedpoint.MustNewFromString(tt.fast), fixedpoint.MustNewFromString(tt.slow))
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestAdaptiveMovingAverage_ConstantPrice(t *testing.T) {
	price := fixedpoint.NewFromInt(100)
	ama, err := NewAdaptiveMovingAverage(DefaultFastLimit, DefaultSlowLimit)
	require.NoError(t, err)

	var r ResultSet
	for i := 0; i < 200; i++ {
		r = ama.Update(price)
		assert.True(t, r[KeyTrend].IsZero(), "no cross at bar %d", i)
		assert.Equal(t, int64(i+1), r[KeyTrendSince].Int64(), "trend_since at bar %d", i)
	}

	assert.True(t, r[KeyMama].Eq(price), "mama %s", r[KeyMama])
	assert.True(t, r[KeyFama].Eq(price), "fama %s", r[KeyFama])
	assert.True(t, r[KeyStrength].IsZero(), "strength %s", r[KeyStrength])
}

func TestAdaptiveMovingAverage_Keys(t *testing.T) {
	ama, err := NewAdaptiveMovingAverage(DefaultFastLimit, DefaultSlowLimit)
	require.NoError(t, err)

	r := ama.Update(fixedpoint.NewFromInt(10))
	assert.Equal(t, []string{"fama", "mama", "strength", "trend", "trend_since"}, r.Keys())
}

func TestAdaptiveMovingAverage_Deterministic(t *testing.T) {
	a, _ := NewAdaptiveMovingAverage(DefaultFastLimit, DefaultSlowLimit)
	b, _ := NewAdaptiveMovingAverage(DefaultFastLimit, DefaultSlowLimit)

	for _, p := range sinePrices(150, 20) {
		assert.Equal(t, a.Update(p), b.Update(p))
	}
}

func TestAdaptiveMovingAverage_BindK(t *testing.T) {
	stream := types.NewStandardStream()
	ama, err := NewAdaptiveMovingAverage(DefaultFastLimit, DefaultSlowLimit)
	require.NoError(t, err)
	ama.BindK(&stream)

	var updates int
	ama.OnUpdate(func(r ResultSet) {
		updates++
		assert.True(t, isTrend(r[KeyTrend]))
	})

	var crosses []cross.Trend
	ama.Tracker().OnCross(func(c cross.Type, trend cross.Trend) {
		crosses = append(crosses, trend)
	})

	for _, k := range buildKLines(sinePrices(200, 20)) {
		stream.EmitKLineClosed(k)
	}

	assert.Equal(t, 200, updates)
	assert.NotEmpty(t, crosses, "a sine wave crosses mama and fama")
}

func TestAdaptiveMovingAverage_Trajectory(t *testing.T) {
	tests := []struct {
		mama, fama float64
	}{
		{50.000000, 12.500000},
		{76.000000, 28.375000},
		{90.500000, 43.906250},
		{96.750000, 57.117188},
		{97.875000, 67.306641},
		{96.937500, 74.714355},
		{97.468750, 80.402954},
		{100.734375, 85.485809},
		{104.367188, 90.206154},
		{105.183594, 93.950514},
		{103.091797, 96.235835},
		{100.045898, 97.188351},
		{97.522949, 97.272000},
		{98.261475, 97.519369},
		// the phase moved by more than one radian, alpha drops below the fast limit
		{100.958598, 98.327593},
		{103.979299, 99.740519},
		{104.489650, 100.927802},
		{102.360869, 101.267548},
		{99.376478, 100.823922},
		{98.688239, 100.290001},
	}

	ama, err := NewAdaptiveMovingAverage(DefaultFastLimit, DefaultSlowLimit)
	require.NoError(t, err)

	var results []ResultSet
	for i, p := range tracePrices() {
		r := ama.Update(p)
		assert.InDelta(t, tests[i].mama, r[KeyMama].Float64(), 0.001, "mama at bar %d", i)
		assert.InDelta(t, tests[i].fama, r[KeyFama].Float64(), 0.001, "fama at bar %d", i)
		results = append(results, r)
	}

	assert.True(t, results[17][KeyTrend].IsZero())
	assert.Equal(t, int64(18), results[17][KeyTrendSince].Int64())
	assert.Equal(t, int64(-1), results[18][KeyTrend].Int64(), "mama crosses under fama")
	assert.True(t, results[18][KeyTrendSince].IsZero())
	assert.Equal(t, int64(1), results[19][KeyTrendSince].Int64())
}
