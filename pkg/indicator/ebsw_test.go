package indicator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

func TestNewEvenBetterSinewave_InvalidDuration(t *testing.T) {
	_, err := NewEvenBetterSinewave(4)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestEvenBetterSinewave_FirstBar(t *testing.T) {
	ebsw, err := NewEvenBetterSinewave(DefaultSinewaveDuration)
	require.NoError(t, err)

	// the first price is a full step from zero and a single filter value
	// normalizes to 1/sqrt(3)
	r := ebsw.Update(fixedpoint.NewFromInt(30000))
	assert.Equal(t, "0.577", r[KeySignal].String())
	assert.True(t, r[KeyUpperCross].IsZero())
	assert.True(t, r[KeyLowerCross].IsZero())
}

func TestEvenBetterSinewave_Trajectory(t *testing.T) {
	signals := []float64{
		0.577350, 0.729127, 0.885885, 0.971474, 0.996392,
		0.999222, 0.994895, 0.991078, 0.991421, 0.993619,
		0.993514, 0.989370, 0.981330, 0.974863, 0.981730,
		0.996360, 0.999924, 0.999483, 0.990215, 0.965065,
	}

	ebsw, err := NewEvenBetterSinewave(DefaultSinewaveDuration)
	require.NoError(t, err)

	for i, p := range tracePrices() {
		r := ebsw.Update(p)
		assert.InDelta(t, signals[i], r[KeySignal].Float64(), 0.001, "signal at bar %d", i)
		assert.True(t, r[KeyLowerCross].IsZero(), "lower cross at bar %d", i)
		if i == 2 {
			assert.Equal(t, int64(1), r[KeyUpperCross].Int64(), "the start-up step lifts the signal over 0.8")
		} else {
			assert.True(t, r[KeyUpperCross].IsZero(), "upper cross at bar %d", i)
		}
	}
}

func TestEvenBetterSinewave_Crosses(t *testing.T) {
	ebsw, err := NewEvenBetterSinewave(DefaultSinewaveDuration)
	require.NoError(t, err)

	var upper, lower int
	for _, p := range sinePrices(300, 20) {
		r := ebsw.Update(p)
		if !r[KeyUpperCross].IsZero() {
			upper++
		}
		if !r[KeyLowerCross].IsZero() {
			lower++
		}
	}

	assert.Greater(t, upper, 0)
	assert.Greater(t, lower, 0)
}

func TestEvenBetterSinewave_SignalBounded(t *testing.T) {
	properties := gopter.NewProperties(nil)
	one := fixedpoint.One

	properties.Property("signal stays within [-1, 1]", prop.ForAll(
		func(prices []float64) bool {
			ebsw, _ := NewEvenBetterSinewave(DefaultSinewaveDuration)
			for _, p := range prices {
				signal := ebsw.Update(fixedpoint.NewFromFloat(p))[KeySignal]
				if signal.Abs().Compare(one) > 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(1, 1000)),
	))

	properties.TestingRun(t)
}
