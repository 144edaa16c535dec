package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCointegration_InvalidPeriod(t *testing.T) {
	_, err := NewCointegration(2)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCointegration_TooFewObservations(t *testing.T) {
	inc, err := NewCointegration(50)
	require.NoError(t, err)

	assert.Empty(t, inc.Update(1, 2))
	assert.Empty(t, inc.Update(2, 4))
	assert.NotEmpty(t, inc.Update(3, 7))
}

func TestCointegration_Cointegrated(t *testing.T) {
	inc, err := NewCointegration(100)
	require.NoError(t, err)

	var r ResultSet
	for i := 0; i < 100; i++ {
		x := 100 + 0.5*float64(i)
		y := 2*x + math.Sin(1.3*float64(i))
		r = inc.Update(x, y)
	}

	assert.Greater(t, r[KeyPearson].Float64(), 0.99)
	assert.InDelta(t, r[KeyPearson].Float64(), r[KeyCorrelation].Float64(), 1e-9)
	assert.Less(t, r[KeyEngleTStat].Float64(), -3.)
	assert.Less(t, r[KeyEnglePValue].Float64(), 0.05)
	assert.Equal(t, "1", r[KeyIsCoint].String())
	assert.InDelta(t, 0., r[KeySpreadStd].Float64(), 1.5)
}

func TestEngleGrangerPValue(t *testing.T) {
	assert.Equal(t, 1., engleGrangerPValue(1))
	assert.Equal(t, 0., engleGrangerPValue(-20))

	p1 := engleGrangerPValue(-2)
	p2 := engleGrangerPValue(-4)
	assert.Greater(t, p1, p2)
	assert.Less(t, p2, 0.05)
}
