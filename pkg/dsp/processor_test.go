package dsp

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

func sinePrices(n, period int) []fixedpoint.Value {
	prices := make([]fixedpoint.Value, n)
	for i := range prices {
		prices[i] = fixedpoint.NewFromFloat(100 + 10*math.Sin(2*math.Pi*float64(i)/float64(period)))
	}
	return prices
}

func TestProcessor_FirstBar(t *testing.T) {
	p := NewProcessor()
	c := p.Update(fixedpoint.NewFromInt(100))

	assert.Equal(t, "40", c.Smooth.String())
	assert.Equal(t, "6", c.InstPeriod.String())
	assert.Equal(t, "1.2", c.Period.String())
	assert.Equal(t, "0.396", c.SmoothPeriod.String())
	assert.True(t, c.I1.IsZero())
	assert.Equal(t, 1, p.Bars())
	assert.Equal(t, c, p.Last())
}

func TestProcessor_HistoriesAdvanceTogether(t *testing.T) {
	p := NewProcessor()
	c1 := p.Update(fixedpoint.NewFromInt(10))
	c2 := p.Update(fixedpoint.NewFromInt(20))

	assert.Equal(t, c2.Price, p.Price(0))
	assert.Equal(t, c1.Price, p.Price(1))
	assert.Equal(t, c2.Smooth, p.Smooth(0))
	assert.Equal(t, c1.Smooth, p.Smooth(1))
	assert.Equal(t, c2.Period, p.Period(0))
	assert.Equal(t, c1.Period, p.Period(1))
	assert.Equal(t, c2.SmoothPeriod, p.SmoothPeriod(0))
	assert.Equal(t, c2.Re, p.Re(0))
	assert.Equal(t, c2.Im, p.Im(0))
	assert.True(t, p.Period(2).IsZero(), "lags beyond the history are zero")
	assert.True(t, p.Q3(0).IsZero(), "no q3 history without the option")
}

func TestProcessor_ConstantPrice(t *testing.T) {
	price := fixedpoint.NewFromInt(42)
	p := NewProcessor()

	for i := 0; i < 40; i++ {
		c := p.Update(price)
		if i >= 3 {
			assert.Equal(t, "42", c.Smooth.String(), "bar %d", i)
		}
		if i >= 9 {
			assert.True(t, c.Detrender.IsZero(), "bar %d", i)
		}
	}
}

func TestProcessor_Deterministic(t *testing.T) {
	prices := sinePrices(200, 20)
	a, b := NewProcessor(WithQ3History()), NewProcessor(WithQ3History())
	for _, price := range prices {
		assert.Equal(t, a.Update(price), b.Update(price))
	}
}

func TestProcessor_InstPeriodBounds(t *testing.T) {
	p := NewProcessor(WithQ3History())
	for i, price := range sinePrices(300, 20) {
		c := p.Update(price)
		assert.GreaterOrEqual(t, c.InstPeriod.Float64(), float64(MinPeriod), "bar %d", i)
		assert.LessOrEqual(t, c.InstPeriod.Float64(), float64(MaxPeriod), "bar %d", i)
		assert.LessOrEqual(t, c.Period.Float64(), float64(MaxPeriod), "bar %d", i)
	}
}

func TestProcessor_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("instantaneous period stays in range", prop.ForAll(
		func(prices []float64) bool {
			p := NewProcessor(WithQ3History())
			for _, price := range prices {
				c := p.Update(fixedpoint.NewFromFloat(price))
				if c.InstPeriod.Float64() < MinPeriod || c.InstPeriod.Float64() > MaxPeriod {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(1, 1000)),
	))

	properties.Property("bars counts every update", prop.ForAll(
		func(prices []float64) bool {
			p := NewProcessor()
			for _, price := range prices {
				p.Update(fixedpoint.NewFromFloat(price))
			}
			return p.Bars() == len(prices)
		},
		gen.SliceOf(gen.Float64Range(1, 1000)),
	))

	properties.TestingRun(t)
}

var tracePrices = []int64{100, 102, 105, 103, 99, 96, 98, 104, 108, 106, 101, 97, 95, 99, 104, 107, 105, 100, 96, 98}

func TestProcessor_Trajectory(t *testing.T) {
	tests := []struct {
		i1, q1, re, im, period float64
	}{
		{0, 0.1079437882, 0, 0, 1.2},
		{0, 0.2600545763, 0.0003018103, -0.0000358230, 2.16},
		{0, 2.3578189363, 0.0076921355, 0.0003601282, 2.928},
		{2.07792, 4.6980007236, 0.1515751374, 0.0281805324, 3.5424},
		{4.2909048, 11.9760408931, 1.1767593162, 0.0419116931, 4.03392},
		{22.45285224, 18.5808733582, 6.8422667672, 2.1817538533, 4.437312},
		{38.559377304, 5.5935209469, 26.6214162197, 8.4024778683, 4.8810432},
		{32.3307137664, -8.0752806142, 68.0550229775, 16.5205192100, 5.36914752},
		{23.7402864590, -14.5610116093, 125.8820025695, 34.0438953498, 5.906062272},
		{9.4602705856, -16.7474532063, 181.7313753023, 53.0946900328, 6.4966684992},
		{0.5153319990, -9.0238740323, 218.5243270669, 62.8884712105, 7.1463353491},
		{-0.9602577322, -1.9645262433, 231.1026162003, 65.7189435124, 7.8609688840},
		{0.7278484448, 1.9228693018, 221.4399849689, 60.1975333637, 8.6470657724},
		{3.5064669816, 1.4628220667, 197.8920418019, 50.2334631310, 9.5117723497},
		{3.4865360811, -2.7542650677, 170.5115670475, 40.4191239867, 10.4629495846},
		{0.3692573046, -5.6039269919, 145.5352557387, 32.2664377539, 11.5092445431},
		{-3.2341919976, -4.5708120796, 125.2472564582, 26.5795807203, 12.6601689974},
		{-4.9894542189, 0.4981328833, 108.2595961369, 22.9568490280, 13.9261858972},
		{-2.9424310297, 6.8522766271, 91.3646273128, 20.3176522834, 15.3188044869},
		{1.7809470200, 8.4955709565, 74.3897480967, 18.0496458829, 16.8506849356},
	}

	p := NewProcessor()
	for i, price := range tracePrices {
		c := p.Update(fixedpoint.NewFromInt(price))
		want := tests[i]
		assert.InDelta(t, want.i1, c.I1.Float64(), 1e-6, "i1 at bar %d", i)
		assert.InDelta(t, want.q1, c.Q1.Float64(), 1e-6, "q1 at bar %d", i)
		assert.InDelta(t, want.re, c.Re.Float64(), 1e-6, "re at bar %d", i)
		assert.InDelta(t, want.im, c.Im.Float64(), 1e-6, "im at bar %d", i)
		assert.InDelta(t, want.period, c.Period.Float64(), 1e-6, "period at bar %d", i)
	}
}

func TestProcessor_SinePeriod(t *testing.T) {
	p := NewProcessor()

	periods := map[int]float64{21: 20.3893287720, 40: 49.2369905892}
	smoothPeriods := map[int]float64{21: 17.2117648251, 40: 48.4980799037}
	for i, price := range sinePrices(41, 20) {
		c := p.Update(price)
		if want, ok := periods[i]; ok {
			assert.InDelta(t, want, c.Period.Float64(), 1e-6, "period at bar %d", i)
			assert.InDelta(t, smoothPeriods[i], c.SmoothPeriod.Float64(), 1e-6, "smooth period at bar %d", i)
		}
	}
}
