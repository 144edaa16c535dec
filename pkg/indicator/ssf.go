package indicator

import (
	"math"

	"github.com/c9s/cyclekit/pkg/cross"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/window"
)

const (
	DefaultSuperSmootherPeriod = 10
	DefaultSuperSmootherPoles  = 2
)

// twoPoleCoefficients returns c1, c2 and c3 of a two pole filter with the
// pole exp(-1.414*pi/period) and the resonance term 2*a*cos(angle).
func twoPoleCoefficients(period int, angle float64) (c1, c2, c3 fixedpoint.Value) {
	a0 := math.Exp(-1.414 * math.Pi / float64(period))
	b0 := 2. * a0 * math.Cos(angle)

	c2 = fixedpoint.NewFromFloat(b0)
	c3 = fixedpoint.NewFromFloat(-a0 * a0)
	c1 = fixedpoint.One.Sub(c2).Sub(c3)
	return c1, c2, c3
}

// Refer: https://easylanguagemastery.com/indicators/predictive-indicators/
// Refer: https://github.com/twopirllc/pandas-ta/blob/main/pandas_ta/overlap/ssf.py
// Ehler's Super Smoother Filter
//
// John F. Ehlers's solution to reduce lag and remove aliasing noise with his
// research in aerospace analog filter design. This indicator comes with two
// versions determined by the keyword poles. By default, it uses two poles but
// there is an option for three poles. Since SSF is a (Resursive) Digital Filter,
// the number of poles determine how many prior recursive SSF bars to include in
// the design of the filter. So two poles uses two prior SSF bars and three poles
// uses three prior SSF bars for their filter calculations.
//
// The trigger is the filter two bars ago; results are filter, trigger, cross,
// trend, trend_since and strength.
type SuperSmootherFilter struct {
	ResultUpdater

	Source types.Source
	Poles  int

	c1, c2, c3, c4 fixedpoint.Value

	price  *window.Window[fixedpoint.Value]
	filter *window.Window[fixedpoint.Value]

	tracker cross.Tracker
}

func NewSuperSmootherFilter(period, poles int) (*SuperSmootherFilter, error) {
	if period < 2 {
		return nil, invalidParameter("super smoother period %d", period)
	}

	inc := &SuperSmootherFilter{
		Source: types.SourceClose,
		Poles:  poles,
		price:  window.New(1, fixedpoint.Zero),
		filter: window.New(3, fixedpoint.Zero),
	}

	switch poles {
	case 2:
		inc.c1, inc.c2, inc.c3 = twoPoleCoefficients(period, 2.*1.414*math.Pi/float64(period))
		inc.c4 = fixedpoint.Zero

	case 3:
		x := math.Pi / float64(period)
		a0 := math.Exp(-x)
		b0 := 2. * a0 * math.Cos(math.Sqrt(3.)*x)
		c0 := a0 * a0

		inc.c4 = fixedpoint.NewFromFloat(c0 * c0)
		inc.c3 = fixedpoint.NewFromFloat(-c0 * (1. + b0))
		inc.c2 = fixedpoint.NewFromFloat(c0 + b0)
		inc.c1 = fixedpoint.One.Sub(inc.c2).Sub(inc.c3).Sub(inc.c4)

	default:
		return nil, invalidParameter("super smoother poles %d, want 2 or 3", poles)
	}

	return inc, nil
}

func (inc *SuperSmootherFilter) Update(price fixedpoint.Value) ResultSet {
	filter1, filter2, filter3 := inc.filter.Last(0), inc.filter.Last(1), inc.filter.Last(2)

	filter := inc.c1.Mul(price.Add(inc.price.Last(0))).Div(fixedpoint.Two).
		Add(inc.c2.Mul(filter1)).
		Add(inc.c3.Mul(filter2)).
		Add(inc.c4.Mul(filter3))
	trigger := filter2

	inc.price.Push(price)
	inc.filter.Push(filter)

	r := ResultSet{
		KeyFilter:   filter.ToQuantity(),
		KeyTrigger:  trigger.ToQuantity(),
		KeyCross:    inc.tracker.Update(filter, trigger).Value(),
		KeyStrength: filter.Sub(trigger).Div(trigger).ToPercent(),
	}
	r.putTrend(&inc.tracker)
	inc.EmitUpdate(r)
	return r
}

func (inc *SuperSmootherFilter) PushK(k types.KLine) ResultSet {
	return inc.Update(k.Source(sourceOrClose(inc.Source)))
}

func (inc *SuperSmootherFilter) BindK(target types.KLineClosedEmitter) {
	bindK(target, inc)
}

func (inc *SuperSmootherFilter) Tracker() *cross.Tracker {
	return &inc.tracker
}
