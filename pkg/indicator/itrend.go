package indicator

import (
	"github.com/c9s/cyclekit/pkg/cross"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/window"
)

// instantaneous trendline warm-up, in bars
const itrendWarmUp = 7

var itrendAlpha = fixedpoint.MustNewFromString("0.07")

// InstantaneousTrendlineFilter is Ehlers' instantaneous trendline. During the
// first bars it is a 1-2-1 FIR of the price; afterwards a two pole recursive
// filter with alpha 0.07. The trigger is twice the filter minus the filter
// two bars ago.
type InstantaneousTrendlineFilter struct {
	ResultUpdater

	Source types.Source

	// coefficients of price, price1, price2, filter1 and filter2
	a0, a1, a2, b1, b2 fixedpoint.Value

	bars   int
	price  *window.Window[fixedpoint.Value]
	filter *window.Window[fixedpoint.Value]

	tracker cross.Tracker
}

func NewInstantaneousTrendlineFilter() *InstantaneousTrendlineFilter {
	alpha := itrendAlpha
	alpha2 := alpha.Mul(alpha)
	oneMinusAlpha := fixedpoint.One.Sub(alpha)

	return &InstantaneousTrendlineFilter{
		Source: types.SourceClose,
		a0:     alpha.Sub(alpha2.Div(fixedpoint.Four)),
		a1:     half.Mul(alpha2),
		a2:     alpha.Sub(fixedpoint.MustNewFromString("0.75").Mul(alpha2)),
		b1:     fixedpoint.Two.Mul(oneMinusAlpha),
		b2:     oneMinusAlpha.Mul(oneMinusAlpha),
		price:  window.New(2, fixedpoint.Zero),
		filter: window.New(2, fixedpoint.Zero),
	}
}

func (inc *InstantaneousTrendlineFilter) Update(price fixedpoint.Value) ResultSet {
	inc.bars++

	price1, price2 := inc.price.Last(0), inc.price.Last(1)
	filter1, filter2 := inc.filter.Last(0), inc.filter.Last(1)

	var filter fixedpoint.Value
	if inc.bars < itrendWarmUp {
		filter = price.Add(fixedpoint.Two.Mul(price1)).Add(price2).Div(fixedpoint.Four)
	} else {
		filter = inc.a0.Mul(price).
			Add(inc.a1.Mul(price1)).
			Sub(inc.a2.Mul(price2)).
			Add(inc.b1.Mul(filter1)).
			Sub(inc.b2.Mul(filter2))
	}

	trigger := fixedpoint.Two.Mul(filter).Sub(filter2)

	inc.price.Push(price)
	inc.filter.Push(filter)

	r := ResultSet{
		KeyFilter:   filter.ToQuantity(),
		KeyTrigger:  trigger.ToQuantity(),
		KeyCross:    inc.tracker.Update(trigger, filter).Value(),
		KeyStrength: trigger.Sub(filter).Div(filter).ToPercent(),
	}
	r.putTrend(&inc.tracker)
	inc.EmitUpdate(r)
	return r
}

func (inc *InstantaneousTrendlineFilter) PushK(k types.KLine) ResultSet {
	return inc.Update(k.Source(sourceOrClose(inc.Source)))
}

func (inc *InstantaneousTrendlineFilter) BindK(target types.KLineClosedEmitter) {
	bindK(target, inc)
}

func (inc *InstantaneousTrendlineFilter) Tracker() *cross.Tracker {
	return &inc.tracker
}
