package indicator

import (
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
)

// ChangePercent reports the percent change of a value against the previous
// one. The first value, and any value following a zero, reports 0.
type ChangePercent struct {
	ResultUpdater

	Source types.Source

	prev    fixedpoint.Value
	started bool
}

func NewChangePercent() *ChangePercent {
	return &ChangePercent{Source: types.SourceClose}
}

func (inc *ChangePercent) Update(curr fixedpoint.Value) fixedpoint.Value {
	prev := inc.prev
	if !inc.started || prev.IsZero() {
		prev = curr
	}

	inc.prev = curr
	inc.started = true

	return curr.Div(prev).Sub(fixedpoint.One).ToPercent()
}

func (inc *ChangePercent) PushK(k types.KLine) ResultSet {
	r := ResultSet{
		KeyChangePercent: inc.Update(k.Source(sourceOrClose(inc.Source))),
	}
	inc.EmitUpdate(r)
	return r
}

func (inc *ChangePercent) BindK(target types.KLineClosedEmitter) {
	bindK(target, inc)
}
