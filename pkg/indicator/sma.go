package indicator

import (
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/window"
)

// SMA is a rolling simple moving average over a window pre-filled with a
// value, so the average is defined from the first update.
type SMA struct {
	values *window.Window[fixedpoint.Value]
	sum    fixedpoint.Value
	length fixedpoint.Value
}

func NewSMA(length int, fill fixedpoint.Value) *SMA {
	values := window.New(length, fill)
	return &SMA{
		values: values,
		sum:    fill.Mul(fixedpoint.NewFromInt(int64(values.Cap()))),
		length: fixedpoint.NewFromInt(int64(values.Cap())),
	}
}

func (s *SMA) Update(v fixedpoint.Value) fixedpoint.Value {
	evicted := s.values.Push(v)
	s.sum = s.sum.Add(v).Sub(evicted)
	return s.Last()
}

func (s *SMA) Last() fixedpoint.Value {
	return s.sum.Div(s.length)
}

// ExtremumIndex reports how many updates ago the highest (or lowest) value of
// the window was seen. Ties go to the newest value.
type ExtremumIndex struct {
	values  *window.Window[fixedpoint.Value]
	highest bool
}

func NewHighestIndex(length int, fill fixedpoint.Value) *ExtremumIndex {
	return &ExtremumIndex{values: window.New(length, fill), highest: true}
}

func NewLowestIndex(length int, fill fixedpoint.Value) *ExtremumIndex {
	return &ExtremumIndex{values: window.New(length, fill)}
}

func (e *ExtremumIndex) Update(v fixedpoint.Value) int {
	e.values.Push(v)

	index := 0
	best := e.values.Last(0)
	for lag := 1; lag < e.values.Cap(); lag++ {
		c := e.values.Last(lag).Compare(best)
		if (e.highest && c > 0) || (!e.highest && c < 0) {
			best = e.values.Last(lag)
			index = lag
		}
	}
	return index
}
