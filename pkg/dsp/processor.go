// Package dsp implements the Ehlers Hilbert transform cycle measurement as a
// streaming processor over decimal prices.
package dsp

import (
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/window"
)

const (
	priceHistory     = 4
	hilbertHistory   = 7
	componentHistory = 6
	phasorHistory    = 2

	// Q3History holds enough Q3 values for the longest half cycle.
	Q3History = MaxPeriod / 2
)

// Cycle is the state of every pipeline stage after one price.
type Cycle struct {
	Price        fixedpoint.Value
	Smooth       fixedpoint.Value
	Detrender    fixedpoint.Value
	I1           fixedpoint.Value
	Q1           fixedpoint.Value
	JI           fixedpoint.Value
	JQ           fixedpoint.Value
	I2           fixedpoint.Value
	Q2           fixedpoint.Value
	Re           fixedpoint.Value
	Im           fixedpoint.Value
	InstPeriod   fixedpoint.Value
	Period       fixedpoint.Value
	SmoothPeriod fixedpoint.Value

	// Q3 and I3 are only computed when the processor keeps Q3 history.
	Q3 fixedpoint.Value
	I3 fixedpoint.Value
}

type Option func(p *Processor)

// WithQ3History enables the Q3 and I3 stages used by the signal to noise ratio.
func WithQ3History() Option {
	return func(p *Processor) {
		p.q3 = window.New(Q3History, fixedpoint.Zero)
	}
}

// Processor runs the cycle pipeline one price at a time. Every stage history
// starts at zero and all of them advance together at the end of Update, so
// inside a step Last(0) of any history is the previous bar.
type Processor struct {
	price        *window.Window[fixedpoint.Value]
	smooth       *window.Window[fixedpoint.Value]
	detrender    *window.Window[fixedpoint.Value]
	i1           *window.Window[fixedpoint.Value]
	q1           *window.Window[fixedpoint.Value]
	i2           *window.Window[fixedpoint.Value]
	q2           *window.Window[fixedpoint.Value]
	re           *window.Window[fixedpoint.Value]
	im           *window.Window[fixedpoint.Value]
	period       *window.Window[fixedpoint.Value]
	smoothPeriod *window.Window[fixedpoint.Value]
	q3           *window.Window[fixedpoint.Value]

	last Cycle
}

func newHistory(capacity int) *window.Window[fixedpoint.Value] {
	return window.New(capacity, fixedpoint.Zero)
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		price:        newHistory(priceHistory),
		smooth:       newHistory(hilbertHistory),
		detrender:    newHistory(hilbertHistory),
		i1:           newHistory(componentHistory),
		q1:           newHistory(componentHistory),
		i2:           newHistory(phasorHistory),
		q2:           newHistory(phasorHistory),
		re:           newHistory(phasorHistory),
		im:           newHistory(phasorHistory),
		period:       newHistory(phasorHistory),
		smoothPeriod: newHistory(phasorHistory),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Update feeds one price through the pipeline and returns the new stage values.
func (p *Processor) Update(price fixedpoint.Value) Cycle {
	period1 := p.period.Last(0)

	c := Cycle{Price: price}
	c.Smooth = Smooth(price, p.price.Last(0), p.price.Last(1), p.price.Last(2))
	c.Detrender = Detrender(c.Smooth, p.smooth.Last(1), p.smooth.Last(3), p.smooth.Last(5), period1)
	c.Q1 = Quadrature(c.Detrender, p.detrender.Last(1), p.detrender.Last(3), p.detrender.Last(5), period1)

	// I1 is the detrender delayed by three bars
	c.I1 = p.detrender.Last(2)

	c.JI = PhaseAdvance(c.I1, p.i1.Last(0), p.i1.Last(2), p.i1.Last(4), period1)
	c.JQ = PhaseAdvance(c.Q1, p.q1.Last(0), p.q1.Last(2), p.q1.Last(4), period1)

	i21, q21 := p.i2.Last(0), p.q2.Last(0)
	c.I2 = SmoothI2(c.I1, c.JQ, i21)
	c.Q2 = SmoothQ2(c.Q1, c.JI, q21)

	c.Re = Real(c.I2, i21, c.Q2, q21, p.re.Last(0))
	c.Im = Imaginary(c.I2, c.Q2, i21, q21, p.im.Last(0))

	c.InstPeriod, c.Period = Period(c.Im, c.Re, period1)
	c.SmoothPeriod = SmoothPeriod(c.Period, p.smoothPeriod.Last(0))

	if p.q3 != nil {
		c.Q3 = Q3(c.Smooth, p.smooth.Last(1), c.SmoothPeriod)
		c.I3 = InPhase3(c.Q3, p.q3.Last, c.SmoothPeriod)
	}

	p.advance(c)
	return c
}

func (p *Processor) advance(c Cycle) {
	p.price.Push(c.Price)
	p.smooth.Push(c.Smooth)
	p.detrender.Push(c.Detrender)
	p.i1.Push(c.I1)
	p.q1.Push(c.Q1)
	p.i2.Push(c.I2)
	p.q2.Push(c.Q2)
	p.re.Push(c.Re)
	p.im.Push(c.Im)
	p.period.Push(c.Period)
	p.smoothPeriod.Push(c.SmoothPeriod)
	if p.q3 != nil {
		p.q3.Push(c.Q3)
	}
	p.last = c
}

// Last returns the cycle produced by the most recent Update.
func (p *Processor) Last() Cycle {
	return p.last
}

// Bars returns the number of prices fed so far.
func (p *Processor) Bars() int {
	return p.price.Pushes()
}

func (p *Processor) Price(lag int) fixedpoint.Value        { return p.price.Last(lag) }
func (p *Processor) Smooth(lag int) fixedpoint.Value       { return p.smooth.Last(lag) }
func (p *Processor) Detrender(lag int) fixedpoint.Value    { return p.detrender.Last(lag) }
func (p *Processor) I1(lag int) fixedpoint.Value           { return p.i1.Last(lag) }
func (p *Processor) Q1(lag int) fixedpoint.Value           { return p.q1.Last(lag) }
func (p *Processor) I2(lag int) fixedpoint.Value           { return p.i2.Last(lag) }
func (p *Processor) Q2(lag int) fixedpoint.Value           { return p.q2.Last(lag) }
func (p *Processor) Re(lag int) fixedpoint.Value           { return p.re.Last(lag) }
func (p *Processor) Im(lag int) fixedpoint.Value           { return p.im.Last(lag) }
func (p *Processor) Period(lag int) fixedpoint.Value       { return p.period.Last(lag) }
func (p *Processor) SmoothPeriod(lag int) fixedpoint.Value { return p.smoothPeriod.Last(lag) }

// Q3 returns Zero when the processor was built without WithQ3History.
func (p *Processor) Q3(lag int) fixedpoint.Value {
	if p.q3 == nil {
		return fixedpoint.Zero
	}
	return p.q3.Last(lag)
}
