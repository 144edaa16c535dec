package indicator

import (
	"github.com/c9s/cyclekit/pkg/cross"
	"github.com/c9s/cyclekit/pkg/dsp"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/window"
)

var (
	DefaultFastLimit = fixedpoint.MustNewFromString("0.5")
	DefaultSlowLimit = fixedpoint.MustNewFromString("0.05")

	half = fixedpoint.MustNewFromString("0.5")
)

// AdaptiveMovingAverage is the MESA adaptive moving average (MAMA) and its
// following average (FAMA). The smoothing factor follows the rate of change
// of the cycle phase measured by the Hilbert transform.
//
// Results: mama, fama, trend, trend_since and strength, the percent
// difference of mama over fama.
type AdaptiveMovingAverage struct {
	ResultUpdater

	Source types.Source

	fastLimit fixedpoint.Value
	slowLimit fixedpoint.Value

	dsp   *dsp.Processor
	phase *window.Window[fixedpoint.Value]
	mama  *window.Window[fixedpoint.Value]
	fama  *window.Window[fixedpoint.Value]

	tracker cross.Tracker
}

// NewAdaptiveMovingAverage requires 0 < slowLimit <= fastLimit <= 1.
func NewAdaptiveMovingAverage(fastLimit, slowLimit fixedpoint.Value) (*AdaptiveMovingAverage, error) {
	if slowLimit.Sign() <= 0 || fastLimit.Compare(slowLimit) < 0 || fastLimit.Compare(fixedpoint.One) > 0 {
		return nil, invalidParameter("adaptive moving average limits fast=%s slow=%s", fastLimit, slowLimit)
	}

	return &AdaptiveMovingAverage{
		Source:    types.SourceClose,
		fastLimit: fastLimit,
		slowLimit: slowLimit,
		dsp:       dsp.NewProcessor(),
		phase:     window.New(2, fixedpoint.Zero),
		mama:      window.New(2, fixedpoint.Zero),
		fama:      window.New(2, fixedpoint.Zero),
	}, nil
}

func (inc *AdaptiveMovingAverage) Update(price fixedpoint.Value) ResultSet {
	c := inc.dsp.Update(price)

	phase := fixedpoint.Zero
	if !c.I1.IsZero() {
		phase = fixedpoint.Atan(c.Q1.Div(c.I1))
	}

	deltaPhase := inc.phase.Last(0).Sub(phase)
	if deltaPhase.Compare(fixedpoint.One) < 0 {
		deltaPhase = fixedpoint.One
	}

	alpha := inc.fastLimit.Div(deltaPhase)
	alpha = fixedpoint.Max(alpha, inc.slowLimit)
	alpha = fixedpoint.Min(alpha, inc.fastLimit)

	mama := alpha.Mul(price).Add(fixedpoint.One.Sub(alpha).Mul(inc.mama.Last(0)))

	halfAlpha := half.Mul(alpha)
	fama := halfAlpha.Mul(mama).Add(fixedpoint.One.Sub(halfAlpha).Mul(inc.fama.Last(0)))

	inc.phase.Push(phase)
	inc.mama.Push(mama)
	inc.fama.Push(fama)

	inc.tracker.Update(mama, fama)

	r := ResultSet{
		KeyMama:     mama.ToQuantity(),
		KeyFama:     fama.ToQuantity(),
		KeyStrength: mama.Sub(fama).Div(fama).ToPercent(),
	}
	r.putTrend(&inc.tracker)
	inc.EmitUpdate(r)
	return r
}

func (inc *AdaptiveMovingAverage) PushK(k types.KLine) ResultSet {
	return inc.Update(k.Source(sourceOrClose(inc.Source)))
}

func (inc *AdaptiveMovingAverage) BindK(target types.KLineClosedEmitter) {
	bindK(target, inc)
}

// Tracker exposes the mama/fama cross state, for example to subscribe to OnCross.
func (inc *AdaptiveMovingAverage) Tracker() *cross.Tracker {
	return &inc.tracker
}
