package indicator

import (
	"github.com/c9s/cyclekit/pkg/dsp"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/window"
)

var (
	noiseAlpha = fixedpoint.MustNewFromString("0.1")
	noiseDecay = fixedpoint.MustNewFromString("0.9")
	quarter    = fixedpoint.MustNewFromString("0.25")
)

// EnhancedSignalToNoiseRatio is Ehlers' enhanced SNR (Rocket Science for
// Traders, p87-88) in decibels. The signal is the power of the I3/Q3 phasor;
// the noise is the smoothed squared half range of the candle. Cycle mode
// trading should be avoided below 6 dB.
type EnhancedSignalToNoiseRatio struct {
	ResultUpdater

	Source types.Source

	dsp   *dsp.Processor
	noise *window.Window[fixedpoint.Value]
	snr   *window.Window[fixedpoint.Value]
}

func NewEnhancedSignalToNoiseRatio() *EnhancedSignalToNoiseRatio {
	return &EnhancedSignalToNoiseRatio{
		Source: types.SourceClose,
		dsp:    dsp.NewProcessor(dsp.WithQ3History()),
		noise:  window.New(1, fixedpoint.Zero),
		snr:    window.New(1, fixedpoint.Zero),
	}
}

func (inc *EnhancedSignalToNoiseRatio) Update(price, high, low fixedpoint.Value) ResultSet {
	c := inc.dsp.Update(price)

	signal := c.I3.Mul(c.I3).Add(c.Q3.Mul(c.Q3))

	spread := high.Sub(low)
	noise := noiseAlpha.Mul(spread.Mul(spread)).Mul(quarter).Add(noiseDecay.Mul(inc.noise.Last(0)))

	snr := dsp.SNR(signal, noise, inc.snr.Last(0))

	inc.noise.Push(noise)
	inc.snr.Push(snr)

	r := ResultSet{
		KeySNR: snr.ToQuantity(),
	}
	inc.EmitUpdate(r)
	return r
}

func (inc *EnhancedSignalToNoiseRatio) PushK(k types.KLine) ResultSet {
	return inc.Update(k.Source(sourceOrClose(inc.Source)), k.High, k.Low)
}

func (inc *EnhancedSignalToNoiseRatio) BindK(target types.KLineClosedEmitter) {
	bindK(target, inc)
}
