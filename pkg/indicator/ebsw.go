package indicator

import (
	"math"

	"github.com/c9s/cyclekit/pkg/cross"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/window"
)

const DefaultSinewaveDuration = 40

var (
	sinewaveUpper = fixedpoint.MustNewFromString("0.8")
	sinewaveLower = fixedpoint.MustNewFromString("-0.8")
)

// EvenBetterSinewave is Ehlers' even better sinewave indicator
// (Cycle Analytics for Traders, p159-164). A high pass filter removes
// cycles longer than duration, a super smoother removes the noise, and the
// wave is normalized by its power so the signal swings within [-1, 1].
//
// Results: signal, and upper_cross and lower_cross of the signal against
// +0.8 and -0.8.
//
// The price history starts at zero, so the first bar enters the high pass
// as a full step from zero.
type EvenBetterSinewave struct {
	ResultUpdater

	Source types.Source

	alpha1     fixedpoint.Value
	c1, c2, c3 fixedpoint.Value

	price *window.Window[fixedpoint.Value]
	hp    *window.Window[fixedpoint.Value]
	filt  *window.Window[fixedpoint.Value]

	upper cross.Detector
	lower cross.Detector
}

// NewEvenBetterSinewave requires a duration of at least 5 bars so the high
// pass coefficient stays positive.
func NewEvenBetterSinewave(duration int) (*EvenBetterSinewave, error) {
	if duration < 5 {
		return nil, invalidParameter("even better sinewave duration %d", duration)
	}

	angle := 2 * math.Pi / float64(duration)
	alpha1 := fixedpoint.NewFromFloat((1 - math.Sin(angle)) / math.Cos(angle))

	c1, c2, c3 := twoPoleCoefficients(10, 1.414*math.Pi/10.)

	return &EvenBetterSinewave{
		Source: types.SourceClose,
		alpha1: alpha1,
		c1:     c1,
		c2:     c2,
		c3:     c3,
		price:  window.New(1, fixedpoint.Zero),
		hp:     window.New(1, fixedpoint.Zero),
		filt:   window.New(2, fixedpoint.Zero),
	}, nil
}

func (inc *EvenBetterSinewave) Update(price fixedpoint.Value) ResultSet {
	price1 := inc.price.Last(0)
	hp1 := inc.hp.Last(0)
	filt1, filt2 := inc.filt.Last(0), inc.filt.Last(1)

	hp := half.Mul(fixedpoint.One.Add(inc.alpha1)).Mul(price.Sub(price1)).Add(inc.alpha1.Mul(hp1))
	filt := inc.c1.Mul(hp.Add(hp1).Div(fixedpoint.Two)).Add(inc.c2.Mul(filt1)).Add(inc.c3.Mul(filt2))

	wave := filt.Add(filt1).Add(filt2).Div(fixedpoint.Three)
	pwr := filt.Mul(filt).Add(filt1.Mul(filt1)).Add(filt2.Mul(filt2)).Div(fixedpoint.Three)
	signal := wave.Div(fixedpoint.Sqrt(pwr))

	inc.price.Push(price)
	inc.hp.Push(hp)
	inc.filt.Push(filt)

	r := ResultSet{
		KeySignal:     signal.ToQuantity(),
		KeyUpperCross: inc.upper.Update(signal, sinewaveUpper).Value(),
		KeyLowerCross: inc.lower.Update(signal, sinewaveLower).Value(),
	}
	inc.EmitUpdate(r)
	return r
}

func (inc *EvenBetterSinewave) PushK(k types.KLine) ResultSet {
	return inc.Update(k.Source(sourceOrClose(inc.Source)))
}

func (inc *EvenBetterSinewave) BindK(target types.KLineClosedEmitter) {
	bindK(target, inc)
}
