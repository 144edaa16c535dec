package indicator

import (
	"math"

	"github.com/c9s/cyclekit/pkg/cross"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/window"
)

const (
	DefaultEMDPeriod = 20

	emdEnvelopeLength = 50
	emdExtremumLength = 48
)

var (
	DefaultEMDDelta    = fixedpoint.MustNewFromString("0.5")
	DefaultEMDFraction = fixedpoint.MustNewFromString("0.1")
)

// EmpiricalModeDecomposition separates the cycle and the trend of the price
// (https://www.mesasoftware.com/papers/EmpiricalModeDecomposition.pdf).
//
// The cycle is a band pass filter of the price; the trend is the band pass
// averaged over two cycle periods. The averaged peaks and valleys of the band
// pass, scaled by fraction, are the upper and lower thresholds. Crossing under
// the lower threshold starts a down trend, crossing over the upper one an up
// trend, and any other threshold cross puts the market in cycle mode (Flat).
type EmpiricalModeDecomposition struct {
	ResultUpdater

	Source types.Source

	fraction    fixedpoint.Value
	alpha, beta fixedpoint.Value

	price  *window.Window[fixedpoint.Value]
	bp     *window.Window[fixedpoint.Value]
	peak   fixedpoint.Value
	valley fixedpoint.Value

	bpSMA     *SMA
	peakSMA   *SMA
	valleySMA *SMA
	highest   *ExtremumIndex
	lowest    *ExtremumIndex

	upper   cross.Detector
	lower   cross.Detector
	tracker cross.Tracker
}

// NewEmpiricalModeDecomposition requires period >= 2, fraction > 0 and
// 0 < delta < period/8 so the band pass stays stable.
func NewEmpiricalModeDecomposition(delta, fraction fixedpoint.Value, period int) (*EmpiricalModeDecomposition, error) {
	if period < 2 {
		return nil, invalidParameter("empirical mode decomposition period %d", period)
	}
	if fraction.Sign() <= 0 {
		return nil, invalidParameter("empirical mode decomposition fraction %s", fraction)
	}

	cosine := math.Cos(4 * math.Pi * delta.Float64() / float64(period))
	if delta.Sign() <= 0 || cosine <= 0 {
		return nil, invalidParameter("empirical mode decomposition delta %s for period %d", delta, period)
	}

	gamma := 1 / cosine
	alpha := gamma - math.Sqrt(gamma*gamma-1)

	return &EmpiricalModeDecomposition{
		Source:    types.SourceClose,
		fraction:  fraction,
		alpha:     fixedpoint.NewFromFloat(alpha),
		beta:      fixedpoint.NewFromFloat(math.Cos(2 * math.Pi / float64(period))),
		price:     window.New(2, fixedpoint.Zero),
		bp:        window.New(2, fixedpoint.Zero),
		peak:      fixedpoint.Zero,
		valley:    fixedpoint.Zero,
		bpSMA:     NewSMA(2*period, fixedpoint.Zero),
		peakSMA:   NewSMA(emdEnvelopeLength, fixedpoint.Zero),
		valleySMA: NewSMA(emdEnvelopeLength, fixedpoint.Zero),
		highest:   NewHighestIndex(emdExtremumLength, fixedpoint.Zero),
		lowest:    NewLowestIndex(emdExtremumLength, fixedpoint.Zero),
	}, nil
}

func (inc *EmpiricalModeDecomposition) Update(price fixedpoint.Value) ResultSet {
	price2 := inc.price.Last(1)
	bp1, bp2 := inc.bp.Last(0), inc.bp.Last(1)

	bp := half.Mul(fixedpoint.One.Sub(inc.alpha)).Mul(price.Sub(price2)).
		Add(inc.beta.Mul(fixedpoint.One.Add(inc.alpha)).Mul(bp1)).
		Sub(inc.alpha.Mul(bp2))

	mean := inc.bpSMA.Update(bp)

	if bp1.Compare(bp) > 0 && bp1.Compare(bp2) > 0 {
		inc.peak = bp1
	}
	if bp1.Compare(bp) < 0 && bp1.Compare(bp2) < 0 {
		inc.valley = bp1
	}

	upper := inc.fraction.Mul(inc.peakSMA.Update(inc.peak))
	lower := inc.fraction.Mul(inc.valleySMA.Update(inc.valley))

	inc.price.Push(price)
	inc.bp.Push(bp)

	upperCross := inc.upper.Update(mean, upper)
	lowerCross := inc.lower.Update(mean, lower)

	// the extreme of the last bars was the previous bar
	highestHigh := inc.highest.Update(mean) == 1
	lowestLow := inc.lowest.Update(mean) == 1

	switch {
	case lowerCross == cross.Under:
		inc.tracker.Set(cross.Down)
	case upperCross == cross.Over:
		inc.tracker.Set(cross.Up)
	case upperCross == cross.Under || lowerCross == cross.Over:
		inc.tracker.Set(cross.Flat)
	default:
		inc.tracker.Hold()
	}

	r := ResultSet{
		KeyMean:        mean.ToQuantity(),
		KeyUpper:       upper.ToQuantity(),
		KeyUpperCross:  upperCross.Value(),
		KeyLower:       lower.ToQuantity(),
		KeyLowerCross:  lowerCross.Value(),
		KeyHighestHigh: boolValue(highestHigh),
		KeyLowestLow:   boolValue(lowestLow),
	}
	r.putTrend(&inc.tracker)
	inc.EmitUpdate(r)
	return r
}

func (inc *EmpiricalModeDecomposition) PushK(k types.KLine) ResultSet {
	return inc.Update(k.Source(sourceOrClose(inc.Source)))
}

func (inc *EmpiricalModeDecomposition) BindK(target types.KLineClosedEmitter) {
	bindK(target, inc)
}

func boolValue(b bool) fixedpoint.Value {
	if b {
		return fixedpoint.One
	}
	return fixedpoint.Zero
}
