package indicator

import (
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
)

// RateOfChange looks at the next period candles after index i and reports,
// as strength, the close to close rate of change with the largest magnitude.
// It needs the complete history and is not a streaming indicator.
type RateOfChange struct {
	Period int
}

func NewRateOfChange(period int) (*RateOfChange, error) {
	if period < 1 {
		return nil, invalidParameter("rate of change period %d", period)
	}
	return &RateOfChange{Period: period}, nil
}

func (inc *RateOfChange) Calculate(i int, klines []types.KLine) ResultSet {
	strength := fixedpoint.Zero
	if i < 0 || i >= len(klines) {
		return ResultSet{KeyStrength: strength}
	}

	base := klines[i].Close
	end := i + inc.Period
	if end > len(klines)-1 {
		end = len(klines) - 1
	}

	for j := i + 1; j <= end; j++ {
		roc := klines[j].Close.Sub(base).Div(base)
		if roc.Abs().Compare(strength.Abs()) > 0 {
			strength = roc
		}
	}

	return ResultSet{KeyStrength: strength.ToQuantity()}
}
