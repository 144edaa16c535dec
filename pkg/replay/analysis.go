package replay

import (
	"github.com/samber/lo"

	"github.com/c9s/cyclekit/pkg/indicator"
	"github.com/c9s/cyclekit/pkg/types"
)

// RateOfChange evaluates the look-ahead rate of change at every candle.
func RateOfChange(klines []types.KLine, period int) ([]indicator.ResultSet, error) {
	roc, err := indicator.NewRateOfChange(period)
	if err != nil {
		return nil, err
	}

	results := make([]indicator.ResultSet, len(klines))
	for i := range klines {
		results[i] = roc.Calculate(i, klines)
	}
	return results, nil
}

// Cointegrate tests the closes of two candle series. Only candles with the
// same start time in both series are paired, in the order of xs. It returns
// the last result set and the number of pairs.
func Cointegrate(xs, ys []types.KLine, period int, decay float64) (indicator.ResultSet, int, error) {
	inc, err := indicator.NewCointegration(period)
	if err != nil {
		return nil, 0, err
	}
	if decay > 0 {
		inc.Decay = decay
	}

	byTime := lo.KeyBy(ys, func(k types.KLine) int64 {
		return k.StartTime.Time().UnixMilli()
	})

	pairs := 0
	last := indicator.ResultSet{}
	for _, x := range xs {
		y, ok := byTime[x.StartTime.Time().UnixMilli()]
		if !ok {
			continue
		}

		last = inc.Update(x.Close.Float64(), y.Close.Float64())
		pairs++
	}

	return last, pairs, nil
}
