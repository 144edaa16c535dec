package indicator

import (
	"math"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
)

func buildKLines(prices []fixedpoint.Value) (klines []types.KLine) {
	for _, p := range prices {
		klines = append(klines, types.KLine{Open: p, High: p, Low: p, Close: p, Closed: true})
	}
	return klines
}

func sinePrices(n int, period float64) []fixedpoint.Value {
	prices := make([]fixedpoint.Value, n)
	for i := range prices {
		prices[i] = fixedpoint.NewFromFloat(100 + 10*math.Sin(2*math.Pi*float64(i)/period))
	}
	return prices
}

func constantPrices(n int, price fixedpoint.Value) []fixedpoint.Value {
	prices := make([]fixedpoint.Value, n)
	for i := range prices {
		prices[i] = price
	}
	return prices
}

func isTrend(v fixedpoint.Value) bool {
	return v.Eq(fixedpoint.Zero) || v.Eq(fixedpoint.One) || v.Eq(fixedpoint.One.Neg())
}

// tracePrices is a short uneven series used to pin indicator trajectories.
func tracePrices() []fixedpoint.Value {
	closes := []int64{100, 102, 105, 103, 99, 96, 98, 104, 108, 106, 101, 97, 95, 99, 104, 107, 105, 100, 96, 98}
	prices := make([]fixedpoint.Value, len(closes))
	for i, c := range closes {
		prices[i] = fixedpoint.NewFromInt(c)
	}
	return prices
}
