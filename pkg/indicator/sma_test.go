package indicator

import (
	"encoding/json"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

/*
python:

import pandas as pd
import pandas_ta as ta

data = pd.Series([0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9,0])
size = 5

result = ta.sma(data, size)
print(result)
*/
func Test_SMA(t *testing.T) {
	var randomPrices = []byte(`[0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9]`)
	var input []fixedpoint.Value
	if err := json.Unmarshal(randomPrices, &input); err != nil {
		panic(err)
	}

	sma := NewSMA(5, fixedpoint.Zero)
	var last fixedpoint.Value
	for _, v := range input {
		last = sma.Update(v)
	}
	assert.Equal(t, "7", last.String())
	assert.Equal(t, "6", sma.Update(fixedpoint.Zero).String())
}

func TestSMA_ZeroPrefilled(t *testing.T) {
	sma := NewSMA(4, fixedpoint.Zero)
	assert.Equal(t, "2.5", sma.Update(fixedpoint.Ten).String())
	assert.Equal(t, "5", sma.Update(fixedpoint.Ten).String())
}

func TestSMA_MatchesTalib(t *testing.T) {
	const period = 7
	prices := sinePrices(120, 17)

	floats := make([]float64, len(prices))
	for i, p := range prices {
		floats[i] = p.Float64()
	}
	want := talib.Sma(floats, period)

	sma := NewSMA(period, fixedpoint.Zero)
	for i, p := range prices {
		got := sma.Update(p)
		if i >= period-1 {
			assert.InDelta(t, want[i], got.Float64(), 1e-9, "bar %d", i)
		}
	}
}

func TestExtremumIndex(t *testing.T) {
	highest := NewHighestIndex(4, fixedpoint.Zero)
	lowest := NewLowestIndex(4, fixedpoint.Zero)

	values := []string{"3", "5", "4", "1", "2", "2"}
	wantHighest := []int{0, 0, 1, 2, 3, 3}
	wantLowest := []int{1, 2, 3, 0, 1, 2}

	for i, s := range values {
		v := fixedpoint.MustNewFromString(s)
		assert.Equal(t, wantHighest[i], highest.Update(v), "highest at %d", i)
		assert.Equal(t, wantLowest[i], lowest.Update(v), "lowest at %d", i)
	}
}
