package types

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

var Two = fixedpoint.NewFromInt(2)
var Three = fixedpoint.NewFromInt(3)

// ErrInvalidCandles is returned when a candle fails Validate.
var ErrInvalidCandles = errors.New("invalid candles")

type Direction int

const DirectionUp = 1
const DirectionNone = 0
const DirectionDown = -1

// KLine is a single OHLCV candle. Position in the feed is the only notion of time
// the indicators use; StartTime and EndTime are carried for display.
type KLine struct {
	Symbol   string   `json:"symbol"`
	Interval Interval `json:"interval"`

	StartTime Time `json:"startTime"`
	EndTime   Time `json:"endTime"`

	Open   fixedpoint.Value `json:"open"`
	High   fixedpoint.Value `json:"high"`
	Low    fixedpoint.Value `json:"low"`
	Close  fixedpoint.Value `json:"close"`
	Volume fixedpoint.Value `json:"volume"`

	Closed bool `json:"closed"`
}

func (k *KLine) GetOpen() fixedpoint.Value {
	return k.Open
}

func (k *KLine) GetHigh() fixedpoint.Value {
	return k.High
}

func (k *KLine) GetLow() fixedpoint.Value {
	return k.Low
}

func (k *KLine) GetClose() fixedpoint.Value {
	return k.Close
}

// Mid is (high + low) / 2.
func (k *KLine) Mid() fixedpoint.Value {
	return k.High.Add(k.Low).Div(Two)
}

// TypicalPrice is (high + low + close) / 3.
func (k *KLine) TypicalPrice() fixedpoint.Value {
	return k.High.Add(k.Low).Add(k.Close).Div(Three)
}

func (k *KLine) OHLC4() fixedpoint.Value {
	return k.Open.Add(k.High).Add(k.Low).Add(k.Close).Div(fixedpoint.Four)
}

// VolumedPrice is the typical price multiplied by the volume.
func (k *KLine) VolumedPrice() fixedpoint.Value {
	return k.TypicalPrice().Mul(k.Volume)
}

func (k *KLine) Direction() Direction {
	o := k.GetOpen()
	c := k.GetClose()

	if c.Compare(o) > 0 {
		return DirectionUp
	} else if c.Compare(o) < 0 {
		return DirectionDown
	}
	return DirectionNone
}

// GetChange returns Close price - Open price.
func (k *KLine) GetChange() fixedpoint.Value {
	return k.Close.Sub(k.Open)
}

func (k *KLine) GetMaxChange() fixedpoint.Value {
	return k.GetHigh().Sub(k.GetLow())
}

func (k *KLine) IsRising() bool {
	return k.Direction() == DirectionUp
}

func (k *KLine) IsFalling() bool {
	return k.Direction() == DirectionDown
}

// Source extracts the price selected by src.
func (k *KLine) Source(src Source) fixedpoint.Value {
	switch src {
	case SourceOpen:
		return k.Open
	case SourceHigh:
		return k.High
	case SourceLow:
		return k.Low
	case SourceHL2:
		return k.Mid()
	case SourceTP:
		return k.TypicalPrice()
	case SourceOHLC4:
		return k.OHLC4()
	case SourceVolume:
		return k.Volume
	case SourceVolumedPrice:
		return k.VolumedPrice()
	}
	return k.Close
}

// Validate checks that the prices are positive, that close lies within
// [low, high] and that the volume is not negative.
func (k *KLine) Validate() error {
	if k.Open.Sign() <= 0 || k.High.Sign() <= 0 || k.Low.Sign() <= 0 || k.Close.Sign() <= 0 {
		return errors.Wrapf(ErrInvalidCandles, "non-positive price in %s", k.String())
	}

	if k.High.Compare(k.Low) < 0 {
		return errors.Wrapf(ErrInvalidCandles, "high is below low in %s", k.String())
	}

	if k.Close.Compare(k.High) > 0 || k.Close.Compare(k.Low) < 0 {
		return errors.Wrapf(ErrInvalidCandles, "close is outside of [low, high] in %s", k.String())
	}

	if k.Volume.Sign() < 0 {
		return errors.Wrapf(ErrInvalidCandles, "negative volume in %s", k.String())
	}

	return nil
}

func (k *KLine) String() string {
	return fmt.Sprintf("%s %s %s O: %.4f H: %.4f L: %.4f C: %.4f CHG: %.4f V: %.4f",
		k.StartTime.Time().Format("2006-01-02 15:04"),
		k.Symbol, k.Interval,
		k.Open.Float64(), k.High.Float64(), k.Low.Float64(), k.Close.Float64(),
		k.GetChange().Float64(), k.Volume.Float64())
}

type KLineWindow []KLine

func (k KLineWindow) Len() int {
	return len(k)
}

func (k KLineWindow) Last() KLine {
	return k[len(k)-1]
}

// Sources maps every candle to the price selected by src.
func (k KLineWindow) Sources(src Source) []fixedpoint.Value {
	values := make([]fixedpoint.Value, len(k))
	for i := range k {
		values[i] = k[i].Source(src)
	}
	return values
}

// Closes returns the close prices as float64, used by the float statistics.
func (k KLineWindow) Closes() []float64 {
	values := make([]float64, len(k))
	for i := range k {
		values[i] = k[i].Close.Float64()
	}
	return values
}
