package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
)

// MetaTraderTimeFormat is the time format expected by the MetaTrader decoder when cols [0] and [1] are used.
const MetaTraderTimeFormat = "02/01/2006 15:04"

var (
	// ErrNotEnoughColumns is returned when the CSV price record does not have enough columns.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the CSV price record does not have a valid time unix milli format.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when the CSV price record does not prices in expected format.
	ErrInvalidPriceFormat = errors.New("OHLC prices must be in valid decimal format")

	// ErrInvalidVolumeFormat is returned when the CSV price record does not have a valid volume format.
	ErrInvalidVolumeFormat = errors.New("volume must be in valid float format")

	// ErrUnknownDecoder is returned by ReaderMaker for a decoder name it does not know.
	ErrUnknownDecoder = errors.New("unknown csv kline decoder")
)

const (
	DecoderBinance    = "binance"
	DecoderMetaTrader = "metatrader"
)

// ReaderMaker returns the reader constructor of the named decoder. An empty
// name selects the Binance decoder.
func ReaderMaker(decoder string) (MakeCSVKLineReader, error) {
	switch decoder {
	case "", DecoderBinance:
		return NewBinanceCSVKLineReader, nil
	case DecoderMetaTrader:
		return NewMetaTraderCSVKLineReader, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDecoder, decoder)
}

// CSVKLineDecoder is an extension point for CSVKLineReader to support custom file formats.
type CSVKLineDecoder func(record []string, interval time.Duration) (types.KLine, error)

// NewBinanceCSVKLineReader creates a new CSVKLineReader for Binance CSV files.
func NewBinanceCSVKLineReader(csv *csv.Reader) *CSVKLineReader {
	return &CSVKLineReader{
		csv:     csv,
		decoder: BinanceCSVKLineDecoder,
	}
}

// decodeOHLCV parses the four prices and the optional volume column.
func decodeOHLCV(k *types.KLine, prices []string, volume []string) error {
	var err error
	fields := []*fixedpoint.Value{&k.Open, &k.High, &k.Low, &k.Close}
	for i, field := range fields {
		if *field, err = fixedpoint.NewFromString(prices[i]); err != nil {
			return ErrInvalidPriceFormat
		}
	}

	k.Volume = fixedpoint.Zero
	if len(volume) > 0 {
		if k.Volume, err = fixedpoint.NewFromString(volume[0]); err != nil {
			return ErrInvalidVolumeFormat
		}
	}

	k.Closed = true
	return nil
}

// BinanceCSVKLineDecoder decodes a CSV record from Binance or Bybit into a KLine.
// The volume column is optional.
func BinanceCSVKLineDecoder(record []string, interval time.Duration) (types.KLine, error) {
	var k, empty types.KLine

	if len(record) < 5 {
		return empty, ErrNotEnoughColumns
	}

	msec, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}
	k.StartTime = types.NewTimeFromUnix(time.UnixMilli(msec).Unix(), 0)
	k.EndTime = types.NewTimeFromUnix(k.StartTime.Time().Add(interval).Unix(), 0)

	if err := decodeOHLCV(&k, record[1:5], record[5:]); err != nil {
		return empty, err
	}
	return k, nil
}

// NewMetaTraderCSVKLineReader creates a new CSVKLineReader for MetaTrader CSV files.
func NewMetaTraderCSVKLineReader(csv *csv.Reader) *CSVKLineReader {
	csv.Comma = ';'
	return &CSVKLineReader{
		csv:     csv,
		decoder: MetaTraderCSVKLineDecoder,
	}
}

// MetaTraderCSVKLineDecoder decodes a CSV record from MetaTrader into a KLine.
func MetaTraderCSVKLineDecoder(record []string, interval time.Duration) (types.KLine, error) {
	var k, empty types.KLine

	if len(record) < 6 {
		return empty, ErrNotEnoughColumns
	}

	tStr := fmt.Sprintf("%s %s", record[0], record[1])
	t, err := time.Parse(MetaTraderTimeFormat, tStr)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}
	k.StartTime = types.NewTimeFromUnix(t.Unix(), 0)
	k.EndTime = types.NewTimeFromUnix(t.Add(interval).Unix(), 0)

	if err := decodeOHLCV(&k, record[2:6], record[6:]); err != nil {
		return empty, err
	}
	return k, nil
}
