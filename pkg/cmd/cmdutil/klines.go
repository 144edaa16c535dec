package cmdutil

import (
	"github.com/pkg/errors"

	"github.com/c9s/cyclekit/pkg/datasource/csvsource"
	"github.com/c9s/cyclekit/pkg/types"
)

// LoadKLines reads a csv file, or every csv file under a directory, with the
// named decoder and tags the klines with symbol and interval.
func LoadKLines(path, decoder, symbol string, interval types.Interval) ([]types.KLine, error) {
	maker, err := csvsource.ReaderMaker(decoder)
	if err != nil {
		return nil, err
	}

	klines, err := csvsource.ReadKLinesFromCSVWithDecoder(path, interval.Duration(), maker)
	if err != nil {
		return nil, err
	}

	if len(klines) == 0 {
		return nil, errors.Errorf("no klines found in %s", path)
	}

	for i := range klines {
		klines[i].Symbol = symbol
		klines[i].Interval = interval
	}
	return klines, nil
}
