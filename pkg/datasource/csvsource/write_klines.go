package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/c9s/cyclekit/pkg/types"
)

// WriteKLines writes the klines as a Binance formatted csv under path/klines/<interval>.
// It returns the created file name.
func WriteKLines(path, symbol string, klines []types.KLine) (fileName string, err error) {
	if len(klines) == 0 {
		return "", fmt.Errorf("no klines to write")
	}
	from := klines[0].StartTime.Time().UTC()

	path = filepath.Join(path, "klines", klines[0].Interval.String())
	fileName = filepath.Join(path, fmt.Sprintf("%s-%s.csv", symbol, from.Format("2006-01-02")))

	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", path, err)
	}

	file, err := os.Create(fileName)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	w := csv.NewWriter(file)
	for _, kline := range klines {
		row := []string{
			fmt.Sprintf("%d", kline.StartTime.Time().UnixMilli()),
			kline.Open.String(),
			kline.High.String(),
			kline.Low.String(),
			kline.Close.String(),
			kline.Volume.String(),
		}
		if err := w.Write(row); err != nil {
			return "", errors.Wrap(err, "writing record to file")
		}
	}
	w.Flush()

	return fileName, w.Error()
}
