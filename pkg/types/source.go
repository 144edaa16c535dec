package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Source selects which part of a candle feeds an indicator.
type Source string

const (
	SourceClose        Source = "close"
	SourceOpen         Source = "open"
	SourceHigh         Source = "high"
	SourceLow          Source = "low"
	SourceHL2          Source = "hl2"
	SourceTP           Source = "tp"
	SourceOHLC4        Source = "ohlc4"
	SourceVolume       Source = "volume"
	SourceVolumedPrice Source = "volumed_price"
)

var ErrSourceParse = errors.New("unable to parse value as source")

// ParseSource is case insensitive and accepts "hlc3" as an alias of "tp".
func ParseSource(s string) (Source, error) {
	src := Source(strings.ToLower(strings.TrimSpace(s)))
	switch src {
	case SourceClose, SourceOpen, SourceHigh, SourceLow, SourceHL2, SourceTP, SourceOHLC4, SourceVolume, SourceVolumedPrice:
		return src, nil
	case "hlc3":
		return SourceTP, nil
	}
	return src, errors.Wrapf(ErrSourceParse, "%q", s)
}

func (s Source) String() string {
	return string(s)
}

func (s *Source) UnmarshalJSON(data []byte) error {
	var a string
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	src, err := ParseSource(a)
	if err != nil {
		return err
	}

	*s = src
	return nil
}

func (s *Source) UnmarshalYAML(unmarshal func(a interface{}) error) error {
	var a string
	if err := unmarshal(&a); err != nil {
		return err
	}

	src, err := ParseSource(a)
	if err != nil {
		return err
	}

	*s = src
	return nil
}

// Set implements pflag.Value so a Source can be bound to a command line flag.
func (s *Source) Set(a string) error {
	src, err := ParseSource(a)
	if err != nil {
		return err
	}
	*s = src
	return nil
}

func (s *Source) Type() string {
	return "source"
}
