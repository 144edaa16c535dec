package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/c9s/cyclekit/pkg/datasource/csvsource"
	"github.com/c9s/cyclekit/pkg/indicator"
	"github.com/c9s/cyclekit/pkg/types"
)

// IndicatorConfig is one indicator instance of the replay.
type IndicatorConfig struct {
	// ID labels the instance in the output, defaults to Name
	ID     string           `json:"id,omitempty"`
	Name   string           `json:"name"`
	Source types.Source     `json:"source,omitempty"`
	Params indicator.Params `json:"params,omitempty"`
}

func (c IndicatorConfig) Label() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// New builds the configured indicator.
func (c IndicatorConfig) New() (indicator.Indicator, error) {
	return indicator.New(c.Name, c.Params, c.Source)
}

type RateOfChangeConfig struct {
	Period int `json:"period"`
}

type CointegrationConfig struct {
	Period int     `json:"period"`
	Decay  float64 `json:"decay,omitempty"`
}

type Config struct {
	Symbol   string         `json:"symbol,omitempty"`
	Interval types.Interval `json:"interval,omitempty"`

	// Decoder is the csv kline format, binance or metatrader
	Decoder string      `json:"decoder,omitempty"`
	CSV     StringSlice `json:"csv,omitempty"`

	RateOfChange  *RateOfChangeConfig  `json:"rateOfChange,omitempty"`
	Cointegration *CointegrationConfig `json:"cointegration,omitempty"`

	Indicators []IndicatorConfig `json:"-"`
}

// Validate reports every problem of the config at once.
func (c *Config) Validate() (err error) {
	if c.Interval != "" {
		if _, ok := types.SupportedIntervals[c.Interval]; !ok {
			err = multierr.Append(err, errors.Errorf("unsupported interval %q", c.Interval))
		}
	}

	if _, decoderErr := csvsource.ReaderMaker(c.Decoder); decoderErr != nil {
		err = multierr.Append(err, decoderErr)
	}

	for i, conf := range c.Indicators {
		if _, newErr := conf.New(); newErr != nil {
			err = multierr.Append(err, errors.Wrapf(newErr, "indicators[%d] %s", i, conf.Label()))
		}
	}

	if c.RateOfChange != nil {
		if _, rocErr := indicator.NewRateOfChange(c.RateOfChange.Period); rocErr != nil {
			err = multierr.Append(err, rocErr)
		}
	}

	if c.Cointegration != nil {
		if _, cointErr := indicator.NewCointegration(c.Cointegration.Period); cointErr != nil {
			err = multierr.Append(err, cointErr)
		}
	}

	return err
}

type Stash map[string]interface{}

func loadStash(configFile string) (Stash, error) {
	config, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	stash := make(Stash)
	if err := yaml.Unmarshal(config, &stash); err != nil {
		return nil, err
	}

	return stash, nil
}

// Load reads and validates a yaml config file.
func Load(configFile string) (*Config, error) {
	stash, err := loadStash(configFile)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := reUnmarshal(stash, &config); err != nil {
		return nil, err
	}

	config.Indicators, err = loadIndicators(stash)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", configFile)
	}

	return &config, nil
}

// loadIndicators accepts both the short form, a bare indicator name, and the
// full map form of an indicator entry.
func loadIndicators(stash Stash) (configs []IndicatorConfig, err error) {
	indicatorsConf, ok := stash["indicators"]
	if !ok {
		return configs, nil
	}

	configList, ok := indicatorsConf.([]interface{})
	if !ok {
		return nil, errors.New("expecting list in indicators")
	}

	for _, entry := range configList {
		switch conf := entry.(type) {
		case string:
			configs = append(configs, IndicatorConfig{Name: conf})

		case map[string]interface{}:
			var c IndicatorConfig
			if err := reUnmarshal(conf, &c); err != nil {
				return nil, err
			}
			configs = append(configs, c)

		default:
			return nil, errors.Errorf("indicator config should be a name or a map, given: %T %+v", entry, entry)
		}
	}

	return configs, nil
}

func reUnmarshal(conf interface{}, val interface{}) error {
	plain, err := json.Marshal(conf)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(plain, val); err != nil {
		return errors.Wrapf(err, "json parsing error, given payload: %s", plain)
	}

	return nil
}
