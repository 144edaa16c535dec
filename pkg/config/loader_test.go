package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/indicator"
	"github.com/c9s/cyclekit/pkg/types"
)

func TestLoadConfig(t *testing.T) {
	type args struct {
		configFile string
	}

	tests := []struct {
		name    string
		args    args
		wantErr bool
		f       func(t *testing.T, config *Config)
	}{
		{
			name:    "replay",
			args:    args{configFile: "testdata/replay.yaml"},
			wantErr: false,
			f: func(t *testing.T, config *Config) {
				assert.Equal(t, "BTCUSDT", config.Symbol)
				assert.Equal(t, types.Interval1h, config.Interval)
				assert.Equal(t, StringSlice{"data/BTCUSDT-1h.csv"}, config.CSV)
				require.NotNil(t, config.RateOfChange)
				assert.Equal(t, 5, config.RateOfChange.Period)
				assert.Nil(t, config.Cointegration)

				require.Len(t, config.Indicators, 3)
				assert.Equal(t, "ebsw", config.Indicators[0].Label())

				ama := config.Indicators[1]
				assert.Equal(t, "mama-fast", ama.Label())
				assert.Equal(t, types.SourceHL2, ama.Source)
				assert.Equal(t, "0.6", ama.Params["fast_limit"].String())

				inc, err := config.Indicators[2].New()
				require.NoError(t, err)
				assert.Equal(t, 3, inc.(*indicator.SuperSmootherFilter).Poles)
			},
		},
		{
			name:    "cointegration",
			args:    args{configFile: "testdata/coint.yaml"},
			wantErr: false,
			f: func(t *testing.T, config *Config) {
				assert.Len(t, config.CSV, 2)
				require.NotNil(t, config.Cointegration)
				assert.Equal(t, 120, config.Cointegration.Period)
				assert.Equal(t, 0.97, config.Cointegration.Decay)
				assert.Empty(t, config.Indicators)
			},
		},
		{
			name:    "invalid",
			args:    args{configFile: "testdata/invalid.yaml"},
			wantErr: true,
		},
		{
			name:    "missing",
			args:    args{configFile: "testdata/missing.yaml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := Load(tt.args.configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, config)
			if tt.f != nil {
				tt.f(t, config)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	config := Config{
		Interval: "7m",
		Decoder:  "kraken",
		Indicators: []IndicatorConfig{
			{Name: "macd"},
			{Name: "ssf", Params: indicator.Params{"poles": fixedpoint.NewFromInt(5)}},
		},
		RateOfChange: &RateOfChangeConfig{Period: 0},
	}

	err := config.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
	assert.ErrorIs(t, err, indicator.ErrUnknownIndicator)
	assert.ErrorIs(t, err, indicator.ErrInvalidParameter)
}

func TestStringSlice(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.UnmarshalJSON([]byte(`"a.csv"`)))
	assert.Equal(t, StringSlice{"a.csv"}, s)

	s = nil
	require.NoError(t, s.UnmarshalJSON([]byte(`["a.csv", "b.csv"]`)))
	assert.Equal(t, StringSlice{"a.csv", "b.csv"}, s)

	assert.Error(t, s.UnmarshalJSON([]byte(`12`)))
}
