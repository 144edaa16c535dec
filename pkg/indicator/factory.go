package indicator

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
)

// Params holds the constructor parameters of an indicator by name.
type Params map[string]fixedpoint.Value

// Value returns def when the parameter is not set.
func (p Params) Value(name string, def fixedpoint.Value) fixedpoint.Value {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// Int returns def when the parameter is not set. Fractions are truncated.
func (p Params) Int(name string, def int) int {
	if v, ok := p[name]; ok {
		return int(v.Int64())
	}
	return def
}

// Names of the streaming indicators known to New.
const (
	NameAdaptiveMovingAverage        = "ama"
	NameEvenBetterSinewave           = "ebsw"
	NameInstantaneousTrendlineFilter = "itrend"
	NameSuperSmootherFilter          = "ssf"
	NameEmpiricalModeDecomposition   = "emd"
	NameSignalToNoiseRatio           = "snr"
	NameChangePercent                = "change_percent"
)

var aliases = map[string]string{
	"adaptive_moving_average":        NameAdaptiveMovingAverage,
	"mama":                           NameAdaptiveMovingAverage,
	"even_better_sinewave":           NameEvenBetterSinewave,
	"instantaneous_trendline_filter": NameInstantaneousTrendlineFilter,
	"super_smoother_filter":          NameSuperSmootherFilter,
	"empirical_mode_decomposition":   NameEmpiricalModeDecomposition,
	"enhanced_signal_to_noise_ratio": NameSignalToNoiseRatio,
}

// Names lists the streaming indicator names accepted by New.
func Names() []string {
	return []string{
		NameAdaptiveMovingAverage,
		NameEvenBetterSinewave,
		NameInstantaneousTrendlineFilter,
		NameSuperSmootherFilter,
		NameEmpiricalModeDecomposition,
		NameSignalToNoiseRatio,
		NameChangePercent,
	}
}

// New builds a streaming indicator by name. Missing parameters take their
// documented defaults, and src selects the candle price it consumes.
func New(name string, params Params, src types.Source) (Indicator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	src = sourceOrClose(src)

	switch name {
	case NameAdaptiveMovingAverage:
		inc, err := NewAdaptiveMovingAverage(
			params.Value("fast_limit", DefaultFastLimit),
			params.Value("slow_limit", DefaultSlowLimit))
		if err != nil {
			return nil, err
		}
		inc.Source = src
		return inc, nil

	case NameEvenBetterSinewave:
		inc, err := NewEvenBetterSinewave(params.Int("duration", DefaultSinewaveDuration))
		if err != nil {
			return nil, err
		}
		inc.Source = src
		return inc, nil

	case NameInstantaneousTrendlineFilter:
		inc := NewInstantaneousTrendlineFilter()
		inc.Source = src
		return inc, nil

	case NameSuperSmootherFilter:
		inc, err := NewSuperSmootherFilter(
			params.Int("period", DefaultSuperSmootherPeriod),
			params.Int("poles", DefaultSuperSmootherPoles))
		if err != nil {
			return nil, err
		}
		inc.Source = src
		return inc, nil

	case NameEmpiricalModeDecomposition:
		inc, err := NewEmpiricalModeDecomposition(
			params.Value("delta", DefaultEMDDelta),
			params.Value("fraction", DefaultEMDFraction),
			params.Int("period", DefaultEMDPeriod))
		if err != nil {
			return nil, err
		}
		inc.Source = src
		return inc, nil

	case NameSignalToNoiseRatio:
		inc := NewEnhancedSignalToNoiseRatio()
		inc.Source = src
		return inc, nil

	case NameChangePercent:
		inc := NewChangePercent()
		inc.Source = src
		return inc, nil
	}

	return nil, errors.Wrapf(ErrUnknownIndicator, "%q", name)
}

var (
	_ Indicator = (*AdaptiveMovingAverage)(nil)
	_ Indicator = (*EvenBetterSinewave)(nil)
	_ Indicator = (*InstantaneousTrendlineFilter)(nil)
	_ Indicator = (*SuperSmootherFilter)(nil)
	_ Indicator = (*EmpiricalModeDecomposition)(nil)
	_ Indicator = (*EnhancedSignalToNoiseRatio)(nil)
	_ Indicator = (*ChangePercent)(nil)

	_ KLineCalculator = (*RateOfChange)(nil)
)
