package cmdutil

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/cyclekit/pkg/config"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/indicator"
	"github.com/c9s/cyclekit/pkg/types"
)

// ParseIndicatorFlag parses the --indicator syntax name[:key=value,...], for
// example "ssf:period=16,poles=3".
func ParseIndicatorFlag(s string, src types.Source) (config.IndicatorConfig, error) {
	conf := config.IndicatorConfig{Source: src}

	name, rest, hasParams := strings.Cut(strings.TrimSpace(s), ":")
	conf.Name = strings.TrimSpace(name)
	if conf.Name == "" {
		return conf, errors.Errorf("empty indicator name in %q", s)
	}

	if !hasParams {
		return conf, nil
	}

	conf.Params = indicator.Params{}
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return conf, errors.Errorf("invalid indicator parameter %q in %q, expecting key=value", pair, s)
		}

		v, err := fixedpoint.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return conf, errors.Wrapf(err, "invalid value of indicator parameter %q", key)
		}
		conf.Params[strings.TrimSpace(key)] = v
	}

	return conf, nil
}
