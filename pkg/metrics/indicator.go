package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c9s/cyclekit/pkg/indicator"
)

var IndicatorUpdateMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cyclekit_indicator_updates_total",
		Help: "number of result sets emitted by an indicator",
	}, []string{"symbol", "indicator"})

var IndicatorValueMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "cyclekit_indicator_value",
		Help: "last value of an indicator result key",
	}, []string{"symbol", "indicator", "key"})

var IndicatorCrossMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cyclekit_indicator_crosses_total",
		Help: "number of crosses reported by an indicator result key",
	}, []string{"symbol", "indicator", "key", "direction"})

var SkippedKLineMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cyclekit_skipped_klines_total",
		Help: "number of invalid klines skipped during a replay",
	}, []string{"symbol"})

func init() {
	prometheus.MustRegister(
		IndicatorUpdateMetrics,
		IndicatorValueMetrics,
		IndicatorCrossMetrics,
		SkippedKLineMetrics,
	)
}

var crossKeys = map[string]struct{}{
	indicator.KeyCross:      {},
	indicator.KeyUpperCross: {},
	indicator.KeyLowerCross: {},
}

// ObserveResult records one result set of the indicator labelled id.
func ObserveResult(symbol, id string, r indicator.ResultSet) {
	IndicatorUpdateMetrics.WithLabelValues(symbol, id).Inc()

	for key, v := range r {
		IndicatorValueMetrics.WithLabelValues(symbol, id, key).Set(v.Float64())

		if _, ok := crossKeys[key]; !ok {
			continue
		}

		switch v.Sign() {
		case 1:
			IndicatorCrossMetrics.WithLabelValues(symbol, id, key, "over").Inc()
		case -1:
			IndicatorCrossMetrics.WithLabelValues(symbol, id, key, "under").Inc()
		}
	}
}
