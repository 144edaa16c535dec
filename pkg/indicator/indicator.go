// Package indicator implements the streaming cycle indicators. Every indicator
// consumes one price or candle per call and returns a freshly allocated
// ResultSet keyed by fixed metric names.
package indicator

import (
	"sort"

	"github.com/samber/lo"

	"github.com/c9s/cyclekit/pkg/cross"
	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/types"
)

// Result keys. They are the contract with downstream consumers.
const (
	KeyMama          = "mama"
	KeyFama          = "fama"
	KeyTrend         = "trend"
	KeyTrendSince    = "trend_since"
	KeyStrength      = "strength"
	KeySignal        = "signal"
	KeyUpperCross    = "upper_cross"
	KeyLowerCross    = "lower_cross"
	KeyFilter        = "filter"
	KeyTrigger       = "trigger"
	KeyCross         = "cross"
	KeyMean          = "mean"
	KeyUpper         = "upper"
	KeyLower         = "lower"
	KeyHighestHigh   = "highest_high"
	KeyLowestLow     = "lowest_low"
	KeySNR           = "snr"
	KeyChangePercent = "change_percent"
	KeySpreadStd     = "spread_std"
	KeySpreadDyn     = "spread_dyn"
	KeyEngleTStat    = "engle_t_stat"
	KeyEnglePValue   = "engle_p_value"
	KeyIsCoint       = "is_coint"
	KeyPearson       = "pearson"
	KeyCorrelation   = "correlation"
)

// ResultSet maps a metric name to its value for one step.
type ResultSet map[string]fixedpoint.Value

// Keys returns the metric names in lexical order.
func (r ResultSet) Keys() []string {
	keys := lo.Keys(r)
	sort.Strings(keys)
	return keys
}

// Get returns Zero for a missing key.
func (r ResultSet) Get(key string) fixedpoint.Value {
	if v, ok := r[key]; ok {
		return v
	}
	return fixedpoint.Zero
}

func (r ResultSet) putTrend(t *cross.Tracker) {
	r[KeyTrend] = t.Trend().Value()
	r[KeyTrendSince] = t.SinceValue()
}

// KLinePusher provides an interface for API user to push kline value to the indicator.
// The indicator picks its own price from the kline.
type KLinePusher interface {
	PushK(k types.KLine) ResultSet
}

// KLineCalculator computes a result for the kline at index i of a complete
// candle history. It may look ahead of i.
type KLineCalculator interface {
	Calculate(i int, klines []types.KLine) ResultSet
}

// Indicator is a named streaming indicator that reports every result to its
// update callbacks.
type Indicator interface {
	KLinePusher

	OnUpdate(cb func(r ResultSet))
	BindK(target types.KLineClosedEmitter)
}

//go:generate callbackgen -type ResultUpdater
type ResultUpdater struct {
	updateCallbacks []func(r ResultSet)
}

// bindK feeds every closed kline of target into p.
func bindK(target types.KLineClosedEmitter, p KLinePusher) {
	target.OnKLineClosed(func(k types.KLine) {
		p.PushK(k)
	})
}

func sourceOrClose(src types.Source) types.Source {
	if src == "" {
		return types.SourceClose
	}
	return src
}
