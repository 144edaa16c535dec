package replay

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/c9s/cyclekit/pkg/config"
	"github.com/c9s/cyclekit/pkg/datasource/csvsource"
	"github.com/c9s/cyclekit/pkg/indicator"
	"github.com/c9s/cyclekit/pkg/metrics"
	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/util"
	"github.com/c9s/cyclekit/pkg/window"
)

var log = logrus.WithField("component", "replay")

// DefaultKeep is the number of trailing result sets kept per indicator.
const DefaultKeep = 10

// Report is the outcome of replaying the candles through one indicator.
type Report struct {
	Label string `json:"label"`
	Name  string `json:"name"`

	// Emitted counts the candles that passed validation.
	Emitted int `json:"emitted"`
	Crosses int `json:"crosses"`

	// History holds the last result sets, oldest first, with the start
	// time of the candle that produced each of them.
	History []Row         `json:"history"`
	Elapsed time.Duration `json:"elapsed"`
}

type Row struct {
	Time   types.Time          `json:"time"`
	Result indicator.ResultSet `json:"result"`
}

func (r Report) Last() indicator.ResultSet {
	if len(r.History) == 0 {
		return nil
	}
	return r.History[len(r.History)-1].Result
}

type Runner struct {
	Symbol string
	Keep   int

	// WarnRate limits the warnings about skipped candles per indicator, in
	// the b+n/duration syntax. Warnings beyond the limit are logged as errors.
	WarnRate string

	// OnProgress is called once per emitted candle of each indicator. It may
	// be called from several goroutines.
	OnProgress func()
}

// Run replays the same candles through every configured indicator, each on
// its own stream and goroutine. Reports come back in config order.
func (r *Runner) Run(ctx context.Context, klines []types.KLine, configs []config.IndicatorConfig) ([]Report, error) {
	keep := r.Keep
	if keep <= 0 {
		keep = DefaultKeep
	}

	if r.WarnRate != "" {
		if _, err := util.ParseRateLimitSyntax(r.WarnRate); err != nil {
			return nil, err
		}
	}

	reports := make([]Report, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	for i, conf := range configs {
		i, conf := i, conf
		inc, err := conf.New()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to create indicator %s", conf.Label())
		}

		g.Go(func() error {
			report, err := r.replay(ctx, klines, conf, inc, keep)
			if err != nil {
				return errors.Wrapf(err, "replay of %s failed", conf.Label())
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(reports) > 0 {
		if skipped := len(klines) - reports[0].Emitted; skipped > 0 {
			metrics.SkippedKLineMetrics.WithLabelValues(r.Symbol).Add(float64(skipped))
		}
	}

	return reports, nil
}

func (r *Runner) replay(ctx context.Context, klines []types.KLine, conf config.IndicatorConfig, inc indicator.Indicator, keep int) (Report, error) {
	label := conf.Label()
	logger := log.WithFields(logrus.Fields{"symbol": r.Symbol, "indicator": label})
	profile := util.StartTimeProfile(label)

	report := Report{Label: label, Name: conf.Name}
	history := window.New[Row](keep, Row{})

	stream := csvsource.NewStream(klines).WithWarnLogger(r.newWarnLogger(logger))

	var current types.KLine
	stream.OnKLineClosed(func(k types.KLine) {
		current = k
	})
	inc.BindK(stream)

	inc.OnUpdate(func(rs indicator.ResultSet) {
		history.Push(Row{Time: current.StartTime, Result: rs})
		report.Crosses += countCrosses(rs)
		metrics.ObserveResult(r.Symbol, label, rs)
		if r.OnProgress != nil {
			r.OnProgress()
		}
	})

	emitted, err := stream.Replay(ctx)
	if err != nil {
		return report, err
	}

	report.Emitted = emitted
	report.History = history.Tail(history.Filled())
	report.Elapsed = profile.StopAndLog(logger.Debugf)
	return report, nil
}

func (r *Runner) newWarnLogger(logger logrus.FieldLogger) *util.WarnFirstLogger {
	if r.WarnRate != "" {
		if limiter, err := util.ParseRateLimitSyntax(r.WarnRate); err == nil {
			return util.NewWarnFirstLoggerWithLimiter(limiter, logger)
		}
	}
	return util.NewWarnFirstLogger(3, time.Minute, logger)
}

func countCrosses(rs indicator.ResultSet) (n int) {
	for _, key := range []string{indicator.KeyCross, indicator.KeyUpperCross, indicator.KeyLowerCross} {
		if v, ok := rs[key]; ok && !v.IsZero() {
			n++
		}
	}
	return n
}
