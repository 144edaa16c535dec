package csvsource

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/util"
)

var log = logrus.WithField("component", "csvsource")

// Stream replays klines in order as closed kline events. Invalid candles are
// skipped with a rate limited warning.
type Stream struct {
	types.StandardStream

	klines []types.KLine
	warn   *util.WarnFirstLogger
}

var _ types.KLineClosedEmitter = (*Stream)(nil)

func NewStream(klines []types.KLine) *Stream {
	return &Stream{
		StandardStream: types.NewStandardStream(),
		klines:         klines,
		warn:           util.NewWarnFirstLogger(3, time.Minute, log),
	}
}

// WithWarnLogger replaces the logger used to report skipped candles.
func (s *Stream) WithWarnLogger(w *util.WarnFirstLogger) *Stream {
	s.warn = w
	return s
}

// Replay emits every valid kline synchronously and returns the number emitted.
// It stops early when ctx is cancelled.
func (s *Stream) Replay(ctx context.Context) (int, error) {
	emitted := 0
	for i := range s.klines {
		select {
		case <-ctx.Done():
			return emitted, ctx.Err()
		default:
		}

		k := s.klines[i]
		if err := k.Validate(); err != nil {
			s.warn.WarnOrError(err, "skipping kline #%d", i)
			continue
		}

		k.Closed = true
		s.EmitKLineClosed(k)
		emitted++
	}

	return emitted, nil
}
