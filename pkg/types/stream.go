package types

// KLineClosedEmitter is implemented by every candle feed.
type KLineClosedEmitter interface {
	OnKLineClosed(cb func(k KLine))
}

//go:generate callbackgen -type StandardStream
type StandardStream struct {
	kLineClosedCallbacks []func(k KLine)
}

func NewStandardStream() StandardStream {
	return StandardStream{}
}
