// Package window provides a fixed-capacity lag window: a ring buffer that is
// addressed by how many pushes ago a value was stored.
//
// The window is pre-filled with a fill value at construction, so its length is
// always its capacity and a lookup never runs past the stored history.
package window

// Window keeps the last Cap() pushed values.
//
// Last(0) is the most recently pushed value and Last(i) is the value pushed i
// pushes before it. Lookups beyond the pushed history return the fill value.
type Window[T any] struct {
	buf    []T
	fill   T
	head   int // index of the newest value
	pushes int
}

// New creates a window holding capacity values, all set to fill.
// A capacity below 1 is treated as 1.
func New[T any](capacity int, fill T) *Window[T] {
	if capacity < 1 {
		capacity = 1
	}

	buf := make([]T, capacity)
	for i := range buf {
		buf[i] = fill
	}

	return &Window[T]{
		buf:  buf,
		fill: fill,
		head: capacity - 1,
	}
}

// Push stores v as the newest value and returns the evicted oldest value.
func (w *Window[T]) Push(v T) (evicted T) {
	w.head++
	if w.head == len(w.buf) {
		w.head = 0
	}

	evicted = w.buf[w.head]
	w.buf[w.head] = v
	w.pushes++
	return evicted
}

// Last returns the value pushed lag pushes before the newest one.
// Out of range lags return the fill value.
func (w *Window[T]) Last(lag int) T {
	if lag < 0 || lag >= len(w.buf) {
		return w.fill
	}

	i := w.head - lag
	if i < 0 {
		i += len(w.buf)
	}
	return w.buf[i]
}

// Len is always the capacity.
func (w *Window[T]) Len() int {
	return len(w.buf)
}

func (w *Window[T]) Cap() int {
	return len(w.buf)
}

// Filled returns how many slots hold pushed values rather than the fill value.
func (w *Window[T]) Filled() int {
	if w.pushes > len(w.buf) {
		return len(w.buf)
	}
	return w.pushes
}

// Pushes returns the total number of pushes since construction.
func (w *Window[T]) Pushes() int {
	return w.pushes
}

// Tail returns a copy of the newest size values ordered from oldest to newest.
func (w *Window[T]) Tail(size int) []T {
	if size > len(w.buf) {
		size = len(w.buf)
	}
	if size < 0 {
		size = 0
	}

	out := make([]T, size)
	for i := 0; i < size; i++ {
		out[size-1-i] = w.Last(i)
	}
	return out
}

// Slice returns a copy of every slot ordered from oldest to newest.
func (w *Window[T]) Slice() []T {
	return w.Tail(len(w.buf))
}
