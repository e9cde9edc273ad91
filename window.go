package seqz

import (
	"context"

	"github.com/zoobzio/metricz"
)

// Metric keys for Window.
const (
	WindowEmittedTotal   = metricz.Key("seqz.window.emitted.total")
	WindowDiscardedTotal = metricz.Key("seqz.window.discarded.total")
)

// Window emits sliding windows of size consecutive elements, advancing by
// one element per window. Trailing partial windows are not emitted; a
// source shorter than size yields nothing. Equivalent to
// WindowStep(src, size, 1, false).
func Window[T any](src *Sequence[T], size int) *Sequence[[]T] {
	requireSource("Window", src)
	return WindowStep(src, size, 1, false)
}

// WindowStep emits windows of up to size consecutive elements, advancing
// the window start by step elements between emissions.
//
// The operator keeps a buffer of at most size pulled-but-unemitted
// elements. Before testing for more output it tops the buffer up until it
// holds size elements or the source is exhausted. A window is available
// when the buffer is non-empty and either holds exactly size elements, or
// partial is set and the source is exhausted (the trailing partial
// window). Emitting snapshots the buffer into a fresh slice, then drops
// up to step elements from its head - fewer when the buffer is shorter.
//
// When step > size, the elements between consecutive windows are pulled
// from the source and discarded without being buffered; this gap-skipping
// is intentional.
//
// size and step must each be positive; WindowStep panics with
// ErrInvalidArgument otherwise, before any pulling occurs.
//
// Example:
//
//	windows, _ := seqz.Collect(ctx, seqz.WindowStep(seqz.FromSlice([]int{1, 2, 3, 4, 5}), 3, 2, false))
//	// [[1 2 3] [3 4 5]]
func WindowStep[T any](src *Sequence[T], size, step int, partial bool) *Sequence[[]T] {
	requireSource("WindowStep", src)
	requirePositive("WindowStep", "size", size)
	requirePositive("WindowStep", "step", step)
	obs := src.obs
	return derive(src, func(it Iterator[T]) Iterator[[]T] {
		return &windowIter[T]{
			src:     it,
			size:    size,
			step:    step,
			partial: partial,
			buffer:  make([]T, 0, size),
			obs:     obs,
		}
	})
}

// windowIter owns the bounded window buffer: push at the tail while
// topping up, drop step elements from the head after each emission.
type windowIter[T any] struct {
	src       Iterator[T]
	size      int
	step      int
	partial   bool
	buffer    []T
	obs       observability
	srcDone   bool
	exhausted bool
}

// topUp pulls from the source until the buffer holds size elements or the
// source is exhausted. Never pulls a source that already reported
// exhaustion.
func (it *windowIter[T]) topUp(ctx context.Context) error {
	for !it.srcDone && len(it.buffer) < it.size {
		v, ok, err := it.src.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			it.srcDone = true
			return nil
		}
		it.buffer = append(it.buffer, v)
	}
	return nil
}

func (it *windowIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.exhausted {
		return nil, false, ErrOutOfElements
	}
	if err := it.topUp(ctx); err != nil {
		return nil, false, err
	}
	if len(it.buffer) == 0 {
		it.exhausted = true
		return nil, false, nil
	}
	if len(it.buffer) < it.size && !(it.partial && it.srcDone) {
		// Trailing elements too few for a full window and partial
		// windows are disabled: nothing more to emit.
		it.buffer = it.buffer[:0]
		it.exhausted = true
		return nil, false, nil
	}

	window := make([]T, len(it.buffer))
	copy(window, it.buffer)

	drop := it.step
	if drop > len(it.buffer) {
		drop = len(it.buffer)
	}
	it.buffer = append(it.buffer[:0], it.buffer[drop:]...)

	// step > size: skip the gap by pulling and discarding, not buffering.
	for skip := it.step - drop; skip > 0 && !it.srcDone; skip-- {
		_, ok, err := it.src.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.srcDone = true
			break
		}
		it.obs.count(WindowDiscardedTotal)
	}

	it.obs.count(WindowEmittedTotal)
	return window, true, nil
}

func (it *windowIter[T]) Close() error { return it.src.Close() }
