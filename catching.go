package seqz

import (
	"context"
	"time"

	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
)

// Metric keys for the fault-capturing operators.
const (
	CaptureSuccessTotal = metricz.Key("seqz.capture.success.total")
	CaptureFailureTotal = metricz.Key("seqz.capture.failure.total")
)

// Hook event key for captured failures.
const (
	EventCaptured = hookz.Key("seqz.captured")
)

// CaptureEvent describes one reified failure. Emitted via hookz whenever
// MapCatching or FilterCatching converts a per-element fault into a
// Failure value, allowing external systems to observe capture decisions
// without being in the data path.
type CaptureEvent struct {
	Op        Name      // Operator that captured the failure
	Err       error     // The captured cause
	Timestamp time.Time // When the failure was captured
}

// MapCatching transforms each element of src with fn, reifying per-element
// faults as data: an element for which fn returns a non-nil error yields
// Failure(err) in the output; every other element yields Success(result).
// Output is strictly 1:1 with input, failures appearing in the position of
// the element that caused them, and a fault never terminates iteration.
//
// Only error returns are captured. A panic inside fn is not recovered and
// propagates to the caller of the pull that triggered it - that keeps
// MapCatching's contract distinct from a blanket recover and matches the
// rest of the library, where panics always mean programmer error.
func MapCatching[T, O any](src *Sequence[T], fn func(T) (O, error)) *Sequence[Result[O]] {
	requireSource("MapCatching", src)
	if fn == nil {
		panic(nilArg("MapCatching", "fn"))
	}
	obs := src.obs
	return derive(src, func(it Iterator[T]) Iterator[Result[O]] {
		return &mapCatchingIter[T, O]{src: it, fn: fn, obs: obs}
	})
}

// FilterCatching filters src with a predicate that can fail. For each
// element: a (true, nil) return emits Success(element); (false, nil)
// emits nothing; a non-nil error emits Failure(err) and iteration
// continues. A predicate fault therefore never terminates the sequence
// early. Output cardinality is 0 or 1 per input element.
func FilterCatching[T any](src *Sequence[T], pred func(T) (bool, error)) *Sequence[Result[T]] {
	requireSource("FilterCatching", src)
	if pred == nil {
		panic(nilArg("FilterCatching", "predicate"))
	}
	obs := src.obs
	return derive(src, func(it Iterator[T]) Iterator[Result[T]] {
		return &filterCatchingIter[T]{src: it, pred: pred, obs: obs}
	})
}

// capture records a reified failure on the chain's instrumentation.
// Timestamps come from the chain's clock so tests can inject a fake one.
func capture(ctx context.Context, obs observability, op Name, err error) {
	obs.count(CaptureFailureTotal)
	if obs.hooks != nil {
		_ = obs.hooks.Emit(ctx, EventCaptured, CaptureEvent{ //nolint:errcheck
			Op:        op,
			Err:       err,
			Timestamp: obs.now(),
		})
	}
}

type mapCatchingIter[T, O any] struct {
	src       Iterator[T]
	fn        func(T) (O, error)
	obs       observability
	exhausted bool
}

func (it *mapCatchingIter[T, O]) Next(ctx context.Context) (Result[O], bool, error) {
	var zero Result[O]
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	v, ok, err := it.src.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.exhausted = true
		return zero, false, nil
	}
	out, ferr := it.fn(v)
	if ferr != nil {
		capture(ctx, it.obs, "MapCatching", ferr)
		return Failure[O](ferr), true, nil
	}
	it.obs.count(CaptureSuccessTotal)
	return Success(out), true, nil
}

func (it *mapCatchingIter[T, O]) Close() error { return it.src.Close() }

type filterCatchingIter[T any] struct {
	src       Iterator[T]
	pred      func(T) (bool, error)
	obs       observability
	exhausted bool
}

func (it *filterCatchingIter[T]) Next(ctx context.Context) (Result[T], bool, error) {
	var zero Result[T]
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	for {
		v, ok, err := it.src.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			it.exhausted = true
			return zero, false, nil
		}
		keep, perr := it.pred(v)
		if perr != nil {
			capture(ctx, it.obs, "FilterCatching", perr)
			return Failure[T](perr), true, nil
		}
		if keep {
			it.obs.count(CaptureSuccessTotal)
			return Success(v), true, nil
		}
	}
}

func (it *filterCatchingIter[T]) Close() error { return it.src.Close() }
