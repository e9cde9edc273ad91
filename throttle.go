package seqz

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Throttle limits how fast elements are pulled from src, using a token
// bucket: a sustained perSecond rate with bursts of up to burst elements.
// Each pull waits for a token before pulling upstream, blocking on the
// pull context - cancellation while waiting surfaces as the context's
// error.
//
// The limiter lives in the iterator, so each terminal run gets a fresh
// bucket; the operator adds no blocking beyond the token wait.
//
// perSecond must be positive and burst at least 1; Throttle panics with
// ErrInvalidArgument otherwise.
func Throttle[T any](src *Sequence[T], perSecond float64, burst int) *Sequence[T] {
	requireSource("Throttle", src)
	if perSecond <= 0 {
		panic(invalidArg("Throttle", fmt.Sprintf("perSecond must be positive, got %v", perSecond)))
	}
	requirePositive("Throttle", "burst", burst)
	return derive(src, func(it Iterator[T]) Iterator[T] {
		return &throttleIter[T]{
			src:     it,
			limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		}
	})
}

type throttleIter[T any] struct {
	src       Iterator[T]
	limiter   *rate.Limiter
	exhausted bool
}

func (it *throttleIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	if err := it.limiter.Wait(ctx); err != nil {
		return zero, false, err
	}
	v, ok, err := it.src.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.exhausted = true
		return zero, false, nil
	}
	return v, true, nil
}

func (it *throttleIter[T]) Close() error { return it.src.Close() }
