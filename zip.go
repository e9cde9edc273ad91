package seqz

import "context"

// Zip pairs elements of two sequences positionally, ending when the
// shorter input is exhausted. Each pull takes from a before b, so b's
// surplus is never pulled; when b is the shorter input, at most one
// surplus element of a is consumed before its exhaustion is discovered.
// Instrumentation is inherited from the first sequence.
func Zip[A, B any](a *Sequence[A], b *Sequence[B]) *Sequence[Pair[A, B]] {
	requireSource("Zip", a)
	requireSource("Zip", b)
	return &Sequence[Pair[A, B]]{
		create: func(ctx context.Context) Iterator[Pair[A, B]] {
			return &zipIter[A, B]{a: a.create(ctx), b: b.create(ctx)}
		},
		obs: a.obs,
	}
}

type zipIter[A, B any] struct {
	a         Iterator[A]
	b         Iterator[B]
	exhausted bool
}

func (it *zipIter[A, B]) Next(ctx context.Context) (Pair[A, B], bool, error) {
	var zero Pair[A, B]
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	av, ok, err := it.a.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.exhausted = true
		return zero, false, nil
	}
	bv, ok, err := it.b.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.exhausted = true
		return zero, false, nil
	}
	return NewPair(av, bv), true, nil
}

func (it *zipIter[A, B]) Close() error {
	aErr := it.a.Close()
	if bErr := it.b.Close(); aErr == nil {
		return bErr
	}
	return aErr
}
