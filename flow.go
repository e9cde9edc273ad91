package seqz

import "context"

// Take emits at most n elements of src, then stops without pulling
// further. n must be non-negative; Take(src, 0) is an empty sequence.
func Take[T any](src *Sequence[T], n int) *Sequence[T] {
	requireSource("Take", src)
	if n < 0 {
		panic(invalidArg("Take", "n must be non-negative"))
	}
	return derive(src, func(it Iterator[T]) Iterator[T] {
		return &takeIter[T]{src: it, remaining: n}
	})
}

// Drop skips the first n elements of src and emits the remainder. n must
// be non-negative.
func Drop[T any](src *Sequence[T], n int) *Sequence[T] {
	requireSource("Drop", src)
	if n < 0 {
		panic(invalidArg("Drop", "n must be non-negative"))
	}
	return derive(src, func(it Iterator[T]) Iterator[T] {
		return &dropIter[T]{src: it, skip: n}
	})
}

// Concat joins sequences end to end: all elements of the first, then the
// second, and so on. Instrumentation is inherited from the first
// sequence.
func Concat[T any](seqs ...*Sequence[T]) *Sequence[T] {
	for _, s := range seqs {
		if s == nil {
			panic(nilArg("Concat", "sequence"))
		}
	}
	var obs observability
	if len(seqs) > 0 {
		obs = seqs[0].obs
	}
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			iters := make([]Iterator[T], len(seqs))
			for i, s := range seqs {
				iters[i] = s.create(ctx)
			}
			return &concatIter[T]{iters: iters}
		},
		obs: obs,
	}
}

type takeIter[T any] struct {
	src       Iterator[T]
	remaining int
	exhausted bool
}

func (it *takeIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	if it.remaining == 0 {
		it.exhausted = true
		return zero, false, nil
	}
	v, ok, err := it.src.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.exhausted = true
		return zero, false, nil
	}
	it.remaining--
	return v, true, nil
}

func (it *takeIter[T]) Close() error { return it.src.Close() }

type dropIter[T any] struct {
	src       Iterator[T]
	skip      int
	exhausted bool
}

func (it *dropIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	for it.skip > 0 {
		_, ok, err := it.src.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			it.skip = 0
			it.exhausted = true
			return zero, false, nil
		}
		it.skip--
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

func (it *dropIter[T]) Close() error { return it.src.Close() }

type concatIter[T any] struct {
	iters     []Iterator[T]
	index     int
	exhausted bool
}

func (it *concatIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	for it.index < len(it.iters) {
		v, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return v, true, nil
		}
		it.index++
	}
	it.exhausted = true
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, iter := range it.iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
