package seqz

import "context"

// TakeWhileInclusive emits elements while pred holds, and also emits the
// first element for which pred fails before stopping. The failing
// boundary element IS part of the output - this is what distinguishes the
// operator from a conventional take-while.
//
// Once stopped, the upstream is never pulled again, even though it may
// not be exhausted; subsequent pulls on the operator report exhaustion.
//
// Example:
//
//	out, _ := seqz.Collect(ctx, seqz.TakeWhileInclusive(
//	    seqz.FromSlice([]int{1, 2, 3, 4}),
//	    func(n int) bool { return n < 3 },
//	))
//	// [1 2 3]
func TakeWhileInclusive[T any](src *Sequence[T], pred Predicate[T]) *Sequence[T] {
	requireSource("TakeWhileInclusive", src)
	if pred == nil {
		panic(nilArg("TakeWhileInclusive", "predicate"))
	}
	return derive(src, func(it Iterator[T]) Iterator[T] {
		return &takeWhileInclusiveIter[T]{src: it, pred: pred}
	})
}

// DropWhileInclusive skips the maximal leading run of elements satisfying
// pred plus exactly one more element - the first element that failed the
// predicate - then emits everything remaining. When the source is
// exhausted while every element still satisfies pred, there is no
// boundary element to skip and the output is empty.
//
// Example:
//
//	out, _ := seqz.Collect(ctx, seqz.DropWhileInclusive(
//	    seqz.FromSlice([]int{1, 2, 3, 4}),
//	    func(n int) bool { return n < 3 },
//	))
//	// [4]
func DropWhileInclusive[T any](src *Sequence[T], pred Predicate[T]) *Sequence[T] {
	requireSource("DropWhileInclusive", src)
	if pred == nil {
		panic(nilArg("DropWhileInclusive", "predicate"))
	}
	return derive(src, func(it Iterator[T]) Iterator[T] {
		return &dropWhileInclusiveIter[T]{src: it, pred: pred}
	})
}

type takeWhileInclusiveIter[T any] struct {
	src       Iterator[T]
	pred      Predicate[T]
	stopped   bool
	exhausted bool
}

func (it *takeWhileInclusiveIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	if it.stopped {
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
	if !it.pred(v) {
		// Emit the failing element; stop on the pull after it.
		it.stopped = true
	}
	return v, true, nil
}

func (it *takeWhileInclusiveIter[T]) Close() error { return it.src.Close() }

type dropWhileInclusiveIter[T any] struct {
	src       Iterator[T]
	pred      Predicate[T]
	dropped   bool
	exhausted bool
}

func (it *dropWhileInclusiveIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	if !it.dropped {
		it.dropped = true
		for {
			v, ok, err := it.src.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if !ok {
				// Every element matched; no boundary element exists.
				it.exhausted = true
				return zero, false, nil
			}
			if !it.pred(v) {
				// The boundary element is skipped along with the run.
				break
			}
		}
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

func (it *dropWhileInclusiveIter[T]) Close() error { return it.src.Close() }
