package seqz

import "context"

// Map transforms each element of src with fn. Pure transformations only -
// use MapCatching when the mapper can fail.
//
// Example:
//
//	doubled := seqz.Map(seqz.Range(0, 5), func(n int) int { return n * 2 })
func Map[T, O any](src *Sequence[T], fn Fn[T, O]) *Sequence[O] {
	requireSource("Map", src)
	if fn == nil {
		panic(nilArg("Map", "fn"))
	}
	return derive(src, func(it Iterator[T]) Iterator[O] {
		return &mapIter[T, O]{src: it, fn: fn}
	})
}

// Filter keeps only the elements of src that satisfy pred.
func Filter[T any](src *Sequence[T], pred Predicate[T]) *Sequence[T] {
	requireSource("Filter", src)
	if pred == nil {
		panic(nilArg("Filter", "predicate"))
	}
	return derive(src, func(it Iterator[T]) Iterator[T] {
		return &filterIter[T]{src: it, pred: pred}
	})
}

// Tap invokes fn as a side effect on each element, passing the element
// through unchanged. Use for logging, metrics, or debugging a chain.
func Tap[T any](src *Sequence[T], fn Consumer[T]) *Sequence[T] {
	requireSource("Tap", src)
	if fn == nil {
		panic(nilArg("Tap", "fn"))
	}
	return derive(src, func(it Iterator[T]) Iterator[T] {
		return &tapIter[T]{src: it, fn: fn}
	})
}

type mapIter[T, O any] struct {
	src       Iterator[T]
	fn        Fn[T, O]
	exhausted bool
}

func (it *mapIter[T, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
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
	return it.fn(v), true, nil
}

func (it *mapIter[T, O]) Close() error { return it.src.Close() }

type filterIter[T any] struct {
	src       Iterator[T]
	pred      Predicate[T]
	exhausted bool
}

func (it *filterIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
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
		if it.pred(v) {
			return v, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.src.Close() }

type tapIter[T any] struct {
	src       Iterator[T]
	fn        Consumer[T]
	exhausted bool
}

func (it *tapIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
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
	it.fn(v)
	return v, true, nil
}

func (it *tapIter[T]) Close() error { return it.src.Close() }
