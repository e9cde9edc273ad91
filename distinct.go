package seqz

import (
	"context"

	"github.com/zoobzio/metricz"
)

// Metric keys for DistinctBy.
const (
	DistinctEmittedTotal = metricz.Key("seqz.distinct.emitted.total")
	DistinctDroppedTotal = metricz.Key("seqz.distinct.dropped.total")
)

// DistinctBy emits an element only the first time its derived key is
// observed; later elements with an already-seen key are dropped. The key
// extractor runs on every element strictly in source order, single
// threaded. Key equality is Go value equality; use an Option-valued key
// when "no key" must itself be a trackable key distinct from every
// present key.
//
// The seen-key set grows monotonically for the lifetime of one pull pass
// and is discarded with the iterator.
//
// Example:
//
//	out, _ := seqz.Collect(ctx, seqz.DistinctBy(
//	    seqz.FromSlice([]string{"a", "aa", "b", "bb"}),
//	    func(s string) int { return len(s) },
//	))
//	// ["a" "aa"]
func DistinctBy[T any, K comparable](src *Sequence[T], key Fn[T, K]) *Sequence[T] {
	requireSource("DistinctBy", src)
	if key == nil {
		panic(nilArg("DistinctBy", "key extractor"))
	}
	obs := src.obs
	return derive(src, func(it Iterator[T]) Iterator[T] {
		return &distinctIter[T, K]{
			src:  it,
			key:  key,
			seen: make(map[K]struct{}),
			obs:  obs,
		}
	})
}

// Distinct is DistinctBy with the identity key: elements themselves must
// be comparable and each value is emitted once.
func Distinct[T comparable](src *Sequence[T]) *Sequence[T] {
	requireSource("Distinct", src)
	return DistinctBy(src, func(v T) T { return v })
}

type distinctIter[T any, K comparable] struct {
	src       Iterator[T]
	key       Fn[T, K]
	seen      map[K]struct{}
	obs       observability
	exhausted bool
}

func (it *distinctIter[T, K]) Next(ctx context.Context) (T, bool, error) {
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
		k := it.key(v)
		if _, dup := it.seen[k]; dup {
			it.obs.count(DistinctDroppedTotal)
			continue
		}
		it.seen[k] = struct{}{}
		it.obs.count(DistinctEmittedTotal)
		return v, true, nil
	}
}

func (it *distinctIter[T, K]) Close() error { return it.src.Close() }
