package seqz

import (
	"context"

	"github.com/zoobzio/metricz"
)

// Metric keys for Chunk. Recorded when a registry is attached upstream
// via Sequence.WithMetrics.
const (
	ChunkEmittedTotal  = metricz.Key("seqz.chunk.emitted.total")
	ChunkElementsTotal = metricz.Key("seqz.chunk.elements.total")
)

// Chunk groups consecutive elements of src into slices of up to size
// elements. Each group is filled greedily: the operator pulls until size
// elements are collected or the source is exhausted. Only the final group
// may be partial; empty groups are never emitted, so an empty source
// yields no groups at all. Concatenating the emitted groups in order
// reproduces the source exactly.
//
// size must be positive; Chunk panics with ErrInvalidArgument otherwise,
// before any pulling occurs.
//
// Example:
//
//	groups, _ := seqz.Collect(ctx, seqz.Chunk(seqz.Range(0, 7), 3))
//	// [[0 1 2] [3 4 5] [6]]
func Chunk[T any](src *Sequence[T], size int) *Sequence[[]T] {
	requireSource("Chunk", src)
	requirePositive("Chunk", "size", size)
	obs := src.obs
	return derive(src, func(it Iterator[T]) Iterator[[]T] {
		return &chunkIter[T]{src: it, size: size, obs: obs}
	})
}

// chunkIter is the pull state machine behind Chunk: one pending group
// filled per Next call, a srcDone latch so the upstream is never pulled
// past its own exhaustion, and an exhausted latch enforcing the strict
// pull contract downstream.
type chunkIter[T any] struct {
	src       Iterator[T]
	size      int
	obs       observability
	srcDone   bool
	exhausted bool
}

func (it *chunkIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.exhausted {
		return nil, false, ErrOutOfElements
	}
	if it.srcDone {
		it.exhausted = true
		return nil, false, nil
	}
	chunk := make([]T, 0, it.size)
	for len(chunk) < it.size {
		v, ok, err := it.src.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.srcDone = true
			break
		}
		chunk = append(chunk, v)
	}
	if len(chunk) == 0 {
		it.exhausted = true
		return nil, false, nil
	}
	it.obs.count(ChunkEmittedTotal)
	if it.obs.metrics != nil {
		for range chunk {
			it.obs.metrics.Counter(ChunkElementsTotal).Inc()
		}
	}
	return chunk, true, nil
}

func (it *chunkIter[T]) Close() error { return it.src.Close() }
