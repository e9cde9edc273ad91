// Package seqz provides lazy, pull-based sequence transformations and
// small functional-composition helpers for Go.
//
// # Overview
//
// seqz turns any ordered, single-pass producer of values into a Sequence
// that can be transformed through a chain of operators - grouping,
// windowing, boundary-inclusive take/drop, deduplication, fault capture -
// and drained by a terminal reducer. Sequences may be infinite; nothing
// is pulled until a terminal runs, and each operator pulls from its
// upstream only on demand.
//
// # Core Concepts
//
// The library is built around two types:
//
//   - Iterator[T]: the uniform pull contract with
//     Next(context.Context) (T, bool, error) and Close() error
//   - Sequence[T]: a lazy description of a pull chain; operators wrap a
//     Sequence and return a new one, terminals instantiate and drain it
//
// Sequences are single-pass: once an element is pulled it cannot be
// re-pulled, and each operator exclusively owns the upstream it wraps.
// Evaluation is strictly single-threaded pull - no operator spawns a
// goroutine, and the chain adds no blocking beyond passing each pull
// through to the source.
//
// # Sources
//
//	seqz.FromSlice([]int{1, 2, 3})      // slice, in order
//	seqz.FromChannel(ch)                // until the channel closes
//	seqz.Generate(next)                 // stateful generator, may be infinite
//	seqz.Range(0, 100)                  // integers in [0, 100)
//	seqz.FromFunc(openCursor)           // adapt any Iterator factory
//
// # Operators
//
// Grouping:
//
//	seqz.Chunk(src, 3)                  // [[a b c] [d e f] [g]]
//	seqz.Window(src, 3)                 // sliding windows, step 1
//	seqz.WindowStep(src, 3, 2, false)   // size 3, advance 2, no partials
//
// Boundaries (inclusive - the first failing element is part of the
// affected region):
//
//	seqz.TakeWhileInclusive(src, pred)  // emit run + first failure, stop
//	seqz.DropWhileInclusive(src, pred)  // skip run + first failure, emit rest
//	seqz.Take(src, 10)
//	seqz.Drop(src, 10)
//
// Deduplication:
//
//	seqz.DistinctBy(src, key)           // first occurrence per key wins
//	seqz.Distinct(src)
//
// Fault capture (per-element failures become Result values instead of
// aborting the pull):
//
//	seqz.MapCatching(src, parse)        // Success(out) or Failure(err), 1:1
//	seqz.FilterCatching(src, check)     // Success(v), nothing, or Failure(err)
//
// Plus Map, Filter, Tap, Concat, Zip, and Throttle.
//
// # Terminals
//
//	seqz.Collect(ctx, src)              // drain into a slice
//	seqz.ForEach(ctx, src, fn)
//	seqz.Reduce(ctx, src, init, fn)
//	seqz.Count(ctx, src)
//	seqz.First(ctx, src)                // Option[T], pulls at most one
//	seqz.Last(ctx, src)                 // Option[T], drains fully
//	seqz.Single(ctx, src)               // Some only for exactly one element
//
// First, Last, and Single return Option[T], keeping "present holding a
// zero value" distinct from "absent".
//
// # Contract Enforcement
//
// Construction-time violations fail fast, before any laziness is
// introduced: nil sources or functions panic wrapping ErrNilArgument, and
// non-positive sizes or steps panic wrapping ErrInvalidArgument. Pulling
// a sequence that has already reported exhaustion returns
// ErrOutOfElements rather than a silent zero value. Per-element faults in
// non-capturing operators are not caught - they surface through Next's
// error slot and abort iteration. There is no retry logic anywhere.
//
// # Memoization
//
// Memoize wraps a single-argument function (Memoize2 a two-argument one,
// keyed by a Pair) with at-most-once evaluation per key under concurrent
// access, optional TTL expiry on an injectable clock, and hit/miss
// metrics:
//
//	var geo = seqz.Memoize("geoip", lookupCountry, seqz.WithTTL(time.Hour))
//	country := geo.Get(ctx, ip)
//
// # Observability
//
// Instrumentation is opt-in and attaches at the head of a chain:
//
//	registry := metricz.New()
//	tracer := tracez.New()
//	src := seqz.FromSlice(items).WithMetrics(registry).WithTracer(tracer)
//
// Operators constructed downstream inherit it: stateful operators count
// chunks and windows emitted, duplicates dropped, and failures captured;
// terminals open one span per drain. OnCapture registers an async hook
// invoked whenever a fault-capturing operator reifies a failure.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/zoobzio/seqz"
//	)
//
//	func main() {
//	    evens := seqz.Filter(seqz.Range(0, 20), func(n int) bool {
//	        return n%2 == 0
//	    })
//	    chunks, _ := seqz.Collect(context.Background(), seqz.Chunk(evens, 4))
//	    fmt.Println(chunks) // [[0 2 4 6] [8 10 12 14] [16 18]]
//	}
package seqz
