package seqz

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Name identifies a component for events and diagnostics.
type Name string

// Iterator provides pull-based, single-pass, ordered access to a stream of
// values. It is the uniform contract every source and operator speaks.
//
// Next returns (value, true, nil) for each element in order, then
// (zero, false, nil) exactly once when the stream is exhausted. Pulling
// again after exhaustion has been reported returns ErrOutOfElements - an
// exhausted sequence never hands out silent zero values. Once an element
// has been pulled it cannot be re-pulled; there is no rewind.
//
// Iterators are not safe for concurrent use. Each operator exclusively
// owns the upstream iterator it wraps; pulling must happen from one
// logical thread of control at a time.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) at exhaustion
	// and (zero, false, ErrOutOfElements) on every pull after that.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// observability is the instrumentation carried through an operator chain.
// It is attached to a head sequence via WithMetrics, WithTracer, or
// OnCapture and inherited by every operator constructed downstream.
type observability struct {
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[CaptureEvent]
	clock   clockz.Clock
}

// count increments a counter when a registry is attached.
func (o observability) count(key metricz.Key) {
	if o.metrics != nil {
		o.metrics.Counter(key).Inc()
	}
}

// now reads the attached clock, defaulting to the real clock. Event
// timestamps are stamped through this so tests can inject a fake clock.
func (o observability) now() time.Time {
	if o.clock != nil {
		return o.clock.Now()
	}
	return clockz.RealClock.Now()
}

// Sequence is a lazy description of a pull chain: an abstract, ordered,
// single-pass, possibly-infinite producer of elements of type T.
//
// A Sequence does no work when constructed. Operators wrap a Sequence and
// return a new Sequence of the same pull shape; values flow only when a
// terminal (Collect, ForEach, First, ...) instantiates the chain and pulls.
// Each operator exclusively owns the upstream sequence it wraps - wiring
// one upstream into two downstream operators and pulling both is a
// contract violation.
type Sequence[T any] struct {
	create func(ctx context.Context) Iterator[T]
	obs    observability
}

// Iter instantiates the chain and returns its raw Iterator. The caller
// must Close it. Most callers want a terminal instead.
func (s *Sequence[T]) Iter(ctx context.Context) Iterator[T] {
	return s.create(ctx)
}

// WithMetrics attaches a metrics registry to the sequence. Stateful
// operators constructed downstream record counters into it (chunks and
// windows emitted, duplicates dropped, failures captured). Returns the
// receiver for chaining.
func (s *Sequence[T]) WithMetrics(metrics *metricz.Registry) *Sequence[T] {
	s.obs.metrics = metrics
	return s
}

// WithTracer attaches a tracer to the sequence. Terminals constructed
// over the chain open a span per drain. Returns the receiver for chaining.
func (s *Sequence[T]) WithTracer(tracer *tracez.Tracer) *Sequence[T] {
	s.obs.tracer = tracer
	return s
}

// WithClock sets the clock used to stamp capture events. Defaults to the
// real clock; tests inject clockz.NewFakeClock(). Returns the receiver
// for chaining.
func (s *Sequence[T]) WithClock(clock clockz.Clock) *Sequence[T] {
	s.obs.clock = clock
	return s
}

// OnCapture registers a handler invoked whenever a fault-capturing
// operator downstream of this sequence reifies a failure (see MapCatching
// and FilterCatching). The handler runs asynchronously via hookz.
//
// Register before constructing the downstream operators; instrumentation
// is inherited at construction time.
func (s *Sequence[T]) OnCapture(handler func(context.Context, CaptureEvent) error) error {
	if handler == nil {
		panic(nilArg("OnCapture", "handler"))
	}
	if s.obs.hooks == nil {
		s.obs.hooks = hookz.New[CaptureEvent]()
	}
	_, err := s.obs.hooks.Hook(EventCaptured, handler)
	return err
}

// Close shuts down hooks registered on this sequence. Call once, on the
// sequence OnCapture was called on, after the last terminal has finished.
func (s *Sequence[T]) Close() error {
	if s.obs.hooks != nil {
		s.obs.hooks.Close()
	}
	return nil
}

// derive builds a downstream sequence over src's iterator, inheriting
// instrumentation. Every operator constructor funnels through this.
func derive[I, O any](src *Sequence[I], f func(Iterator[I]) Iterator[O]) *Sequence[O] {
	return &Sequence[O]{
		create: func(ctx context.Context) Iterator[O] {
			return f(src.create(ctx))
		},
		obs: src.obs,
	}
}

// --- Sources ---

// FromSlice creates a sequence over the elements of a slice, in order.
// The slice is not copied; do not mutate it while pulling.
func FromSlice[T any](items []T) *Sequence[T] {
	return &Sequence[T]{
		create: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// FromFunc creates a sequence from a factory that produces an Iterator.
// The factory runs once per terminal, when the chain is instantiated.
// The produced iterator is normalized to the strict pull contract:
// pulls past exhaustion report ErrOutOfElements even if the wrapped
// iterator would silently repeat its exhaustion signal.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Sequence[T] {
	if fn == nil {
		panic(nilArg("FromFunc", "factory"))
	}
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &strictIter[T]{src: fn(ctx)}
		},
	}
}

// FromChannel creates a sequence that pulls from a channel until it is
// closed. A pull blocks on the channel or on context cancellation,
// whichever comes first.
func FromChannel[T any](ch <-chan T) *Sequence[T] {
	if ch == nil {
		panic(nilArg("FromChannel", "channel"))
	}
	return &Sequence[T]{
		create: func(_ context.Context) Iterator[T] {
			return &chanIter[T]{ch: ch}
		},
	}
}

// Generate creates a sequence from a stateful generator function. Each
// pull calls fn; returning false signals exhaustion. The sequence may be
// infinite - pair with Take, TakeWhileInclusive, or First.
func Generate[T any](fn func() (T, bool)) *Sequence[T] {
	if fn == nil {
		panic(nilArg("Generate", "generator"))
	}
	return &Sequence[T]{
		create: func(_ context.Context) Iterator[T] {
			return &genIter[T]{fn: fn}
		},
	}
}

// Range creates a sequence of the integers in [start, end), ascending.
// Empty when end <= start.
func Range(start, end int) *Sequence[int] {
	return &Sequence[int]{
		create: func(_ context.Context) Iterator[int] {
			return &rangeIter{next: start, end: end}
		},
	}
}

// --- Source iterators ---

type sliceIter[T any] struct {
	items     []T
	index     int
	exhausted bool
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	if it.index >= len(it.items) {
		it.exhausted = true
		return zero, false, nil
	}
	v := it.items[it.index]
	it.index++
	return v, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

// strictIter normalizes an arbitrary iterator to the strict pull contract.
type strictIter[T any] struct {
	src       Iterator[T]
	exhausted bool
}

func (it *strictIter[T]) Next(ctx context.Context) (T, bool, error) {
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
	return v, true, nil
}

func (it *strictIter[T]) Close() error { return it.src.Close() }

type chanIter[T any] struct {
	ch        <-chan T
	exhausted bool
}

func (it *chanIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	select {
	case v, open := <-it.ch:
		if !open {
			it.exhausted = true
			return zero, false, nil
		}
		return v, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *chanIter[T]) Close() error { return nil }

type genIter[T any] struct {
	fn        func() (T, bool)
	exhausted bool
}

func (it *genIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if it.exhausted {
		return zero, false, ErrOutOfElements
	}
	v, ok := it.fn()
	if !ok {
		it.exhausted = true
		return zero, false, nil
	}
	return v, true, nil
}

func (it *genIter[T]) Close() error { return nil }

type rangeIter struct {
	next      int
	end       int
	exhausted bool
}

func (it *rangeIter) Next(_ context.Context) (int, bool, error) {
	if it.exhausted {
		return 0, false, ErrOutOfElements
	}
	if it.next >= it.end {
		it.exhausted = true
		return 0, false, nil
	}
	v := it.next
	it.next++
	return v, true, nil
}

func (it *rangeIter) Close() error { return nil }
