package seqz

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys for Memo observability.
const (
	MemoHitsTotal        = metricz.Key("seqz.memo.hits.total")
	MemoMissesTotal      = metricz.Key("seqz.memo.misses.total")
	MemoEvaluationsTotal = metricz.Key("seqz.memo.evaluations.total")
	MemoExpirationsTotal = metricz.Key("seqz.memo.expirations.total")
	MemoEntries          = metricz.Key("seqz.memo.entries")
)

// Span names and tags for Memo.
const (
	MemoGetSpan = tracez.Key("seqz.memo.get")

	MemoTagName = tracez.Tag("seqz.memo.name")
	MemoTagHit  = tracez.Tag("seqz.memo.hit")
)

// Hook event keys for Memo.
const (
	MemoEventComputed = hookz.Key("seqz.memo.computed")
	MemoEventExpired  = hookz.Key("seqz.memo.expired")
)

// MemoEvent describes a cache lifecycle event: a key's value being
// computed, or an entry expiring under a TTL.
type MemoEvent struct {
	Name      Name      // Memo name
	Key       any       // The key involved
	Timestamp time.Time // When the event occurred
}

// Memo memoizes a single-argument function with at-most-once evaluation
// per key under concurrent access.
//
// The first Get for a key evaluates the wrapped function exactly once and
// stores the result; concurrent Gets for the same key wait for that one
// evaluation rather than racing their own, while Gets for different keys
// proceed independently without blocking each other. Entries are
// tri-state by construction: a key absent from the map is not-computed,
// and a stored entry holds the computed value once its sync.Once has run -
// a function that legitimately returns the zero value (or nil) is
// memoized like any other result and never re-evaluated, because
// "computed zero" is a present entry, not an absent one.
//
// CRITICAL: Memo is a STATEFUL component. Create it once (typically a
// package-level variable) and share it; a fresh Memo per call site caches
// nothing.
//
// With WithTTL, entries expire a fixed duration after computation,
// measured on the configured clock, and the next Get recomputes with the
// same at-most-once discipline per generation.
//
// Example:
//
//	var userByID = seqz.Memoize("user-by-id", loadUser, seqz.WithTTL(5*time.Minute))
//
//	func handler(ctx context.Context, id string) User {
//	    return userByID.Get(ctx, id)
//	}
type Memo[K comparable, V any] struct {
	name    Name
	fn      func(K) V
	ttl     time.Duration
	clock   clockz.Clock
	entries sync.Map // K -> *memoEntry[V]
	size    atomic.Int64

	// Observability
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[MemoEvent]
}

// memoEntry is one cache generation for one key. once guards the single
// evaluation; value and computedAt are written inside once and safely
// visible to every waiter that passes through it.
type memoEntry[V any] struct {
	once       sync.Once
	value      V
	computedAt time.Time
}

// MemoOption configures a Memo at construction.
type MemoOption func(*memoConfig)

type memoConfig struct {
	ttl time.Duration
}

// WithTTL expires each entry the given duration after its computation.
// d must be positive.
func WithTTL(d time.Duration) MemoOption {
	if d <= 0 {
		panic(invalidArg("WithTTL", "ttl must be positive"))
	}
	return func(cfg *memoConfig) {
		cfg.ttl = d
	}
}

// Memoize creates a Memo over fn. fn must be non-nil; it should be pure
// with respect to its key, since its result is reused for every later Get
// of that key.
func Memoize[K comparable, V any](name Name, fn func(K) V, opts ...MemoOption) *Memo[K, V] {
	if fn == nil {
		panic(nilArg("Memoize", "fn"))
	}
	var cfg memoConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	registry := metricz.New()
	registry.Counter(MemoHitsTotal)
	registry.Counter(MemoMissesTotal)
	registry.Counter(MemoEvaluationsTotal)
	registry.Counter(MemoExpirationsTotal)
	registry.Gauge(MemoEntries)

	return &Memo[K, V]{
		name:    name,
		fn:      fn,
		ttl:     cfg.ttl,
		metrics: registry,
		tracer:  tracez.New(),
		hooks:   hookz.New[MemoEvent](),
	}
}

// WithClock sets the clock used for TTL accounting. Call before the first
// Get. Defaults to the real clock; tests inject clockz.NewFakeClock().
func (m *Memo[K, V]) WithClock(clock clockz.Clock) *Memo[K, V] {
	m.clock = clock
	return m
}

func (m *Memo[K, V]) getClock() clockz.Clock {
	if m.clock != nil {
		return m.clock
	}
	return clockz.RealClock
}

// Get returns the memoized result for key, evaluating the wrapped
// function at most once per key (per TTL generation). Safe for concurrent
// use.
func (m *Memo[K, V]) Get(ctx context.Context, key K) V {
	ctx, span := m.tracer.StartSpan(ctx, MemoGetSpan)
	defer span.Finish()
	span.SetTag(MemoTagName, string(m.name))

	clock := m.getClock()
	for {
		actual, _ := m.entries.LoadOrStore(key, &memoEntry[V]{})
		entry := actual.(*memoEntry[V]) //nolint:errcheck

		evaluated := false
		entry.once.Do(func() {
			entry.value = m.fn(key)
			entry.computedAt = clock.Now()
			evaluated = true
		})

		if evaluated {
			m.metrics.Gauge(MemoEntries).Set(float64(m.size.Add(1)))
			m.metrics.Counter(MemoMissesTotal).Inc()
			m.metrics.Counter(MemoEvaluationsTotal).Inc()
			span.SetTag(MemoTagHit, "false")
			_ = m.hooks.Emit(ctx, MemoEventComputed, MemoEvent{ //nolint:errcheck
				Name:      m.name,
				Key:       key,
				Timestamp: entry.computedAt,
			})
			return entry.value
		}

		if m.ttl > 0 && clock.Since(entry.computedAt) >= m.ttl {
			// This generation has expired. Retire it and recompute;
			// CompareAndDelete lets exactly one caller record the
			// expiry even under contention.
			if m.entries.CompareAndDelete(key, entry) {
				m.metrics.Gauge(MemoEntries).Set(float64(m.size.Add(-1)))
				m.metrics.Counter(MemoExpirationsTotal).Inc()
				_ = m.hooks.Emit(ctx, MemoEventExpired, MemoEvent{ //nolint:errcheck
					Name:      m.name,
					Key:       key,
					Timestamp: clock.Now(),
				})
			}
			continue
		}

		m.metrics.Counter(MemoHitsTotal).Inc()
		span.SetTag(MemoTagHit, "true")
		return entry.value
	}
}

// Forget removes the entry for key; the next Get recomputes it.
func (m *Memo[K, V]) Forget(key K) {
	if _, loaded := m.entries.LoadAndDelete(key); loaded {
		m.metrics.Gauge(MemoEntries).Set(float64(m.size.Add(-1)))
	}
}

// Reset removes every entry.
func (m *Memo[K, V]) Reset() {
	m.entries.Range(func(key, _ any) bool {
		if _, loaded := m.entries.LoadAndDelete(key); loaded {
			m.size.Add(-1)
		}
		return true
	})
	m.metrics.Gauge(MemoEntries).Set(float64(m.size.Load()))
}

// Len returns the number of cached entries.
func (m *Memo[K, V]) Len() int {
	return int(m.size.Load())
}

// Name returns the memo's name.
func (m *Memo[K, V]) Name() Name { return m.name }

// Metrics returns the metrics registry for this memo.
func (m *Memo[K, V]) Metrics() *metricz.Registry { return m.metrics }

// Tracer returns the tracer for this memo.
func (m *Memo[K, V]) Tracer() *tracez.Tracer { return m.tracer }

// OnComputed registers a handler called after a key's value is computed.
// The handler runs asynchronously.
func (m *Memo[K, V]) OnComputed(handler func(context.Context, MemoEvent) error) error {
	_, err := m.hooks.Hook(MemoEventComputed, handler)
	return err
}

// OnExpired registers a handler called when a TTL'd entry is retired.
// The handler runs asynchronously.
func (m *Memo[K, V]) OnExpired(handler func(context.Context, MemoEvent) error) error {
	_, err := m.hooks.Hook(MemoEventExpired, handler)
	return err
}

// Close gracefully shuts down observability components.
func (m *Memo[K, V]) Close() error {
	if m.tracer != nil {
		m.tracer.Close()
	}
	m.hooks.Close()
	return nil
}

// Memo2 memoizes a two-argument function, keyed by the Pair of its
// arguments. Same at-most-once and tri-state guarantees as Memo.
type Memo2[A, B comparable, V any] struct {
	memo *Memo[Pair[A, B], V]
}

// Memoize2 creates a Memo2 over fn.
func Memoize2[A, B comparable, V any](name Name, fn BiFn[A, B, V], opts ...MemoOption) *Memo2[A, B, V] {
	if fn == nil {
		panic(nilArg("Memoize2", "fn"))
	}
	return &Memo2[A, B, V]{
		memo: Memoize(name, func(k Pair[A, B]) V {
			return fn(k.First, k.Second)
		}, opts...),
	}
}

// WithClock sets the clock used for TTL accounting.
func (m *Memo2[A, B, V]) WithClock(clock clockz.Clock) *Memo2[A, B, V] {
	m.memo.WithClock(clock)
	return m
}

// Get returns the memoized result for (a, b).
func (m *Memo2[A, B, V]) Get(ctx context.Context, a A, b B) V {
	return m.memo.Get(ctx, NewPair(a, b))
}

// Forget removes the entry for (a, b).
func (m *Memo2[A, B, V]) Forget(a A, b B) {
	m.memo.Forget(NewPair(a, b))
}

// Reset removes every entry.
func (m *Memo2[A, B, V]) Reset() { m.memo.Reset() }

// Len returns the number of cached entries.
func (m *Memo2[A, B, V]) Len() int { return m.memo.Len() }

// Metrics returns the metrics registry for this memo.
func (m *Memo2[A, B, V]) Metrics() *metricz.Registry { return m.memo.Metrics() }

// Close gracefully shuts down observability components.
func (m *Memo2[A, B, V]) Close() error { return m.memo.Close() }
