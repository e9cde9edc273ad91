package seqz

import (
	"context"
	"strconv"

	"github.com/zoobzio/tracez"
)

// Span names for terminal drains. Recorded when a tracer is attached
// upstream via Sequence.WithTracer.
const (
	CollectSpan = tracez.Key("seqz.collect")
	ForEachSpan = tracez.Key("seqz.foreach")
	ReduceSpan  = tracez.Key("seqz.reduce")
	CountSpan   = tracez.Key("seqz.count")
	FirstSpan   = tracez.Key("seqz.first")
	LastSpan    = tracez.Key("seqz.last")
	SingleSpan  = tracez.Key("seqz.single")
)

// Span tags for terminal drains.
const (
	TagElements = tracez.Tag("seqz.elements")
)

// traceDrain opens a terminal span when a tracer is attached. The
// returned finish func must be called with the number of elements pulled.
func traceDrain(ctx context.Context, obs observability, key tracez.Key) (context.Context, func(count int)) {
	if obs.tracer == nil {
		return ctx, func(int) {}
	}
	sctx, span := obs.tracer.StartSpan(ctx, key)
	return sctx, func(count int) {
		span.SetTag(TagElements, strconv.Itoa(count))
		span.Finish()
	}
}

// Collect instantiates the chain, pulls it to exhaustion, and returns
// every element in order.
func Collect[T any](ctx context.Context, src *Sequence[T]) ([]T, error) {
	requireSource("Collect", src)
	ctx, finish := traceDrain(ctx, src.obs, CollectSpan)
	it := src.create(ctx)
	defer it.Close() //nolint:errcheck

	var out []T
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			finish(len(out))
			return out, err
		}
		if !ok {
			finish(len(out))
			return out, nil
		}
		out = append(out, v)
	}
}

// ForEach pulls the chain to exhaustion, calling fn on each element.
// A non-nil error from fn stops the drain and is returned.
func ForEach[T any](ctx context.Context, src *Sequence[T], fn func(context.Context, T) error) error {
	requireSource("ForEach", src)
	if fn == nil {
		panic(nilArg("ForEach", "fn"))
	}
	ctx, finish := traceDrain(ctx, src.obs, ForEachSpan)
	it := src.create(ctx)
	defer it.Close() //nolint:errcheck

	count := 0
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			finish(count)
			return err
		}
		if !ok {
			finish(count)
			return nil
		}
		count++
		if err := fn(ctx, v); err != nil {
			finish(count)
			return err
		}
	}
}

// Reduce folds the chain into a single value, starting from init.
func Reduce[T, R any](ctx context.Context, src *Sequence[T], init R, fn BiFn[R, T, R]) (R, error) {
	requireSource("Reduce", src)
	if fn == nil {
		panic(nilArg("Reduce", "fn"))
	}
	ctx, finish := traceDrain(ctx, src.obs, ReduceSpan)
	it := src.create(ctx)
	defer it.Close() //nolint:errcheck

	acc := init
	count := 0
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			finish(count)
			return acc, err
		}
		if !ok {
			finish(count)
			return acc, nil
		}
		count++
		acc = fn(acc, v)
	}
}

// Count pulls the chain to exhaustion and returns the number of elements.
func Count[T any](ctx context.Context, src *Sequence[T]) (int, error) {
	requireSource("Count", src)
	ctx, finish := traceDrain(ctx, src.obs, CountSpan)
	it := src.create(ctx)
	defer it.Close() //nolint:errcheck

	count := 0
	for {
		_, ok, err := it.Next(ctx)
		if err != nil {
			finish(count)
			return count, err
		}
		if !ok {
			finish(count)
			return count, nil
		}
		count++
	}
}

// First pulls at most one element: Some(first element) or None for an
// empty sequence. The rest of the source is left unpulled.
func First[T any](ctx context.Context, src *Sequence[T]) (Option[T], error) {
	requireSource("First", src)
	ctx, finish := traceDrain(ctx, src.obs, FirstSpan)
	it := src.create(ctx)
	defer it.Close() //nolint:errcheck

	v, ok, err := it.Next(ctx)
	if err != nil {
		finish(0)
		return None[T](), err
	}
	if !ok {
		finish(0)
		return None[T](), nil
	}
	finish(1)
	return Some(v), nil
}

// Last drains the source fully and returns Some(last element), or None
// for an empty sequence. Single-pass: the whole source is consumed even
// when the answer is absent.
func Last[T any](ctx context.Context, src *Sequence[T]) (Option[T], error) {
	requireSource("Last", src)
	ctx, finish := traceDrain(ctx, src.obs, LastSpan)
	it := src.create(ctx)
	defer it.Close() //nolint:errcheck

	var last T
	count := 0
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			finish(count)
			return None[T](), err
		}
		if !ok {
			finish(count)
			if count == 0 {
				return None[T](), nil
			}
			return Some(last), nil
		}
		count++
		last = v
	}
}

// Single drains the source fully and returns Some(element) only when the
// source produced exactly one element; None for zero or for two and more.
// The source is consumed to exhaustion either way - it is single-pass, so
// there is no way to answer without draining. "Present holding a nil
// payload" is a real result: Single over one nil pointer is Some(nil),
// not None.
func Single[T any](ctx context.Context, src *Sequence[T]) (Option[T], error) {
	requireSource("Single", src)
	ctx, finish := traceDrain(ctx, src.obs, SingleSpan)
	it := src.create(ctx)
	defer it.Close() //nolint:errcheck

	var only T
	count := 0
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			finish(count)
			return None[T](), err
		}
		if !ok {
			finish(count)
			if count == 1 {
				return Some(only), nil
			}
			return None[T](), nil
		}
		count++
		if count == 1 {
			only = v
		}
	}
}
