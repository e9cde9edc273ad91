package seqz

import "fmt"

// Option is an explicit present/absent wrapper around a value of type T.
//
// Terminal reducers use Option rather than a (value, ok) pair so that
// "present holding a zero value" stays distinct from "absent" even when
// the zero value is itself meaningful - Some[*User](nil) is a real,
// present result, not the same state as None[*User]().
//
// Option is comparable when T is, so Option values can serve as
// DistinctBy keys: None is a valid, trackable key distinct from any
// present key.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns a present Option holding v. v may be the zero value of T.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool { return o.present }

// IsNone reports whether the option is absent.
func (o Option[T]) IsNone() bool { return !o.present }

// Get returns the held value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// MustGet returns the held value, panicking when absent. Use only where
// absence is a programming error.
func (o Option[T]) MustGet() T {
	if !o.present {
		panic(fmt.Errorf("seqz.Option.MustGet: option is absent: %w", ErrOutOfElements))
	}
	return o.value
}

// OrElse returns the held value when present, fallback otherwise.
func (o Option[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// OrZero returns the held value when present, the zero value otherwise.
func (o Option[T]) OrZero() T {
	return o.value
}

// String renders "Some(v)" or "None".
func (o Option[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MapOption transforms a present option's value, leaving absence as-is.
func MapOption[T, O any](o Option[T], fn func(T) O) Option[O] {
	if fn == nil {
		panic(nilArg("MapOption", "fn"))
	}
	if !o.present {
		return None[O]()
	}
	return Some(fn(o.value))
}
