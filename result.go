package seqz

import "fmt"

// Result is a two-variant captured outcome: Success holding a value, or
// Failure holding the error that produced it. Fault-capturing operators
// (MapCatching, FilterCatching) emit Results so a per-element fault
// becomes ordinary data in the output sequence instead of aborting the
// pull that triggered it.
//
// Result is a tagged sum, not a sentinel convention: Success of a zero
// value and Failure are distinct states, and a Result is never both.
type Result[T any] struct {
	value T
	err   error
}

// Success returns a successful Result holding v.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure returns a failed Result carrying err. err must be non-nil.
func Failure[T any](err error) Result[T] {
	if err == nil {
		panic(nilArg("Failure", "err"))
	}
	return Result[T]{err: err}
}

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool { return r.err == nil }

// IsFailure reports whether the result carries an error.
func (r Result[T]) IsFailure() bool { return r.err != nil }

// Value returns the held value and error in Go's conventional shape.
func (r Result[T]) Value() (T, error) {
	return r.value, r.err
}

// MustValue returns the held value, panicking with the captured error on
// a failed result.
func (r Result[T]) MustValue() T {
	if r.err != nil {
		panic(fmt.Errorf("seqz.Result.MustValue: %w", r.err))
	}
	return r.value
}

// Err returns the captured error, nil for a successful result.
func (r Result[T]) Err() error { return r.err }

// OrElse returns the held value on success, fallback on failure.
func (r Result[T]) OrElse(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// String renders "Success(v)" or "Failure(err)".
func (r Result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Failure(%v)", r.err)
	}
	return fmt.Sprintf("Success(%v)", r.value)
}
