package seqz

import (
	"errors"
	"fmt"
)

// Sentinel errors for contract violations. Constructor-time violations
// (nil arguments, non-positive sizes) panic with an error wrapping one of
// these sentinels, before any laziness is introduced. ErrOutOfElements is
// returned from Next when a caller keeps pulling a sequence that has
// already reported exhaustion.
var (
	// ErrNilArgument indicates a required reference argument was nil.
	// Detected eagerly at construction, never deferred to first pull.
	ErrNilArgument = errors.New("required argument is nil")

	// ErrInvalidArgument indicates a numeric configuration value violated
	// its positivity constraint. Detected eagerly at construction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfElements indicates Next was called on a sequence that has
	// already reported exhaustion. This is a programming-contract violation
	// by the caller, not a recoverable runtime condition: a well-behaved
	// consumer stops pulling the moment Next returns ok == false.
	ErrOutOfElements = errors.New("sequence already exhausted")
)

// nilArg builds the panic value for a missing required argument.
func nilArg(op, arg string) error {
	return fmt.Errorf("seqz.%s: %s %w", op, arg, ErrNilArgument)
}

// invalidArg builds the panic value for a numeric contract violation.
func invalidArg(op, detail string) error {
	return fmt.Errorf("seqz.%s: %s: %w", op, detail, ErrInvalidArgument)
}

// requireSource panics when the upstream sequence is nil. Every operator
// constructor calls this before touching anything else.
func requireSource[T any](op string, src *Sequence[T]) {
	if src == nil {
		panic(nilArg(op, "source sequence"))
	}
}

// requirePositive panics when a size or step argument is not >= 1.
func requirePositive(op, name string, n int) {
	if n < 1 {
		panic(invalidArg(op, fmt.Sprintf("%s must be positive, got %d", name, n)))
	}
}
