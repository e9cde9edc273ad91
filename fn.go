package seqz

// Predicate reports whether a value satisfies a condition.
type Predicate[T any] func(T) bool

// And returns a predicate satisfied only when both p and q are.
// q is not evaluated when p fails.
func (p Predicate[T]) And(q Predicate[T]) Predicate[T] {
	if q == nil {
		panic(nilArg("Predicate.And", "q"))
	}
	return func(v T) bool { return p(v) && q(v) }
}

// Or returns a predicate satisfied when either p or q is.
// q is not evaluated when p holds.
func (p Predicate[T]) Or(q Predicate[T]) Predicate[T] {
	if q == nil {
		panic(nilArg("Predicate.Or", "q"))
	}
	return func(v T) bool { return p(v) || q(v) }
}

// Negate returns the logical complement of p.
func (p Predicate[T]) Negate() Predicate[T] {
	return func(v T) bool { return !p(v) }
}

// Consumer performs a side effect on a value.
type Consumer[T any] func(T)

// AndThen returns a consumer that runs c, then next, on each value.
func (c Consumer[T]) AndThen(next Consumer[T]) Consumer[T] {
	if next == nil {
		panic(nilArg("Consumer.AndThen", "next"))
	}
	return func(v T) {
		c(v)
		next(v)
	}
}

// Fn is a single-argument function from A to B.
type Fn[A, B any] func(A) B

// BiFn is a two-argument function from (A, B) to C.
type BiFn[A, B, C any] func(A, B) C

// Compose returns g after f: Compose(f, g)(x) == g(f(x)).
func Compose[A, B, C any](f Fn[A, B], g Fn[B, C]) Fn[A, C] {
	if f == nil {
		panic(nilArg("Compose", "f"))
	}
	if g == nil {
		panic(nilArg("Compose", "g"))
	}
	return func(a A) C { return g(f(a)) }
}

// Identity returns the function that yields its argument unchanged.
func Identity[T any]() Fn[T, T] {
	return func(v T) T { return v }
}

// Curry converts a two-argument function into a chain of single-argument
// functions.
func Curry[A, B, C any](f BiFn[A, B, C]) Fn[A, Fn[B, C]] {
	if f == nil {
		panic(nilArg("Curry", "f"))
	}
	return func(a A) Fn[B, C] {
		return func(b B) C { return f(a, b) }
	}
}

// Uncurry is the inverse of Curry.
func Uncurry[A, B, C any](f Fn[A, Fn[B, C]]) BiFn[A, B, C] {
	if f == nil {
		panic(nilArg("Uncurry", "f"))
	}
	return func(a A, b B) C { return f(a)(b) }
}

// Tupled adapts a two-argument function to take its arguments as a Pair.
func Tupled[A, B, C any](f BiFn[A, B, C]) Fn[Pair[A, B], C] {
	if f == nil {
		panic(nilArg("Tupled", "f"))
	}
	return func(p Pair[A, B]) C { return f(p.First, p.Second) }
}
