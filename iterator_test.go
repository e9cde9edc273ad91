package seqz

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestFromSlice_Order(t *testing.T) {
	out, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, []int{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", out)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	out, err := Collect(context.Background(), FromSlice([]int(nil)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no elements, got %v", out)
	}
}

func TestIterator_PullPastExhaustion(t *testing.T) {
	it := FromSlice([]int{1}).Iter(context.Background())
	defer it.Close()

	if _, ok, err := it.Next(context.Background()); !ok || err != nil {
		t.Fatalf("expected first element, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := it.Next(context.Background()); ok || err != nil {
		t.Fatalf("expected clean exhaustion, got ok=%v err=%v", ok, err)
	}
	// The exhaustion signal is delivered once; pulling again is a
	// contract violation.
	_, _, err := it.Next(context.Background())
	if !errors.Is(err, ErrOutOfElements) {
		t.Errorf("expected ErrOutOfElements, got %v", err)
	}
}

func TestGenerate_Finite(t *testing.T) {
	n := 0
	src := Generate(func() (int, bool) {
		if n >= 3 {
			return 0, false
		}
		n++
		return n, true
	})
	out, err := Collect(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, []int{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", out)
	}
}

func TestGenerate_InfiniteWithTake(t *testing.T) {
	n := 0
	src := Generate(func() (int, bool) {
		n++
		return n, true
	})
	out, err := Collect(context.Background(), Take(src, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, []int{1, 2, 3, 4}) {
		t.Errorf("expected [1 2 3 4], got %v", out)
	}
	if n != 4 {
		t.Errorf("expected exactly 4 pulls from the generator, got %d", n)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       []int
	}{
		{"ascending", 2, 6, []int{2, 3, 4, 5}},
		{"empty", 3, 3, nil},
		{"inverted", 5, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Collect(context.Background(), Range(tt.start, tt.end))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(out, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, out)
			}
		})
	}
}

func TestFromChannel_DrainsUntilClose(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "a"
	ch <- "b"
	ch <- "c"
	close(ch)

	out, err := Collect(context.Background(), FromChannel(ch))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, []string{"a", "b", "c"}) {
		t.Errorf("expected [a b c], got %v", out)
	}
}

func TestFromChannel_ContextCancel(t *testing.T) {
	ch := make(chan int) // never written, never closed
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := Collect(ctx, FromChannel(ch))
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("collect did not return after cancellation")
	}
}

// lenientIter keeps reporting clean exhaustion forever, the way naive
// hand-rolled iterators do. FromFunc must normalize it.
type lenientIter struct{ left int }

func (it *lenientIter) Next(_ context.Context) (int, bool, error) {
	if it.left == 0 {
		return 0, false, nil
	}
	it.left--
	return it.left, true, nil
}

func (it *lenientIter) Close() error { return nil }

func TestFromFunc_EnforcesStrictContract(t *testing.T) {
	src := FromFunc(func(_ context.Context) Iterator[int] {
		return &lenientIter{left: 1}
	})
	it := src.Iter(context.Background())
	defer it.Close()

	if _, ok, _ := it.Next(context.Background()); !ok {
		t.Fatal("expected one element")
	}
	if _, ok, err := it.Next(context.Background()); ok || err != nil {
		t.Fatalf("expected clean exhaustion, got ok=%v err=%v", ok, err)
	}
	if _, _, err := it.Next(context.Background()); !errors.Is(err, ErrOutOfElements) {
		t.Errorf("expected ErrOutOfElements, got %v", err)
	}
}

func TestSequence_Laziness(t *testing.T) {
	pulls := 0
	src := Generate(func() (int, bool) {
		pulls++
		return pulls, true
	})

	// Building a chain must not pull anything.
	chain := Chunk(Filter(Map(src, func(n int) int { return n * 2 }), func(n int) bool { return n%4 == 0 }), 2)
	if pulls != 0 {
		t.Fatalf("construction pulled %d elements, expected 0", pulls)
	}

	if _, err := First(context.Background(), chain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pulls == 0 {
		t.Error("terminal did not pull from the source")
	}
}

func TestSequence_Determinism(t *testing.T) {
	build := func() *Sequence[[]int] {
		return WindowStep(FromSlice([]int{1, 2, 3, 4, 5}), 3, 2, false)
	}
	a, err := Collect(context.Background(), build())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Collect(context.Background(), build())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical chains over equivalent sources disagree: %v vs %v", a, b)
	}
}

func TestSources_NilArguments(t *testing.T) {
	tests := []struct {
		name string
		call func()
	}{
		{"from func", func() { FromFunc[int](nil) }},
		{"from channel", func() { FromChannel[int](nil) }},
		{"generate", func() { Generate[int](nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPanics(t, tt.call, ErrNilArgument)
		})
	}
}

// assertPanics runs fn and verifies it panics with an error wrapping want.
func assertPanics(t *testing.T, fn func(), want error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic value, got %T", r)
		}
		if !errors.Is(err, want) {
			t.Errorf("expected panic wrapping %v, got %v", want, err)
		}
	}()
	fn()
}
