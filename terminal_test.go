package seqz

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/tracez"
)

func TestFirst(t *testing.T) {
	t.Run("non-empty", func(t *testing.T) {
		opt, err := First(context.Background(), FromSlice([]int{7, 8, 9}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, ok := opt.Get(); !ok || v != 7 {
			t.Errorf("expected Some(7), got %v", opt)
		}
	})

	t.Run("empty yields absent", func(t *testing.T) {
		opt, err := First(context.Background(), FromSlice([]int{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opt.IsSome() {
			t.Errorf("expected None, got %v", opt)
		}
	})

	t.Run("pulls at most one element", func(t *testing.T) {
		pulls := 0
		src := Generate(func() (int, bool) {
			pulls++
			return pulls, true
		})
		if _, err := First(context.Background(), src); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pulls != 1 {
			t.Errorf("First pulled %d elements, expected 1", pulls)
		}
	})
}

func TestLast(t *testing.T) {
	t.Run("non-empty", func(t *testing.T) {
		opt, err := Last(context.Background(), FromSlice([]string{"a", "b", "c"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, ok := opt.Get(); !ok || v != "c" {
			t.Errorf("expected Some(c), got %v", opt)
		}
	})

	t.Run("empty yields absent", func(t *testing.T) {
		opt, err := Last(context.Background(), FromSlice([]string{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opt.IsSome() {
			t.Errorf("expected None, got %v", opt)
		}
	})
}

func TestSingle(t *testing.T) {
	t.Run("exactly one element", func(t *testing.T) {
		opt, err := Single(context.Background(), FromSlice([]int{42}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, ok := opt.Get(); !ok || v != 42 {
			t.Errorf("expected Some(42), got %v", opt)
		}
	})

	t.Run("empty yields absent", func(t *testing.T) {
		opt, err := Single(context.Background(), FromSlice([]int{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opt.IsSome() {
			t.Errorf("expected None, got %v", opt)
		}
	})

	t.Run("multiple elements yield absent", func(t *testing.T) {
		opt, err := Single(context.Background(), FromSlice([]int{1, 2}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opt.IsSome() {
			t.Errorf("expected None, got %v", opt)
		}
	})

	t.Run("present nil payload is not absent", func(t *testing.T) {
		opt, err := Single(context.Background(), FromSlice([]*int{nil}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v, ok := opt.Get()
		if !ok {
			t.Fatal("expected a present option holding nil, got None")
		}
		if v != nil {
			t.Errorf("expected nil payload, got %v", v)
		}
	})

	t.Run("drains the source fully even when absent", func(t *testing.T) {
		pulls := 0
		src := Generate(func() (int, bool) {
			if pulls >= 5 {
				return 0, false
			}
			pulls++
			return pulls, true
		})
		opt, err := Single(context.Background(), src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opt.IsSome() {
			t.Errorf("expected None for a multi-element source, got %v", opt)
		}
		if pulls != 5 {
			t.Errorf("source pulled %d times, expected full drain of 5", pulls)
		}
	})
}

func TestReduce(t *testing.T) {
	sum, err := Reduce(context.Background(), Range(1, 5), 0, func(acc, n int) int { return acc + n })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 10 {
		t.Errorf("expected 10, got %d", sum)
	}
}

func TestCount(t *testing.T) {
	n, err := Count(context.Background(), Range(0, 17))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 17 {
		t.Errorf("expected 17, got %d", n)
	}
}

func TestForEach(t *testing.T) {
	t.Run("visits every element in order", func(t *testing.T) {
		var got []int
		err := ForEach(context.Background(), Range(0, 4), func(_ context.Context, n int) error {
			got = append(got, n)
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []int{0, 1, 2, 3}) {
			t.Errorf("expected [0 1 2 3], got %v", got)
		}
	})

	t.Run("stops on callback error", func(t *testing.T) {
		boom := errors.New("stop")
		visited := 0
		err := ForEach(context.Background(), Range(0, 100), func(_ context.Context, n int) error {
			visited++
			if n == 2 {
				return boom
			}
			return nil
		})
		if !errors.Is(err, boom) {
			t.Errorf("expected the callback error, got %v", err)
		}
		if visited != 3 {
			t.Errorf("expected 3 visits, got %d", visited)
		}
	})
}

func TestTerminal_Spans(t *testing.T) {
	tracer := tracez.New()
	defer tracer.Close()

	var spanMu sync.Mutex
	var spans []tracez.Span
	tracer.OnSpanComplete(func(span tracez.Span) {
		spanMu.Lock()
		spans = append(spans, span)
		spanMu.Unlock()
	})

	src := FromSlice([]int{1, 2, 3}).WithTracer(tracer)
	if _, err := Collect(context.Background(), src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Span delivery is asynchronous.
	time.Sleep(50 * time.Millisecond)

	spanMu.Lock()
	defer spanMu.Unlock()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != CollectSpan {
		t.Errorf("expected span %s, got %s", CollectSpan, spans[0].Name)
	}
	if elements, ok := spans[0].Tags[TagElements]; !ok || elements != "3" {
		t.Errorf("expected elements tag 3, got %q", elements)
	}
}

func TestTerminal_NilArguments(t *testing.T) {
	assertPanics(t, func() { _, _ = Collect[int](context.Background(), nil) }, ErrNilArgument)
	assertPanics(t, func() { _, _ = First[int](context.Background(), nil) }, ErrNilArgument)
	assertPanics(t, func() {
		_ = ForEach(context.Background(), FromSlice([]int{1}), nil)
	}, ErrNilArgument)
}
