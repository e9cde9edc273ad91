package seqz

import (
	"context"
	"reflect"
	"testing"
)

func TestWindowStep_Table(t *testing.T) {
	tests := []struct {
		name    string
		input   []int
		size    int
		step    int
		partial bool
		want    [][]int
	}{
		{
			name:  "size 3 step 2",
			input: []int{1, 2, 3, 4, 5},
			size:  3, step: 2,
			want: [][]int{{1, 2, 3}, {3, 4, 5}},
		},
		{
			name:  "partial trailing window",
			input: []int{1, 2, 3},
			size:  2, step: 2, partial: true,
			want: [][]int{{1, 2}, {3}},
		},
		{
			name:  "source shorter than size",
			input: []int{1, 2},
			size:  3, step: 1,
			want: nil,
		},
		{
			// The partial window is emitted, the head drops by step, and
			// the non-empty remainder is itself the next partial window.
			name:  "source shorter than size with partial",
			input: []int{1, 2},
			size:  3, step: 1, partial: true,
			want: [][]int{{1, 2}, {2}},
		},
		{
			name:  "step beyond size skips the gap",
			input: []int{1, 2, 3, 4, 5, 6, 7, 8},
			size:  2, step: 3,
			want: [][]int{{1, 2}, {4, 5}, {7, 8}},
		},
		{
			name:  "tumbling",
			input: []int{1, 2, 3, 4, 5, 6},
			size:  2, step: 2,
			want: [][]int{{1, 2}, {3, 4}, {5, 6}},
		},
		{
			name:  "empty source",
			input: nil,
			size:  3, step: 1, partial: true,
			want: nil,
		},
		{
			name:  "partial cascade",
			input: []int{1, 2, 3, 4, 5},
			size:  3, step: 2, partial: true,
			want: [][]int{{1, 2, 3}, {3, 4, 5}, {5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Collect(context.Background(), WindowStep(FromSlice(tt.input), tt.size, tt.step, tt.partial))
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

func TestWindow_SlidingDefaults(t *testing.T) {
	out, err := Collect(context.Background(), Window(FromSlice([]int{1, 2, 3, 4}), 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]int{{1, 2}, {2, 3}, {3, 4}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("expected %v, got %v", want, out)
	}
}

// Every full window has exactly size elements and consecutive windows
// start exactly step positions apart in the source.
func TestWindowStep_SizeAndStride(t *testing.T) {
	const size, step = 4, 3
	source := Range(0, 30)
	windows, err := Collect(context.Background(), WindowStep(source, size, step, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) == 0 {
		t.Fatal("expected windows")
	}
	for i, w := range windows {
		if len(w) != size {
			t.Errorf("window %d has %d elements, expected %d", i, len(w), size)
		}
		if w[0] != i*step {
			t.Errorf("window %d starts at %d, expected %d", i, w[0], i*step)
		}
	}
}

// Emitted windows are snapshots: mutating one must not affect the next.
func TestWindowStep_WindowsAreIndependentCopies(t *testing.T) {
	it := WindowStep(FromSlice([]int{1, 2, 3, 4}), 2, 1, false).Iter(context.Background())
	defer it.Close()

	first, ok, err := it.Next(context.Background())
	if !ok || err != nil {
		t.Fatalf("expected first window, got ok=%v err=%v", ok, err)
	}
	first[0], first[1] = -1, -1

	second, ok, err := it.Next(context.Background())
	if !ok || err != nil {
		t.Fatalf("expected second window, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(second, []int{2, 3}) {
		t.Errorf("second window corrupted by mutating the first: %v", second)
	}
}

func TestWindowStep_InvalidArguments(t *testing.T) {
	src := FromSlice([]int{1})
	assertPanics(t, func() { WindowStep(src, 0, 1, false) }, ErrInvalidArgument)
	assertPanics(t, func() { WindowStep(src, 3, 0, false) }, ErrInvalidArgument)
	assertPanics(t, func() { WindowStep(src, -1, -1, true) }, ErrInvalidArgument)
}

func TestWindowStep_NilSource(t *testing.T) {
	assertPanics(t, func() { WindowStep[int](nil, 2, 1, false) }, ErrNilArgument)
	assertPanics(t, func() { Window[int](nil, 2) }, ErrNilArgument)
}
