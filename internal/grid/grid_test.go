package grid

import (
	"image"
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		n          int
		cols, rows int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 3, 2},
		{6, 3, 2},
		{7, 3, 3},
		{9, 3, 3},
		{10, 4, 3},
		{16, 4, 4},
		{17, 5, 4},
	}
	for _, c := range cases {
		got, err := Compute(c.n)
		if err != nil {
			t.Fatalf("Compute(%d) unexpected error: %v", c.n, err)
		}
		if got.Columns != c.cols || got.Rows != c.rows {
			t.Fatalf("Compute(%d) = %dx%d, want %dx%d", c.n, got.Columns, got.Rows, c.cols, c.rows)
		}
	}
}

func TestCompute_CoversAllImages(t *testing.T) {
	for n := 1; n <= 2000; n++ {
		l, err := Compute(n)
		if err != nil {
			t.Fatalf("Compute(%d) unexpected error: %v", n, err)
		}
		if want := int(math.Ceil(math.Sqrt(float64(n)))); l.Columns != want {
			t.Fatalf("n=%d columns=%d, want %d", n, l.Columns, want)
		}
		if want := int(math.Ceil(float64(n) / float64(l.Columns))); l.Rows != want {
			t.Fatalf("n=%d rows=%d, want %d", n, l.Rows, want)
		}
		if l.Cells() < n {
			t.Fatalf("n=%d has only %d cells", n, l.Cells())
		}
	}
}

func TestCompute_Empty(t *testing.T) {
	if _, err := Compute(0); err == nil {
		t.Fatalf("expected error for zero images")
	}
}

func TestLayout_CellAndSize(t *testing.T) {
	l := Layout{Columns: 2, Rows: 2}
	if got := l.Size(50, 60); got != image.Pt(100, 120) {
		t.Fatalf("size = %v, want (100,120)", got)
	}
	want := []image.Point{{0, 0}, {50, 0}, {0, 60}, {50, 60}}
	for i, w := range want {
		if got := l.Cell(i, 50, 60); got != w {
			t.Fatalf("cell %d = %v, want %v", i, got, w)
		}
	}
}
