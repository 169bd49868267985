// Package grid computes the near-square layout used to tile a collage.
package grid

import (
	"fmt"
	"image"
	"math"
)

// Layout is the (columns, rows) shape of a collage grid.
type Layout struct {
	Columns int
	Rows    int
}

// Compute returns the layout for n images: columns = ceil(sqrt(n)),
// rows = ceil(n / columns). Unused trailing cells stay empty.
func Compute(n int) (Layout, error) {
	if n < 1 {
		return Layout{}, fmt.Errorf("grid needs at least one image, got %d", n)
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	return Layout{Columns: cols, Rows: rows}, nil
}

// Cells is the total number of slots in the grid.
func (l Layout) Cells() int { return l.Columns * l.Rows }

// Size is the pixel size of a canvas holding the grid with cells of cellW x cellH.
func (l Layout) Size(cellW, cellH int) image.Point {
	return image.Pt(l.Columns*cellW, l.Rows*cellH)
}

// Cell returns the top-left pixel of slot i in row-major order.
func (l Layout) Cell(i, cellW, cellH int) image.Point {
	col := i % l.Columns
	row := i / l.Columns
	return image.Pt(col*cellW, row*cellH)
}
