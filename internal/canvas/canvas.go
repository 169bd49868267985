// Package canvas provides the collage raster. Its pixel buffer lives in a
// memory-mapped temporary file so large grids do not sit on the Go heap.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// White is the background of every new canvas.
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Canvas is an RGBA raster backed by a memory map. Call Close when done;
// the image must not be used afterwards.
type Canvas struct {
	img    *image.RGBA
	mapped mmap.MMap
	file   *os.File
}

// New allocates a w x h canvas filled with White.
func New(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	size := int64(w) * int64(h) * 4

	f, err := os.CreateTemp("", "collage-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create canvas backing file: %w", err)
	}
	c := &Canvas{file: f}
	if err := f.Truncate(size); err != nil {
		c.Close()
		return nil, fmt.Errorf("size canvas backing file: %w", err)
	}
	mapped, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("map canvas: %w", err)
	}
	c.mapped = mapped
	c.img = &image.RGBA{
		Pix:    mapped,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	draw.Draw(c.img, c.img.Rect, &image.Uniform{C: White}, image.Point{}, draw.Src)
	return c, nil
}

// Image exposes the canvas raster for encoding.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Paste copies src onto the canvas with its top-left corner at at. src must
// fit entirely inside the canvas.
func (c *Canvas) Paste(src image.Image, at image.Point) error {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	if !r.In(c.img.Rect) {
		return fmt.Errorf("paste %v outside canvas %v", r, c.img.Rect)
	}
	draw.Draw(c.img, r, src, sb.Min, draw.Src)
	return nil
}

// Close unmaps the buffer and removes the backing file.
func (c *Canvas) Close() error {
	var firstErr error
	if c.mapped != nil {
		if err := c.mapped.Unmap(); err != nil {
			firstErr = err
		}
		c.mapped = nil
		c.img = nil
	}
	if c.file != nil {
		name := c.file.Name()
		if err := c.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := os.Remove(name); err != nil && firstErr == nil {
			firstErr = err
		}
		c.file = nil
	}
	return firstErr
}
