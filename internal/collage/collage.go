// Package collage builds a grid collage from the images in one directory.
//
// The pipeline is strictly sequential: scan, load, normalize to the smallest
// width and height, lay out on a near-square grid, paste onto a white canvas
// and write <dir>/collage.png. Any failure aborts the run and nothing is
// written.
package collage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/BadarSaghir/img_collage/internal/canvas"
	"github.com/BadarSaghir/img_collage/internal/fsx"
	"github.com/BadarSaghir/img_collage/internal/grid"
	"github.com/BadarSaghir/img_collage/internal/imgx"
	"github.com/BadarSaghir/img_collage/internal/scan"
)

// Swapped in tests to simulate a failing unmap or temp file removal.
var closeCanvas = (*canvas.Canvas).Close

// Result describes a written collage.
type Result struct {
	Path   string
	Layout grid.Layout
	Cell   image.Point
	Images int
}

// Build creates the collage for dir and writes it to dir/collage.png,
// overwriting any existing file.
func Build(dir string) (Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Result{}, &Error{Code: ErrCodeInputNotFound, Path: dir, Err: err}
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return Result{}, &Error{Code: ErrCodeInputNotFound, Path: abs, Err: err}
	}
	if !fi.IsDir() {
		return Result{}, &Error{Code: ErrCodeInputNotFound, Path: abs, Err: fmt.Errorf("not a directory")}
	}

	paths, err := scan.Images(abs)
	if err != nil {
		return Result{}, &Error{Code: ErrCodeInputNotFound, Path: abs, Err: err}
	}
	if len(paths) == 0 {
		return Result{}, &Error{Code: ErrCodeNoImages, Path: abs}
	}

	images := make([]*image.NRGBA, len(paths))
	for i, p := range paths {
		img, err := imgx.Load(p)
		if err != nil {
			return Result{}, &Error{Code: ErrCodeDecode, Path: p, Err: err}
		}
		images[i] = img
	}

	cell := MinSize(images)
	for i, img := range images {
		images[i] = imgx.Resize(img, cell.X, cell.Y)
	}

	layout, err := grid.Compute(len(images))
	if err != nil {
		return Result{}, &Error{Code: ErrCodeWrite, Path: abs, Err: err}
	}

	out := filepath.Join(abs, scan.OutputName)
	data, err := compose(images, layout, cell)
	if err != nil {
		return Result{}, &Error{Code: ErrCodeWrite, Path: out, Err: err}
	}
	if err := fsx.WriteFileAtomicReplace(abs, scan.OutputName, data); err != nil {
		return Result{}, &Error{Code: ErrCodeWrite, Path: out, Err: err}
	}

	return Result{Path: out, Layout: layout, Cell: cell, Images: len(images)}, nil
}

// MinSize returns the smallest width and the smallest height over images.
// The two minimums may come from different images.
func MinSize(images []*image.NRGBA) image.Point {
	var m image.Point
	for i, img := range images {
		sz := img.Bounds().Size()
		if i == 0 || sz.X < m.X {
			m.X = sz.X
		}
		if i == 0 || sz.Y < m.Y {
			m.Y = sz.Y
		}
	}
	return m
}

// compose pastes images row-major onto a fresh canvas and returns the PNG
// encoding. Pasted images are released as they go.
func compose(images []*image.NRGBA, layout grid.Layout, cell image.Point) (_ []byte, err error) {
	size := layout.Size(cell.X, cell.Y)
	c, err := canvas.New(size.X, size.Y)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeCanvas(c); cerr != nil && err == nil {
			err = fmt.Errorf("release canvas: %w", cerr)
		}
	}()

	for i, img := range images {
		if err := c.Paste(img, layout.Cell(i, cell.X, cell.Y)); err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		images[i] = nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, c.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
