// Package imgx loads source images as opaque rasters and resizes them to a
// common cell size.
package imgx

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp" // WebP payloads behind a .png/.jpg name still decode
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Load opens and decodes the image at path and flattens it to an opaque
// NRGBA raster anchored at (0,0). Color channels are kept as stored; alpha is
// dropped, not composited.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decode %s: empty image %dx%d", path, b.Dx(), b.Dy())
	}
	return Flatten(imaging.Clone(img)), nil
}

// Flatten sets every alpha sample of img to fully opaque, in place.
func Flatten(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
	return img
}

// Resize scales img to exactly w x h with Catmull-Rom resampling. An image
// that already has that size is returned as is.
func Resize(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return Flatten(dst)
}
