package hal

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

var errBadSource = errors.New("blit: source does not match its description")

// validate checks that src describes a buffer the blit can read.
func (src BlitSource) validate() error {
	if src.Format != PixelFormatBGRX32 {
		return ErrNotImplemented
	}
	if src.Width <= 0 || src.Height <= 0 || src.Stride < src.Width*4 {
		return errBadSource
	}
	if len(src.Pix) < (src.Height-1)*src.Stride+src.Width*4 {
		return errBadSource
	}
	return nil
}

// image wraps the source pixels without copying. The channel order is kept as
// BGRX; callers only move whole pixels around.
func (src BlitSource) image() *image.RGBA {
	return &image.RGBA{
		Pix:    src.Pix,
		Stride: src.Stride,
		Rect:   image.Rect(0, 0, src.Width, src.Height),
	}
}

// StretchInto scales src into dst with nearest-neighbor sampling. dst keeps the
// source channel order. No aspect-ratio correction is applied.
func StretchInto(dst *image.RGBA, src BlitSource) error {
	if err := src.validate(); err != nil {
		return err
	}
	b := dst.Bounds()
	if b.Empty() {
		return nil
	}
	draw.NearestNeighbor.Scale(dst, b, src.image(), src.image().Bounds(), draw.Src, nil)
	if !src.TopDown {
		flipRows(dst)
	}
	return nil
}

func flipRows(img *image.RGBA) {
	b := img.Bounds()
	rowBytes := b.Dx() * 4
	tmp := make([]byte, rowBytes)
	for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : top*img.Stride+rowBytes]
		z := img.Pix[bottom*img.Stride : bottom*img.Stride+rowBytes]
		copy(tmp, a)
		copy(a, z)
		copy(z, tmp)
	}
}
