// Package source builds leaf images for the demand engine from in-memory
// Go images, and materializes pipeline results back into Go images.
package source

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/gopix/demand"
)

// FromImage converts any image.Image into an RGBA8 leaf. The pixels are
// normalized to a tightly-packed, zero-based NRGBA layout, alpha stored
// non-premultiplied; the resulting leaf owns that copy, so the original
// image may be discarded.
func FromImage(img image.Image) (*demand.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: source.FromImage: nil image", demand.ErrShapeMismatch)
	}
	n := imaging.Clone(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	data := n.Pix
	if n.Stride != w*4 {
		// Repack rows tightly; leaves store rows with no padding.
		data = make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(data[y*w*4:(y+1)*w*4], n.Pix[y*n.Stride:y*n.Stride+w*4])
		}
	}
	return demand.NewLeaf(w, h, demand.RGBA8, data)
}

// Uniform creates a leaf of the given shape with every byte set to v.
func Uniform(width, height int, f demand.Format, v byte) (*demand.Image, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: source.Uniform: format %v", demand.ErrShapeMismatch, f)
	}
	data := make([]byte, f.RowBytes(width)*height)
	for i := range data {
		data[i] = v
	}
	return demand.NewLeaf(width, height, f, data)
}

// ToImage evaluates an RGBA8 image through the sink coordinator and
// returns the result as an *image.NRGBA. Pieces land in disjoint areas of
// the destination, so concurrent workers never write the same byte.
func ToImage(im *demand.Image, opts ...demand.SinkOption) (*image.NRGBA, error) {
	if im == nil || im.Format() != demand.RGBA8 {
		return nil, fmt.Errorf("%w: source.ToImage needs an RGBA8 image", demand.ErrShapeMismatch)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, im.Width(), im.Height()))
	demand.Logger().Debug("materialize", "width", im.Width(), "height", im.Height())
	err := demand.Sink(im, nil, func(out *demand.Region, seq, a, b any) error {
		r := out.Valid()
		for y := r.Top; y < r.Bottom(); y++ {
			copy(dst.Pix[y*dst.Stride+r.Left*4:][:r.Width*4], out.Row(y))
		}
		return nil
	}, nil, nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return dst, nil
}
