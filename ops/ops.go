package ops

import (
	"fmt"
	"image"

	"github.com/gopix/demand"
)

// errFormat reports an unsupported element format for an operation.
func errFormat(op string, f demand.Format) error {
	return fmt.Errorf("%w: ops.%s on %v image", demand.ErrShapeMismatch, op, f)
}

// requireUint8 fails unless the image stores 8-bit elements.
func requireUint8(im *demand.Image, op string) error {
	if im == nil {
		return demand.ErrShapeMismatch
	}
	if im.Format().Elem != demand.ElemUint8 {
		return errFormat(op, im.Format())
	}
	return nil
}

// requireRGBA8 fails unless the image is four-band 8-bit, the format the
// bild and x/image kernels operate on.
func requireRGBA8(im *demand.Image, op string) error {
	if im == nil {
		return demand.ErrShapeMismatch
	}
	if im.Format() != demand.RGBA8 {
		return errFormat(op, im.Format())
	}
	return nil
}

// rgbaView aliases prepared Region storage over rect as an *image.RGBA
// with zero-based bounds. The view shares the Region's memory: rows are
// Region.Stride() bytes apart regardless of the view width, which both
// the stdlib image code and the bild kernels honor.
//
// RGBA8 region bytes are stored non-premultiplied (see source.FromImage),
// while *image.RGBA declares them premultiplied. The two layouts agree
// only where alpha is 255, so kernels fed through this view are exact for
// opaque pixels. Use nrgbaView where the kernel handles NRGBA itself.
func rgbaView(reg *demand.Region, rect demand.Rect) *image.RGBA {
	return &image.RGBA{
		Pix:    reg.Addr(rect.Left, rect.Top),
		Stride: reg.Stride(),
		Rect:   image.Rect(0, 0, rect.Width, rect.Height),
	}
}

// nrgbaView is rgbaView with the non-premultiplied type the storage
// actually holds.
func nrgbaView(reg *demand.Region, rect demand.Rect) *image.NRGBA {
	return &image.NRGBA{
		Pix:    reg.Addr(rect.Left, rect.Top),
		Stride: reg.Stride(),
		Rect:   image.Rect(0, 0, rect.Width, rect.Height),
	}
}

// copyRows copies w*4 bytes per row from src (an RGBA image with
// zero-based bounds aliasing srcRect) into the out Region over dstRect.
// srcRect must contain dstRect.
func copyRows(out *demand.Region, dstRect, srcRect demand.Rect, src *image.RGBA) {
	for y := dstRect.Top; y < dstRect.Bottom(); y++ {
		off := (y-srcRect.Top)*src.Stride + (dstRect.Left-srcRect.Left)*4
		copy(out.Addr(dstRect.Left, y)[:dstRect.Width*4], src.Pix[off:off+dstRect.Width*4])
	}
}
