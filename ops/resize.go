package ops

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gopix/demand"
)

// Resize scales an RGBA8 image to width x height with bilinear
// interpolation. A geometric operation: each output tile maps back to the
// source rect it samples (plus the kernel margin) and prepares only that.
func Resize(in *demand.Image, width, height int) (*demand.Image, error) {
	if err := requireRGBA8(in, "Resize"); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: ops.Resize to %dx%d", demand.ErrShapeMismatch, width, height)
	}
	out, err := demand.New(width, height, demand.RGBA8)
	if err != nil {
		return nil, err
	}
	out.SetDemandHint(demand.HintTile)
	if err := out.SetUpstream(in); err != nil {
		return nil, err
	}
	err = demand.Generate(out, demand.StartOne, resizeGen, demand.StopOne, in, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resizeGen maps the output rect back into source coordinates, prepares
// that rect grown by the kernel support, and scales through views sharing
// the Region storage. The scale geometry is always the full output onto
// the full input, expressed in view-local coordinates, so tiles join
// seamlessly. NRGBA views match the storage layout, letting the scaler
// premultiply and divide out per pixel; transparency interpolates
// correctly.
func resizeGen(out *demand.Region, seq, a, b any) error {
	reg := seq.(*demand.Region)
	in := a.(*demand.Image)
	r := out.Valid()

	ow, oh := out.Image().Width(), out.Image().Height()
	iw, ih := in.Width(), in.Height()

	// Source pixels sampled by this tile. The +2 margin covers the
	// bilinear support on both sides after the floor/ceil mapping.
	src := demand.Rect{
		Left:   r.Left * iw / ow,
		Top:    r.Top * ih / oh,
		Width:  (r.Right()*iw+ow-1)/ow - r.Left*iw/ow,
		Height: (r.Bottom()*ih+oh-1)/oh - r.Top*ih/oh,
	}.Grow(2).ClipTo(iw, ih)
	if err := reg.Prepare(src); err != nil {
		return err
	}

	dstView := nrgbaView(out, r)
	srcView := nrgbaView(reg, src)
	xdraw.ApproxBiLinear.Scale(
		dstView,
		image.Rect(-r.Left, -r.Top, ow-r.Left, oh-r.Top),
		srcView,
		image.Rect(-src.Left, -src.Top, iw-src.Left, ih-src.Top),
		xdraw.Src, nil)
	return nil
}
