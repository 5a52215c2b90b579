package ops

import (
	"fmt"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"

	"github.com/gopix/demand"
)

// Brightness adjusts the brightness of an RGBA8 image by change, a
// fraction in [-1, 1]: -1 is black, 0 the identity, 1 white. The kernel is
// bild's, applied tile by tile on views over Region storage. It works in
// premultiplied RGBA space, so results are exact for opaque pixels;
// premultiply non-opaque images before the pipeline if their color bands
// matter.
func Brightness(in *demand.Image, change float64) (*demand.Image, error) {
	if err := requireRGBA8(in, "Brightness"); err != nil {
		return nil, err
	}
	out, err := newOutput(in, demand.RGBA8, demand.HintAny)
	if err != nil {
		return nil, err
	}
	if err := out.SetUpstream(in); err != nil {
		return nil, err
	}
	err = demand.Generate(out, demand.StartOne, brightnessGen, demand.StopOne, in, change)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// brightnessGen prepares the co-located input rect and runs the bild
// kernel over it. seq is the upstream Region from StartOne; b carries the
// change fraction.
func brightnessGen(out *demand.Region, seq, a, b any) error {
	reg := seq.(*demand.Region)
	r := out.Valid()
	if err := reg.Prepare(r); err != nil {
		return err
	}
	res := adjust.Brightness(rgbaView(reg, r), b.(float64))
	copyRows(out, r, r, res)
	return nil
}

// boxBlurContext carries the BoxBlur parameters through the triple.
type boxBlurContext struct {
	in     *demand.Image
	radius int
}

// BoxBlur returns in blurred with a box kernel of the given radius
// (kernel edge 2*radius+1). An area operation: producing an output rect
// prepares the input rect grown by radius, so interior tile seams are
// exact; bild's edge handling applies only at true image borders. Like
// Brightness, the kernel works in premultiplied RGBA space and is exact
// for opaque pixels.
func BoxBlur(in *demand.Image, radius int) (*demand.Image, error) {
	if err := requireRGBA8(in, "BoxBlur"); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: ops.BoxBlur: negative radius %d", demand.ErrShapeMismatch, radius)
	}
	out, err := newOutput(in, demand.RGBA8, demand.HintTile)
	if err != nil {
		return nil, err
	}
	if err := out.SetUpstream(in); err != nil {
		return nil, err
	}
	ctx := &boxBlurContext{in: in, radius: radius}
	err = demand.Generate(out, boxBlurStart, boxBlurGen, demand.StopOne, ctx, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func boxBlurStart(out *demand.Image, a, b any) (any, error) {
	return demand.NewRegion(a.(*boxBlurContext).in)
}

func boxBlurGen(out *demand.Region, seq, a, b any) error {
	ctx := a.(*boxBlurContext)
	reg := seq.(*demand.Region)
	r := out.Valid()

	in := ctx.in
	need := r.Grow(ctx.radius).ClipTo(in.Width(), in.Height())
	if err := reg.Prepare(need); err != nil {
		return err
	}
	res := blur.Box(rgbaView(reg, need), float64(ctx.radius))
	copyRows(out, r, need, res)
	return nil
}
