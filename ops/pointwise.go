package ops

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gopix/demand"
)

// Copy returns an image identical to in, produced through the wrap layer.
// Useful as a pipeline no-op and for forcing a format-preserving node.
func Copy(in *demand.Image) (*demand.Image, error) {
	if in == nil {
		return nil, demand.ErrShapeMismatch
	}
	out, err := newOutput(in, in.Format(), demand.HintAny)
	if err != nil {
		return nil, err
	}
	pix := in.Format().PixelBytes()
	err = demand.WrapOne(in, out, func(src [][]byte, dst []byte, n int, a, b any) error {
		copy(dst, src[0][:n*pix])
		return nil
	}, nil, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Invert returns the photographic negative of in: every byte of every band
// becomes 255 - v. Works on any 8-bit format.
func Invert(in *demand.Image) (*demand.Image, error) {
	if err := requireUint8(in, "Invert"); err != nil {
		return nil, err
	}
	out, err := newOutput(in, in.Format(), demand.HintAny)
	if err != nil {
		return nil, err
	}
	err = demand.WrapOne(in, out, func(src [][]byte, dst []byte, n int, a, b any) error {
		row := src[0]
		for i := range dst {
			dst[i] = 255 - row[i]
		}
		return nil
	}, nil, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Saturate scales the HSL saturation of an RGBA8 image by factor: 0
// produces grayscale, 1 is the identity, values above 1 intensify.
// The alpha band passes through unchanged.
func Saturate(in *demand.Image, factor float64) (*demand.Image, error) {
	if err := requireRGBA8(in, "Saturate"); err != nil {
		return nil, err
	}
	out, err := newOutput(in, demand.RGBA8, demand.HintAny)
	if err != nil {
		return nil, err
	}
	err = demand.WrapOne(in, out, saturateRow, factor, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// saturateRow is the Saturate buffer function; a carries the factor.
func saturateRow(src [][]byte, dst []byte, n int, a, b any) error {
	factor := a.(float64)
	row := src[0]
	for i := 0; i < n; i++ {
		p := row[i*4 : i*4+4]
		c := colorful.Color{
			R: float64(p[0]) / 255,
			G: float64(p[1]) / 255,
			B: float64(p[2]) / 255,
		}
		h, s, l := c.Hsl()
		s = min(max(s*factor, 0), 1)
		c = colorful.Hsl(h, s, l).Clamped()
		q := dst[i*4 : i*4+4]
		q[0] = uint8(c.R*255 + 0.5)
		q[1] = uint8(c.G*255 + 0.5)
		q[2] = uint8(c.B*255 + 0.5)
		q[3] = p[3]
	}
	return nil
}

// newOutput creates the result image for an operation over in, matching
// its dimensions.
func newOutput(in *demand.Image, f demand.Format, hint demand.DemandHint) (*demand.Image, error) {
	if in == nil {
		return nil, demand.ErrShapeMismatch
	}
	out, err := demand.New(in.Width(), in.Height(), f)
	if err != nil {
		return nil, err
	}
	out.SetDemandHint(hint)
	return out, nil
}
