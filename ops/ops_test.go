package ops_test

import (
	"errors"
	"image"
	"testing"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	xdraw "golang.org/x/image/draw"

	"github.com/gopix/demand"
	"github.com/gopix/demand/ops"
	"github.com/gopix/demand/source"
)

// rgbaLeaf builds an opaque RGBA8 leaf with a deterministic gradient and
// returns it together with its backing bytes.
func rgbaLeaf(t *testing.T, w, h int) (*demand.Image, []byte) {
	t.Helper()
	data := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			data[i+0] = uint8(x * 7)
			data[i+1] = uint8(y * 13)
			data[i+2] = uint8((x + y) * 3)
			data[i+3] = 255
		}
	}
	im, err := demand.NewLeaf(w, h, demand.RGBA8, data)
	if err != nil {
		t.Fatal(err)
	}
	return im, data
}

// evaluate runs im through the sink with small tiles and several workers
// so every operation is exercised across piece boundaries.
func evaluate(t *testing.T, im *demand.Image) []byte {
	t.Helper()
	dst, err := source.ToImage(im,
		demand.WithWorkers(4), demand.WithTileSize(16, 16), demand.WithStripHeight(5))
	if err != nil {
		t.Fatal(err)
	}
	return dst.Pix
}

func TestCopy_Identity(t *testing.T) {
	in, data := rgbaLeaf(t, 37, 23)
	out, err := ops.Copy(in)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], data[i])
		}
	}
}

func TestInvert(t *testing.T) {
	in, data := rgbaLeaf(t, 33, 17)
	out, err := ops.Invert(in)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)
	for i := range data {
		if got[i] != 255-data[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], 255-data[i])
		}
	}
}

func TestInvert_TwiceIsIdentity(t *testing.T) {
	in, data := rgbaLeaf(t, 20, 20)
	mid, err := ops.Invert(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ops.Invert(mid)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], data[i])
		}
	}
}

func TestBrightness_MatchesWholeImageKernel(t *testing.T) {
	const w, h = 41, 29
	in, data := rgbaLeaf(t, w, h)
	out, err := ops.Brightness(in, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)

	want := adjust.Brightness(&image.RGBA{
		Pix: data, Stride: w * 4, Rect: image.Rect(0, 0, w, h),
	}, 0.25)
	for i := range want.Pix {
		if got[i] != want.Pix[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], want.Pix[i])
		}
	}
}

func TestBoxBlur_MatchesWholeImageKernel(t *testing.T) {
	const w, h = 48, 32
	in, data := rgbaLeaf(t, w, h)
	out, err := ops.BoxBlur(in, 2)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)

	want := blur.Box(&image.RGBA{
		Pix: data, Stride: w * 4, Rect: image.Rect(0, 0, w, h),
	}, 2)
	for i := range want.Pix {
		if got[i] != want.Pix[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], want.Pix[i])
		}
	}
}

func TestBoxBlur_RadiusZeroIsIdentity(t *testing.T) {
	in, data := rgbaLeaf(t, 19, 11)
	out, err := ops.BoxBlur(in, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], data[i])
		}
	}
}

func TestResize_MatchesWholeImageScale(t *testing.T) {
	const iw, ih = 40, 30
	const ow, oh = 25, 17
	in, data := rgbaLeaf(t, iw, ih)
	out, err := ops.Resize(in, ow, oh)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)

	src := &image.NRGBA{Pix: data, Stride: iw * 4, Rect: image.Rect(0, 0, iw, ih)}
	want := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	xdraw.ApproxBiLinear.Scale(want, want.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	for i := range want.Pix {
		if got[i] != want.Pix[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], want.Pix[i])
		}
	}
}

func TestResize_NonOpaqueAlpha(t *testing.T) {
	// Varying alpha must interpolate like a whole-image NRGBA scale, not
	// like raw bytes reinterpreted as premultiplied.
	const iw, ih = 32, 24
	const ow, oh = 21, 13
	data := make([]byte, iw*ih*4)
	for y := 0; y < ih; y++ {
		for x := 0; x < iw; x++ {
			i := (y*iw + x) * 4
			data[i+0] = uint8(x * 8)
			data[i+1] = uint8(y * 10)
			data[i+2] = 200
			data[i+3] = uint8(x*4 + y) // alpha gradient, mostly < 255
		}
	}
	in, err := demand.NewLeaf(iw, ih, demand.RGBA8, data)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ops.Resize(in, ow, oh)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)

	src := &image.NRGBA{Pix: data, Stride: iw * 4, Rect: image.Rect(0, 0, iw, ih)}
	want := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	xdraw.ApproxBiLinear.Scale(want, want.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	for i := range want.Pix {
		if got[i] != want.Pix[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], want.Pix[i])
		}
	}
}

func TestResize_Upscale(t *testing.T) {
	in, _ := rgbaLeaf(t, 10, 10)
	out, err := ops.Resize(in, 33, 27)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width() != 33 || out.Height() != 27 {
		t.Fatalf("got %dx%d, want 33x27", out.Width(), out.Height())
	}
	got := evaluate(t, out)
	if len(got) != 33*27*4 {
		t.Fatalf("got %d bytes, want %d", len(got), 33*27*4)
	}
}

func TestSaturate_ZeroIsGrayscale(t *testing.T) {
	const w, h = 24, 18
	in, data := rgbaLeaf(t, w, h)
	out, err := ops.Saturate(in, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)
	for i := 0; i < len(got); i += 4 {
		r, g, b := got[i], got[i+1], got[i+2]
		// HSL round trips through float; allow one step of rounding slack.
		if absDiff(r, g) > 1 || absDiff(g, b) > 1 || absDiff(r, b) > 1 {
			t.Fatalf("pixel %d: (%d, %d, %d) is not gray", i/4, r, g, b)
		}
		if got[i+3] != data[i+3] {
			t.Fatalf("pixel %d: alpha changed to %d", i/4, got[i+3])
		}
	}
}

func TestSaturate_OneIsNearIdentity(t *testing.T) {
	in, data := rgbaLeaf(t, 16, 16)
	out, err := ops.Saturate(in, 1)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)
	for i := range data {
		if absDiff(got[i], data[i]) > 1 {
			t.Fatalf("byte %d: got %d, want about %d", i, got[i], data[i])
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestPipeline_Composed(t *testing.T) {
	const w, h = 30, 30
	in, data := rgbaLeaf(t, w, h)
	mid, err := ops.Brightness(in, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ops.Invert(mid)
	if err != nil {
		t.Fatal(err)
	}
	got := evaluate(t, out)

	bright := adjust.Brightness(&image.RGBA{
		Pix: data, Stride: w * 4, Rect: image.Rect(0, 0, w, h),
	}, 0.1)
	for i := range bright.Pix {
		if got[i] != 255-bright.Pix[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], 255-bright.Pix[i])
		}
	}
}

func TestFormatRejection(t *testing.T) {
	gray, err := demand.New(10, 10, demand.Gray8)
	if err != nil {
		t.Fatal(err)
	}
	f32, err := demand.New(10, 10, demand.GrayF32)
	if err != nil {
		t.Fatal(err)
	}
	rgba, _ := rgbaLeaf(t, 10, 10)

	cases := []struct {
		name string
		call func() error
	}{
		{"brightness gray", func() error { _, err := ops.Brightness(gray, 0.5); return err }},
		{"boxblur gray", func() error { _, err := ops.BoxBlur(gray, 1); return err }},
		{"boxblur negative radius", func() error { _, err := ops.BoxBlur(rgba, -1); return err }},
		{"resize gray", func() error { _, err := ops.Resize(gray, 5, 5); return err }},
		{"resize zero width", func() error { _, err := ops.Resize(rgba, 0, 5); return err }},
		{"saturate gray", func() error { _, err := ops.Saturate(gray, 0.5); return err }},
		{"invert float", func() error { _, err := ops.Invert(f32); return err }},
		{"copy nil", func() error { _, err := ops.Copy(nil); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, demand.ErrShapeMismatch) {
				t.Errorf("err = %v, want ErrShapeMismatch", err)
			}
		})
	}
}
