package demand

// BufferFunc is a flat, coordinate-free processing callback: in holds one
// row of pixels from each input, out receives the corresponding output
// row, n is the pixel count. Row buffers are exactly n * PixelBytes long.
//
// Invocations may run concurrently across workers, so a and b must be
// treated as read-only for the duration of the call. Invocation may also
// be delayed well past the WrapOne/WrapMany call that installed the
// function, so a and b must not reference storage with a shorter lifetime
// than the pipeline's evaluation.
type BufferFunc func(in [][]byte, out []byte, n int, a, b any) error

// wrapContext carries the wrap plumbing through the generating triple.
type wrapContext struct {
	ins []*Image
	fn  BufferFunc
	a   any
	b   any
}

// WrapOne builds the region plumbing for a one-in, one-out operation where
// every output pixel depends only on the co-located input pixel: it wires
// in as the upstream of out and attaches a generating triple that prepares
// the matching input rect and hands flat row buffers to fn.
//
// in and out must have the same dimensions and known element widths
// (ErrShapeMismatch otherwise); band counts may differ.
func WrapOne(in, out *Image, fn BufferFunc, a, b any) error {
	return WrapMany([]*Image{in}, out, fn, a, b)
}

// WrapMany is WrapOne for an ordered list of inputs: fn receives one
// co-located row buffer per input.
func WrapMany(ins []*Image, out *Image, fn BufferFunc, a, b any) error {
	if out == nil {
		return fail(failArg("WrapMany", "nil output image"))
	}
	if len(ins) == 0 {
		return fail(failArg("WrapMany", "no input images"))
	}
	if fn == nil {
		return fail(failArg("WrapMany", "nil buffer function"))
	}
	if !out.format.Valid() {
		return failf("%w: output format %v", ErrShapeMismatch, out.format)
	}
	for _, in := range ins {
		if in == nil {
			return fail(failArg("WrapMany", "nil input image"))
		}
		if !in.format.Valid() {
			return failf("%w: input format %v", ErrShapeMismatch, in.format)
		}
		if in.width != out.width || in.height != out.height {
			return failf("%w: input %dx%d, output %dx%d",
				ErrShapeMismatch, in.width, in.height, out.width, out.height)
		}
	}
	if err := out.SetUpstream(ins...); err != nil {
		return err
	}
	wc := &wrapContext{ins: ins, fn: fn, a: a, b: b}
	return Generate(out, wrapStart, wrapGen, wrapStop, wc, nil)
}

func wrapStart(out *Image, a, b any) (any, error) {
	wc := a.(*wrapContext)
	return newRegions(wc.ins)
}

func wrapStop(seq, a, b any) error {
	if regs, ok := seq.([]*Region); ok {
		freeRegions(regs)
	}
	return nil
}

// wrapGen prepares each input over exactly the requested output rect, then
// feeds the buffer function one row at a time.
func wrapGen(out *Region, seq, a, b any) error {
	wc := a.(*wrapContext)
	regs := seq.([]*Region)
	r := out.Valid()

	for _, reg := range regs {
		if err := reg.Prepare(r); err != nil {
			return err
		}
	}

	rows := make([][]byte, len(regs))
	outPix := out.Image().Format().PixelBytes()
	for y := r.Top; y < r.Bottom(); y++ {
		for i, reg := range regs {
			pix := reg.Image().Format().PixelBytes()
			rows[i] = reg.Addr(r.Left, y)[:r.Width*pix]
		}
		outRow := out.Addr(r.Left, y)[:r.Width*outPix]
		if err := wc.fn(rows, outRow, r.Width, wc.a, wc.b); err != nil {
			return err
		}
	}
	return nil
}
