package demand

// Generate attaches a generating triple and two opaque contexts to out,
// turning it into an internal node whose content is produced on demand.
// Nothing is evaluated here: evaluation is driven later by downstream
// Prepare calls on Regions of out. Unlike sink pieces, those requests are
// not disjoint or complete — gen may be asked to produce overlapping areas
// and must tolerate recomputation.
//
// Each Region of out gets its own sequence: start runs on the Region's
// first Prepare and stop when it is freed, both under the image's
// start/stop lock. start and stop may be nil.
//
// The contexts a and b are handed to every callback. They may be read and
// written inside start/stop, which are mutually exclusive; gen calls run
// concurrently and must treat them as read-only. Calls may happen well
// after Generate returns, so a and b must outlive the whole evaluation.
func Generate(out *Image, start StartFunc, gen GenerateFunc, stop StopFunc, a, b any) error {
	if out == nil {
		return fail(failArg("Generate", "nil image"))
	}
	return out.attach(start, gen, stop, a, b)
}

// StartOne is a standard start function for generate functions with a
// single upstream input and no other per-sequence state. The a context
// must be the upstream *Image; the sequence value is a Region on it.
// Pair with StopOne.
func StartOne(out *Image, a, b any) (any, error) {
	in, ok := a.(*Image)
	if !ok {
		return nil, failArg("StartOne", "context a is not an *Image")
	}
	return NewRegion(in)
}

// StopOne frees the Region created by StartOne.
func StopOne(seq, a, b any) error {
	if r, ok := seq.(*Region); ok {
		r.Free()
	}
	return nil
}

// StartMany is a standard start function for generate functions with an
// ordered list of upstream inputs. The a context must be a []*Image; the
// sequence value is a []*Region with one Region per input, in order.
// Pair with StopMany.
func StartMany(out *Image, a, b any) (any, error) {
	ins, ok := a.([]*Image)
	if !ok {
		return nil, failArg("StartMany", "context a is not a []*Image")
	}
	return newRegions(ins)
}

// StopMany frees the Regions created by StartMany.
func StopMany(seq, a, b any) error {
	if regs, ok := seq.([]*Region); ok {
		freeRegions(regs)
	}
	return nil
}

// newRegions creates one Region per input. On failure the Regions already
// created are freed before the error is returned.
func newRegions(ins []*Image) ([]*Region, error) {
	regs := make([]*Region, 0, len(ins))
	for _, in := range ins {
		r, err := NewRegion(in)
		if err != nil {
			freeRegions(regs)
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, nil
}

func freeRegions(regs []*Region) {
	for _, r := range regs {
		r.Free()
	}
}
