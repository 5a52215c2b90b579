package demand

import "fmt"

// Prepare fills the Region with correct data for the requested rectangle.
// This is the demand-engine entry point: the request is clipped to the
// image bounds, then satisfied either from the leaf's resident data (no
// copy) or by running the image's generate function, which in turn calls
// Prepare on its own upstream Regions — that recursion is how the pipeline
// depth is traversed.
//
// On success every coordinate in Valid() holds correct data and Valid()
// covers the clipped request; it may be larger, never smaller. On failure
// Valid() is unset and must not be read; sibling Regions are unaffected.
//
// A zero-area request, or one fully outside the bounds, clips to empty and
// trivially succeeds — clipping is silent throughout the engine.
func (r *Region) Prepare(req Rect) error {
	if r == nil || r.im == nil {
		return failf("%w: Prepare on freed region", ErrClosed)
	}
	im := r.im

	clip := req.ClipTo(im.width, im.height)
	if clip.IsEmpty() {
		r.valid = Rect{}
		r.validSet = true
		return nil
	}

	if im.IsLeaf() {
		// Point the region at the resident data, no copy. Storage
		// covers the whole image; valid reports the clipped request.
		r.data = im.data
		r.stride = im.format.RowBytes(im.width)
		r.dataRect = im.Bounds()
		r.view = true
		r.valid = clip
		r.validSet = true
		return nil
	}

	if im.gen == nil {
		return failf("%w: Prepare %dx%d image", ErrNoGenerator, im.width, im.height)
	}

	// Memoization: storage already covering the request and marked valid
	// means no recomputation within this region's lifetime.
	if r.validSet && !r.view && r.dataRect.ContainsRect(clip) && r.valid.ContainsRect(clip) {
		return nil
	}

	if err := r.alloc(clip); err != nil {
		return err
	}
	if err := r.startSequence(); err != nil {
		return err
	}
	r.valid = clip
	r.validSet = true
	if err := im.gen(r, r.seq, im.ctxA, im.ctxB); err != nil {
		r.validSet = false
		if isEngineError(err) {
			// The generate function's own upstream Prepare failed;
			// propagate it, still matchable verbatim via errors.Is.
			return fail(fmt.Errorf("%w: %w", ErrUpstream, err))
		}
		return fail(fmt.Errorf("%w: %w", ErrUserFunction, err))
	}
	return nil
}

// startSequence lazily starts the Region's evaluation sequence. The start
// function runs under the image's start/stop lock, mutually exclusive with
// every other start and stop call on the image.
func (r *Region) startSequence() error {
	if r.seqStarted {
		return nil
	}
	im := r.im
	if im.start == nil {
		r.seqStarted = true
		return nil
	}
	im.mu.Lock()
	seq, err := im.start(im, im.ctxA, im.ctxB)
	im.mu.Unlock()
	if err != nil {
		return fail(fmt.Errorf("%w: start: %w", ErrUserFunction, err))
	}
	r.seq = seq
	r.seqStarted = true
	Logger().Debug("sequence started", "image", fmt.Sprintf("%dx%d", im.width, im.height))
	return nil
}
