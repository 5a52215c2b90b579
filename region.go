package demand

// Region is a materialized rectangle of one Image's data: a valid rect
// plus backing storage. Regions are the unit the engine actually computes;
// full intermediate arrays are never materialized.
//
// A Region belongs to exactly one sequence and must not be shared across
// goroutines. Its storage is exclusively owned, except when it acts as a
// view onto a leaf image's resident data.
type Region struct {
	im *Image

	// valid is the area currently holding correct data, always clipped
	// to the image bounds. Coordinates outside valid are undefined.
	valid    Rect
	validSet bool

	// Storage. dataRect is the rectangle the buffer covers; valid is
	// always contained in it. A row of dataRect starts every stride
	// bytes. view marks storage delegated to the image's resident data.
	data     []byte
	stride   int
	dataRect Rect
	view     bool

	// Lazily-started evaluation sequence for generated images.
	seq        any
	seqStarted bool
}

// NewRegion creates an empty Region over im: zero-area valid, no storage.
// It increments the image's live-region count, deferring any requested
// destruction until the Region is freed. Fails with ErrClosed on an image
// whose destruction has been requested or whose construction was rejected.
//
// Every Region created must eventually be released with Free; this is a
// caller obligation, not automatic.
func NewRegion(im *Image) (*Region, error) {
	if im == nil {
		return nil, fail(failArg("NewRegion", "nil image"))
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.poisoned || im.closeRequested || im.tornDown {
		return nil, failf("%w: NewRegion", ErrClosed)
	}
	im.regions++
	return &Region{im: im}, nil
}

// Free releases the Region: its sequence is stopped (serialized with all
// other start/stop calls on the image), its storage dropped, and the
// image's live-region count decremented. If the count reaches zero and
// destruction was requested, teardown runs now. Free is idempotent.
func (r *Region) Free() {
	if r == nil || r.im == nil {
		return
	}
	im := r.im
	r.im = nil

	im.mu.Lock()
	if r.seqStarted && im.stop != nil {
		if err := im.stop(r.seq, im.ctxA, im.ctxB); err != nil {
			Logger().Warn("sequence stop failed", "err", err)
		}
	}
	r.seq = nil
	r.seqStarted = false
	im.regions--
	td := im.maybeTeardownLocked()
	im.mu.Unlock()

	r.data = nil
	r.validSet = false
	r.valid = Rect{}
	r.dataRect = Rect{}
	if td != nil {
		td()
	}
}

// Image returns the owning image, or nil after Free.
func (r *Region) Image() *Image { return r.im }

// Valid returns the rectangle currently holding correct data. It is only
// meaningful after a successful Prepare.
func (r *Region) Valid() Rect { return r.valid }

// Stride returns the byte distance between vertically adjacent pixels in
// the backing storage.
func (r *Region) Stride() int { return r.stride }

// Bytes returns the whole backing storage, covering dataRect row by row.
func (r *Region) Bytes() []byte { return r.data }

// Addr returns the storage starting at pixel (x, y) in image coordinates
// and running to the end of the buffer. (x, y) must lie inside the
// prepared area; rows are Stride bytes apart. Addr panics on a coordinate
// outside the storage rect, matching the undefined-outside-valid contract.
func (r *Region) Addr(x, y int) []byte {
	if !r.dataRect.ContainsPoint(x, y) {
		panic("demand: Region.Addr outside prepared area")
	}
	off := (y-r.dataRect.Top)*r.stride + (x-r.dataRect.Left)*r.im.format.PixelBytes()
	return r.data[off:]
}

// Row returns the pixels of row y across the valid rect.
func (r *Region) Row(y int) []byte {
	n := r.valid.Width * r.im.format.PixelBytes()
	return r.Addr(r.valid.Left, y)[:n]
}

// alloc replaces the Region's storage with a fresh buffer covering rect.
// Storage is never resized in place: the old valid/storage pair is
// dropped. Fails with ErrAllocation when the size cannot be represented.
func (r *Region) alloc(rect Rect) error {
	pix := r.im.format.PixelBytes()
	stride := rect.Width * pix
	need := int64(stride) * int64(rect.Height)
	if need < 0 || need != int64(int(need)) {
		return failf("%w: %dx%d at %d bytes/pixel", ErrAllocation, rect.Width, rect.Height, pix)
	}
	r.data = make([]byte, int(need))
	r.stride = stride
	r.dataRect = rect
	r.view = false
	r.validSet = false
	return nil
}
