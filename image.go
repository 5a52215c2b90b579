package demand

import (
	"slices"
	"sync"
)

// DemandHint tells the engine what shape of piece an image prefers to
// produce. Operations set it on their output image; the sink coordinator
// uses it to pick the tiling of the full extent.
type DemandHint uint8

const (
	// HintNone expresses no preference; the engine picks whole-width
	// strips sized for the configured parallelism.
	HintNone DemandHint = iota

	// HintTile asks for small square tiles, good for operations with
	// two-dimensional locality such as convolution.
	HintTile

	// HintStrip asks for short whole-width strips, good for purely
	// horizontal scans.
	HintStrip

	// HintAny means any piece shape is equally cheap, typical for
	// pointwise operations.
	HintAny
)

// String returns the hint name.
func (h DemandHint) String() string {
	switch h {
	case HintNone:
		return "none"
	case HintTile:
		return "tile"
	case HintStrip:
		return "strip"
	case HintAny:
		return "any"
	default:
		return "unknown"
	}
}

// StartFunc creates per-sequence state for evaluating im. It is called
// once per sequence, serialized against every other start and stop call on
// the same image, so it may freely read and write the shared contexts.
// The returned value is handed back to each GenerateFunc invocation and
// finally to the StopFunc.
type StartFunc func(im *Image, a, b any) (any, error)

// GenerateFunc fills (sink: consumes) out.Valid() for one piece. Calls run
// concurrently with each other and with no lock held; they must touch only
// their own sequence state and Region, and must treat the shared contexts
// as read-only.
type GenerateFunc func(out *Region, seq, a, b any) error

// StopFunc destroys per-sequence state. Like StartFunc it is serialized
// against all other start/stop calls on the image, so shared-context
// writes (accumulators) need no extra synchronization. A StopFunc must not
// create new Regions on the image being stopped.
type StopFunc func(seq, a, b any) error

// Image is one node of the computation graph: it describes an array's
// shape and element format and knows how to produce its content. A leaf
// Image carries resident data; an internal Image carries a generating
// triple wired to upstream Images.
//
// Construction (New, NewLeaf, SetUpstream, Generate, callback
// registration) is not safe for concurrent use; evaluation (Prepare, Sink)
// is. Build the graph first, then evaluate.
type Image struct {
	width  int
	height int
	format Format
	hint   DemandHint

	// Resident data for leaf images; nil for internal nodes.
	data []byte

	// Generating triple plus opaque contexts, for internal nodes.
	start StartFunc
	gen   GenerateFunc
	stop  StopFunc
	ctxA  any
	ctxB  any

	upstream []*Image

	// mu serializes start/stop calls on this image and guards the
	// mutable state below. Lock acquisition follows upstream edges only,
	// so the DAG invariant makes nested locking safe.
	mu             sync.Mutex
	regions        int
	closeRequested bool
	tornDown       bool
	poisoned       bool
	preCloseCBs    []lifecycleCallback
	closeCBs       []lifecycleCallback
	evalCBs        []evalCallback
}

// New creates a blank internal image of the given shape. Content arrives
// later, either through Generate or one of the wrap helpers.
func New(width, height int, format Format) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, failf("%w: invalid dimensions %dx%d", ErrShapeMismatch, width, height)
	}
	if !format.Valid() {
		return nil, failf("%w: invalid format %v", ErrShapeMismatch, format)
	}
	return &Image{width: width, height: height, format: format}, nil
}

// NewLeaf creates a leaf image over already-resident data. The buffer is
// used directly, not copied: it must hold at least format.RowBytes(width) *
// height bytes (ErrShapeMismatch otherwise) and must stay valid for the
// life of the image. Regions prepared against a leaf view this buffer
// without copying.
func NewLeaf(width, height int, format Format, data []byte) (*Image, error) {
	im, err := New(width, height, format)
	if err != nil {
		return nil, err
	}
	need := format.RowBytes(width) * height
	if len(data) < need {
		return nil, failf("%w: leaf data %d bytes, need %d", ErrShapeMismatch, len(data), need)
	}
	im.data = data
	return im, nil
}

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.height }

// Format returns the element format.
func (im *Image) Format() Format { return im.format }

// Bounds returns the full extent {0, 0, Width, Height}.
func (im *Image) Bounds() Rect {
	return Rect{Width: im.width, Height: im.height}
}

// DemandHint returns the current demand-shape hint.
func (im *Image) DemandHint() DemandHint { return im.hint }

// SetDemandHint sets the piece-shape preference used when sinking this
// image.
func (im *Image) SetDemandHint(h DemandHint) { im.hint = h }

// IsLeaf reports whether the image carries resident data.
func (im *Image) IsLeaf() bool { return im.data != nil }

// Upstream returns the wired upstream images, in order.
func (im *Image) Upstream() []*Image { return slices.Clone(im.upstream) }

// SetUpstream records the upstream edges of an internal image, replacing
// any previous wiring. Edges must keep the graph a DAG: a self-reference
// or any edge through which im is already reachable is rejected with
// ErrGraphCycle, and the image is poisoned — no Region may be created
// against it afterwards.
func (im *Image) SetUpstream(ups ...*Image) error {
	for _, up := range ups {
		if up == nil {
			return fail(failArg("SetUpstream", "nil upstream image"))
		}
		if up == im || reaches(up, im) {
			im.mu.Lock()
			im.poisoned = true
			im.mu.Unlock()
			return failf("%w: edge %p -> %p", ErrGraphCycle, im, up)
		}
	}
	im.upstream = slices.Clone(ups)
	return nil
}

// reaches reports whether target is reachable from im along upstream
// edges.
func reaches(im, target *Image) bool {
	for _, up := range im.upstream {
		if up == target || reaches(up, target) {
			return true
		}
	}
	return false
}

// Close requests destruction of the image. Destruction is deferred while
// any Region still references the image; the last Free runs teardown:
// pre-close callbacks in registration order, then close callbacks in
// reverse registration order, exactly once. Close never fails and is safe
// to call more than once.
func (im *Image) Close() error {
	im.mu.Lock()
	im.closeRequested = true
	td := im.maybeTeardownLocked()
	im.mu.Unlock()
	if td != nil {
		td()
	}
	return nil
}

// attach wires a generating triple onto an internal image. Exposed through
// Generate; see generate.go.
func (im *Image) attach(start StartFunc, gen GenerateFunc, stop StopFunc, a, b any) error {
	if im.IsLeaf() {
		return failf("%w: leaf image cannot take a generator", ErrShapeMismatch)
	}
	if gen == nil {
		return fail(failArg("Generate", "nil generate function"))
	}
	if im.gen != nil {
		return fail(failArg("Generate", "image already has a generator"))
	}
	im.start = start
	im.gen = gen
	im.stop = stop
	im.ctxA = a
	im.ctxB = b
	return nil
}
