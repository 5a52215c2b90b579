// Package demand is a demand-driven, tile-based pipeline evaluation engine
// for large array computations.
//
// # Overview
//
// A computation is expressed as a graph of Images — nodes describing an
// array's shape, element format and how its content is produced — but is
// executed in small, cache-friendly Regions, possibly in parallel, without
// ever materializing full intermediate arrays. Leaf Images carry resident
// data; internal Images carry a generating triple wired to upstream
// Images.
//
// # Quick start
//
//	// An 8x8 single-band leaf image.
//	data := make([]byte, 64)
//	in, _ := demand.NewLeaf(8, 8, demand.Gray8, data)
//
//	// An operation: out[i] = 255 - in[i].
//	out, _ := demand.New(8, 8, demand.Gray8)
//	demand.WrapOne(in, out, func(in [][]byte, dst []byte, n int, a, b any) error {
//	    for i := range dst {
//	        dst[i] = 255 - in[0][i]
//	    }
//	    return nil
//	}, nil, nil)
//
//	// Pull a rectangle through the pipeline.
//	r, _ := demand.NewRegion(out)
//	defer r.Free()
//	err := r.Prepare(demand.Rect{Width: 8, Height: 8})
//
// # Evaluation model
//
// Prepare is the pull: a request for a rectangle clips to the image
// bounds, then either views the leaf's resident data or runs the node's
// generate function, which recursively Prepares its own upstream Regions.
// Sink drives a whole image through a fixed pool of workers, each owning
// an independent sequence, over a disjoint and complete partition of the
// extent. Generate attaches a triple for lazy, downstream-driven
// production, where requests may overlap.
//
// # Lifecycle
//
// Images are reference counted by their live Regions: Close requests
// destruction, which is deferred until the last Region is freed, then
// pre-close and close callbacks fire exactly once (close callbacks in
// reverse registration order).
//
// # Concurrency
//
// Start and stop functions are serialized per image, so they may freely
// share accumulators through the opaque contexts. Generate functions run
// concurrently with no lock and own nothing but their sequence state and
// Region. All blocking is plain goroutine blocking; cancellation is
// failure-driven only.
//
// The ops and source sub-packages provide ready-made operations and leaf
// constructors built entirely on this public API.
package demand
