package demand

import (
	"fmt"
	"sync/atomic"

	"github.com/gopix/demand/internal/parallel"
)

// sinkSequence is one worker's evaluation state during a Sink: the opaque
// value returned by the start function plus the Region it pulls data
// through.
type sinkSequence struct {
	seq     any
	started bool
	region  *Region
}

// Sink pulls the whole of root through the pipeline, producing no array
// output: the caller's functions consume the data piece by piece. The full
// extent is partitioned into disjoint pieces per root's demand hint —
// every coordinate is visited by exactly one generate call — and the
// pieces are dispatched across a fixed pool of workers, one sequence per
// worker.
//
// Per worker: start runs once (serialized with every other start/stop call
// on root), then for each assigned piece the worker prepares its Region
// and calls gen(region, seq, a, b), then stop runs once (serialized
// again). start and stop may be nil. Generate calls run concurrently with
// no lock and must treat a and b as read-only; start/stop may freely
// read and write them.
//
// The first error — from start, gen or stop — stops further dispatch and
// is returned; every sequence that was started still receives its stop
// call, so no sequence leaks on failure.
func Sink(root *Image, start StartFunc, gen GenerateFunc, stop StopFunc, a, b any, opts ...SinkOption) error {
	if root == nil {
		return fail(failArg("Sink", "nil image"))
	}
	if gen == nil {
		return fail(failArg("Sink", "nil generate function"))
	}

	o := defaultSinkOptions()
	for _, opt := range opts {
		opt(&o)
	}

	workers := parallel.Workers(o.workers)
	pieces := partition(root.Bounds(), root.DemandHint(), o, workers)
	if len(pieces) == 0 {
		return nil
	}
	if workers > len(pieces) {
		workers = len(pieces)
	}
	Logger().Debug("sink", "pieces", len(pieces), "workers", workers, "hint", root.DemandHint())

	// Start one sequence per worker up front, serially. A start failure
	// leaves the already-started sequences to the stop loop below.
	seqs := make([]sinkSequence, workers)
	var firstErr error
	for i := range seqs {
		region, err := NewRegion(root)
		if err != nil {
			firstErr = err
			break
		}
		seqs[i].region = region
		if start != nil {
			root.mu.Lock()
			sv, err := start(root, a, b)
			root.mu.Unlock()
			if err != nil {
				firstErr = fail(fmt.Errorf("%w: sink start: %w", ErrUserFunction, err))
				break
			}
			seqs[i].seq = sv
		}
		seqs[i].started = true
	}

	if firstErr == nil {
		var done atomic.Int64
		total := int64(root.Bounds().Area())
		firstErr = parallel.ForEach(workers, pieces, func(worker int, piece Rect) error {
			s := &seqs[worker]
			if err := s.region.Prepare(piece); err != nil {
				return err
			}
			if err := gen(s.region, s.seq, a, b); err != nil {
				if isEngineError(err) {
					return fail(fmt.Errorf("%w: %w", ErrUpstream, err))
				}
				return fail(fmt.Errorf("%w: sink generate: %w", ErrUserFunction, err))
			}
			root.notifyEval(done.Add(int64(piece.Area())), total)
			return nil
		})
	}

	// Stop every started sequence and free its Region, even on failure.
	for i := range seqs {
		s := &seqs[i]
		if s.started && stop != nil {
			root.mu.Lock()
			err := stop(s.seq, a, b)
			root.mu.Unlock()
			if err != nil {
				err = fail(fmt.Errorf("%w: sink stop: %w", ErrUserFunction, err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		s.region.Free()
	}
	return firstErr
}
