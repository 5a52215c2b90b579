package demand

import "slices"

// CloseFunc is a lifecycle callback attached to an image. A returned error
// is logged and does not abort teardown; every registered callback runs.
type CloseFunc func(im *Image, a, b any) error

// EvalFunc is a progress callback: done and total count pixels of the image
// being sunk. It runs on a worker goroutine during evaluation and must not
// mutate the graph.
type EvalFunc func(im *Image, done, total int64, a, b any)

// lifecycleCallback is one registered pre-close or close callback.
type lifecycleCallback struct {
	fn CloseFunc
	a  any
	b  any
}

// evalCallback is one registered progress callback.
type evalCallback struct {
	fn EvalFunc
	a  any
	b  any
}

// AddPreCloseCallback registers fn to run when destruction of im actually
// begins: after Close has been requested and the last Region has been
// freed, before any teardown state changes. Pre-close callbacks run in
// registration order; the image and its graph are still fully valid during
// the call. Each fires exactly once per destroyed image, error paths
// included.
func (im *Image) AddPreCloseCallback(fn CloseFunc, a, b any) error {
	return im.addLifecycle(&im.preCloseCBs, "AddPreCloseCallback", fn, a, b)
}

// AddCloseCallback registers fn to run during teardown, after all
// pre-close callbacks. Close callbacks run in reverse registration order,
// so resources attached later — which may depend on earlier ones — are
// released first. Each fires exactly once per destroyed image.
func (im *Image) AddCloseCallback(fn CloseFunc, a, b any) error {
	return im.addLifecycle(&im.closeCBs, "AddCloseCallback", fn, a, b)
}

func (im *Image) addLifecycle(list *[]lifecycleCallback, name string, fn CloseFunc, a, b any) error {
	if fn == nil {
		return fail(failArg(name, "nil callback"))
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.tornDown {
		return failf("%w: %s after teardown", ErrClosed, name)
	}
	*list = append(*list, lifecycleCallback{fn: fn, a: a, b: b})
	return nil
}

// AddEvalCallback registers a progress callback, invoked after each piece
// completed while sinking im.
func (im *Image) AddEvalCallback(fn EvalFunc, a, b any) error {
	if fn == nil {
		return fail(failArg("AddEvalCallback", "nil callback"))
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.tornDown {
		return failf("%w: AddEvalCallback after teardown", ErrClosed)
	}
	im.evalCBs = append(im.evalCBs, evalCallback{fn: fn, a: a, b: b})
	return nil
}

// notifyEval reports evaluation progress to every registered eval callback.
func (im *Image) notifyEval(done, total int64) {
	im.mu.Lock()
	cbs := slices.Clone(im.evalCBs)
	im.mu.Unlock()
	for _, cb := range cbs {
		cb.fn(im, done, total, cb.a, cb.b)
	}
}

// maybeTeardownLocked decides whether teardown should run now: destruction
// requested, not yet torn down, and no live Regions. Called with im.mu
// held. It flips the torn-down flag and returns the teardown closure to
// run after the lock is released, or nil. Running outside the lock lets
// callbacks free Regions of other images.
func (im *Image) maybeTeardownLocked() func() {
	if im.tornDown || !im.closeRequested || im.regions > 0 {
		return nil
	}
	// Claim teardown under the lock so it runs exactly once even when a
	// Close races with the last Free.
	im.tornDown = true
	pre := slices.Clone(im.preCloseCBs)
	cls := slices.Clone(im.closeCBs)
	return func() {
		for _, cb := range pre {
			if err := cb.fn(im, cb.a, cb.b); err != nil {
				Logger().Warn("pre-close callback failed", "err", err)
			}
		}
		for i := len(cls) - 1; i >= 0; i-- {
			cb := cls[i]
			if err := cb.fn(im, cb.a, cb.b); err != nil {
				Logger().Warn("close callback failed", "err", err)
			}
		}
		im.mu.Lock()
		im.preCloseCBs = nil
		im.closeCBs = nil
		im.evalCBs = nil
		im.mu.Unlock()
	}
}
