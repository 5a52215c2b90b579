package demand

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Sentinel errors reported by the engine. Failures wrap these with
// contextual detail, so callers should match with errors.Is.
var (
	// ErrShapeMismatch indicates incompatible sizes, element formats or
	// band counts between cooperating images.
	ErrShapeMismatch = errors.New("demand: shape mismatch")

	// ErrAllocation indicates that backing storage for a Region could not
	// be obtained.
	ErrAllocation = errors.New("demand: allocation failure")

	// ErrUpstream indicates that a generate function's own Prepare call on
	// an upstream Region failed. The upstream failure is wrapped alongside
	// and remains matchable with errors.Is.
	ErrUpstream = errors.New("demand: upstream failure")

	// ErrUserFunction indicates that a caller-supplied start, generate,
	// stop or buffer function reported failure.
	ErrUserFunction = errors.New("demand: user function failure")

	// ErrGraphCycle indicates that wiring an upstream edge would create a
	// cycle in the descriptor graph. The construction call fails and the
	// image is poisoned: no Region may be created against it.
	ErrGraphCycle = errors.New("demand: graph cycle")

	// ErrNoGenerator indicates a Prepare on an internal image that has no
	// generating triple attached.
	ErrNoGenerator = errors.New("demand: image has no generator")

	// ErrClosed indicates an operation on an image whose destruction has
	// been requested or whose construction failed.
	ErrClosed = errors.New("demand: image closed")
)

// engineSentinels lists every sentinel the engine itself can produce.
// Prepare uses it to tell upstream failures apart from user failures.
var engineSentinels = []error{
	ErrShapeMismatch, ErrAllocation, ErrUpstream,
	ErrUserFunction, ErrGraphCycle, ErrNoGenerator, ErrClosed,
}

// isEngineError reports whether err wraps any engine sentinel.
func isEngineError(err error) bool {
	for _, s := range engineSentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

// lastErrorPtr holds the most recent failure description, process-wide.
// Stored atomically so failures on any goroutine can record it.
var lastErrorPtr atomic.Pointer[string]

// failf records a failure: it formats the error, stores its text as the
// last-error description and returns it. All engine failure paths route
// through failf (or fail).
func failf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	s := err.Error()
	lastErrorPtr.Store(&s)
	return err
}

// fail records err as the last-error description and returns it unchanged.
func fail(err error) error {
	s := err.Error()
	lastErrorPtr.Store(&s)
	return err
}

// failArg builds a plain usage error for a misused API entry point.
// These are programming errors, not evaluation failures, so they carry no
// sentinel.
func failArg(fn, msg string) error {
	return fmt.Errorf("demand: %s: %s", fn, msg)
}

// LastError returns a description of the most recent failure recorded by
// the engine, or "" if none has occurred. The text is advisory, intended
// for diagnostics; it is not part of the control-flow contract and may be
// overwritten by failures on other goroutines at any time.
func LastError() string {
	if p := lastErrorPtr.Load(); p != nil {
		return *p
	}
	return ""
}
