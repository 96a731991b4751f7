package render

import "errors"

// Sentinel errors for render failures. Wrapped errors carry detail; callers
// classify with errors.Is.
var (
	// ErrProbeFailed means input geometry or duration could not be read.
	// Probe still returns usable defaults alongside it.
	ErrProbeFailed = errors.New("probe failed")

	// ErrEncodeFailed means the encoder ran but did not finish cleanly.
	ErrEncodeFailed = errors.New("encode failed")

	// ErrProcessLaunchFailed means the encoder binary could not be started.
	ErrProcessLaunchFailed = errors.New("process launch failed")

	// ErrCancelled means the caller's context ended the render.
	ErrCancelled = errors.New("render cancelled")

	// ErrOutputBusy means another render holds the lock for the output path.
	ErrOutputBusy = errors.New("output file busy")
)
