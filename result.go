package pointerflow

import "fmt"

// Status is the outcome of one middleware step.
type Status int

const (
	// StatusContinue passes control to the next middleware.
	StatusContinue Status = iota
	// StatusAbort stops the middleware chain on purpose. Not an error.
	StatusAbort
	// StatusFailed stops the middleware chain because of an error.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusAbort:
		return "abort"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is returned by every middleware.
type Result struct {
	Status Status
	Err    error
}

// Next continues the chain.
func Next() Result {
	return Result{Status: StatusContinue}
}

// Abort stops the chain without reporting a failure. Afterware still runs.
func Abort() Result {
	return Result{Status: StatusAbort}
}

// Fail stops the chain and reports err outside production.
func Fail(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// Failf is Fail with a formatted error.
func Failf(format string, args ...any) Result {
	return Fail(fmt.Errorf(format, args...))
}

// IsContinue reports whether the chain should continue.
func (r Result) IsContinue() bool { return r.Status == StatusContinue }

// IsAbort reports whether the chain was stopped on purpose.
func (r Result) IsAbort() bool { return r.Status == StatusAbort }

// IsFailed reports whether the step failed.
func (r Result) IsFailed() bool { return r.Status == StatusFailed }
