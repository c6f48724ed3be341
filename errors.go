package pointerflow

import "errors"

var (
	// ErrPanic wraps a panic recovered from a middleware or afterware.
	ErrPanic = errors.New("middleware panicked")

	// ErrMaxDepth is reported when nested dispatches exceed Config.MaxDepth.
	ErrMaxDepth = errors.New("maximum dispatch depth exceeded")

	// ErrUnknownEvent is returned when an event name cannot be decoded.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrInvalidEventMap is returned when an event map entry is malformed.
	ErrInvalidEventMap = errors.New("invalid event map")

	// ErrNoSteps is returned when an input script contains no steps.
	ErrNoSteps = errors.New("script has no steps")

	// ErrUnknownAction is returned for an input script step with an unknown action.
	ErrUnknownAction = errors.New("unknown script action")
)
