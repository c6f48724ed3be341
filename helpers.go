package pointerflow

// ZoomToCursorDelta returns the translation along one axis that keeps
// cursor fixed on screen when an element whose transform originates at
// origin is scaled by factor.
func ZoomToCursorDelta(cursor, origin, factor float64) float64 {
	return (origin - cursor) * (factor - 1)
}

// ZoomToCursorTransform returns the gesture's transform corrected so that
// the gesture origin stays fixed on screen while scaling an element whose
// transform originates at (originX, originY). ev is not modified.
func ZoomToCursorTransform(ev *GestureEvent, originX, originY float64) TransformData {
	return ev.Transform.CounterZoomOffset(ev.Origin, originX, originY)
}
