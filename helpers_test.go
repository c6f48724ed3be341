package pointerflow

import "testing"

func TestZoomToCursorDelta(t *testing.T) {
	tests := []struct {
		cursor, origin, factor, want float64
	}{
		{20, 0, 0.5, 10},
		{247, 0, 2, -247},
		{100, 100, 3, 0},
		{50, 0, 1, 0},
	}
	for _, tt := range tests {
		got := ZoomToCursorDelta(tt.cursor, tt.origin, tt.factor)
		assertNear(t, "ZoomToCursorDelta", got, tt.want)
	}
}

func TestZoomToCursorTransform(t *testing.T) {
	ev := &GestureEvent{
		EventBase: EventBase{Kind: GestureMove},
		Origin:    NewTransform(80, 80, 1, 0),
		Transform: NewTransform(0, 0, 2, 0),
	}
	got := ZoomToCursorTransform(ev, 0, 0)
	assertTransform(t, "ZoomToCursorTransform", got, NewTransform(-80, -80, 2, 0))
	assertTransform(t, "event untouched", ev.Transform, NewTransform(0, 0, 2, 0))

	// Scaling around the origin itself needs no correction.
	got = ZoomToCursorTransform(ev, 80, 80)
	assertTransform(t, "at origin", got, NewTransform(0, 0, 2, 0))
}
