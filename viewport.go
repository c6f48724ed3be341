package pointerflow

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport defaults.
const (
	DefaultMinZoom          = 0.1
	DefaultMaxZoom          = 10.0
	DefaultWheelSensitivity = 0.0015
)

// scrollAnim holds active scroll-to tweens for viewport X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// viewGesture remembers how the gesture driving the viewport relates to the
// view it started from.
type viewGesture struct {
	session string
	base    TransformData // view when the current anchor was set
	ref     TransformData // gesture transform at that moment
	origin  TransformData // gesture origin the anchor belongs to
	last    TransformData // last gesture transform seen
}

// Viewport is a pan and zoom view over a world plane, driven by gesture and
// wheel events. A world point (wx, wy) is shown at screen position
// (wx*Zoom + X, wy*Zoom + Y).
type Viewport struct {
	// X and Y are the screen position of the world origin.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Screen is the screen-space rectangle the viewport covers.
	Screen Rect

	// MinZoom and MaxZoom clamp Zoom during gestures and wheel zooming.
	MinZoom, MaxZoom float64
	// WheelSensitivity converts wheel deltas into zoom factors.
	WheelSensitivity float64

	// Entity selects which entity's gestures move the viewport. NoEntity
	// accepts any.
	Entity EntityID

	// BoundsEnabled clamps the position so the visible area stays within
	// Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the view is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	gesture     *viewGesture
	scrollTween *scrollAnim
}

// NewViewport creates a Viewport covering screen at zoom 1.
func NewViewport(screen Rect) *Viewport {
	return &Viewport{
		Zoom:             1.0,
		Screen:           screen,
		MinZoom:          DefaultMinZoom,
		MaxZoom:          DefaultMaxZoom,
		WheelSensitivity: DefaultWheelSensitivity,
	}
}

// Transform returns the world-to-screen transform.
func (v *Viewport) Transform() TransformData {
	return NewTransform(v.X, v.Y, v.Zoom, 0)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(v.Transform().Matrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(invertAffine(v.Transform().Matrix()), sx, sy)
}

// WorldMatrix returns the screen-space matrix for an object placed in the
// world by local.
func (v *Viewport) WorldMatrix(local TransformData) [6]float64 {
	return composeAffine(v.Transform().Matrix(), local.Matrix())
}

// VisibleBounds returns the world-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	x0, y0 := v.ScreenToWorld(v.Screen.X, v.Screen.Y)
	x1, y1 := v.ScreenToWorld(v.Screen.X+v.Screen.Width, v.Screen.Y+v.Screen.Height)
	return Rect{
		X: math.Min(x0, x1), Y: math.Min(y0, y1),
		Width: math.Abs(x1 - x0), Height: math.Abs(y1 - y0),
	}
}

// SetBounds enables bounds clamping.
func (v *Viewport) SetBounds(bounds Rect) {
	v.BoundsEnabled = true
	v.Bounds = bounds
	v.clampToBounds()
}

// ClearBounds disables bounds clamping.
func (v *Viewport) ClearBounds() {
	v.BoundsEnabled = false
}

// ZoomAt scales the view by factor around the screen point (sx, sy), which
// stays fixed on screen.
func (v *Viewport) ZoomAt(sx, sy, factor float64) {
	zoom := v.clampZoom(v.Zoom * factor)
	factor = zoom / v.Zoom
	v.X += ZoomToCursorDelta(sx, v.X, factor)
	v.Y += ZoomToCursorDelta(sy, v.Y, factor)
	v.Zoom = zoom
	v.clampToBounds()
}

// PanBy moves the view by (dx, dy) screen pixels.
func (v *Viewport) PanBy(dx, dy float64) {
	v.X += dx
	v.Y += dy
	v.clampToBounds()
}

// ScrollTo animates the view so the world point (wx, wy) ends up at the
// center of Screen after duration seconds. Advance it with Update.
func (v *Viewport) ScrollTo(wx, wy float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	tx := v.Screen.X + v.Screen.Width/2 - wx*v.Zoom
	ty := v.Screen.Y + v.Screen.Height/2 - wy*v.Zoom
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.X), float32(tx), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(ty), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (v *Viewport) Scrolling() bool { return v.scrollTween != nil }

// Update advances a running ScrollTo animation by dt seconds.
func (v *Viewport) Update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	if !v.scrollTween.doneX {
		val, done := v.scrollTween.tweenX.Update(dt)
		v.X = float64(val)
		v.scrollTween.doneX = done
	}
	if !v.scrollTween.doneY {
		val, done := v.scrollTween.tweenY.Update(dt)
		v.Y = float64(val)
		v.scrollTween.doneY = done
	}
	if v.scrollTween.doneX && v.scrollTween.doneY {
		v.scrollTween = nil
	}
	v.clampToBounds()
}

// Middleware returns a middleware that moves the viewport on gesture events
// for Entity and zooms it on wheel events.
func (v *Viewport) Middleware() Middleware {
	return func(data *EventData, _ *Processor) Result {
		switch ev := data.Event.(type) {
		case *GestureEvent:
			if v.Entity == NoEntity || ev.ID == v.Entity {
				v.HandleGesture(ev)
			}
		case *WheelEvent:
			v.HandleWheel(ev)
		}
		return Next()
	}
}

// HandleWheel zooms around the wheel position.
func (v *Viewport) HandleWheel(ev *WheelEvent) {
	if ev.DeltaY == 0 {
		return
	}
	v.ZoomAt(ev.ClientX, ev.ClientY, math.Exp(-ev.DeltaY*v.WheelSensitivity))
}

// HandleGesture applies a gesture event. The point under the gesture origin
// follows the pointers and scaling happens around it. When the gesture is
// rebased (a pointer joined or left) the view is re-anchored so nothing
// jumps.
func (v *Viewport) HandleGesture(ev *GestureEvent) {
	v.scrollTween = nil
	switch ev.Kind {
	case GestureStart:
		v.gesture = &viewGesture{
			session: ev.Session,
			base:    v.Transform(),
			ref:     ev.Transform,
			origin:  ev.Origin,
			last:    ev.Transform,
		}
	case GestureMove:
		g := v.gesture
		if g == nil || g.session != ev.Session {
			g = &viewGesture{session: ev.Session, base: v.Transform(), ref: ev.Transform, origin: ev.Origin}
			v.gesture = g
		}
		if ev.Origin != g.origin {
			g.base = v.Transform()
			g.ref = g.last
			g.origin = ev.Origin
		}
		g.last = ev.Transform
		v.applyGesture(g, ev.Transform.Subtract(g.ref))
	case GestureEnd:
		v.gesture = nil
	}
}

func (v *Viewport) applyGesture(g *viewGesture, rel TransformData) {
	zoom := v.clampZoom(g.base.Scale * rel.Scale)
	rel.Scale = zoom / g.base.Scale
	ct := rel.CounterZoomOffset(g.origin, g.base.TranslateX, g.base.TranslateY)
	v.X = g.base.TranslateX + ct.TranslateX
	v.Y = g.base.TranslateY + ct.TranslateY
	v.Zoom = zoom
	v.clampToBounds()
}

func (v *Viewport) clampZoom(z float64) float64 {
	if v.MinZoom > 0 && z < v.MinZoom {
		return v.MinZoom
	}
	if v.MaxZoom > 0 && z > v.MaxZoom {
		return v.MaxZoom
	}
	return z
}

// clampToBounds restricts the position so the visible area stays within
// Bounds. If Bounds is smaller than the visible area it is centered.
func (v *Viewport) clampToBounds() {
	if !v.BoundsEnabled {
		return
	}
	// X ranges over [screenRight - boundsRight*zoom, screenLeft - boundsLeft*zoom].
	minX := v.Screen.X + v.Screen.Width - (v.Bounds.X+v.Bounds.Width)*v.Zoom
	maxX := v.Screen.X - v.Bounds.X*v.Zoom
	minY := v.Screen.Y + v.Screen.Height - (v.Bounds.Y+v.Bounds.Height)*v.Zoom
	maxY := v.Screen.Y - v.Bounds.Y*v.Zoom

	if minX > maxX {
		v.X = v.Screen.X + v.Screen.Width/2 - (v.Bounds.X+v.Bounds.Width/2)*v.Zoom
	} else {
		v.X = math.Max(minX, math.Min(v.X, maxX))
	}
	if minY > maxY {
		v.Y = v.Screen.Y + v.Screen.Height/2 - (v.Bounds.Y+v.Bounds.Height/2)*v.Zoom
	} else {
		v.Y = math.Max(minY, math.Min(v.Y, maxY))
	}
}
