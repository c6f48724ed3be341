package pointerflow

// TransformGesture tracks the transform of one entity across the lifetime of
// its pointers. Transform always reports the total displacement since the
// gesture began, including across rebases.
type TransformGesture struct {
	Context map[string]any
	Session string

	origin TransformData
	target TransformData
	offset TransformData
}

// NewTransformGesture creates a gesture anchored at origin. The target starts
// at the origin so the initial transform is the identity.
func NewTransformGesture(origin TransformData, context map[string]any) *TransformGesture {
	if context == nil {
		context = make(map[string]any)
	}
	origin = origin.normalized()
	return &TransformGesture{
		Context: context,
		origin:  origin,
		target:  origin,
		offset:  Identity(),
	}
}

// Origin returns the anchor the gesture is currently measured from.
func (g *TransformGesture) Origin() TransformData { return g.origin }

// Target returns the live aggregate of the backing pointers.
func (g *TransformGesture) Target() TransformData { return g.target }

// Transform returns target - origin + offset.
func (g *TransformGesture) Transform() TransformData {
	return g.target.Subtract(g.origin).Add(g.offset)
}

// SetTarget merges a partial update into the target.
func (g *TransformGesture) SetTarget(p TransformPatch) {
	g.target = g.target.Set(p)
}

// Rebase re-anchors the gesture at origin without changing Transform. The
// current transform is folded into the offset and both origin and target
// move to the new anchor.
func (g *TransformGesture) Rebase(origin TransformData) {
	g.offset = g.Transform()
	origin = origin.normalized()
	g.origin = origin
	g.target = origin
}
