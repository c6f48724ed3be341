package pointerflow

import "math"

// TransformData is a 2D transform made of a translation, a uniform scale and
// a rotation in degrees. Methods never modify the receiver; they return the
// result as a new value.
type TransformData struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	Rotate2D   float64
}

// TransformPatch is a partial TransformData. Nil fields keep the value of
// the transform the patch is applied to.
type TransformPatch struct {
	TranslateX *float64
	TranslateY *float64
	Scale      *float64
	Rotate2D   *float64
}

// NewTransform creates a TransformData. A scale of 0 is normalized to 1.
func NewTransform(translateX, translateY, scale, rotate2d float64) TransformData {
	if scale == 0 {
		scale = 1
	}
	return TransformData{TranslateX: translateX, TranslateY: translateY, Scale: scale, Rotate2D: rotate2d}
}

// Identity returns the transform that changes nothing.
func Identity() TransformData {
	return TransformData{Scale: 1}
}

// Patch returns a TransformPatch overwriting every field with t's values.
func (t TransformData) Patch() TransformPatch {
	return TransformPatch{TranslateX: &t.TranslateX, TranslateY: &t.TranslateY, Scale: &t.Scale, Rotate2D: &t.Rotate2D}
}

// Clone returns an identical copy of t.
func (t TransformData) Clone() TransformData {
	return t
}

// flipSign negates v without producing -0.
func flipSign(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}

// Invert returns the inverse transform: negated translation and rotation,
// reciprocal scale.
func (t TransformData) Invert() TransformData {
	t = t.normalized()
	return TransformData{
		TranslateX: flipSign(t.TranslateX),
		TranslateY: flipSign(t.TranslateY),
		Scale:      1 / t.Scale,
		Rotate2D:   flipSign(t.Rotate2D),
	}
}

// Add composes o onto t: translations and rotations sum, scales multiply.
func (t TransformData) Add(o TransformData) TransformData {
	t, o = t.normalized(), o.normalized()
	return TransformData{
		TranslateX: t.TranslateX + o.TranslateX,
		TranslateY: t.TranslateY + o.TranslateY,
		Scale:      t.Scale * o.Scale,
		Rotate2D:   t.Rotate2D + o.Rotate2D,
	}
}

// Subtract is the inverse of Add: t.Add(o).Subtract(o) == t.
func (t TransformData) Subtract(o TransformData) TransformData {
	t, o = t.normalized(), o.normalized()
	return TransformData{
		TranslateX: t.TranslateX - o.TranslateX,
		TranslateY: t.TranslateY - o.TranslateY,
		Scale:      t.Scale / o.Scale,
		Rotate2D:   t.Rotate2D - o.Rotate2D,
	}
}

// Set applies a partial update. A patched scale of 0 becomes 1.
func (t TransformData) Set(p TransformPatch) TransformData {
	if p.TranslateX != nil {
		t.TranslateX = *p.TranslateX
	}
	if p.TranslateY != nil {
		t.TranslateY = *p.TranslateY
	}
	if p.Scale != nil {
		t.Scale = *p.Scale
	}
	if p.Rotate2D != nil {
		t.Rotate2D = *p.Rotate2D
	}
	return t.normalized()
}

// CounterZoomOffset offsets the translation so that zoomTarget (e.g. the
// pinch center or the mouse position) stays fixed on screen while the scale
// changes. originX/originY is the point the actual scaling originates from,
// usually the top-left corner of the transformed element.
func (t TransformData) CounterZoomOffset(zoomTarget TransformData, originX, originY float64) TransformData {
	t = t.normalized()
	t.TranslateX -= (zoomTarget.TranslateX - originX) * (t.Scale - 1)
	t.TranslateY -= (zoomTarget.TranslateY - originY) * (t.Scale - 1)
	return t
}

// IsIdentity reports whether t changes nothing.
func (t TransformData) IsIdentity() bool {
	return t.normalized() == Identity()
}

// normalized replaces a zero scale, which the zero value carries, with 1.
func (t TransformData) normalized() TransformData {
	if t.Scale == 0 {
		t.Scale = 1
	}
	return t
}

// FromPointers reduces a set of pointers to a single transform anchor:
// translation is the centroid of the pointer positions, scale is the mean
// distance of each pointer from the centroid (1 for a single pointer or
// coinciding pointers) multiplied by any pointer scale hints. Rotation is the
// sum of the pointers' rotation hints; it is not derived from geometry.
// An empty set yields the identity.
func FromPointers(pointers []*Pointer) TransformData {
	n := len(pointers)
	if n == 0 {
		return Identity()
	}

	var cx, cy, rot float64
	hint := 1.0
	for _, p := range pointers {
		cx += p.Detail.ClientX
		cy += p.Detail.ClientY
		if p.Detail.Scale != 0 {
			hint *= p.Detail.Scale
		}
		rot += p.Detail.Rotate2D
	}
	cx /= float64(n)
	cy /= float64(n)

	var dist float64
	for _, p := range pointers {
		dx := p.Detail.ClientX - cx
		dy := p.Detail.ClientY - cy
		dist += math.Sqrt(dx*dx + dy*dy)
	}
	spread := dist / float64(n)
	if spread == 0 {
		spread = 1
	}

	return NewTransform(cx, cy, spread*hint, rot)
}

// --- Affine matrices ---

// identityMatrix is the identity affine matrix.
var identityMatrix = [6]float64{1, 0, 0, 1, 0, 0}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] that applies t to a
// point: scale first, then rotate, then translate.
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t TransformData) Matrix() [6]float64 {
	t = t.normalized()
	sin, cos := math.Sincos(t.Rotate2D * math.Pi / 180)
	s := t.Scale
	return [6]float64{cos * s, sin * s, -sin * s, cos * s, t.TranslateX, t.TranslateY}
}

// TransformPoint applies t to the point (x, y).
func (t TransformData) TransformPoint(x, y float64) (float64, float64) {
	return transformPoint(t.Matrix(), x, y)
}

// InversePoint maps a point produced by TransformPoint back to its source.
func (t TransformData) InversePoint(x, y float64) (float64, float64) {
	return transformPoint(invertAffine(t.Matrix()), x, y)
}

// composeAffine returns the matrix that applies inner, then outer.
func composeAffine(outer, inner [6]float64) [6]float64 {
	a, b, c, d := outer[0], outer[1], outer[2], outer[3]
	return [6]float64{
		a*inner[0] + c*inner[1],
		b*inner[0] + d*inner[1],
		a*inner[2] + c*inner[3],
		b*inner[2] + d*inner[3],
		a*inner[4] + c*inner[5] + outer[4],
		b*inner[4] + d*inner[5] + outer[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
