package pointerflow

// Key names a typed slot in a Processor's state store.
type Key[T any] struct {
	name string
}

// NewKey returns a key for values of type T. Two keys with the same name
// address the same slot.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the slot name.
func (k Key[T]) Name() string { return k.name }

// GestureMap holds the live gestures keyed by entity.
type GestureMap map[EntityID]*TransformGesture

// PointerContexts holds the per-contact context maps created by Atomize.
type PointerContexts map[ContactID]map[string]any

// Built-in state keys.
var (
	PointersKey        = NewKey[PointerMap]("pointers")
	GesturesKey        = NewKey[GestureMap]("gestures")
	KeysPressedKey     = NewKey[map[string]bool]("keysPressed")
	MousePositionKey   = NewKey[Vec2]("mousePosition")
	IDsKey             = NewKey[[]EntityID]("ids")
	PointerContextsKey = NewKey[PointerContexts]("pointerContexts")
)

// Get returns the value stored under k. The second result is false when the
// slot is empty or holds a value of another type.
func Get[T any](p *Processor, k Key[T]) (T, bool) {
	v, ok := p.state[k.name].(T)
	return v, ok
}

// Set stores v under k.
func Set[T any](p *Processor, k Key[T], v T) *Processor {
	p.state[k.name] = v
	return p
}

// Update replaces the value under k with fn(current, present).
func Update[T any](p *Processor, k Key[T], fn func(current T, ok bool) T) *Processor {
	cur, ok := Get(p, k)
	p.state[k.name] = fn(cur, ok)
	return p
}

// Delete empties the slot under k.
func Delete[T any](p *Processor, k Key[T]) *Processor {
	delete(p.state, k.name)
	return p
}
