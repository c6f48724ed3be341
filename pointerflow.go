package pointerflow

// Vec2 is a 2D vector used for positions and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// EntityID identifies a caller-defined manipulable thing. One entity may be
// held by several physical contacts at once.
type EntityID string

// NoEntity is the ID carried by pointers that are not attached to an entity.
const NoEntity EntityID = ""

// ContactID identifies one physical input contact (one mouse, one finger,
// one pen). It is the key of the pointer map and never an EntityID.
type ContactID string

// DeviceType names the abstract device an event was classified as.
type DeviceType string

const (
	DeviceMouse   DeviceType = "mouse"
	DeviceTouch   DeviceType = "touch"
	DevicePointer DeviceType = "pointer"
	DevicePen     DeviceType = "pen"
	DeviceKey     DeviceType = "key"
	DeviceWheel   DeviceType = "wheel"
	DeviceGesture DeviceType = "gesture" // synthesized by Gesturize
	DeviceAtom    DeviceType = "atom"    // synthesized by Atomize
)

// EventType is the abstract phase of a classified event.
type EventType string

const (
	EventStart EventType = "start"
	EventMove  EventType = "move"
	EventEnd   EventType = "end"
	EventUp    EventType = "up"
	EventDown  EventType = "down"
	EventPress EventType = "press"
	EventWheel EventType = "wheel"
)

// PointerButton identifies the button that started a pointer interaction.
// Values follow the DOM MouseEvent.button numbering.
type PointerButton int8

const (
	ButtonUnchanged PointerButton = iota - 1 // no button change (pointer moves)
	ButtonLeft                               // primary button
	ButtonMiddle                             // auxiliary (wheel) button
	ButtonRight                              // secondary button
	ButtonBack                               // browser back
	ButtonForward                            // browser forward
	ButtonEraser                             // pen eraser
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all modifiers in m are set.
func (k KeyModifiers) Has(m KeyModifiers) bool {
	return k&m == m
}
