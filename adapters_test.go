package pointerflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adapterHarness runs the classifier and adapters and keeps the annotated
// EventData of the last dispatch.
func adapterHarness(extra ...Handler) (*Processor, *EventData) {
	var last EventData
	p := NewProcessor(quietConfig())
	p.Use(Classify(DefaultEventMap()))
	p.Use(extra...)
	p.UseFunc(func(data *EventData, _ *Processor) Result {
		last = *data
		return Next()
	})
	return p, &last
}

func pointerCount(p *Processor) int {
	m, _ := Get(p, PointersKey)
	return len(m)
}

// --- mouse ---

func TestMouseAdapterLifecycle(t *testing.T) {
	p, last := adapterHarness(MouseAdapter())

	down := &MouseEvent{EventBase: NewEventBase("mousedown"), ClientX: 1, ClientY: 2, Button: ButtonRight, Buttons: 2, Modifiers: ModShift}
	p.Dispatch(down, EntityID("box"))
	require.Equal(t, []EntityID{"box"}, last.IDs)
	require.Len(t, last.Pointers, 1)
	ptr := last.Pointers[0]
	assert.Equal(t, MouseContact, ptr.Detail.Identifier)
	assert.Equal(t, DeviceMouse, ptr.Context.Device)
	assert.Equal(t, ButtonRight, ptr.Context.Button)
	assert.True(t, ptr.Context.Modifiers.Has(ModShift))
	assert.Equal(t, 0.5, ptr.Detail.Pressure)
	assert.Equal(t, 1, pointerCount(p))

	p.Dispatch(&MouseEvent{EventBase: NewEventBase("mousemove"), ClientX: 10, ClientY: 20, Buttons: 2})
	assert.Equal(t, []EntityID{"box"}, last.IDs)
	assert.Equal(t, 10.0, ptr.Detail.ClientX)
	assert.Equal(t, 20.0, ptr.Detail.ClientY)

	p.Dispatch(&MouseEvent{EventBase: NewEventBase("mouseup"), ClientX: 11, ClientY: 21})
	assert.Equal(t, []EntityID{"box"}, last.IDs)
	assert.Same(t, ptr, last.Pointers[0])
	assert.Zero(t, pointerCount(p))
	// The end position is not applied to the released pointer.
	assert.Equal(t, 10.0, ptr.Detail.ClientX)
}

func TestMouseAdapterIgnoresHover(t *testing.T) {
	p, last := adapterHarness(MouseAdapter())
	p.Dispatch(&MouseEvent{EventBase: NewEventBase("mousemove"), ClientX: 5})
	assert.Nil(t, last.IDs)

	p.Dispatch(&MouseEvent{EventBase: NewEventBase("mousedown")})
	assert.Nil(t, last.IDs, "a press without an entity is not tracked")
	assert.Zero(t, pointerCount(p))
}

func TestMouseAdapterAcceptsStringEntity(t *testing.T) {
	p, last := adapterHarness(MouseAdapter())
	p.Dispatch(&MouseEvent{EventBase: NewEventBase("mousedown"), Buttons: 1}, "plain")
	assert.Equal(t, []EntityID{"plain"}, last.IDs)
}

func TestTrackMousePosition(t *testing.T) {
	p, _ := adapterHarness(TrackMousePosition())
	ev := &MouseEvent{EventBase: NewEventBase("mousemove"), ClientX: 3, ClientY: 4}
	p.Dispatch(ev)

	pos, ok := Get(p, MousePositionKey)
	require.True(t, ok)
	assert.Equal(t, Vec2{X: 3, Y: 4}, pos)
	assert.True(t, ev.DefaultPrevented())
}

// --- touch ---

func touches(kind string, ts ...Touch) *TouchEvent {
	return &TouchEvent{EventBase: NewEventBase(kind), ChangedTouches: ts}
}

func TestTouchAdapterMultiTouch(t *testing.T) {
	p, last := adapterHarness(TouchAdapter())

	p.Dispatch(touches("touchstart", Touch{Identifier: 1, ClientX: 0, Force: 0.7}, Touch{Identifier: 2, ClientX: 10}), EntityID("a"))
	require.Len(t, last.Pointers, 2)
	assert.Equal(t, []EntityID{"a"}, last.IDs)
	assert.Equal(t, ContactID("t/1"), last.Pointers[0].Detail.Identifier)
	assert.Equal(t, 0.7, last.Pointers[0].Detail.Pressure)
	assert.Equal(t, ButtonLeft, last.Pointers[0].Context.Button)

	p.Dispatch(touches("touchstart", Touch{Identifier: 3, ClientX: 50}), EntityID("b"))
	assert.Equal(t, 3, pointerCount(p))

	// A batch spanning both entities reports each once.
	p.Dispatch(touches("touchmove",
		Touch{Identifier: 1, ClientX: 1},
		Touch{Identifier: 2, ClientX: 11},
		Touch{Identifier: 3, ClientX: 51},
	))
	assert.Equal(t, []EntityID{"a", "b"}, last.IDs)
	assert.Len(t, last.Pointers, 3)

	p.Dispatch(touches("touchcancel", Touch{Identifier: 2}))
	assert.Equal(t, []EntityID{"a"}, last.IDs)
	assert.Equal(t, 2, pointerCount(p))
}

func TestTouchAdapterUnknownTouch(t *testing.T) {
	p, last := adapterHarness(TouchAdapter())
	p.Dispatch(touches("touchstart", Touch{Identifier: 1}), EntityID("a"))
	p.Dispatch(touches("touchmove", Touch{Identifier: 9, ClientX: 100}))
	assert.Nil(t, last.IDs)
	assert.Nil(t, last.Pointers)
}

// --- pen / unified pointer ---

func pen(kind string, id int, x float64, buttons int, pressure float64) *PointerEvent {
	return &PointerEvent{
		EventBase: NewEventBase(kind), PointerID: id, PointerType: DevicePen,
		ClientX: x, Buttons: buttons, Pressure: pressure,
	}
}

func TestPointerAdapterLifecycle(t *testing.T) {
	p, last := adapterHarness(PointerAdapter(false))

	down := pen("pointerdown", 7, 0, 1, 0)
	p.Dispatch(down, EntityID("canvas"))
	require.Len(t, last.Pointers, 1)
	ptr := last.Pointers[0]
	assert.Equal(t, ContactID("p/7"), ptr.Detail.Identifier)
	assert.Equal(t, DevicePen, ptr.Context.Device)
	assert.Equal(t, 1.0, ptr.Detail.Pressure, "pressed without pressure reports full pressure")
	assert.True(t, down.DefaultPrevented())

	p.Dispatch(pen("pointermove", 7, 5, 1, 0.3))
	assert.Equal(t, 0.3, ptr.Detail.Pressure)
	assert.Equal(t, 5.0, ptr.Detail.ClientX)

	p.Dispatch(pen("pointerup", 7, 6, 0, 0.3))
	assert.Equal(t, 0.0, ptr.Detail.Pressure, "no pressure once released")
	assert.Equal(t, []EntityID{"canvas"}, last.IDs)
	assert.Zero(t, pointerCount(p))
}

func TestPointerAdapterCancel(t *testing.T) {
	p, last := adapterHarness(PointerAdapter(false))
	p.Dispatch(pen("pointerdown", 1, 0, 1, 0.5), EntityID("canvas"))
	p.Dispatch(pen(PointerCancel, 1, 0, 0, 0))

	require.Len(t, last.Pointers, 1)
	assert.True(t, last.Pointers[0].Detail.Cancel)
	assert.Zero(t, pointerCount(p))
}

func TestPointerAdapterDefaultsDevice(t *testing.T) {
	p, last := adapterHarness(PointerAdapter(false))
	ev := pen("pointerdown", 1, 0, 1, 0)
	ev.PointerType = ""
	p.Dispatch(ev, EntityID("canvas"))
	assert.Equal(t, DevicePointer, last.Pointers[0].Context.Device)
}

func TestPointerAdapterUnidentified(t *testing.T) {
	p, last := adapterHarness(PointerAdapter(true))
	hover := pen("pointermove", 4, 12, 0, 0)
	p.Dispatch(hover)

	assert.Nil(t, last.IDs)
	require.Len(t, last.UnidentifiedPointers, 1)
	assert.False(t, last.UnidentifiedPointers[0].Identified())
	assert.Equal(t, 12.0, last.UnidentifiedPointers[0].Detail.ClientX)
	assert.True(t, hover.DefaultPrevented())

	p, last = adapterHarness(PointerAdapter(false))
	p.Dispatch(pen("pointermove", 4, 12, 0, 0))
	assert.Nil(t, last.UnidentifiedPointers)
}

// --- keyboard ---

func key(kind, name string, repeat bool) *KeyEvent {
	return &KeyEvent{EventBase: NewEventBase(kind), Key: name, Repeat: repeat}
}

func TestKeyAdapter(t *testing.T) {
	p, _ := adapterHarness(KeyAdapter())
	assert.True(t, AreKeysPressed(p), "no keys is always pressed")

	p.Dispatch(key("keydown", "Control", false))
	p.Dispatch(key("keydown", "a", false))
	assert.True(t, AreKeysPressed(p, "Control", "a"))

	p.Dispatch(key("keyup", "a", false))
	assert.True(t, AreKeysPressed(p, "Control"))
	assert.False(t, AreKeysPressed(p, "Control", "a"))

	// A repeat for a released key does not press it again.
	p.Dispatch(key("keydown", "a", true))
	assert.False(t, AreKeysPressed(p, "a"))
}

func TestAdaptersOrder(t *testing.T) {
	chain := Adapters()
	assert.Len(t, chain, 4)

	// Every adapter ignores other devices.
	p, last := adapterHarness(chain)
	p.Dispatch(key("keydown", "x", false), EntityID("e"))
	assert.Nil(t, last.IDs)
	assert.Zero(t, pointerCount(p))
}

func TestPointerMapForEntityIsSorted(t *testing.T) {
	m := PointerMap{
		"t/3": ptr("t/3", "e", 0, 0),
		"t/1": ptr("t/1", "e", 0, 0),
		"t/2": ptr("t/2", "other", 0, 0),
		"t/0": ptr("t/0", "e", 0, 0),
	}
	got := m.ForEntity("e")
	require.Len(t, got, 3)
	assert.Equal(t, ContactID("t/0"), got[0].Detail.Identifier)
	assert.Equal(t, ContactID("t/1"), got[1].Detail.Identifier)
	assert.Equal(t, ContactID("t/3"), got[2].Detail.Identifier)
	assert.Empty(t, m.ForEntity("nobody"))
}

func TestEntityFromArgs(t *testing.T) {
	assert.Equal(t, NoEntity, EntityFromArgs(nil))
	assert.Equal(t, EntityID("a"), EntityFromArgs([]any{EntityID("a")}))
	assert.Equal(t, EntityID("b"), EntityFromArgs([]any{"b", 1}))
	assert.Equal(t, NoEntity, EntityFromArgs([]any{42}))
}
