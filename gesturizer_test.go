package pointerflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Production = true
	return cfg
}

// gestureLog records gesture events seen by a DragHandler.
type gestureLog struct {
	events []*GestureEvent
}

func (l *gestureLog) kinds() []string {
	out := make([]string, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func newRecordedDragHandler() (*DragHandler, *gestureLog) {
	log := &gestureLog{}
	h := NewDragHandler(quietConfig())
	h.OnGesture(func(ev *GestureEvent) { log.events = append(log.events, ev) })
	return h, log
}

func TestGesturizeMouseDrag(t *testing.T) {
	h, log := newRecordedDragHandler()
	in := NewInjector(h)
	in.Press("canvas", 0, 0)
	in.Move(64, 128)
	in.Release(64, 128)
	in.Flush()

	require.Equal(t, []string{GestureStart, GestureMove, GestureEnd}, log.kinds())

	start, move, end := log.events[0], log.events[1], log.events[2]
	assert.Equal(t, EntityID("canvas"), start.ID)
	assertTransform(t, "start", start.Transform, Identity())
	assertTransform(t, "move", move.Transform, NewTransform(64, 128, 1, 0))
	assertTransform(t, "end", end.Transform, NewTransform(64, 128, 1, 0))

	assert.NotEmpty(t, start.Session)
	assert.Equal(t, start.Session, move.Session)
	assert.Equal(t, start.Session, end.Session)
	assert.Equal(t, EntityID("canvas"), start.Context["id"])

	gestures, _ := Get(h.Processor, GesturesKey)
	assert.Empty(t, gestures)
	assert.Empty(t, h.IDs())
}

func TestGesturizeSessionsAreUnique(t *testing.T) {
	h, log := newRecordedDragHandler()
	in := NewInjector(h)
	in.Click("canvas", 0, 0)
	in.Click("canvas", 5, 5)
	in.Flush()

	require.Equal(t, []string{GestureStart, GestureEnd, GestureStart, GestureEnd}, log.kinds())
	assert.NotEqual(t, log.events[0].Session, log.events[2].Session)
}

func TestGesturizeIgnoresUnattachedInput(t *testing.T) {
	h, log := newRecordedDragHandler()
	in := NewInjector(h)
	in.Press(NoEntity, 0, 0)
	in.Move(10, 10)
	in.Release(10, 10)
	in.Flush()

	assert.Empty(t, log.events)
}

func TestGesturizePinch(t *testing.T) {
	h, log := newRecordedDragHandler()
	in := NewInjector(h)
	in.Pinch("canvas", 100, 100, 50, 100, 3)
	in.Flush()

	require.Equal(t, []string{GestureStart, GestureMove, GestureEnd}, log.kinds())
	// Spread goes from 25 to 50 around a fixed center.
	assertTransform(t, "origin", log.events[0].Origin, NewTransform(100, 100, 25, 0))
	assertTransform(t, "move", log.events[1].Transform, NewTransform(0, 0, 2, 0))
	assert.Len(t, log.events[1].Pointers, 2)
	assert.Len(t, log.events[2].Pointers, 2)
}

func TestGesturizeSecondContactRebases(t *testing.T) {
	h, log := newRecordedDragHandler()
	in := NewInjector(h)
	in.TouchStart("e", 0, 0, 0)
	in.TouchStart("e", 1, 128, 128)
	in.TouchMove(1, 256, 256)
	in.TouchEnd(1, 256, 256)
	in.TouchMove(0, 10, 0)
	in.TouchEnd(0, 10, 0)
	in.Flush()

	// One gesture for the whole interaction; joins and leaves are silent.
	require.Equal(t, []string{GestureStart, GestureMove, GestureMove, GestureEnd}, log.kinds())
	assertTransform(t, "spread", log.events[1].Transform, NewTransform(64, 64, 2, 0))
	assertTransform(t, "drag", log.events[2].Transform, NewTransform(74, 64, 2, 0))
	assertTransform(t, "end", log.events[3].Transform, NewTransform(74, 64, 2, 0))
}

func TestGesturizeIndependentEntities(t *testing.T) {
	h, log := newRecordedDragHandler()
	in := NewInjector(h)
	in.TouchStart("a", 0, 0, 0)
	in.TouchStart("b", 1, 100, 0)
	in.TouchMove(0, 10, 0)
	in.Flush()

	require.Equal(t, []string{GestureStart, GestureStart, GestureMove}, log.kinds())
	assert.Equal(t, EntityID("a"), log.events[2].ID)
	assertTransform(t, "a", log.events[2].Transform, NewTransform(10, 0, 1, 0))
	assert.ElementsMatch(t, []EntityID{"a", "b"}, h.IDs())
}

func TestGesturizeStoresGestureBeforeDispatch(t *testing.T) {
	h := NewDragHandler(quietConfig())
	var stored bool
	h.OnGesture(func(ev *GestureEvent) {
		if ev.Kind != GestureStart {
			return
		}
		gestures, _ := Get(h.Processor, GesturesKey)
		stored = gestures[ev.ID] != nil
	})
	in := NewInjector(h)
	in.Press("canvas", 0, 0)
	in.Flush()

	assert.True(t, stored)
}

func TestGesturizeWithoutPointerMap(t *testing.T) {
	p := NewProcessor(quietConfig())
	var dispatched int
	p.UseFunc(func(data *EventData, _ *Processor) Result {
		if _, ok := data.Event.(*GestureEvent); ok {
			dispatched++
			return Abort()
		}
		data.IDs = []EntityID{"x"}
		data.EventType = EventStart
		return Next()
	})
	p.Use(Gesturize())
	p.Dispatch(&MouseEvent{EventBase: NewEventBase("mousedown")})

	assert.Zero(t, dispatched)
}

func TestReduceIDsIsAMultiset(t *testing.T) {
	p := NewProcessor(quietConfig()).Use(ReduceIDs())
	gesture := func(kind string, id EntityID) *GestureEvent {
		return &GestureEvent{EventBase: EventBase{Kind: kind}, ID: id}
	}
	p.Dispatch(gesture(GestureStart, "a"))
	p.Dispatch(gesture(GestureStart, "b"))
	p.Dispatch(gesture(GestureStart, "a"))
	p.Dispatch(gesture(GestureMove, "a"))
	p.Dispatch(gesture(GestureEnd, "a"))

	ids, _ := Get(p, IDsKey)
	assert.Equal(t, []EntityID{"b", "a"}, ids)

	p.Dispatch(&AtomEvent{EventBase: EventBase{Kind: AtomStart}, ID: "c"})
	p.Dispatch(gesture(GestureEnd, "missing"))
	ids, _ = Get(p, IDsKey)
	assert.Equal(t, []EntityID{"b", "a", "c"}, ids)
}

func TestGesturizeIgnoresUnknownGesture(t *testing.T) {
	p := NewProcessor(quietConfig())
	g := NewTransformGesture(NewTransform(64, 64, 1, 0), nil)
	Set(p, PointersKey, PointerMap{
		"p/1": ptr("p/1", "uuid", 0, 0),
		"p/2": ptr("p/2", "uuid", 128, 128),
	})
	Set(p, GesturesKey, GestureMap{"uuid": g})

	var dispatched int
	var eventType EventType
	p.UseFunc(func(data *EventData, _ *Processor) Result {
		if _, ok := data.Event.(*GestureEvent); ok {
			dispatched++
			return Abort()
		}
		data.IDs = []EntityID{"uuid3"}
		data.EventType = eventType
		return Next()
	})
	p.Use(Gesturize())

	for _, et := range []EventType{EventMove, EventEnd} {
		eventType = et
		p.Dispatch(&MouseEvent{EventBase: NewEventBase("mousemove")})
	}

	assert.Zero(t, dispatched)
	gestures, _ := Get(p, GesturesKey)
	require.Len(t, gestures, 1)
	assert.Same(t, g, gestures["uuid"])
	assertTransform(t, "target", g.Target(), NewTransform(64, 64, 1, 0))
	assertTransform(t, "transform", g.Transform(), Identity())
}
