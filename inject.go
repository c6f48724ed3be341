package pointerflow

// injected is a single queued synthetic event.
type injected struct {
	ev   Event
	args []any
}

// Injector queues synthetic input and emits one event per Step, the way a
// device would deliver it one frame at a time. Coordinates are screen
// coordinates.
type Injector struct {
	target Sink
	queue  []injected
}

// NewInjector creates an injector emitting on target, usually an input
// source's EventBus or a Processor.
func NewInjector(target Sink) *Injector {
	return &Injector{target: target}
}

func (in *Injector) push(ev Event, args ...any) {
	in.queue = append(in.queue, injected{ev: ev, args: args})
}

func (in *Injector) mouse(kind string, x, y float64, buttons int, button PointerButton) *MouseEvent {
	return &MouseEvent{EventBase: NewEventBase(kind), ClientX: x, ClientY: y, Button: button, Buttons: buttons}
}

// Press queues a left-button press on entity at (x, y).
func (in *Injector) Press(entity EntityID, x, y float64) {
	in.push(in.mouse("mousedown", x, y, 1, ButtonLeft), entity)
}

// Move queues a mouse move to (x, y) with the left button held. Use it
// between Press and Release to simulate a drag.
func (in *Injector) Move(x, y float64) {
	in.push(in.mouse("mousemove", x, y, 1, ButtonUnchanged))
}

// Release queues a left-button release at (x, y).
func (in *Injector) Release(x, y float64) {
	in.push(in.mouse("mouseup", x, y, 0, ButtonLeft))
}

// Click queues a press followed by a release at the same position.
// Consumes two steps.
func (in *Injector) Click(entity EntityID, x, y float64) {
	in.Press(entity, x, y)
	in.Release(x, y)
}

// Drag queues a full drag: press at (fromX, fromY), linearly interpolated
// moves over frames-2 intermediate steps, and release at (toX, toY). The
// sequence consumes frames steps, minimum 2.
func (in *Injector) Drag(entity EntityID, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.Press(entity, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.Release(toX, toY)
}

func (in *Injector) touch(kind string, touches ...Touch) *TouchEvent {
	return &TouchEvent{EventBase: NewEventBase(kind), ChangedTouches: touches}
}

// TouchStart queues a touch with identifier id landing on entity at (x, y).
func (in *Injector) TouchStart(entity EntityID, id int, x, y float64) {
	in.push(in.touch("touchstart", Touch{Identifier: id, ClientX: x, ClientY: y, Force: 1}), entity)
}

// TouchMove queues a move of touch id to (x, y).
func (in *Injector) TouchMove(id int, x, y float64) {
	in.push(in.touch("touchmove", Touch{Identifier: id, ClientX: x, ClientY: y, Force: 1}))
}

// TouchEnd queues the lift of touch id at (x, y).
func (in *Injector) TouchEnd(id int, x, y float64) {
	in.push(in.touch("touchend", Touch{Identifier: id, ClientX: x, ClientY: y}))
}

// Pinch queues a two-finger pinch on entity centered at (cx, cy). Touches
// 0 and 1 start fromDist apart on a horizontal line and end toDist apart.
// The sequence consumes frames steps, minimum 2.
func (in *Injector) Pinch(entity EntityID, cx, cy, fromDist, toDist float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	pair := func(d, force float64) []Touch {
		return []Touch{
			{Identifier: 0, ClientX: cx - d/2, ClientY: cy, Force: force},
			{Identifier: 1, ClientX: cx + d/2, ClientY: cy, Force: force},
		}
	}
	in.push(in.touch("touchstart", pair(fromDist, 1)...), entity)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		in.push(in.touch("touchmove", pair(fromDist+(toDist-fromDist)*t, 1)...))
	}
	in.push(in.touch("touchend", pair(toDist, 0)...))
}

// Wheel queues a wheel event at (x, y).
func (in *Injector) Wheel(x, y, deltaY float64) {
	in.push(&WheelEvent{EventBase: NewEventBase("wheel"), ClientX: x, ClientY: y, DeltaY: deltaY})
}

// Key queues a press and a release of key. Consumes two steps.
func (in *Injector) Key(key string) {
	in.push(&KeyEvent{EventBase: NewEventBase("keydown"), Key: key})
	in.push(&KeyEvent{EventBase: NewEventBase("keyup"), Key: key})
}

// Pending returns the number of queued events.
func (in *Injector) Pending() int { return len(in.queue) }

// Step emits the next queued event. Returns false if the queue was empty.
func (in *Injector) Step() bool {
	if len(in.queue) == 0 {
		return false
	}
	next := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue[len(in.queue)-1] = injected{}
	in.queue = in.queue[:len(in.queue)-1]

	in.target.Emit(next.ev, next.args...)
	return true
}

// Flush emits every queued event.
func (in *Injector) Flush() {
	for in.Step() {
	}
}
