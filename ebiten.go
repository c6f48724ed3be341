package pointerflow

import (
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelLineHeight converts ebiten wheel offsets (lines) into pixel deltas.
const wheelLineHeight = 100.0

// InputReader is the slice of ebiten's input API an EbitenSource polls.
// Tests substitute a fake.
type InputReader interface {
	CursorPosition() (x, y int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
	Wheel() (xoff, yoff float64)
	Modifiers() KeyModifiers
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
}

// ebitenReader reads live input from ebiten.
type ebitenReader struct{}

func (ebitenReader) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenReader) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenReader) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenReader) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

func (ebitenReader) Wheel() (float64, float64) { return ebiten.Wheel() }

// Modifiers reads the current keyboard modifier state.
func (ebitenReader) Modifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

func (ebitenReader) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenReader) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

// HitTester returns the entity under a screen position, or NoEntity.
type HitTester func(x, y float64) EntityID

// EbitenSource turns polled ebiten input into mouse, touch, wheel and key
// events. Call Poll once per frame from Game.Update. Start events carry the
// entity returned by HitTest as their first argument.
type EbitenSource struct {
	*EventBus

	// HitTest picks the entity a press or touch starts on. Nil means every
	// press starts on NoEntity and is only tracked for position.
	HitTest HitTester

	reader InputReader

	mouseDown   bool
	mouseButton PointerButton
	lastX       float64
	lastY       float64
	mouseSeen   bool

	touches  map[ebiten.TouchID]Vec2
	touchBuf []ebiten.TouchID
	keyBuf   []ebiten.Key
}

// NewEbitenSource creates a source reading from r. A nil r reads live
// ebiten input.
func NewEbitenSource(r InputReader, hit HitTester) *EbitenSource {
	if r == nil {
		r = ebitenReader{}
	}
	return &EbitenSource{
		EventBus: NewEventBus(),
		HitTest:  hit,
		reader:   r,
		touches:  make(map[ebiten.TouchID]Vec2),
	}
}

// EbitenEventNames lists the events an EbitenSource emits, for Register.
var EbitenEventNames = []string{
	"mousedown", "mousemove", "mouseup",
	"touchstart", "touchmove", "touchend",
	"wheel", "keydown", "keyup",
}

func (s *EbitenSource) hit(x, y float64) EntityID {
	if s.HitTest == nil {
		return NoEntity
	}
	return s.HitTest(x, y)
}

// Poll reads one frame of input and emits the resulting events.
func (s *EbitenSource) Poll() {
	mods := s.reader.Modifiers()
	s.pollKeys(mods)
	s.pollMouse(mods)
	s.pollTouches(mods)
	s.pollWheel(mods)
}

// pollMouse runs the press/move/release state machine for the mouse.
func (s *EbitenSource) pollMouse(mods KeyModifiers) {
	mx, my := s.reader.CursorPosition()
	x, y := float64(mx), float64(my)

	var buttons int
	var button PointerButton = ButtonUnchanged
	if s.reader.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons |= 1
		button = ButtonLeft
	}
	if s.reader.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		buttons |= 2
		if button == ButtonUnchanged {
			button = ButtonRight
		}
	}
	if s.reader.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		buttons |= 4
		if button == ButtonUnchanged {
			button = ButtonMiddle
		}
	}
	pressed := buttons != 0
	moved := !s.mouseSeen || x != s.lastX || y != s.lastY
	s.mouseSeen = true

	mouse := func(kind string, b PointerButton) *MouseEvent {
		return &MouseEvent{
			EventBase: NewEventBase(kind),
			ClientX:   x, ClientY: y,
			Button: b, Buttons: buttons, Modifiers: mods,
		}
	}

	switch {
	case pressed && !s.mouseDown:
		// Button captured for the duration of the interaction.
		s.mouseDown = true
		s.mouseButton = button
		s.Emit(mouse("mousedown", button), s.hit(x, y))
	case !pressed && s.mouseDown:
		s.mouseDown = false
		s.Emit(mouse("mouseup", s.mouseButton))
	case moved:
		s.Emit(mouse("mousemove", ButtonUnchanged))
	}
	s.lastX, s.lastY = x, y
}

// pollTouches emits one touchstart per new touch, so each may start on its
// own entity, then a batched touchmove and touchend.
func (s *EbitenSource) pollTouches(mods KeyModifiers) {
	s.touchBuf = s.reader.AppendTouchIDs(s.touchBuf[:0])
	active := make(map[ebiten.TouchID]bool, len(s.touchBuf))

	var moved []Touch
	for _, tid := range s.touchBuf {
		active[tid] = true
		tx, ty := s.reader.TouchPosition(tid)
		pos := Vec2{X: float64(tx), Y: float64(ty)}
		t := Touch{Identifier: int(tid), ClientX: pos.X, ClientY: pos.Y, Force: 1}

		prev, ok := s.touches[tid]
		s.touches[tid] = pos
		if !ok {
			s.Emit(&TouchEvent{
				EventBase:      NewEventBase("touchstart"),
				ChangedTouches: []Touch{t},
				Modifiers:      mods,
			}, s.hit(pos.X, pos.Y))
			continue
		}
		if prev != pos {
			moved = append(moved, t)
		}
	}
	if len(moved) > 0 {
		s.Emit(&TouchEvent{EventBase: NewEventBase("touchmove"), ChangedTouches: moved, Modifiers: mods})
	}

	var ended []Touch
	for tid, pos := range s.touches {
		if active[tid] {
			continue
		}
		ended = append(ended, Touch{Identifier: int(tid), ClientX: pos.X, ClientY: pos.Y})
		delete(s.touches, tid)
	}
	if len(ended) > 0 {
		slices.SortFunc(ended, func(a, b Touch) int { return a.Identifier - b.Identifier })
		s.Emit(&TouchEvent{EventBase: NewEventBase("touchend"), ChangedTouches: ended, Modifiers: mods})
	}
}

func (s *EbitenSource) pollWheel(mods KeyModifiers) {
	dx, dy := s.reader.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	// ebiten reports positive y for scrolling up; wheel deltas are positive
	// for scrolling down.
	s.Emit(&WheelEvent{
		EventBase: NewEventBase("wheel"),
		ClientX:   s.lastX, ClientY: s.lastY,
		DeltaX: -dx * wheelLineHeight, DeltaY: -dy * wheelLineHeight,
		Modifiers: mods,
	})
}

func (s *EbitenSource) pollKeys(mods KeyModifiers) {
	s.keyBuf = s.reader.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.Emit(&KeyEvent{EventBase: NewEventBase("keydown"), Key: ebitenKeyName(k), Modifiers: mods})
	}
	s.keyBuf = s.reader.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.Emit(&KeyEvent{EventBase: NewEventBase("keyup"), Key: ebitenKeyName(k), Modifiers: mods})
	}
}

// ebitenKeyName maps an ebiten key to a logical key name. Letters are
// lower-cased; modifier sides collapse onto one name.
func ebitenKeyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
		return "Shift"
	case ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight:
		return "Control"
	case ebiten.KeyAlt, ebiten.KeyAltLeft, ebiten.KeyAltRight:
		return "Alt"
	case ebiten.KeyMeta, ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
		return "Meta"
	case ebiten.KeySpace:
		return " "
	}
	name := k.String()
	if len(name) == 1 {
		return strings.ToLower(name)
	}
	return name
}
