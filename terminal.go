package pointerflow

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// terminalWheelDelta is the wheel delta emitted per terminal wheel notch.
const terminalWheelDelta = 100.0

// TerminalSource turns tcell mouse and key events into canonical events.
// Cell coordinates are scaled by CellWidth and CellHeight. Terminals report
// no key releases, so each key press emits keydown followed by keyup.
type TerminalSource struct {
	*EventBus

	// HitTest picks the entity a press starts on.
	HitTest HitTester

	CellWidth, CellHeight float64

	buttons tcell.ButtonMask
	button  PointerButton
	lastX   float64
	lastY   float64
}

// TerminalEventNames lists the events a TerminalSource emits, for Register.
var TerminalEventNames = []string{
	"mousedown", "mousemove", "mouseup", "wheel", "keydown", "keyup",
}

// NewTerminalSource creates a source with one pixel per cell.
func NewTerminalSource(hit HitTester) *TerminalSource {
	return &TerminalSource{EventBus: NewEventBus(), HitTest: hit, CellWidth: 1, CellHeight: 1}
}

// Run polls screen until ctx is done or the screen is finalized. The screen
// must already be initialized with mouse reporting enabled.
func (s *TerminalSource) Run(ctx context.Context, screen tcell.Screen) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Handle(ev)
	}
}

// Handle converts and emits a single tcell event. Unsupported events are
// ignored.
func (s *TerminalSource) Handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		s.handleKey(e)
	case *tcell.EventMouse:
		s.handleMouse(e)
	}
}

func (s *TerminalSource) handleKey(e *tcell.EventKey) {
	mods := convertTcellMod(e.Modifiers())
	name := tcellKeyName(e)
	s.Emit(&KeyEvent{EventBase: NewEventBase("keydown"), Key: name, Modifiers: mods})
	s.Emit(&KeyEvent{EventBase: NewEventBase("keyup"), Key: name, Modifiers: mods})
}

func (s *TerminalSource) handleMouse(e *tcell.EventMouse) {
	cx, cy := e.Position()
	x, y := float64(cx)*s.CellWidth, float64(cy)*s.CellHeight
	mods := convertTcellMod(e.Modifiers())
	mask := e.Buttons()

	if wheel := mask & (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight); wheel != 0 {
		w := &WheelEvent{EventBase: NewEventBase("wheel"), ClientX: x, ClientY: y, Modifiers: mods}
		switch {
		case wheel&tcell.WheelUp != 0:
			w.DeltaY = -terminalWheelDelta
		case wheel&tcell.WheelDown != 0:
			w.DeltaY = terminalWheelDelta
		case wheel&tcell.WheelLeft != 0:
			w.DeltaX = -terminalWheelDelta
		default:
			w.DeltaX = terminalWheelDelta
		}
		s.Emit(w)
		return
	}

	pressed := mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	buttons := domButtons(pressed)
	mouse := func(kind string, b PointerButton) *MouseEvent {
		return &MouseEvent{
			EventBase: NewEventBase(kind),
			ClientX:   x, ClientY: y,
			Button: b, Buttons: buttons, Modifiers: mods,
		}
	}

	switch {
	case pressed != 0 && s.buttons == 0:
		s.button = convertTcellButton(pressed)
		s.Emit(mouse("mousedown", s.button), s.hit(x, y))
	case pressed == 0 && s.buttons != 0:
		s.Emit(mouse("mouseup", s.button))
	case x != s.lastX || y != s.lastY:
		s.Emit(mouse("mousemove", ButtonUnchanged))
	}
	s.buttons = pressed
	s.lastX, s.lastY = x, y
}

func (s *TerminalSource) hit(x, y float64) EntityID {
	if s.HitTest == nil {
		return NoEntity
	}
	return s.HitTest(x, y)
}

// domButtons converts a tcell button mask to the DOM buttons bitmask.
func domButtons(m tcell.ButtonMask) int {
	var b int
	if m&tcell.Button1 != 0 {
		b |= 1
	}
	if m&tcell.Button3 != 0 {
		b |= 2
	}
	if m&tcell.Button2 != 0 {
		b |= 4
	}
	return b
}

// convertTcellButton returns the primary button of a mask. tcell numbers
// the middle button 2 and the secondary button 3.
func convertTcellButton(m tcell.ButtonMask) PointerButton {
	switch {
	case m&tcell.Button1 != 0:
		return ButtonLeft
	case m&tcell.Button3 != 0:
		return ButtonRight
	case m&tcell.Button2 != 0:
		return ButtonMiddle
	default:
		return ButtonUnchanged
	}
}

// convertTcellMod converts tcell modifiers.
func convertTcellMod(m tcell.ModMask) KeyModifiers {
	var result KeyModifiers
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

// tcellKeyName returns the logical key name of a key event.
func tcellKeyName(e *tcell.EventKey) string {
	switch e.Key() {
	case tcell.KeyRune:
		return string(e.Rune())
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyDelete:
		return "Delete"
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyHome:
		return "Home"
	case tcell.KeyEnd:
		return "End"
	case tcell.KeyPgUp:
		return "PageUp"
	case tcell.KeyPgDn:
		return "PageDown"
	}
	return tcell.KeyNames[e.Key()]
}
