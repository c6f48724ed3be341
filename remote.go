package pointerflow

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// browserTouch is one entry of a touch event's changedTouches.
type browserTouch struct {
	Identifier int     `json:"identifier"`
	ClientX    float64 `json:"clientX"`
	ClientY    float64 `json:"clientY"`
	Force      float64 `json:"force"`
}

// browserEvent is the JSON shape a browser client sends for one DOM event.
// Entity names the entity a start event belongs to.
type browserEvent struct {
	Type           string         `json:"type"`
	Entity         string         `json:"entity,omitempty"`
	ClientX        float64        `json:"clientX"`
	ClientY        float64        `json:"clientY"`
	Button         int            `json:"button"`
	Buttons        int            `json:"buttons"`
	PointerID      int            `json:"pointerId"`
	PointerType    string         `json:"pointerType"`
	Pressure       float64        `json:"pressure"`
	Key            string         `json:"key"`
	Repeat         bool           `json:"repeat"`
	DeltaX         float64        `json:"deltaX"`
	DeltaY         float64        `json:"deltaY"`
	ChangedTouches []browserTouch `json:"changedTouches"`
	ShiftKey       bool           `json:"shiftKey"`
	CtrlKey        bool           `json:"ctrlKey"`
	AltKey         bool           `json:"altKey"`
	MetaKey        bool           `json:"metaKey"`
}

func (b *browserEvent) modifiers() KeyModifiers {
	var m KeyModifiers
	if b.ShiftKey {
		m |= ModShift
	}
	if b.CtrlKey {
		m |= ModCtrl
	}
	if b.AltKey {
		m |= ModAlt
	}
	if b.MetaKey {
		m |= ModMeta
	}
	return m
}

// DecodeBrowserEvent decodes one JSON-encoded DOM event. The entity is
// NoEntity unless the message names one.
func DecodeBrowserEvent(data []byte) (Event, EntityID, error) {
	var b browserEvent
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, NoEntity, fmt.Errorf("decode browser event: %w", err)
	}
	base := NewEventBase(b.Type)
	mods := b.modifiers()

	var ev Event
	switch b.Type {
	case "mousedown", "mousemove", "mouseup":
		ev = &MouseEvent{
			EventBase: base, ClientX: b.ClientX, ClientY: b.ClientY,
			Button: PointerButton(b.Button), Buttons: b.Buttons, Modifiers: mods,
		}
	case "touchstart", "touchmove", "touchend", "touchcancel":
		touches := make([]Touch, len(b.ChangedTouches))
		for i, t := range b.ChangedTouches {
			touches[i] = Touch{Identifier: t.Identifier, ClientX: t.ClientX, ClientY: t.ClientY, Force: t.Force}
		}
		ev = &TouchEvent{EventBase: base, ChangedTouches: touches, Modifiers: mods}
	case "pointerdown", "pointermove", "pointerup", PointerCancel:
		ev = &PointerEvent{
			EventBase: base, PointerID: b.PointerID, PointerType: DeviceType(b.PointerType),
			ClientX: b.ClientX, ClientY: b.ClientY, Pressure: b.Pressure,
			Button: PointerButton(b.Button), Buttons: b.Buttons, Modifiers: mods,
		}
	case "keydown", "keyup":
		ev = &KeyEvent{EventBase: base, Key: b.Key, Repeat: b.Repeat, Modifiers: mods}
	case "wheel", "mousewheel":
		ev = &WheelEvent{
			EventBase: base, ClientX: b.ClientX, ClientY: b.ClientY,
			DeltaX: b.DeltaX, DeltaY: b.DeltaY, Modifiers: mods,
		}
	default:
		return nil, NoEntity, fmt.Errorf("decode browser event %q: %w", b.Type, ErrUnknownEvent)
	}
	return ev, EntityID(b.Entity), nil
}

// RemoteEventNames lists the events a RemoteTarget emits, for Register.
var RemoteEventNames = []string{
	"mousedown", "mousemove", "mouseup",
	"touchstart", "touchmove", "touchend", "touchcancel",
	"pointerdown", "pointermove", "pointerup", PointerCancel,
	"keydown", "keyup", "wheel",
}

// RemoteTarget receives browser input over WebSocket and emits it as
// canonical events. Each connection is read on its own goroutine; emission
// is serialized so listeners never run concurrently.
type RemoteTarget struct {
	*EventBus

	Upgrader websocket.Upgrader

	emitMu sync.Mutex
	connMu sync.Mutex
	conns  map[*websocket.Conn]struct{}
}

// NewRemoteTarget creates a target accepting connections from any origin.
func NewRemoteTarget() *RemoteTarget {
	return &RemoteTarget{
		EventBus: NewEventBus(),
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and reads events until the client leaves.
func (t *RemoteTarget) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := t.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("remote upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	if err := t.Serve(r.Context(), conn); err != nil {
		logger.Debugf("remote %s closed: %v", r.RemoteAddr, err)
	}
}

// Serve reads events from conn until it fails or ctx is done. Undecodable
// messages are logged and skipped. conn is closed on return.
func (t *RemoteTarget) Serve(ctx context.Context, conn *websocket.Conn) error {
	t.connMu.Lock()
	t.conns[conn] = struct{}{}
	t.connMu.Unlock()
	defer func() {
		t.connMu.Lock()
		delete(t.conns, conn)
		t.connMu.Unlock()
		_ = conn.Close()
	}()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if kind != websocket.TextMessage {
			continue
		}
		ev, id, err := DecodeBrowserEvent(data)
		if err != nil {
			logger.Warnf("remote %s: %v", conn.RemoteAddr(), err)
			continue
		}
		t.Emit(ev, id)
	}
}

// Emit delivers ev to the listeners, one event at a time across all
// connections. A non-empty entity is passed as the first argument.
func (t *RemoteTarget) Emit(ev Event, args ...any) {
	if len(args) == 1 && args[0] == NoEntity {
		args = nil
	}
	t.emitMu.Lock()
	defer t.emitMu.Unlock()
	t.EventBus.Emit(ev, args...)
}

// Connections returns the number of open connections.
func (t *RemoteTarget) Connections() int {
	t.connMu.Lock()
	defer t.connMu.Unlock()
	return len(t.conns)
}

// Close sends a going-away close frame to every open connection and closes
// it. Their Serve calls return.
func (t *RemoteTarget) Close() {
	t.connMu.Lock()
	defer t.connMu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	for c := range t.conns {
		_ = c.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = c.Close()
	}
}
