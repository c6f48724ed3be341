package pointerflow

// KeyAdapter records which keys are held under KeysPressedKey. Auto-repeat
// presses are ignored.
func KeyAdapter() Middleware {
	return func(data *EventData, p *Processor) Result {
		if data.Device != DeviceKey {
			return Next()
		}
		ev, ok := data.Event.(*KeyEvent)
		if !ok {
			return Next()
		}
		Update(p, KeysPressedKey, func(pressed map[string]bool, _ bool) map[string]bool {
			if pressed == nil {
				pressed = make(map[string]bool)
			}
			switch {
			case data.EventType == EventStart && !ev.Repeat:
				pressed[ev.Key] = true
			case data.EventType == EventEnd:
				pressed[ev.Key] = false
			}
			return pressed
		})
		return Next()
	}
}

// AreKeysPressed reports whether every key in keys is held. It relies on
// KeyAdapter running earlier in the chain. No keys is always true.
func AreKeysPressed(p *Processor, keys ...string) bool {
	pressed, _ := Get(p, KeysPressedKey)
	for _, k := range keys {
		if !pressed[k] {
			return false
		}
	}
	return true
}

// Adapters returns the built-in device adapters in the order they should run.
func Adapters() Chain {
	return Chain{
		MouseAdapter(),
		TouchAdapter(),
		PointerAdapter(false),
		KeyAdapter(),
	}
}
