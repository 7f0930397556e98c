package input

import "fmt"

// Method is the modality that last produced qualifying input.
type Method int

const (
	MethodNone Method = iota
	MethodKeyboardMouse
	MethodController
)

var methodNames = [...]string{"none", "keyboard_mouse", "controller"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMethod accepts the names produced by String plus a few short forms.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "none":
		return MethodNone, nil
	case "keyboard_mouse", "keyboard", "kbm":
		return MethodKeyboardMouse, nil
	case "controller", "joypad":
		return MethodController, nil
	}
	return MethodNone, fmt.Errorf("unknown input method %q", s)
}

// EventKind discriminates Event.
type EventKind int

const (
	EventNone EventKind = iota
	EventKey
	EventMouseButton
	EventMouseMotion
	EventJoypadButton
	EventJoypadMotion
)

var eventKindNames = [...]string{"none", "key", "mouse_button", "mouse_motion", "joypad_button", "joypad_motion"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return eventKindNames[k]
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EventKind) UnmarshalText(b []byte) error {
	for i, n := range eventKindNames {
		if n == string(b) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// AnyDevice marks a binding that matches every device.
const AnyDevice = -1

// Mods holds modifier state carried by key and mouse events.
type Mods struct {
	Ctrl  bool `json:"ctrl,omitempty"`
	Shift bool `json:"shift,omitempty"`
	Alt   bool `json:"alt,omitempty"`
	Meta  bool `json:"meta,omitempty"`
	// CmdOrCtrl means command on macOS and control elsewhere.
	CmdOrCtrl bool `json:"cmd_or_ctrl,omitempty"`
}

// Any reports whether any modifier is held.
func (m Mods) Any() bool {
	return m.Ctrl || m.Shift || m.Alt || m.Meta || m.CmdOrCtrl
}

// Event is a raw input event or an action binding. Only the fields that
// belong to Kind are meaningful.
type Event struct {
	Kind   EventKind `json:"kind"`
	Device int       `json:"device"`

	Key  Key  `json:"key,omitempty"`
	Mods Mods `json:"mods,omitempty"`

	MouseButton MouseButton `json:"mouse_button,omitempty"`
	DX          float64     `json:"dx,omitempty"`
	DY          float64     `json:"dy,omitempty"`

	Button    JoyButton `json:"button,omitempty"`
	Axis      JoyAxis   `json:"axis,omitempty"`
	AxisValue float64   `json:"axis_value,omitempty"`
}

func KeyEvent(k Key, mods Mods) Event {
	return Event{Kind: EventKey, Device: AnyDevice, Key: k, Mods: mods}
}

func MouseButtonEvent(b MouseButton, mods Mods) Event {
	return Event{Kind: EventMouseButton, Device: AnyDevice, MouseButton: b, Mods: mods}
}

func MouseMotionEvent(dx, dy float64) Event {
	return Event{Kind: EventMouseMotion, Device: AnyDevice, DX: dx, DY: dy}
}

func JoypadButtonEvent(device int, b JoyButton) Event {
	return Event{Kind: EventJoypadButton, Device: device, Button: b}
}

func JoypadMotionEvent(device int, axis JoyAxis, value float64) Event {
	return Event{Kind: EventJoypadMotion, Device: device, Axis: axis, AxisValue: value}
}

// Valid reports whether the event carries a known kind.
func (e Event) Valid() bool {
	return e.Kind > EventNone && e.Kind <= EventJoypadMotion
}

// IsKeyboardMouse reports whether the event comes from keyboard or mouse.
func (e Event) IsKeyboardMouse() bool {
	return e.Kind == EventKey || e.Kind == EventMouseButton || e.Kind == EventMouseMotion
}

// IsJoypad reports whether the event comes from a controller.
func (e Event) IsJoypad() bool {
	return e.Kind == EventJoypadButton || e.Kind == EventJoypadMotion
}

// HasMods reports whether the event kind can carry modifier keys.
func (e Event) HasMods() bool {
	return e.Kind == EventKey || e.Kind == EventMouseButton
}
