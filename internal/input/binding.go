package input

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBinding parses the textual binding form used in project files:
//
//	key:<name>[+<mod>...]      key:s+ctrl+shift
//	mouse:<button>             mouse:left
//	joypad_button:<button>     joypad_button:a
//	joypad_motion:<axis><+|->  joypad_motion:left_x-
//
// Any binding may end in @<device>; the default is AnyDevice.
func ParseBinding(s string) (Event, error) {
	s = strings.TrimSpace(s)
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Event{}, fmt.Errorf("binding %q: missing kind", s)
	}

	device := AnyDevice
	if body, dev, found := strings.Cut(rest, "@"); found {
		n, err := strconv.Atoi(dev)
		if err != nil {
			return Event{}, fmt.Errorf("binding %q: bad device: %w", s, err)
		}
		rest, device = body, n
	}

	var ev Event
	switch strings.ToLower(kind) {
	case "key":
		parts := strings.Split(rest, "+")
		// A trailing empty part means the key itself is "+".
		if len(parts) > 1 && parts[len(parts)-1] == "" && parts[len(parts)-2] == "" {
			parts = append(parts[:len(parts)-2], "+")
		}
		k, ok := ParseKey(parts[0])
		if !ok {
			return Event{}, fmt.Errorf("binding %q: unknown key %q", s, parts[0])
		}
		mods, err := parseMods(parts[1:])
		if err != nil {
			return Event{}, fmt.Errorf("binding %q: %w", s, err)
		}
		ev = KeyEvent(k, mods)
	case "mouse":
		parts := strings.Split(rest, "+")
		b, ok := ParseMouseButton(parts[0])
		if !ok {
			return Event{}, fmt.Errorf("binding %q: unknown mouse button %q", s, parts[0])
		}
		mods, err := parseMods(parts[1:])
		if err != nil {
			return Event{}, fmt.Errorf("binding %q: %w", s, err)
		}
		ev = MouseButtonEvent(b, mods)
	case "joypad_button":
		b, ok := ParseJoyButton(rest)
		if !ok {
			return Event{}, fmt.Errorf("binding %q: unknown joypad button %q", s, rest)
		}
		ev = JoypadButtonEvent(AnyDevice, b)
	case "joypad_motion":
		value := 1.0
		name := rest
		switch {
		case strings.HasSuffix(rest, "-"):
			value, name = -1, strings.TrimSuffix(rest, "-")
		case strings.HasSuffix(rest, "+"):
			name = strings.TrimSuffix(rest, "+")
		}
		a, ok := ParseJoyAxis(name)
		if !ok {
			return Event{}, fmt.Errorf("binding %q: unknown joypad axis %q", s, name)
		}
		ev = JoypadMotionEvent(AnyDevice, a, value)
	default:
		return Event{}, fmt.Errorf("binding %q: unknown kind %q", s, kind)
	}
	ev.Device = device
	return ev, nil
}

func parseMods(names []string) (Mods, error) {
	var m Mods
	for _, n := range names {
		switch strings.ToLower(n) {
		case "ctrl", "control":
			m.Ctrl = true
		case "shift":
			m.Shift = true
		case "alt":
			m.Alt = true
		case "meta", "win", "command":
			m.Meta = true
		case "cmd_or_ctrl":
			m.CmdOrCtrl = true
		default:
			return m, fmt.Errorf("unknown modifier %q", n)
		}
	}
	return m, nil
}

// String formats the event in ParseBinding syntax.
func (e Event) String() string {
	var b strings.Builder
	switch e.Kind {
	case EventKey:
		b.WriteString("key:" + e.Key.String())
		writeMods(&b, e.Mods)
	case EventMouseButton:
		b.WriteString("mouse:" + e.MouseButton.String())
		writeMods(&b, e.Mods)
	case EventMouseMotion:
		fmt.Fprintf(&b, "mouse_motion:%g,%g", e.DX, e.DY)
	case EventJoypadButton:
		b.WriteString("joypad_button:" + e.Button.String())
	case EventJoypadMotion:
		sign := "+"
		if e.AxisValue < 0 {
			sign = "-"
		}
		b.WriteString("joypad_motion:" + e.Axis.String() + sign)
	default:
		return "none"
	}
	if e.Device != AnyDevice {
		fmt.Fprintf(&b, "@%d", e.Device)
	}
	return b.String()
}

func writeMods(b *strings.Builder, m Mods) {
	if m.CmdOrCtrl {
		b.WriteString("+cmd_or_ctrl")
	}
	if m.Ctrl {
		b.WriteString("+ctrl")
	}
	if m.Shift {
		b.WriteString("+shift")
	}
	if m.Alt {
		b.WriteString("+alt")
	}
	if m.Meta {
		b.WriteString("+meta")
	}
}
