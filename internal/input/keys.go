package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a logical keyboard key.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyTab
	KeyBackspace
	KeyEnter
	KeyKpEnter
	KeyInsert
	KeyDelete
	KeyPrint
	KeyHome
	KeyEnd
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyShift
	KeyCtrl
	KeyMeta
	KeyAlt
	KeyCapsLock
	KeyNumLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyKpMultiply
	KeyKpSubtract
	KeyKpAdd
	KeyKpPeriod
	KeyKp0
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9
	KeySpace
	KeyQuoteDbl
	KeyAsterisk
	KeyPlus
	KeyMinus
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySemicolon
	KeyLess
	KeyGreater
	KeyQuestion
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyBracketLeft
	KeyBackslash
	KeySlash
	KeyBracketRight
	KeyAsciiTilde
	KeyQuoteLeft
	KeyApostrophe
	KeyComma
	KeyEqual
	KeyPeriod
	keyCount
)

// keyInfo holds the config name of a key and its asset token under key/.
// An empty token means the key has no icon.
type keyInfo struct {
	name  string
	token string
}

var keyTable = [keyCount]keyInfo{
	KeyUnknown:      {"unknown", ""},
	KeyEscape:       {"escape", "esc"},
	KeyTab:          {"tab", "tab"},
	KeyBackspace:    {"backspace", "backspace_alt"},
	KeyEnter:        {"enter", "enter_alt"},
	KeyKpEnter:      {"kp_enter", "enter_tall"},
	KeyInsert:       {"insert", "insert"},
	KeyDelete:       {"delete", "del"},
	KeyPrint:        {"print", "print_screen"},
	KeyHome:         {"home", "home"},
	KeyEnd:          {"end", "end"},
	KeyLeft:         {"left", "arrow_left"},
	KeyUp:           {"up", "arrow_up"},
	KeyRight:        {"right", "arrow_right"},
	KeyDown:         {"down", "arrow_down"},
	KeyPageUp:       {"page_up", "page_up"},
	KeyPageDown:     {"page_down", "page_down"},
	KeyShift:        {"shift", "shift_alt"},
	KeyCtrl:         {"ctrl", "ctrl"},
	KeyMeta:         {"meta", "meta"},
	KeyAlt:          {"alt", "alt"},
	KeyCapsLock:     {"caps_lock", "caps_lock"},
	KeyNumLock:      {"num_lock", "num_lock"},
	KeyKpMultiply:   {"kp_multiply", "asterisk"},
	KeyKpSubtract:   {"kp_subtract", "minus"},
	KeyKpAdd:        {"kp_add", "plus_tall"},
	KeyKpPeriod:     {"kp_period", "period"},
	KeySpace:        {"space", "space"},
	KeyQuoteDbl:     {"quotedbl", "quote"},
	KeyAsterisk:     {"asterisk", "asterisk"},
	KeyPlus:         {"plus", "plus"},
	KeyMinus:        {"minus", "minus"},
	KeySemicolon:    {"semicolon", "semicolon"},
	KeyLess:         {"less", "mark_left"},
	KeyGreater:      {"greater", "mark_right"},
	KeyQuestion:     {"question", "question"},
	KeyBracketLeft:  {"bracket_left", "bracket_left"},
	KeyBackslash:    {"backslash", "slash"},
	KeySlash:        {"slash", "forward_slash"},
	KeyBracketRight: {"bracket_right", "bracket_right"},
	KeyAsciiTilde:   {"tilde", "tilda"},
	KeyQuoteLeft:    {"backtick", "backtick"},
	KeyApostrophe:   {"apostrophe", "apostrophe"},
	KeyComma:        {"comma", "comma"},
	KeyEqual:        {"equal", "equals"},
	KeyPeriod:       {"period", "period"},
}

var keyByName = map[string]Key{}

// Aliases accepted by ParseKey, mostly browser KeyboardEvent.key values.
var keyAliases = map[string]Key{
	"esc":        KeyEscape,
	"return":     KeyEnter,
	"del":        KeyDelete,
	"arrowleft":  KeyLeft,
	"arrowup":    KeyUp,
	"arrowright": KeyRight,
	"arrowdown":  KeyDown,
	"pageup":     KeyPageUp,
	"pagedown":   KeyPageDown,
	"control":    KeyCtrl,
	"command":    KeyMeta,
	"capslock":   KeyCapsLock,
	"numlock":    KeyNumLock,
	" ":          KeySpace,
	"\"":         KeyQuoteDbl,
	"*":          KeyAsterisk,
	"+":          KeyPlus,
	"-":          KeyMinus,
	";":          KeySemicolon,
	"<":          KeyLess,
	">":          KeyGreater,
	"?":          KeyQuestion,
	"[":          KeyBracketLeft,
	"\\":         KeyBackslash,
	"/":          KeySlash,
	"]":          KeyBracketRight,
	"~":          KeyAsciiTilde,
	"`":          KeyQuoteLeft,
	"'":          KeyApostrophe,
	",":          KeyComma,
	"=":          KeyEqual,
	".":          KeyPeriod,
}

func init() {
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("f%d", i+1)
		keyTable[KeyF1+Key(i)] = keyInfo{name, name}
	}
	for i := 0; i < 10; i++ {
		digit := fmt.Sprintf("%d", i)
		keyTable[Key0+Key(i)] = keyInfo{digit, digit}
		keyTable[KeyKp0+Key(i)] = keyInfo{"kp_" + digit, digit}
	}
	for i := 0; i < 26; i++ {
		letter := string(rune('a' + i))
		keyTable[KeyA+Key(i)] = keyInfo{letter, letter}
	}
	for k, info := range keyTable {
		keyByName[info.name] = Key(k)
	}
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("key(%d)", int(k))
	}
	return keyTable[k].name
}

// Token returns the asset token under the key/ directory, or "" when the
// key has no icon.
func (k Key) Token() string {
	if k < 0 || k >= keyCount {
		return ""
	}
	return keyTable[k].token
}

// ParseKey resolves a config name or alias, case-insensitively.
func ParseKey(s string) (Key, bool) {
	if k, ok := keyAliases[s]; ok {
		return k, true
	}
	lower := strings.ToLower(s)
	if k, ok := keyByName[lower]; ok && k != KeyUnknown {
		return k, true
	}
	if k, ok := keyAliases[lower]; ok {
		return k, true
	}
	return KeyUnknown, false
}

func (k Key) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes names without a table entry to KeyUnknown, so
// such key presses still count as keyboard input. ParseBinding stays
// strict.
func (k *Key) UnmarshalText(b []byte) error {
	v, _ := ParseKey(string(b))
	*k = v
	return nil
}

// MouseButton follows the common 1-based numbering (left = 1).
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	MouseMiddle
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
	MouseXButton1
	MouseXButton2
)

var mouseNames = [...]string{"none", "left", "right", "middle", "wheel_up", "wheel_down", "wheel_left", "wheel_right", "xbutton1", "xbutton2"}

var mouseTokens = map[MouseButton]string{
	MouseLeft:      "left",
	MouseRight:     "right",
	MouseMiddle:    "middle",
	MouseWheelUp:   "wheel_up",
	MouseWheelDown: "wheel_down",
	MouseXButton1:  "side_down",
	MouseXButton2:  "side_up",
}

func (b MouseButton) String() string {
	if b < 0 || int(b) >= len(mouseNames) {
		return fmt.Sprintf("mouse(%d)", int(b))
	}
	return mouseNames[b]
}

// Token returns the asset token under mouse/. Buttons without a dedicated
// icon use the generic "sample" icon.
func (b MouseButton) Token() string {
	if t, ok := mouseTokens[b]; ok {
		return t
	}
	return "sample"
}

func ParseMouseButton(s string) (MouseButton, bool) {
	lower := strings.ToLower(s)
	for i, n := range mouseNames {
		if i > 0 && n == lower {
			return MouseButton(i), true
		}
	}
	return MouseNone, false
}

func (b MouseButton) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *MouseButton) UnmarshalText(t []byte) error {
	v, ok := ParseMouseButton(string(t))
	if !ok {
		return fmt.Errorf("unknown mouse button %q", t)
	}
	*b = v
	return nil
}

// JoyButton uses the SDL game controller layout.
type JoyButton int

const (
	JoyA JoyButton = iota
	JoyB
	JoyX
	JoyY
	JoyBack
	JoyGuide
	JoyStart
	JoyLeftStick
	JoyRightStick
	JoyLeftShoulder
	JoyRightShoulder
	JoyDpadUp
	JoyDpadDown
	JoyDpadLeft
	JoyDpadRight
	JoyMisc1
	joyButtonCount
)

// Generic joypad tokens per button, in the Xbox 360 vocabulary.
var joyButtonTokens = [joyButtonCount]string{
	JoyA:             "a",
	JoyB:             "b",
	JoyX:             "x",
	JoyY:             "y",
	JoyBack:          "select",
	JoyGuide:         "home",
	JoyStart:         "start",
	JoyLeftStick:     "l_stick_click",
	JoyRightStick:    "r_stick_click",
	JoyLeftShoulder:  "lb",
	JoyRightShoulder: "rb",
	JoyDpadUp:        "dpad_up",
	JoyDpadDown:      "dpad_down",
	JoyDpadLeft:      "dpad_left",
	JoyDpadRight:     "dpad_right",
	JoyMisc1:         "share",
}

func (b JoyButton) String() string {
	if t := b.Token(); t != "" {
		return t
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// Token returns the generic joypad token, or "" for unmapped buttons.
func (b JoyButton) Token() string {
	if b < 0 || b >= joyButtonCount {
		return ""
	}
	return joyButtonTokens[b]
}

// ParseJoyButton accepts generic tokens ("a", "lb", "select") or a raw
// numeric index.
func ParseJoyButton(s string) (JoyButton, bool) {
	lower := strings.ToLower(s)
	for i, t := range joyButtonTokens {
		if t == lower {
			return JoyButton(i), true
		}
	}
	if n, err := strconv.Atoi(lower); err == nil && n >= 0 {
		return JoyButton(n), true
	}
	return 0, false
}

func (b JoyButton) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *JoyButton) UnmarshalText(t []byte) error {
	v, ok := ParseJoyButton(string(t))
	if !ok {
		return fmt.Errorf("unknown joypad button %q", t)
	}
	*b = v
	return nil
}

// JoyAxis uses the SDL game controller axis layout.
type JoyAxis int

const (
	AxisLeftX JoyAxis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisTriggerLeft
	AxisTriggerRight
	axisCount
)

var axisNames = [axisCount]string{"left_x", "left_y", "right_x", "right_y", "trigger_left", "trigger_right"}

func (a JoyAxis) String() string {
	if a < 0 || a >= axisCount {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// Token returns the generic joypad token for the control owning the axis.
func (a JoyAxis) Token() string {
	switch a {
	case AxisLeftX, AxisLeftY:
		return "l_stick"
	case AxisRightX, AxisRightY:
		return "r_stick"
	case AxisTriggerLeft:
		return "lt"
	case AxisTriggerRight:
		return "rt"
	}
	return ""
}

// ParseJoyAxis accepts axis names and the trigger tokens "lt"/"rt".
func ParseJoyAxis(s string) (JoyAxis, bool) {
	lower := strings.ToLower(s)
	switch lower {
	case "lt", "l2":
		return AxisTriggerLeft, true
	case "rt", "r2":
		return AxisTriggerRight, true
	}
	for i, n := range axisNames {
		if n == lower {
			return JoyAxis(i), true
		}
	}
	return 0, false
}

func (a JoyAxis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *JoyAxis) UnmarshalText(t []byte) error {
	v, ok := ParseJoyAxis(string(t))
	if !ok {
		return fmt.Errorf("unknown joypad axis %q", t)
	}
	*a = v
	return nil
}
