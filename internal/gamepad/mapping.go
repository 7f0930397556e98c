package gamepad

import (
	"math"

	"github.com/soar/inputicons/internal/input"
)

// AxisMapping defines how a raw axis index maps to a controller axis.
type AxisMapping struct {
	Index     int32
	Axis      input.JoyAxis
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw button index maps to a controller button.
type ButtonMapping struct {
	Index  int32
	Button input.JoyButton
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// Values below this are treated as rest position noise.
const axisNoise = 0.05

const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// ButtonEvent translates a raw button index of device into a joypad
// button event. Unmapped indices report false.
func (m *DeviceMapping) ButtonEvent(device int, raw int32) (input.Event, bool) {
	for _, bm := range m.Buttons {
		if bm.Index == raw {
			return input.JoypadButtonEvent(device, bm.Button), true
		}
	}
	return input.Event{}, false
}

// AxisEvent translates a raw axis reading into a joypad motion event.
// Unmapped axes and readings at rest report false.
func (m *DeviceMapping) AxisEvent(device int, raw int32, value int16) (input.Event, bool) {
	for _, am := range m.Axes {
		if am.Index != raw {
			continue
		}
		var v float64
		if am.IsTrigger {
			v = NormalizeTrigger(value, am.RawMin, am.RawMax)
		} else {
			v = NormalizeAxis(value)
			if am.Invert {
				v = -v
			}
		}
		v = ApplyDeadzone(v, axisNoise)
		if v == 0 {
			return input.Event{}, false
		}
		return input.JoypadMotionEvent(device, am.Axis, v), true
	}
	return input.Event{}, false
}

// HatEvents translates a hat position into one dpad button event per
// pressed direction.
func (m *DeviceMapping) HatEvents(device int, value uint8) []input.Event {
	if !m.HasHat {
		return nil
	}
	var out []input.Event
	for _, d := range []struct {
		bit    uint8
		button input.JoyButton
	}{
		{hatUp, input.JoyDpadUp},
		{hatRight, input.JoyDpadRight},
		{hatDown, input.JoyDpadDown},
		{hatLeft, input.JoyDpadLeft},
	} {
		if value&d.bit != 0 {
			out = append(out, input.JoypadButtonEvent(device, d.button))
		}
	}
	return out
}

// Built-in mappings for common controllers.

var standardAxes = []AxisMapping{
	{Index: 0, Axis: input.AxisLeftX},
	{Index: 1, Axis: input.AxisLeftY, Invert: true},
	{Index: 2, Axis: input.AxisRightX},
	{Index: 3, Axis: input.AxisRightY, Invert: true},
	{Index: 4, Axis: input.AxisTriggerLeft, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	{Index: 5, Axis: input.AxisTriggerRight, IsTrigger: true, RawMin: -32768, RawMax: 32767},
}

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Button: input.JoyA},
		{Index: 1, Button: input.JoyB},
		{Index: 2, Button: input.JoyX},
		{Index: 3, Button: input.JoyY},
		{Index: 4, Button: input.JoyLeftShoulder},
		{Index: 5, Button: input.JoyRightShoulder},
		{Index: 6, Button: input.JoyBack},
		{Index: 7, Button: input.JoyStart},
		{Index: 8, Button: input.JoyLeftStick},
		{Index: 9, Button: input.JoyRightStick},
		{Index: 10, Button: input.JoyGuide},
		{Index: 11, Button: input.JoyMisc1}, // Share on Series controllers
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Button: input.JoyA},    // Cross
		{Index: 1, Button: input.JoyB},    // Circle
		{Index: 2, Button: input.JoyX},    // Square
		{Index: 3, Button: input.JoyY},    // Triangle
		{Index: 4, Button: input.JoyBack}, // Share / Create
		{Index: 5, Button: input.JoyGuide},
		{Index: 6, Button: input.JoyStart}, // Options
		{Index: 7, Button: input.JoyLeftStick},
		{Index: 8, Button: input.JoyRightStick},
		{Index: 9, Button: input.JoyLeftShoulder},   // L1
		{Index: 10, Button: input.JoyRightShoulder}, // R1
		{Index: 15, Button: input.JoyMisc1},         // Mic mute on DualSense
	},
	HasHat: true,
}

var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: standardAxes[:4],
	Buttons: []ButtonMapping{
		{Index: 0, Button: input.JoyA},
		{Index: 1, Button: input.JoyB},
		{Index: 2, Button: input.JoyX},
		{Index: 3, Button: input.JoyY},
		{Index: 4, Button: input.JoyLeftShoulder},
		{Index: 5, Button: input.JoyRightShoulder},
		{Index: 6, Button: input.JoyBack},
		{Index: 7, Button: input.JoyStart},
		{Index: 8, Button: input.JoyLeftStick},
		{Index: 9, Button: input.JoyRightStick},
		{Index: 10, Button: input.JoyGuide},
		{Index: 11, Button: input.JoyMisc1}, // Capture
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name: "generic",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Button: input.JoyA},
		{Index: 1, Button: input.JoyB},
		{Index: 2, Button: input.JoyX},
		{Index: 3, Button: input.JoyY},
		{Index: 4, Button: input.JoyLeftShoulder},
		{Index: 5, Button: input.JoyRightShoulder},
		{Index: 6, Button: input.JoyBack},
		{Index: 7, Button: input.JoyStart},
		{Index: 8, Button: input.JoyLeftStick},
		{Index: 9, Button: input.JoyRightStick},
		{Index: 10, Button: input.JoyGuide},
	},
	HasHat: true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
