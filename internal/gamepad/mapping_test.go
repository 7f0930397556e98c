package gamepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputicons/internal/input"
)

func TestGetMapping(t *testing.T) {
	assert.Equal(t, "playstation", GetMapping(0x054C, 0x0CE6).Name)
	assert.Equal(t, "xbox", GetMapping(0x045E, 0x028E).Name)
	assert.Equal(t, "generic", GetMapping(0x1234, 0x5678).Name)
}

func TestDeviceMapping_ButtonEvent(t *testing.T) {
	ev, ok := playstationMapping.ButtonEvent(3, 9)
	require.True(t, ok)
	assert.Equal(t, input.JoypadButtonEvent(3, input.JoyLeftShoulder), ev)

	ev, ok = xboxMapping.ButtonEvent(1, 6)
	require.True(t, ok)
	assert.Equal(t, "select", ev.Button.Token())

	_, ok = genericMapping.ButtonEvent(0, 42)
	assert.False(t, ok)
}

func TestDeviceMapping_AxisEvent(t *testing.T) {
	tests := []struct {
		name  string
		raw   int32
		value int16
		axis  input.JoyAxis
		want  float64
		ok    bool
	}{
		{"stick right", 0, 32767, input.AxisLeftX, 1, true},
		{"stick up is inverted", 1, -32767, input.AxisLeftY, 1, true},
		{"rest", 2, 100, 0, 0, false},
		{"trigger pulled", 4, 32767, input.AxisTriggerLeft, 1, true},
		{"trigger released", 5, -32768, 0, 0, false},
		{"unknown axis", 9, 32767, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := xboxMapping.AxisEvent(2, tt.raw, tt.value)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, input.EventJoypadMotion, ev.Kind)
			assert.Equal(t, 2, ev.Device)
			assert.Equal(t, tt.axis, ev.Axis)
			assert.InDelta(t, tt.want, ev.AxisValue, 1e-9)
		})
	}

	_, ok := switchProMapping.AxisEvent(0, 4, 32767)
	assert.False(t, ok, "switch pro triggers are buttons")
}

func TestDeviceMapping_HatEvents(t *testing.T) {
	evs := genericMapping.HatEvents(0, hatUp|hatLeft)
	require.Len(t, evs, 2)
	assert.Equal(t, input.JoyDpadUp, evs[0].Button)
	assert.Equal(t, input.JoyDpadLeft, evs[1].Button)
	assert.Empty(t, genericMapping.HatEvents(0, 0))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, -1.0, NormalizeAxis(-32768))
	assert.Equal(t, 0.0, NormalizeTrigger(-32768, -32768, 32767))
	assert.Equal(t, 1.0, NormalizeTrigger(32767, -32768, 32767))
	assert.Equal(t, 0.0, NormalizeTrigger(5, 3, 3))
	assert.Equal(t, 0.0, ApplyDeadzone(0.04, 0.05))
	assert.Equal(t, -0.2, ApplyDeadzone(-0.2, 0.05))
}
