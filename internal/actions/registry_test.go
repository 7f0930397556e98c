package actions

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputicons/internal/input"
)

func mustBindings(t *testing.T, items ...string) []input.Event {
	t.Helper()
	events, err := parseBindingList(items)
	require.NoError(t, err)
	return events
}

func TestRegistry_UnknownActionIsEmpty(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Reparse())
	assert.Empty(t, r.Events("nope"))
	assert.False(t, r.Has("nope"))
	_, ok := r.MatchingEvent("nope", input.MethodController, 0)
	assert.False(t, ok)
}

func TestRegistry_DeviceSpecificBeatsEarlierAnyDevice(t *testing.T) {
	r := NewRegistry(nil, Static{
		"jump": mustBindings(t, "joypad_button:a", "joypad_button:b@3"),
	})
	require.NoError(t, r.Reparse())

	ev, ok := r.MatchingEvent("jump", input.MethodController, 3)
	require.True(t, ok)
	assert.Equal(t, input.JoyB, ev.Button)
	assert.Equal(t, 3, ev.Device)

	ev, ok = r.MatchingEvent("jump", input.MethodController, 1)
	require.True(t, ok)
	assert.Equal(t, input.JoyA, ev.Button, "any-device fallback")
}

func TestRegistry_FirstAnyDeviceWins(t *testing.T) {
	r := NewRegistry(nil, Static{
		"fire": mustBindings(t, "joypad_button:x@5", "joypad_button:rb", "joypad_motion:rt"),
	})
	require.NoError(t, r.Reparse())

	ev, ok := r.MatchingEvent("fire", input.MethodController, 0)
	require.True(t, ok)
	assert.Equal(t, input.EventJoypadButton, ev.Kind)
	assert.Equal(t, input.JoyRightShoulder, ev.Button)
}

func TestRegistry_OtherDeviceIsLastResort(t *testing.T) {
	r := NewRegistry(nil, Static{
		"menu": mustBindings(t, "key:escape", "joypad_button:start@2"),
	})
	require.NoError(t, r.Reparse())

	ev, ok := r.MatchingEvent("menu", input.MethodController, 0)
	require.True(t, ok)
	assert.Equal(t, input.JoyStart, ev.Button)
}

func TestRegistry_KeyboardMouseTakesFirstMatch(t *testing.T) {
	r := NewRegistry(nil, Static{
		"jump": append(
			[]input.Event{{}}, // invalid entries are skipped
			mustBindings(t, "joypad_button:a", "mouse:right", "key:space")...,
		),
	})
	require.NoError(t, r.Reparse())

	ev, ok := r.MatchingEvent("jump", input.MethodKeyboardMouse, -1)
	require.True(t, ok)
	assert.Equal(t, input.EventMouseButton, ev.Kind)

	_, ok = r.MatchingEvent("jump", input.MethodNone, -1)
	assert.False(t, ok)
}

func TestRegistry_LaterSourceWins(t *testing.T) {
	r := NewRegistry(nil, Builtins{}, Static{
		"ui_accept": mustBindings(t, "key:f"),
	})
	require.NoError(t, r.Reparse())
	assert.Equal(t, mustBindings(t, "key:f"), r.Events("ui_accept"))
	assert.True(t, r.Has("ui_cancel"))
}

func TestRegistry_ReparseReplacesContents(t *testing.T) {
	r := NewRegistry(nil, Builtins{})
	require.NoError(t, r.Reparse())
	r.Add("dash", mustBindings(t, "key:shift"))
	require.True(t, r.Has("dash"))

	require.NoError(t, r.Reparse())
	assert.False(t, r.Has("dash"))
}

func TestRegistry_ConfigParseFailureKeepsBuiltins(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "project.toml", []byte("[input\njump = "), 0o644))

	r := NewRegistry(nil, Builtins{}, ProjectFile{Fs: fs, Path: "project.toml"})
	err := r.Reparse()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigParse))
	assert.True(t, r.Has("ui_accept"))
	assert.False(t, r.Has("jump"))

	require.NoError(t, afero.WriteFile(fs, "project.toml", []byte("[input]\njump = [\"key:space\"]\n"), 0o644))
	require.NoError(t, r.Reparse())
	assert.True(t, r.Has("jump"))
}

func TestBuiltins(t *testing.T) {
	acts, err := Builtins{}.Actions()
	require.NoError(t, err)
	assert.NotContains(t, acts, "ui_menu", "actions without defaults are skipped")
	assert.Contains(t, BuiltinNames(), "ui_menu")
	assert.GreaterOrEqual(t, len(BuiltinNames()), 75)

	accept := acts["ui_accept"]
	require.Len(t, accept, 4)
	assert.Equal(t, input.KeyEnter, accept[0].Key)
	assert.Equal(t, input.JoyA, accept[3].Button)
}
