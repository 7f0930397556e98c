package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputicons/internal/gamepad"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := LoadFs(afero.NewMemMapFs(), nil)
	require.NoError(t, err)

	assert.Equal(t, gamepad.FamilyXbox360, c.Fallback)
	assert.Equal(t, 0.5, c.Deadzone)
	assert.True(t, c.MouseRemap)
	assert.Equal(t, 200.0, c.MouseMinMovement)
	assert.Equal(t, "", c.CustomDir)
	assert.Equal(t, "assets", c.DefaultDir)
	assert.Equal(t, "png", c.Extension)
	assert.Equal(t, "", c.ProjectFile)
	assert.True(t, c.WatchProject)
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, logrus.InfoLevel, c.LogLevel)
	assert.Empty(t, c.ConfigFile)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/inputicons.toml", []byte(`
[joypad]
fallback = "steam_deck"
deadzone = 3.5

[mouse]
remap = false
min_movement = -4

[assets]
custom_dir = "skins"
extension = ".webp"

[server]
addr = ":7000"
`), 0o644))
	t.Setenv("INPUTICONS_SERVER_ADDR", ":9000")
	t.Setenv("INPUTICONS_LOG_LEVEL", "debug")

	c, err := LoadFs(fs, []string{"--config", "/etc/inputicons.toml", "--project", "game/project.godot"})
	require.NoError(t, err)

	assert.Equal(t, gamepad.FamilySteamDeck, c.Fallback)
	assert.Equal(t, 1.0, c.Deadzone, "clamped")
	assert.False(t, c.MouseRemap)
	assert.Equal(t, 0.0, c.MouseMinMovement, "clamped")
	assert.Equal(t, "skins", c.CustomDir)
	assert.Equal(t, "webp", c.Extension)
	assert.Equal(t, ":9000", c.Addr, "env beats file")
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
	assert.Equal(t, "game/project.godot", c.ProjectFile)
	assert.Equal(t, "/etc/inputicons.toml", c.ConfigFile)

	ic := c.Icons()
	assert.Equal(t, gamepad.FamilySteamDeck, ic.Fallback)
	assert.Equal(t, 1.0, ic.Classifier.Deadzone)
	assert.Equal(t, "assets", ic.DefaultDir)
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.toml", []byte("[joypad\n"), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"missing explicit file", []string{"--config", "/nope.toml"}},
		{"broken file", []string{"--config", "/bad.toml"}},
		{"unknown family", []string{"--fallback", "gamecube"}},
		{"bad level", []string{"--log-level", "loud"}},
		{"unknown flag", []string{"--frobnicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFs(fs, tt.args)
			assert.Error(t, err)
		})
	}
}

func TestLoad_BlankExtension(t *testing.T) {
	t.Setenv("INPUTICONS_ASSETS_EXTENSION", "  ")
	c, err := LoadFs(afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.Equal(t, "png", c.Extension)
}
