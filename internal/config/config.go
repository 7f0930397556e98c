// Package config loads service settings from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/icons"
	"github.com/soar/inputicons/internal/input"
)

// EnvPrefix prefixes environment overrides, e.g. INPUTICONS_SERVER_ADDR.
const EnvPrefix = "INPUTICONS"

type Config struct {
	Fallback         gamepad.Family
	Deadzone         float64
	MouseRemap       bool
	MouseMinMovement float64

	CustomDir  string
	DefaultDir string
	Extension  string

	ProjectFile  string
	WatchProject bool

	Addr     string
	LogLevel logrus.Level
	LogFile  string

	// ConfigFile is the file that was read, if any.
	ConfigFile string
}

var defaults = map[string]any{
	"joypad.fallback":      "xbox360",
	"joypad.deadzone":      0.5,
	"mouse.remap":          true,
	"mouse.min_movement":   200,
	"assets.custom_dir":    "",
	"assets.default_dir":   "assets",
	"assets.extension":     "png",
	"actions.project_file": "",
	"actions.watch":        true,
	"server.addr":          ":8080",
	"log.level":            "info",
	"log.file":             "",
}

// flag name -> config key
var flagKeys = map[string]string{
	"addr":          "server.addr",
	"assets":        "assets.default_dir",
	"custom-assets": "assets.custom_dir",
	"project":       "actions.project_file",
	"fallback":      "joypad.fallback",
	"log-level":     "log.level",
	"log-file":      "log.file",
}

// Load parses args and reads the config file from the OS filesystem.
func Load(args []string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), args)
}

// LoadFs is Load with the config file read from fs. Precedence is flags,
// then environment, then the config file, then defaults.
func LoadFs(fs afero.Fs, args []string) (*Config, error) {
	flags := pflag.NewFlagSet("inputicons", pflag.ContinueOnError)
	cfgFile := flags.String("config", "", "config file (toml, yaml or json)")
	flags.String("addr", ":8080", "preview server listen address")
	flags.String("assets", "assets", "built-in icon asset directory")
	flags.String("custom-assets", "", "icon directory searched before the built-in one")
	flags.String("project", "", "project file with an [input] section (.ini, .godot, .toml)")
	flags.String("fallback", "xbox360", "controller family for unrecognized pads")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "rotate logs into this file instead of stderr")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *cfgFile != "" {
		v.SetConfigFile(*cfgFile)
	} else {
		v.SetConfigName("inputicons")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	fallback, err := gamepad.ParseFamily(v.GetString("joypad.fallback"))
	if err != nil {
		return nil, fmt.Errorf("joypad.fallback: %w", err)
	}
	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	c := &Config{
		Fallback:         fallback,
		Deadzone:         min(max(v.GetFloat64("joypad.deadzone"), 0), 1),
		MouseRemap:       v.GetBool("mouse.remap"),
		MouseMinMovement: min(max(v.GetFloat64("mouse.min_movement"), 0), 10000),
		CustomDir:        v.GetString("assets.custom_dir"),
		DefaultDir:       v.GetString("assets.default_dir"),
		Extension:        strings.TrimPrefix(strings.TrimSpace(v.GetString("assets.extension")), "."),
		ProjectFile:      v.GetString("actions.project_file"),
		WatchProject:     v.GetBool("actions.watch"),
		Addr:             v.GetString("server.addr"),
		LogLevel:         level,
		LogFile:          v.GetString("log.file"),
		ConfigFile:       v.ConfigFileUsed(),
	}
	if c.Extension == "" {
		c.Extension = "png"
	}
	return c, nil
}

// Icons returns the settings of the icon context.
func (c *Config) Icons() icons.Config {
	return icons.Config{
		Fallback: c.Fallback,
		Classifier: input.ClassifierConfig{
			Deadzone:         c.Deadzone,
			MouseRemap:       c.MouseRemap,
			MouseMinMovement: c.MouseMinMovement,
		},
		CustomDir:  c.CustomDir,
		DefaultDir: c.DefaultDir,
		Extension:  c.Extension,
	}
}
