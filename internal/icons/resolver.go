package icons

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/input"
)

// PathKind classifies a logical icon path.
type PathKind int

const (
	// PathInputAction names a registered input action.
	PathInputAction PathKind = iota
	// PathJoypad is a generic "joypad/<token>" path remapped per family.
	PathJoypad
	// PathSpecific is a literal asset path.
	PathSpecific
)

func (k PathKind) String() string {
	switch k {
	case PathInputAction:
		return "input_action"
	case PathJoypad:
		return "joypad"
	default:
		return "specific"
	}
}

func (k PathKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *PathKind) UnmarshalText(b []byte) error {
	for _, c := range []PathKind{PathInputAction, PathJoypad, PathSpecific} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown path kind %q", b)
}

// ActionLookup is the part of the action registry the resolver needs.
type ActionLookup interface {
	Has(name string) bool
	MatchingEvent(name string, method input.Method, device int) (input.Event, bool)
}

// ResolverConfig holds the asset layout and joypad fallback.
type ResolverConfig struct {
	CustomDir  string
	DefaultDir string
	Extension  string
	Fallback   gamepad.Family
}

// Resolver turns logical paths into ordered asset file candidates.
type Resolver struct {
	cfg     ResolverConfig
	actions ActionLookup
	pads    gamepad.Joypads
	last    func() int
	goos    string
}

// NewResolver creates a resolver. last reports the most recently active
// controller and is used when a requested device is not connected.
func NewResolver(cfg ResolverConfig, actions ActionLookup, pads gamepad.Joypads, last func() int) *Resolver {
	if strings.TrimSpace(cfg.Extension) == "" {
		cfg.Extension = "png"
	}
	if last == nil {
		last = func() int { return input.AnyDevice }
	}
	return &Resolver{cfg: cfg, actions: actions, pads: pads, last: last, goos: runtime.GOOS}
}

// Kind classifies path. Registered action names take precedence over the
// joypad prefix.
func (r *Resolver) Kind(path string) PathKind {
	switch {
	case r.actions != nil && r.actions.Has(path):
		return PathInputAction
	case strings.HasPrefix(path, gamepad.JoypadPrefix):
		return PathJoypad
	default:
		return PathSpecific
	}
}

// Resolve returns the candidate asset files for path, custom directory
// first. The caller uses the first one that loads.
func (r *Resolver) Resolve(path string, method input.Method, device int, forced gamepad.Family) []string {
	return r.Candidates(r.AssetToken(path, method, device, forced))
}

// AssetToken maps path to an asset token relative to the asset
// directories, such as "key/space" or "switch/b".
func (r *Resolver) AssetToken(path string, method input.Method, device int, forced gamepad.Family) string {
	switch r.Kind(path) {
	case PathInputAction:
		ev, ok := r.actions.MatchingEvent(path, method, device)
		if !ok {
			return path
		}
		if token := r.EventToken(ev, device, forced); token != "" {
			return token
		}
		return path
	case PathJoypad:
		return gamepad.RemapPath(path, r.family(device, forced))
	default:
		return path
	}
}

// EventToken maps a bound event to its asset token. Joypad events are
// remapped for the family of device. Events without an icon yield "".
func (r *Resolver) EventToken(ev input.Event, device int, forced gamepad.Family) string {
	switch ev.Kind {
	case input.EventKey:
		if ev.Key == input.KeyMeta {
			return r.metaToken("key/meta")
		}
		if t := ev.Key.Token(); t != "" {
			return "key/" + t
		}
	case input.EventMouseButton:
		return "mouse/" + ev.MouseButton.Token()
	case input.EventJoypadButton:
		if t := ev.Button.Token(); t != "" {
			return gamepad.Remap(t, r.family(device, forced))
		}
	case input.EventJoypadMotion:
		if t := ev.Axis.Token(); t != "" {
			return gamepad.Remap(t, r.family(device, forced))
		}
	}
	return ""
}

// Modifiers returns asset tokens for the modifiers held by ev, in display
// order.
func (r *Resolver) Modifiers(ev input.Event) []string {
	if !ev.HasMods() {
		return nil
	}
	m := ev.Mods
	var out []string
	if m.CmdOrCtrl {
		out = append(out, r.metaToken("key/ctrl"))
	}
	if m.Ctrl && !m.CmdOrCtrl {
		out = append(out, "key/ctrl")
	}
	if m.Shift {
		out = append(out, "key/shift")
	}
	if m.Alt {
		out = append(out, "key/alt")
	}
	if m.Meta && !m.CmdOrCtrl {
		out = append(out, r.metaToken("key/win"))
	}
	return out
}

// Candidates expands token into full file paths, one per configured
// asset directory.
func (r *Resolver) Candidates(token string) []string {
	out := make([]string, 0, 2)
	for _, base := range []string{r.cfg.CustomDir, r.cfg.DefaultDir} {
		if strings.TrimSpace(base) == "" {
			continue
		}
		out = append(out, strings.TrimRight(base, "/")+"/"+token+"."+r.cfg.Extension)
	}
	return out
}

// Family reports the family used for device.
func (r *Resolver) Family(device int, forced gamepad.Family) gamepad.Family {
	return r.family(device, forced)
}

func (r *Resolver) family(device int, forced gamepad.Family) gamepad.Family {
	return gamepad.Detect(r.pads, device, r.last(), r.cfg.Fallback, forced)
}

// metaToken is "key/command" on macOS and other otherwise.
func (r *Resolver) metaToken(other string) string {
	if r.goos == "darwin" {
		return "key/command"
	}
	return other
}
