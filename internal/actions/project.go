package actions

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	"github.com/soar/inputicons/internal/input"
)

// InputSection is the section holding action bindings in project files.
const InputSection = "input"

// ProjectFile reads project-defined actions from the [input] section of a
// project configuration file. INI style files (.ini, .cfg, .godot) and
// TOML files are supported:
//
//	[input]
//	jump = key:space, joypad_button:a
//
//	[input]
//	jump = ["key:space", "joypad_button:a"]
//
// Only this binding syntax is read. In .godot files, entries holding
// Godot's own serialized events ("jump={ ... }") are skipped.
//
// An empty Path disables the source.
type ProjectFile struct {
	Fs   afero.Fs
	Path string
}

func (p ProjectFile) Name() string { return "project:" + p.Path }

func (p ProjectFile) Actions() (map[string][]input.Event, error) {
	if p.Path == "" {
		return nil, nil
	}
	fs := p.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, p.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	var raw map[string][]string
	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".toml":
		raw, err = parseTOML(data)
	case ".ini", ".cfg":
		raw, err = parseINI(data)
	case ".godot":
		raw, err = parseINI(stripGodotDicts(data))
	default:
		err = fmt.Errorf("unsupported project file type %q", filepath.Ext(p.Path))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, p.Path, err)
	}

	out := make(map[string][]input.Event, len(raw))
	for name, items := range raw {
		events, err := parseBindingList(items)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: action %s: %w", ErrConfigParse, p.Path, name, err)
		}
		out[name] = events
	}
	return out, nil
}

func parseINI(data []byte) (map[string][]string, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	if !cfg.HasSection(InputSection) {
		return out, nil
	}
	for _, key := range cfg.Section(InputSection).Keys() {
		out[key.Name()] = key.Strings(",")
	}
	return out, nil
}

// stripGodotDicts drops "key={ ... }" values, which may span lines.
func stripGodotDicts(data []byte) []byte {
	var out strings.Builder
	depth := 0
	for _, line := range strings.SplitAfter(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if depth > 0 {
			depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
			continue
		}
		if _, v, ok := strings.Cut(trimmed, "="); ok && !strings.HasPrefix(trimmed, ";") {
			if v = strings.TrimSpace(v); strings.HasPrefix(v, "{") {
				depth = strings.Count(v, "{") - strings.Count(v, "}")
				continue
			}
		}
		out.WriteString(line)
	}
	return []byte(out.String())
}

func parseTOML(data []byte) (map[string][]string, error) {
	var doc struct {
		Input map[string]any `toml:"input"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(doc.Input))
	for name, v := range doc.Input {
		switch val := v.(type) {
		case string:
			out[name] = strings.Split(val, ",")
		case []any:
			items := make([]string, 0, len(val))
			for _, it := range val {
				s, ok := it.(string)
				if !ok {
					return nil, fmt.Errorf("action %s: binding %v is not a string", name, it)
				}
				items = append(items, s)
			}
			out[name] = items
		default:
			return nil, fmt.Errorf("action %s: expected string or array, got %T", name, v)
		}
	}
	return out, nil
}
