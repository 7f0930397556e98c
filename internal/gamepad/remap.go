package gamepad

import (
	"maps"
	"strings"
)

// JoypadPrefix starts every generic (Xbox 360 shaped) joypad path.
const JoypadPrefix = "joypad/"

// Per-family substitutions for generic tokens. Tokens without an entry
// keep their name and only change directory.
var (
	playstationTokens = map[string]string{
		"a":  "cross",
		"b":  "circle",
		"x":  "square",
		"y":  "triangle",
		"lb": "l1",
		"rb": "r1",
		"lt": "l2",
		"rt": "r2",
	}

	switchTokens = map[string]string{
		"a":      "b",
		"b":      "a",
		"x":      "y",
		"y":      "x",
		"lb":     "l",
		"rb":     "r",
		"lt":     "zl",
		"rt":     "zr",
		"select": "minus",
		"start":  "plus",
		"share":  "square",
	}

	xboxModernTokens = map[string]string{
		"select": "view",
		"start":  "menu",
	}

	remapTables = map[Family]map[string]string{
		FamilyLuna: {
			"select": "circle",
			"start":  "menu",
			"share":  "microphone",
		},
		FamilyPS3: playstationTokens,
		FamilyPS4: layer(playstationTokens, map[string]string{
			"select": "share",
			"start":  "options",
		}),
		FamilyPS5: layer(playstationTokens, map[string]string{
			"select": "share",
			"start":  "options",
			"home":   "assistant",
			"share":  "microphone",
		}),
		FamilyStadia: {
			"lb":     "l1",
			"rb":     "r1",
			"lt":     "l2",
			"rt":     "r2",
			"select": "dots",
			"start":  "menu",
			"share":  "select",
		},
		FamilySteam: {
			"r_stick_click": "right_track_center",
			"select":        "back",
			"home":          "system",
			"dpad":          "left_track",
			"dpad_up":       "left_track_up",
			"dpad_down":     "left_track_down",
			"dpad_left":     "left_track_left",
			"dpad_right":    "left_track_right",
			"l_stick":       "stick",
			"r_stick":       "right_track",
		},
		FamilySwitch: switchTokens,
		FamilyJoyCon: layer(switchTokens, map[string]string{
			"dpad_up":    "up",
			"dpad_down":  "down",
			"dpad_left":  "left",
			"dpad_right": "right",
		}),
		FamilyXbox360: {
			"select": "back",
		},
		FamilyXboxOne:    xboxModernTokens,
		FamilyXboxSeries: xboxModernTokens,
		FamilySteamDeck: {
			"lb":     "l1",
			"rb":     "r1",
			"lt":     "l2",
			"rt":     "r2",
			"select": "inventory",
			"start":  "menu",
			"home":   "steam",
			"share":  "dots",
		},
		FamilyOuya: {
			"a":     "o",
			"x":     "u",
			"b":     "a",
			"lb":    "l1",
			"rb":    "r1",
			"lt":    "l2",
			"rt":    "r2",
			"start": "menu",
			"share": "microphone",
		},
	}
)

func layer(base, over map[string]string) map[string]string {
	out := maps.Clone(base)
	maps.Copy(out, over)
	return out
}

// Remap translates a generic token ("a", "lb", "dpad_up") into the asset
// path for family f, e.g. ("a", FamilyPS5) -> "ps5/cross". Unknown tokens
// keep their name. FamilyNone yields the generic joypad path.
func Remap(token string, f Family) string {
	dir := f.Dir()
	if dir == "" {
		return JoypadPrefix + token
	}
	if mapped, ok := remapTables[f][token]; ok {
		token = mapped
	}
	return dir + "/" + token
}

// RemapPath is Remap for full "joypad/<token>" paths. Paths without the
// joypad prefix are returned unchanged.
func RemapPath(path string, f Family) string {
	token, ok := strings.CutPrefix(path, JoypadPrefix)
	if !ok {
		return path
	}
	return Remap(token, f)
}
