package icons

import (
	"path"
	"strings"
)

var ttsPhrases = map[string]string{
	"shift_alt":     "shift",
	"esc":           "escape",
	"backspace_alt": "backspace",
	"enter_alt":     "enter",
	"enter_tall":    "keypad enter",
	"arrow_left":    "left arrow",
	"arrow_right":   "right arrow",
	"del":           "delete",
	"arrow_up":      "up arrow",
	"arrow_down":    "down arrow",
	"ctrl":          "control",
	"kp_add":        "keypad plus",
	"mark_left":     "left mark",
	"mark_right":    "right mark",
	"bracket_left":  "left bracket",
	"bracket_right": "right bracket",
	"tilda":         "tilde",
	"lb":            "left bumper",
	"rb":            "right bumper",
	"lt":            "left trigger",
	"rt":            "right trigger",
	"l_stick_click": "left stick click",
	"r_stick_click": "right stick click",
	"l_stick":       "left stick",
	"r_stick":       "right stick",
}

// TTS turns an asset token such as "key/arrow_left" or "ps5/r_stick" into
// a phrase for screen readers. Only the file name is considered; unknown
// names are returned as they are.
func TTS(token string) string {
	name := path.Base(token)
	name = strings.TrimSuffix(name, path.Ext(name))
	if phrase, ok := ttsPhrases[name]; ok {
		return phrase
	}
	return name
}
