package gamepad

import (
	"fmt"
	"strings"
)

// Family identifies a controller brand/generation with its own icon set.
// The zero value, FamilyNone, means "not forced" or "unknown".
type Family int

const (
	FamilyNone Family = iota
	FamilyLuna
	FamilyOuya
	FamilyPS3
	FamilyPS4
	FamilyPS5
	FamilyStadia
	FamilySteam
	FamilySwitch
	FamilyJoyCon
	FamilyXbox360
	FamilyXboxOne
	FamilyXboxSeries
	FamilySteamDeck
)

// Config and display names, one per family. Each is also the family's
// asset directory unless listed in sharedDirs.
var familyNames = map[Family]string{
	FamilyLuna:       "luna",
	FamilyOuya:       "ouya",
	FamilyPS3:        "ps3",
	FamilyPS4:        "ps4",
	FamilyPS5:        "ps5",
	FamilyStadia:     "stadia",
	FamilySteam:      "steam",
	FamilySwitch:     "switch",
	FamilyJoyCon:     "joycon",
	FamilyXbox360:    "xbox360",
	FamilyXboxOne:    "xboxone",
	FamilyXboxSeries: "xboxseries",
	FamilySteamDeck:  "steamdeck",
}

// Joy-Cons use the Switch icon set.
var sharedDirs = map[Family]string{
	FamilyJoyCon: "switch",
}

// Families lists every concrete family in declaration order.
func Families() []Family {
	out := make([]Family, 0, len(familyNames))
	for f := FamilyLuna; f <= FamilySteamDeck; f++ {
		out = append(out, f)
	}
	return out
}

// Dir returns the asset directory name, or "" for FamilyNone.
func (f Family) Dir() string {
	if d, ok := sharedDirs[f]; ok {
		return d
	}
	return familyNames[f]
}

func (f Family) String() string {
	if n, ok := familyNames[f]; ok {
		return n
	}
	return "none"
}

// ParseFamily accepts a family name ("ps5", "joycon"), "none" or an empty
// string.
// Underscores and dashes are ignored so "steam_deck" and "xbox-360" work.
func ParseFamily(s string) (Family, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if norm == "" || norm == "none" {
		return FamilyNone, nil
	}
	for f, n := range familyNames {
		if n == norm {
			return f, nil
		}
	}
	return FamilyNone, fmt.Errorf("unknown controller family %q", s)
}

// MarshalText lets families travel through JSON and config as names.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Family) UnmarshalText(b []byte) error {
	v, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
