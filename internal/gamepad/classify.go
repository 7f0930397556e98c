package gamepad

import (
	"slices"
	"strings"
)

// nameRule maps product-name fragments to a family. Rules are tested in
// order because some names contain others.
type nameRule struct {
	fragments []string
	family    Family
}

var nameRules = []nameRule{
	{[]string{"Luna Controller"}, FamilyLuna},
	{[]string{"PS3 Controller"}, FamilyPS3},
	{[]string{"PS4 Controller", "DUALSHOCK 4"}, FamilyPS4},
	{[]string{"PS5 Controller", "DualSense"}, FamilyPS5},
	{[]string{"Stadia Controller"}, FamilyStadia},
	{[]string{"Steam Controller"}, FamilySteam},
	{[]string{"Switch Controller", "Switch Pro Controller"}, FamilySwitch},
	{[]string{"Joy-Con"}, FamilyJoyCon},
	{[]string{"Xbox 360 Controller"}, FamilyXbox360},
	{[]string{"Xbox One", "X-Box One", "Xbox Wireless Controller"}, FamilyXboxOne},
	{[]string{"Xbox Series"}, FamilyXboxSeries},
	{[]string{"Steam Deck", "Steam Virtual Gamepad"}, FamilySteamDeck},
	{[]string{"OUYA Controller"}, FamilyOuya},
}

// Classify maps a controller product name to a family, returning fallback
// when no known fragment is found. Matching is case-insensitive.
func Classify(name string, fallback Family) Family {
	lower := strings.ToLower(name)
	for _, rule := range nameRules {
		for _, frag := range rule.fragments {
			if strings.Contains(lower, strings.ToLower(frag)) {
				return rule.family
			}
		}
	}
	return fallback
}

// Joypads is the view of connected controllers needed to pick a family.
type Joypads interface {
	// Connected returns connected device indices in ascending order.
	Connected() []int
	// Name returns the product name of a connected device.
	Name(device int) string
}

// Detect picks the family for device. A forced family wins outright.
// Without connected pads the fallback is used. A device that is not
// connected is replaced by last, then by the first connected pad.
func Detect(pads Joypads, device, last int, fallback, forced Family) Family {
	if forced != FamilyNone {
		return forced
	}
	if pads == nil {
		return fallback
	}
	available := pads.Connected()
	if len(available) == 0 {
		return fallback
	}
	if !slices.Contains(available, device) {
		device = last
	}
	if !slices.Contains(available, device) {
		device = available[0]
	}
	return Classify(pads.Name(device), fallback)
}
