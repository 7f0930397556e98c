package gamepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_KnownFragments(t *testing.T) {
	for _, rule := range nameRules {
		for _, frag := range rule.fragments {
			for _, name := range []string{
				frag,
				"Wireless " + frag,
				frag + " (Bluetooth)",
				"[" + frag + "]",
			} {
				assert.Equal(t, rule.family, Classify(name, FamilyOuya), name)
			}
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, FamilyPS5, Classify("sony dualsense", FamilyXbox360))
	assert.Equal(t, FamilyJoyCon, Classify("NINTENDO JOY-CON (R)", FamilyXbox360))
}

func TestClassify_Priority(t *testing.T) {
	assert.Equal(t, FamilySwitch, Classify("Nintendo Switch Pro Controller", FamilyNone))
	// Steam Controller is tested before Steam Deck.
	assert.Equal(t, FamilySteam, Classify("Valve Steam Controller", FamilyNone))
	assert.Equal(t, FamilySteamDeck, Classify("Steam Deck Controller", FamilyNone))
}

func TestClassify_Fallback(t *testing.T) {
	assert.Equal(t, FamilyXbox360, Classify("8BitDo SN30 Pro", FamilyXbox360))
	assert.Equal(t, FamilyNone, Classify("", FamilyNone))
}

type fakePads map[int]string

func (f fakePads) Connected() []int {
	var ids []int
	for i := 0; i < 16; i++ {
		if _, ok := f[i]; ok {
			ids = append(ids, i)
		}
	}
	return ids
}

func (f fakePads) Name(d int) string { return f[d] }

func TestDetect(t *testing.T) {
	pads := fakePads{1: "DualSense Wireless Controller", 3: "Nintendo Switch Pro Controller"}

	assert.Equal(t, FamilyStadia, Detect(pads, 1, -1, FamilyXbox360, FamilyStadia), "forced family wins")
	assert.Equal(t, FamilyXbox360, Detect(fakePads{}, 0, -1, FamilyXbox360, FamilyNone), "no pads uses fallback")
	assert.Equal(t, FamilyXbox360, Detect(nil, 0, -1, FamilyXbox360, FamilyNone))
	assert.Equal(t, FamilySwitch, Detect(pads, 3, 1, FamilyXbox360, FamilyNone))
	assert.Equal(t, FamilySwitch, Detect(pads, 7, 3, FamilyXbox360, FamilyNone), "unknown device uses last controller")
	assert.Equal(t, FamilyPS5, Detect(pads, 7, 9, FamilyXbox360, FamilyNone), "then the first connected pad")
}

func TestParseFamily(t *testing.T) {
	for _, f := range Families() {
		got, err := ParseFamily(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	f, err := ParseFamily("Steam_Deck")
	require.NoError(t, err)
	assert.Equal(t, FamilySteamDeck, f)

	f, err = ParseFamily("")
	require.NoError(t, err)
	assert.Equal(t, FamilyNone, f)

	_, err = ParseFamily("dreamcast")
	assert.Error(t, err)
	assert.Len(t, Families(), 13)
}
