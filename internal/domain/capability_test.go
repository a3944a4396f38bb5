package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveHours_NoOverride(t *testing.T) {
	c := &Capability{Hours: 16}
	assert.Equal(t, 16, c.EffectiveHours())
}

func TestEffectiveHours_OverrideWins(t *testing.T) {
	override := 40
	c := &Capability{Hours: 16, HoursOverride: &override}
	assert.Equal(t, 40, c.EffectiveHours())
}

func TestEffectiveHours_ZeroOverride(t *testing.T) {
	override := 0
	c := &Capability{Hours: 16, HoursOverride: &override}
	assert.Equal(t, 0, c.EffectiveHours(), "explicit zero override must win")
}

func TestSized(t *testing.T) {
	cases := []struct {
		size  Size
		sized bool
	}{
		{SizeTBD, false},
		{"", false},
		{SizeXS, true},
		{SizeM, true},
		{SizeXXXL, true},
	}
	for _, tc := range cases {
		c := &Capability{Size: tc.size}
		assert.Equal(t, tc.sized, c.Sized(), "size=%s", tc.size)
	}
}

func TestCapabilityValidate(t *testing.T) {
	valid := &Capability{Name: "Payments", CategoryID: "cat-1", Size: SizeM, Phase: Phase2, Color: "#1F6FEB"}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name string
		c    Capability
	}{
		{"empty name", Capability{CategoryID: "cat-1"}},
		{"no category", Capability{Name: "X"}},
		{"bad size", Capability{Name: "X", CategoryID: "c", Size: "huge"}},
		{"bad phase", Capability{Name: "X", CategoryID: "c", Phase: "phase9"}},
		{"bad color", Capability{Name: "X", CategoryID: "c", Color: "blue"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.c.Validate())
		})
	}
}

func TestCapabilityValidate_UnsetSizeAndPhase(t *testing.T) {
	c := &Capability{Name: "X", CategoryID: "c"}
	assert.NoError(t, c.Validate(), "unset size and phase are legal")
}

func TestNormalizeColor(t *testing.T) {
	got, err := NormalizeColor("#AaBbCc")
	require.NoError(t, err)
	assert.Equal(t, "#aabbcc", got)

	for _, bad := range []string{"", "#fff", "123456", "#12345g", "red"} {
		_, err := NormalizeColor(bad)
		assert.Error(t, err, "input=%q", bad)
	}
}

func TestMapHoursFor(t *testing.T) {
	m := &Map{SizeHours: map[Size]int{SizeXL: 30}}
	assert.Equal(t, 30, m.HoursFor(SizeXL), "configured value wins")
	assert.Equal(t, 16, m.HoursFor(SizeM), "falls back to stock config")
	assert.Equal(t, 0, m.HoursFor(SizeTBD))
}

func TestMapValidate(t *testing.T) {
	m := &Map{Name: "Platform"}
	require.NoError(t, m.Validate())

	m = &Map{}
	assert.Error(t, m.Validate())

	m = &Map{Name: "P", SizeHours: map[Size]int{"giant": 99}}
	assert.Error(t, m.Validate())

	m = &Map{Name: "P", PhaseColors: map[Phase]string{Phase1: "not-a-color"}}
	assert.Error(t, m.Validate())
}
