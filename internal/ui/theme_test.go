package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"Nightfox", "Kanagawa", "Slate"}, ThemeNames())
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, "Kanagawa", NextTheme("Nightfox"))
	assert.Equal(t, "Slate", NextTheme("Kanagawa"))
	assert.Equal(t, "Nightfox", NextTheme("Slate"))
	assert.Equal(t, "Nightfox", NextTheme("unknown"))
}

func TestGetThemeFallsBackToNightfox(t *testing.T) {
	assert.Equal(t, "Nightfox", GetTheme("nope").Name)
	assert.Equal(t, "Slate", GetTheme("Slate").Name)
}

func TestRegionColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, region := range []string{"Africa", "Americas", "Antarctic", "Asia", "Europe", "Oceania"} {
			assert.NotEqual(t, th.Muted, th.RegionColor(region), "%s/%s", name, region)
		}
		assert.Equal(t, th.Muted, th.RegionColor(""), name)
	}
}
