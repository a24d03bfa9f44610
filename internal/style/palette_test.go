package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette_BaseNames(t *testing.T) {
	base := []string{
		"Black", "DarkBlue", "DarkGreen", "DarkCyan", "DarkRed", "DarkMagenta", "DarkYellow", "Gray",
		"DarkGray", "Blue", "Green", "Cyan", "Red", "Magenta", "Yellow", "White",
	}
	assert.Equal(t, base, Names()[:16])
	for i, name := range base {
		e, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, i, e.Native, "console order for %s", name)
	}
}

func TestPalette_EveryNameResolvesToOneEntry(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range Names() {
		assert.False(t, seen[name], "duplicate %s", name)
		seen[name] = true

		e, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, e.Name)
		assert.GreaterOrEqual(t, e.Code256, 0)
		assert.LessOrEqual(t, e.Code256, 255)
		_, ok = sgrToANSI(e.ANSI)
		assert.True(t, ok, "4-bit code for %s", name)
		_, ok = sgrToANSI(e.Bright)
		assert.True(t, ok, "bright code for %s", name)
	}
	assert.Greater(t, len(Names()), 16, "extended shades present")
}

func TestPalette_DefaultsExist(t *testing.T) {
	_, ok := Lookup(DefaultForeground)
	assert.True(t, ok)
	_, ok = Lookup(NoneName)
	assert.False(t, ok, "None is a sentinel, not a color")
}

func TestBrighten(t *testing.T) {
	assert.Equal(t, "Blue", brighten("DarkBlue"))
	assert.Equal(t, "LightBlue", brighten("Blue"))
	assert.Equal(t, "Violet", brighten("DarkViolet"))
	assert.Equal(t, "White", brighten("White"))
	assert.Equal(t, "mystery", brighten("mystery"))
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "CrossedOut", CrossedOut.String())
	assert.Equal(t, "DoubleUnderline", DoubleUnderline.String())
	assert.Equal(t, "Style(?)", Style(99).String())
}
