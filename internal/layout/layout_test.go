package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorder_ExactWidth(t *testing.T) {
	styles := []BorderStyle{BorderDouble, BorderNormal, BorderRounded, BorderThick, BorderASCII}
	for _, style := range styles {
		for _, width := range []int{2, 3, 10, 47} {
			top, middle, bottom := Border(width, style)
			assert.Equal(t, width, Width(top), "top style=%d width=%d", style, width)
			assert.Equal(t, width, Width(middle), "middle style=%d width=%d", style, width)
			assert.Equal(t, width, Width(bottom), "bottom style=%d width=%d", style, width)
		}
	}
}

func TestBorder_Double(t *testing.T) {
	top, middle, bottom := Border(6, BorderDouble)
	assert.Equal(t, "╔════╗", top)
	assert.Equal(t, "╠════╣", middle)
	assert.Equal(t, "╚════╝", bottom)
}

func TestBorder_ClampsTinyWidths(t *testing.T) {
	top, _, bottom := Border(-5, BorderNormal)
	assert.Equal(t, "┌┐", top)
	assert.Equal(t, "└┘", bottom)
}

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		width, content, want int
	}{
		{80, 20, 30},
		{80, 79, 0},
		{80, 80, 0},
		{80, 200, 0},
		{0, 0, 0},
		{11, 4, 3},
	}
	for _, tt := range tests {
		got := CenterOffset(tt.width, tt.content)
		assert.Equal(t, tt.want, got, "CenterOffset(%d, %d)", tt.width, tt.content)
		assert.GreaterOrEqual(t, got, 0)
	}
}

func TestPad_NeverNegative(t *testing.T) {
	for target := -3; target < 10; target++ {
		for current := -3; current < 15; current++ {
			got := Pad(target, current)
			assert.GreaterOrEqual(t, got, 0)
			if current < target {
				assert.Equal(t, target-current, got)
			}
		}
	}
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "   abcd", Center("abcd", 10))
	assert.Equal(t, "too long", Center("too long", 4))
}

func TestParseBorderStyle(t *testing.T) {
	assert.Equal(t, BorderRounded, ParseBorderStyle("Rounded"))
	assert.Equal(t, BorderNormal, ParseBorderStyle("single"))
	assert.Equal(t, BorderDouble, ParseBorderStyle("whatever"))
}
