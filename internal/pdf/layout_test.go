package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchorPoint(t *testing.T) {
	a := Anchor{XFrac: 0.5, YFrac: 0.25, DX: 10, DY: -5}
	x, y := a.Point(600, 800)
	assert.InDelta(t, 310.0, x, 0.001)
	assert.InDelta(t, 195.0, y, 0.001)
}

func TestRindeLayoutStaysOnPage(t *testing.T) {
	for name, anchor := range rindeLayout {
		x, y := anchor.Point(pageWidth, pageHeight)
		assert.GreaterOrEqual(t, x, 0.0, "field %s x", name)
		assert.LessOrEqual(t, x, pageWidth, "field %s x", name)
		assert.GreaterOrEqual(t, y, 0.0, "field %s y", name)
		assert.LessOrEqual(t, y, pageHeight, "field %s y", name)
	}
}
