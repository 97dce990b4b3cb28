package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRasterStartsWhite(t *testing.T) {
	r := NewPageRaster(100, 100, nil)

	assert.Equal(t, White, r.SampleColor(0, 0))
	assert.Equal(t, White, r.SampleColor(50, 50))
	assert.Equal(t, White, r.SampleColor(99, 99))
}

func TestPageRasterPaintsFills(t *testing.T) {
	red := RGB{R: 200, G: 30, B: 30}
	r := NewPageRaster(100, 100, []FillRect{
		{X: 10, Y: 10, W: 30, H: 30, Color: red},
	})

	assert.Equal(t, red, r.SampleColor(25, 25))
	assert.Equal(t, White, r.SampleColor(60, 60))
}

func TestPageRasterLaterFillsWin(t *testing.T) {
	under := RGB{R: 10, G: 10, B: 10}
	over := RGB{R: 240, G: 240, B: 0}
	r := NewPageRaster(100, 100, []FillRect{
		{X: 0, Y: 0, W: 100, H: 100, Color: under},
		{X: 20, Y: 20, W: 20, H: 20, Color: over},
	})

	assert.Equal(t, over, r.SampleColor(30, 30))
	assert.Equal(t, under, r.SampleColor(5, 5))
}

func TestPageRasterClampsOutOfBounds(t *testing.T) {
	fill := RGB{R: 80, G: 80, B: 80}
	r := NewPageRaster(50, 50, []FillRect{
		{X: 0, Y: 0, W: 50, H: 50, Color: fill},
	})

	assert.Equal(t, fill, r.SampleColor(-10, 25))
	assert.Equal(t, fill, r.SampleColor(25, -10))
	assert.Equal(t, fill, r.SampleColor(500, 25))
	assert.Equal(t, fill, r.SampleColor(25, 500))
}

func TestPageRasterDegenerateSize(t *testing.T) {
	r := NewPageRaster(0, 0, nil)

	assert.Equal(t, White, r.SampleColor(0, 0))
	assert.Equal(t, White, r.SampleColor(100, 100))
}

func TestPageRasterIgnoresOffPageFills(t *testing.T) {
	r := NewPageRaster(50, 50, []FillRect{
		{X: 200, Y: 200, W: 30, H: 30, Color: Black},
	})

	assert.Equal(t, White, r.SampleColor(25, 25))
}
