package intelligence

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

func TestBuildPaletteMonochrome(t *testing.T) {
	spans := indexed(
		mkSpan("a", 1, 72, 72, 12),
		mkSpan("b", 1, 72, 100, 12),
	)

	p := BuildPalette(spans, DefaultPaletteConfig())

	assert.Equal(t, 2, p.TotalSpans)
	assert.Zero(t, p.ColorfulSpans)
	assert.Zero(t, p.DistinctColors)
	assert.Zero(t, p.ColorfulRatio())
}

func TestBuildPaletteCountsForegroundAndBackground(t *testing.T) {
	red := extraction.RGB{R: 220, G: 40, B: 40}
	blue := extraction.RGB{R: 40, G: 40, B: 220}

	spans := indexed(
		mkSpan("plain", 1, 72, 72, 12),
		mkSpan("red text", 1, 72, 100, 12),
		mkSpan("on blue", 1, 72, 130, 12),
	)
	spans[1].Color = red
	spans[2].Background = blue

	p := BuildPalette(spans, DefaultPaletteConfig())

	assert.Equal(t, 2, p.ColorfulSpans)
	assert.Equal(t, 2, p.DistinctColors)
	assert.InDelta(t, 2.0/3.0, p.ColorfulRatio(), 0.0001)
}

func TestBuildPaletteGrayToleranceBoundary(t *testing.T) {
	cfg := DefaultPaletteConfig()

	// Channel spread of exactly GrayTolerance still counts as gray.
	atTol := extraction.RGB{R: 115, G: 100, B: 100}
	pastTol := extraction.RGB{R: 116, G: 100, B: 100}

	spans := indexed(mkSpan("a", 1, 72, 72, 12))
	spans[0].Color = atTol
	assert.Zero(t, BuildPalette(spans, cfg).ColorfulSpans)

	spans[0].Color = pastTol
	assert.Equal(t, 1, BuildPalette(spans, cfg).ColorfulSpans)
}

func TestIsVisuallyDrivenEmptyDocument(t *testing.T) {
	assert.False(t, IsVisuallyDriven(ColorPalette{}, DefaultPaletteConfig()))
}

func TestIsVisuallyDrivenRatioThreshold(t *testing.T) {
	cfg := DefaultPaletteConfig()

	// Exactly at the threshold stays text-dominant; above flips.
	at := ColorPalette{ColorfulSpans: 20, TotalSpans: 100}
	above := ColorPalette{ColorfulSpans: 21, TotalSpans: 100}

	assert.False(t, IsVisuallyDriven(at, cfg))
	assert.True(t, IsVisuallyDriven(above, cfg))
}

func TestIsVisuallyDrivenDistinctColorThreshold(t *testing.T) {
	cfg := DefaultPaletteConfig()

	at := ColorPalette{TotalSpans: 100, DistinctColors: 8}
	above := ColorPalette{TotalSpans: 100, DistinctColors: 9}

	assert.False(t, IsVisuallyDriven(at, cfg))
	assert.True(t, IsVisuallyDriven(above, cfg))
}

func TestIsVisuallyDrivenIsPure(t *testing.T) {
	cfg := DefaultPaletteConfig()
	p := ColorPalette{ColorfulSpans: 30, TotalSpans: 100, DistinctColors: 3}

	first := IsVisuallyDriven(p, cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsVisuallyDriven(p, cfg), fmt.Sprintf("call %d", i))
	}
}
