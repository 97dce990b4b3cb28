package intelligence

import (
	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// PaletteConfig holds the named thresholds of the document style decision.
type PaletteConfig struct {
	// GrayTolerance is the maximum channel spread still counting as
	// grayscale.
	GrayTolerance uint8

	// ColorfulRatioThreshold is the fraction of colorful spans above
	// which a document counts as visually driven.
	ColorfulRatioThreshold float64

	// DistinctColorThreshold is the number of distinct non-gray colors
	// above which a document counts as visually driven regardless of the
	// ratio.
	DistinctColorThreshold int
}

// DefaultPaletteConfig returns the strategy decision defaults.
func DefaultPaletteConfig() PaletteConfig {
	return PaletteConfig{
		GrayTolerance:          15,
		ColorfulRatioThreshold: 0.2,
		DistinctColorThreshold: 8,
	}
}

// BuildPalette aggregates the document's color usage. A span counts as
// colorful when its foreground or its derived background deviates from
// near-grayscale beyond the tolerance.
func BuildPalette(spans []extraction.TextSpan, cfg PaletteConfig) ColorPalette {
	palette := ColorPalette{TotalSpans: len(spans)}
	distinct := make(map[extraction.RGB]struct{})

	for _, s := range spans {
		fgColorful := !s.Color.IsNearGray(cfg.GrayTolerance)
		bgColorful := !s.Background.IsNearGray(cfg.GrayTolerance)
		if fgColorful {
			distinct[s.Color] = struct{}{}
		}
		if bgColorful {
			distinct[s.Background] = struct{}{}
		}
		if fgColorful || bgColorful {
			palette.ColorfulSpans++
		}
	}

	palette.DistinctColors = len(distinct)
	return palette
}

// IsVisuallyDriven is the document style decision: true selects the
// visual classifier, false the text-dominant one. Pure; decided exactly
// once per document.
func IsVisuallyDriven(p ColorPalette, cfg PaletteConfig) bool {
	if p.TotalSpans == 0 {
		return false
	}
	return p.ColorfulRatio() > cfg.ColorfulRatioThreshold ||
		p.DistinctColors > cfg.DistinctColorThreshold
}
