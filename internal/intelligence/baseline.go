package intelligence

import (
	"math"

	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// AnalyzerConfig controls baseline derivation.
type AnalyzerConfig struct {
	// MinBaselineSpans is the minimum span count for a full
	// (size, family, weight) baseline. Below it only the size mode is
	// used, to avoid overfitting sparse documents.
	MinBaselineSpans int
}

// DefaultAnalyzerConfig returns the analyzer defaults.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{MinBaselineSpans: 3}
}

// Analyzer derives the body-text StyleProfile of a document.
type Analyzer struct {
	cfg AnalyzerConfig
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// styleKey identifies one (rounded size, family, weight) combination.
type styleKey struct {
	size float64
	font string
	bold bool
}

// Analyze computes the StyleProfile from the full ordered span sequence.
// The mode of the style histogram is the body baseline; ties prefer the
// smaller size, then the non-bold variant, then first-seen order, matching
// the assumption that body text is the smallest, most frequent, unweighted
// style.
func (a *Analyzer) Analyze(spans []extraction.TextSpan) StyleProfile {
	profile := StyleProfile{SizeCounts: make(map[float64]int)}
	if len(spans) == 0 {
		profile.Sparse = true
		return profile
	}

	counts := make(map[styleKey]int)
	firstSeen := make(map[styleKey]int)
	for i, s := range spans {
		key := styleKey{size: math.Round(s.FontSize), font: s.FontName, bold: s.Bold}
		counts[key]++
		if _, ok := firstSeen[key]; !ok {
			firstSeen[key] = i
		}
		profile.SizeCounts[key.size]++
	}

	if len(spans) < a.cfg.MinBaselineSpans {
		profile.Sparse = true
		profile.BodySize = a.dominantSize(profile.SizeCounts)
		profile.BodyColor = dominantColorForSize(spans, profile.BodySize)
		return profile
	}

	var best styleKey
	bestCount := -1
	for key, n := range counts {
		if !betterBaseline(key, n, best, bestCount, firstSeen) {
			continue
		}
		best = key
		bestCount = n
	}

	profile.BodySize = best.size
	profile.BodyFont = best.font
	profile.BodyBold = best.bold
	profile.BodyColor = dominantColorForSize(spans, best.size)
	return profile
}

// betterBaseline reports whether (key, n) should replace the current best
// baseline candidate under the frequency-then-tie-break ordering.
func betterBaseline(key styleKey, n int, best styleKey, bestCount int, firstSeen map[styleKey]int) bool {
	if n != bestCount {
		return n > bestCount
	}
	if key.size != best.size {
		return key.size < best.size
	}
	if key.bold != best.bold {
		return !key.bold
	}
	return firstSeen[key] < firstSeen[best]
}

// dominantSize returns the most frequent rounded size, preferring the
// smaller size on ties.
func (a *Analyzer) dominantSize(sizeCounts map[float64]int) float64 {
	var best float64
	bestCount := -1
	for size, n := range sizeCounts {
		if n > bestCount || (n == bestCount && size < best) {
			best = size
			bestCount = n
		}
	}
	return best
}

// dominantColorForSize returns the most frequent foreground color among
// spans of the body size; ties break by first-seen order.
func dominantColorForSize(spans []extraction.TextSpan, size float64) extraction.RGB {
	counts := make(map[extraction.RGB]int)
	var best extraction.RGB
	bestCount := 0
	for _, s := range spans {
		if math.Round(s.FontSize) != size {
			continue
		}
		counts[s.Color]++
		if counts[s.Color] > bestCount {
			best = s.Color
			bestCount = counts[s.Color]
		}
	}
	return best
}
