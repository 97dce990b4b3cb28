package intelligence

import (
	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// VisualConfig holds the named thresholds of the color-dominant strategy.
// The two color terms carry the majority of the combined weight:
// visually-driven layouts often keep font sizes near-uniform and let color
// and placement mark the headings.
type VisualConfig struct {
	LineTolerance float64

	// Term weights. SizeWeight must stay below MinScore or body text
	// could qualify on size alone.
	SizeWeight       float64
	ColorWeight      float64
	BackgroundWeight float64

	// MinScore is the minimum combined score for a line to qualify.
	MinScore float64

	// Score band boundaries mapping combined score to level.
	H1Score float64
	H2Score float64
	H3Score float64

	// MaxHeadingWords rejects lines at or above this word count.
	MaxHeadingWords int
}

// DefaultVisualConfig returns the color-dominant strategy defaults.
func DefaultVisualConfig() VisualConfig {
	return VisualConfig{
		LineTolerance:    2.0,
		SizeWeight:       0.20,
		ColorWeight:      0.45,
		BackgroundWeight: 0.35,
		MinScore:         0.35,
		H1Score:          0.70,
		H2Score:          0.50,
		H3Score:          0.35,
		MaxHeadingWords:  35,
	}
}

// VisualClassifier is the color-dominant strategy: headings are spans that
// stand out from the document's dominant foreground and background colors,
// with font size contributing only a minor term.
type VisualClassifier struct {
	cfg VisualConfig
}

// NewVisualClassifier creates a color-dominant classifier.
func NewVisualClassifier(cfg VisualConfig) *VisualClassifier {
	return &VisualClassifier{cfg: cfg}
}

// Classify merges spans into lines and scores each against the baseline
// colors. The candidate shape and ordering match the text-dominant
// strategy so the outline builder cannot tell them apart.
func (c *VisualClassifier) Classify(spans []extraction.TextSpan, profile StyleProfile) []HeadingCandidate {
	lines := mergeLines(spans, c.cfg.LineTolerance)
	pageBackgrounds := dominantBackgroundByPage(spans)

	var candidates []HeadingCandidate
	for _, l := range lines {
		if l.WordCount() >= c.cfg.MaxHeadingWords {
			continue
		}

		score := c.score(l, profile, pageBackgrounds[l.Page])
		if score < c.cfg.MinScore {
			continue
		}

		level, ok := c.assignLevel(score)
		if !ok {
			continue
		}

		candidates = append(candidates, HeadingCandidate{
			Text:       l.Text,
			Page:       l.Page,
			Y:          l.Y0,
			FontSize:   l.FontSize,
			FontName:   l.FontName,
			Bold:       l.Bold,
			Color:      l.Color,
			Background: l.Background,
			Score:      score,
			Level:      level,
			SpanIndex:  l.SpanIndex,
		})
	}

	return candidates
}

// score combines a damped size ratio with foreground distinctiveness and
// background contrast, both normalized to [0, 1] against the maximum
// perceptual distance.
func (c *VisualClassifier) score(l *line, profile StyleProfile, pageBackground extraction.RGB) float64 {
	ratio := sizeRatio(l.FontSize, profile.BodySize)
	if ratio > 2.0 {
		ratio = 2.0
	}

	fgTerm := l.Color.Distance(profile.BodyColor) / extraction.MaxColorDistance
	bgTerm := l.Background.Distance(pageBackground) / extraction.MaxColorDistance

	return c.cfg.SizeWeight*ratio + c.cfg.ColorWeight*fgTerm + c.cfg.BackgroundWeight*bgTerm
}

// assignLevel maps a combined score to its band.
func (c *VisualClassifier) assignLevel(score float64) (HeadingLevel, bool) {
	switch {
	case score >= c.cfg.H1Score:
		return LevelH1, true
	case score >= c.cfg.H2Score:
		return LevelH2, true
	case score >= c.cfg.H3Score:
		return LevelH3, true
	default:
		return "", false
	}
}

// dominantBackgroundByPage returns the most frequent derived background of
// each page, so background contrast is judged against the span's own page.
// Ties break by first-seen order.
func dominantBackgroundByPage(spans []extraction.TextSpan) map[int]extraction.RGB {
	counts := make(map[int]map[extraction.RGB]int)
	best := make(map[int]extraction.RGB)
	bestCount := make(map[int]int)
	for _, s := range spans {
		m := counts[s.Page]
		if m == nil {
			m = make(map[extraction.RGB]int)
			counts[s.Page] = m
		}
		m[s.Background]++
		if m[s.Background] > bestCount[s.Page] {
			best[s.Page] = s.Background
			bestCount[s.Page] = m[s.Background]
		}
	}
	return best
}
