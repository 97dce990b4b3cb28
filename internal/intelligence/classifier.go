package intelligence

import (
	"math"
	"regexp"
	"strings"

	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// Classifier scores spans against the body baseline and produces heading
// candidates in document order. Exactly one classifier runs per document;
// the outline builder is strategy-agnostic.
type Classifier interface {
	Classify(spans []extraction.TextSpan, profile StyleProfile) []HeadingCandidate
}

// HeadingConfig holds the named thresholds of the text-dominant strategy.
type HeadingConfig struct {
	// LineTolerance is the vertical tolerance for grouping spans into
	// lines, in points.
	LineTolerance float64

	// MinScore is the minimum combined score for a line to qualify.
	MinScore float64

	// BoldBonus is added when the line is bold and the body text is not.
	BoldBonus float64

	// IsolationBonus is added when the line sits alone with clear
	// whitespace above it.
	IsolationBonus float64

	// IsolationGapRatio is the multiple of line height the gap above must
	// exceed for the isolation bonus.
	IsolationGapRatio float64

	// Ratio band boundaries mapping size ratio to level. A line whose
	// ratio falls below H3Ratio is not a heading.
	H1Ratio float64
	H2Ratio float64
	H3Ratio float64

	// MaxHeadingWords rejects lines at or above this word count.
	MaxHeadingWords int

	// HeaderBandY and FooterBandY bound the page areas, in points from
	// the top, where repeated lines are treated as running headers or
	// footers.
	HeaderBandY float64
	FooterBandY float64

	// MinRepeatPages is the number of distinct pages a banded line must
	// appear on before it is suppressed.
	MinRepeatPages int
}

// DefaultHeadingConfig returns the text-dominant strategy defaults.
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		LineTolerance:     2.0,
		MinScore:          1.2,
		BoldBonus:         0.3,
		IsolationBonus:    0.2,
		IsolationGapRatio: 0.8,
		H1Ratio:           2.0,
		H2Ratio:           1.5,
		H3Ratio:           1.2,
		MaxHeadingWords:   35,
		HeaderBandY:       120,
		FooterBandY:       700,
		MinRepeatPages:    2,
	}
}

// HeadingClassifier is the text-dominant strategy: headings are stylistic
// outliers against the body baseline, found by font-size ratio, weight and
// isolation.
type HeadingClassifier struct {
	cfg HeadingConfig
}

// NewHeadingClassifier creates a text-dominant classifier.
func NewHeadingClassifier(cfg HeadingConfig) *HeadingClassifier {
	return &HeadingClassifier{cfg: cfg}
}

var (
	tocEntryRe      = regexp.MustCompile(`.+\s*\.{4,}\s*\d+\s*$`)
	numericPrefixRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+`)
)

// Classify merges spans into lines, filters running headers, footers and
// table-of-contents entries, then scores each remaining line against the
// baseline.
func (c *HeadingClassifier) Classify(spans []extraction.TextSpan, profile StyleProfile) []HeadingCandidate {
	lines := mergeLines(spans, c.cfg.LineTolerance)
	lines = c.dropRepeatedFurniture(lines)

	var candidates []HeadingCandidate
	for _, l := range lines {
		if tocEntryRe.MatchString(l.Text) {
			continue
		}
		if l.WordCount() >= c.cfg.MaxHeadingWords {
			continue
		}

		ratio := sizeRatio(l.FontSize, profile.BodySize)
		if ratio <= 1.0 {
			continue
		}

		score := c.score(l, ratio, profile)
		if score < c.cfg.MinScore {
			continue
		}

		level, ok := c.assignLevel(l.Text, ratio)
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

// score combines the size ratio with the bold and isolation bonuses.
func (c *HeadingClassifier) score(l *line, ratio float64, profile StyleProfile) float64 {
	score := ratio
	if l.Bold && !profile.BodyBold {
		score += c.cfg.BoldBonus
	}
	lineHeight := l.Y1 - l.Y0
	if lineHeight <= 0 {
		lineHeight = l.FontSize
	}
	if l.GapAbove > c.cfg.IsolationGapRatio*lineHeight {
		score += c.cfg.IsolationBonus
	}
	return score
}

// assignLevel maps a line to its tentative level. A dotted numeric prefix
// ("2.1 Background") wins over the style band, capped at H3; otherwise the
// size-ratio bands decide, with sub-band lines rejected.
func (c *HeadingClassifier) assignLevel(text string, ratio float64) (HeadingLevel, bool) {
	if m := numericPrefixRe.FindStringSubmatch(text); m != nil {
		depth := strings.Count(m[1], ".") + 1
		if depth <= 3 {
			return levelForDepth(depth), true
		}
	}

	switch {
	case ratio >= c.cfg.H1Ratio:
		return LevelH1, true
	case ratio >= c.cfg.H2Ratio:
		return LevelH2, true
	case ratio >= c.cfg.H3Ratio:
		return LevelH3, true
	default:
		return "", false
	}
}

// dropRepeatedFurniture removes lines whose text repeats across pages
// inside the same band, so running titles and page footers never reach
// scoring. The two bands are tallied separately: a header hit on one page
// and a footer hit on another do not make a repeat.
func (c *HeadingClassifier) dropRepeatedFurniture(lines []*line) []*line {
	headerPages := make(map[string]map[int]struct{})
	footerPages := make(map[string]map[int]struct{})

	record := func(m map[string]map[int]struct{}, l *line) {
		pages := m[l.Text]
		if pages == nil {
			pages = make(map[int]struct{})
			m[l.Text] = pages
		}
		pages[l.Page] = struct{}{}
	}
	for _, l := range lines {
		switch {
		case l.Y0 < c.cfg.HeaderBandY:
			record(headerPages, l)
		case l.Y0 > c.cfg.FooterBandY:
			record(footerPages, l)
		}
	}

	kept := lines[:0]
	for _, l := range lines {
		var pages map[int]struct{}
		switch {
		case l.Y0 < c.cfg.HeaderBandY:
			pages = headerPages[l.Text]
		case l.Y0 > c.cfg.FooterBandY:
			pages = footerPages[l.Text]
		}
		if len(pages) >= c.cfg.MinRepeatPages {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// sizeRatio returns the span-to-body size ratio, defaulting to 1.0 when
// no baseline size exists.
func sizeRatio(size, bodySize float64) float64 {
	if bodySize <= 0 || math.IsNaN(bodySize) {
		return 1.0
	}
	return size / bodySize
}
