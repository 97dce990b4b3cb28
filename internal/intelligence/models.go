// Package intelligence classifies extracted text spans into a document
// outline. It derives a body-text baseline, decides once per document
// whether typography or color carries the heading signal, scores spans
// with the matching strategy, and assembles the final leveled outline.
package intelligence

import (
	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// HeadingLevel is one of the fixed outline tiers, H1 shallowest.
type HeadingLevel string

const (
	LevelH1 HeadingLevel = "H1"
	LevelH2 HeadingLevel = "H2"
	LevelH3 HeadingLevel = "H3"
	LevelH4 HeadingLevel = "H4"
)

// Depth returns the numeric depth of a level (H1 = 1). Unknown levels
// report 0.
func (l HeadingLevel) Depth() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	case LevelH4:
		return 4
	default:
		return 0
	}
}

// levelForDepth is the inverse of Depth, clamped to the H1..H4 range.
func levelForDepth(d int) HeadingLevel {
	switch {
	case d <= 1:
		return LevelH1
	case d == 2:
		return LevelH2
	case d == 3:
		return LevelH3
	default:
		return LevelH4
	}
}

// StyleProfile is the read-only summary of a document's dominant body
// style. It is computed once from all spans and never mutated afterwards;
// both classifiers consume the same value.
type StyleProfile struct {
	BodySize  float64 // dominant font size, rounded to whole points
	BodyFont  string  // dominant family; empty for sparse documents
	BodyBold  bool
	BodyColor extraction.RGB

	// SizeCounts is the rounded-size histogram used for outlier scoring.
	SizeCounts map[float64]int

	// Sparse marks a document below the minimum span count, where only
	// the size component of the baseline is trustworthy.
	Sparse bool
}

// ColorPalette summarizes how much of the document deviates from
// grayscale. Consumed only by the strategy decision.
type ColorPalette struct {
	ColorfulSpans  int // spans whose foreground or background is non-gray
	TotalSpans     int
	DistinctColors int // distinct non-gray colors observed
}

// ColorfulRatio returns the fraction of spans carrying non-gray color.
func (p ColorPalette) ColorfulRatio() float64 {
	if p.TotalSpans == 0 {
		return 0
	}
	return float64(p.ColorfulSpans) / float64(p.TotalSpans)
}

// HeadingCandidate is a merged line of same-style spans annotated with a
// score and a tentative level. Exactly one classifier produces the
// candidates for a document.
type HeadingCandidate struct {
	Text       string
	Page       int
	Y          float64 // top of the line on its page
	FontSize   float64
	FontName   string
	Bold       bool
	Color      extraction.RGB
	Background extraction.RGB
	Score      float64
	Level      HeadingLevel
	SpanIndex  int // document-order index of the first merged span
}

// OutlineEntry is one heading of the final outline. SpanIndex is the
// internal position mapping consumers use to slice section text; it is
// not part of the public JSON schema.
type OutlineEntry struct {
	Level HeadingLevel `json:"level"`
	Text  string       `json:"text"`
	Page  int          `json:"page"`

	SpanIndex int `json:"-"`
}

// Outline is the pipeline's sole durable output: a title plus the ordered,
// leveled headings.
type Outline struct {
	Title   string         `json:"title"`
	Entries []OutlineEntry `json:"outline"`
}
