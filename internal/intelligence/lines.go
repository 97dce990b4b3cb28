package intelligence

import (
	"math"
	"strings"

	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// line is a run of contiguous same-style spans merged on one visual line.
// Spans of differing style on the same visual line stay separate lines
// here and are scored independently.
type line struct {
	Text       string
	Page       int
	Y0, Y1     float64
	X0         float64
	FontSize   float64
	FontName   string
	Bold       bool
	Color      extraction.RGB
	Background extraction.RGB
	SpanIndex  int

	// GapAbove is the vertical whitespace between this visual line and
	// the previous one on the same page; +Inf for the first line of a
	// page.
	GapAbove float64
}

// WordCount returns the number of whitespace-separated words in the line.
func (l *line) WordCount() int {
	return len(strings.Fields(l.Text))
}

// sameStyle reports whether a span continues the line's style.
func (l *line) sameStyle(s extraction.TextSpan) bool {
	return s.FontName == l.FontName && s.FontSize == l.FontSize &&
		s.Bold == l.Bold && s.Color == l.Color
}

// mergeLines folds the ordered span sequence into lines. Spans are merged
// once and never reconsidered. Document order is preserved.
func mergeLines(spans []extraction.TextSpan, tol float64) []*line {
	var lines []*line

	var cur *line
	curPage := 0
	curLineY := 0.0
	curGap := math.Inf(1)
	prevBottom := math.Inf(-1) // bottom of the previous visual line
	lineBottom := 0.0          // running bottom of the current visual line

	for _, s := range spans {
		sameVisualLine := cur != nil && s.Page == curPage &&
			math.Abs(s.Y0-curLineY) <= tol

		if sameVisualLine && cur.sameStyle(s) {
			cur.Text += " " + s.Text
			if s.Y1 > cur.Y1 {
				cur.Y1 = s.Y1
			}
			if s.Y1 > lineBottom {
				lineBottom = s.Y1
			}
			continue
		}

		if !sameVisualLine {
			if cur != nil && s.Page == curPage {
				prevBottom = lineBottom
			} else {
				prevBottom = math.Inf(-1)
			}
			curLineY = s.Y0
			lineBottom = s.Y1
			if math.IsInf(prevBottom, -1) {
				curGap = math.Inf(1)
			} else {
				curGap = s.Y0 - prevBottom
			}
		} else if s.Y1 > lineBottom {
			lineBottom = s.Y1
		}

		cur = &line{
			Text:       s.Text,
			Page:       s.Page,
			Y0:         s.Y0,
			Y1:         s.Y1,
			X0:         s.X0,
			FontSize:   s.FontSize,
			FontName:   s.FontName,
			Bold:       s.Bold,
			Color:      s.Color,
			Background: s.Background,
			SpanIndex:  s.Index,
			GapAbove:   curGap,
		}
		curPage = s.Page
		lines = append(lines, cur)
	}

	return lines
}
