package extraction

import (
	"sort"
	"strings"
)

// Config controls span extraction behavior. All thresholds are explicit so
// tests can probe boundary conditions deterministically.
type Config struct {
	// LineTolerance is the maximum vertical distance in points between two
	// runs that still count as the same line.
	LineTolerance float64

	// MergeGapRatio is the maximum horizontal gap between two same-style
	// runs, as a fraction of font size, that still merges them into one
	// span.
	MergeGapRatio float64

	// WordGapRatio is the minimum horizontal gap between two merged runs,
	// as a fraction of font size, that separates them with a space.
	WordGapRatio float64

	// DefaultFontSize is used when a page declares no font size at all
	// before its first run. Never zero.
	DefaultFontSize float64

	// BackgroundInset is the distance in points outside the span box at
	// which background colors are sampled, clear of glyph ink.
	BackgroundInset float64
}

// DefaultConfig returns the extraction defaults.
func DefaultConfig() Config {
	return Config{
		LineTolerance:   2.0,
		MergeGapRatio:   0.5,
		WordGapRatio:    0.15,
		DefaultFontSize: 12.0,
		BackgroundInset: 2.0,
	}
}

// Result is the outcome of extracting one document: the full ordered span
// sequence plus any absorbed page-level errors.
type Result struct {
	Spans      []TextSpan
	PageErrors []PageError
}

// Extractor turns page content into ordered TextSpans.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor with the given configuration.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// ExtractDocument walks every page of the document and returns the ordered
// span sequence. A page that fails to load contributes zero spans and a
// recorded PageError; extraction continues with the remaining pages.
func (e *Extractor) ExtractDocument(doc Document) *Result {
	res := &Result{}
	index := 0

	for n := 1; n <= doc.PageCount(); n++ {
		page, err := doc.Page(n)
		if err != nil {
			res.PageErrors = append(res.PageErrors, PageError{Page: n, Err: err})
			continue
		}
		spans := e.extractPage(page, n, &index)
		res.Spans = append(res.Spans, spans...)
	}

	return res
}

// extractPage produces the ordered spans for one page and advances the
// document-order index.
func (e *Extractor) extractPage(page PageContent, pageNum int, index *int) []TextSpan {
	runs := e.normalizeRuns(page.Runs())
	if len(runs) == 0 {
		return nil
	}

	e.sortReadingOrder(runs)

	spans := e.mergeRuns(runs, pageNum)
	for i := range spans {
		spans[i].Background = e.sampleBackground(page, spans[i])
		spans[i].Index = *index
		*index++
	}

	return spans
}

// normalizeRuns drops degenerate runs and backfills missing font sizes with
// the page's most recent known size.
func (e *Extractor) normalizeRuns(runs []TextRun) []TextRun {
	lastSize := e.cfg.DefaultFontSize
	out := make([]TextRun, 0, len(runs))

	for _, r := range runs {
		if strings.TrimSpace(r.Text) == "" || r.W <= 0 {
			continue
		}
		if r.FontSize > 0 {
			lastSize = r.FontSize
		} else {
			r.FontSize = lastSize
		}
		out = append(out, r)
	}

	return out
}

// sortReadingOrder orders runs top-to-bottom then left-to-right, treating
// runs within LineTolerance vertically as the same line.
func (e *Extractor) sortReadingOrder(runs []TextRun) {
	sort.SliceStable(runs, func(i, j int) bool {
		dy := runs[i].Y - runs[j].Y
		if dy < -e.cfg.LineTolerance {
			return true
		}
		if dy > e.cfg.LineTolerance {
			return false
		}
		return runs[i].X < runs[j].X
	})
}

// mergeRuns folds adjacent same-style runs on one line into maximal spans.
func (e *Extractor) mergeRuns(runs []TextRun, pageNum int) []TextSpan {
	var spans []TextSpan

	for _, r := range runs {
		if len(spans) > 0 && e.sameSpan(&spans[len(spans)-1], r) {
			last := &spans[len(spans)-1]
			gap := r.X - last.X1
			if gap > last.FontSize*e.cfg.WordGapRatio {
				last.Text += " "
			}
			last.Text += r.Text
			last.X1 = r.X + r.W
			if r.Y+r.H > last.Y1 {
				last.Y1 = r.Y + r.H
			}
			continue
		}

		spans = append(spans, TextSpan{
			Text:     r.Text,
			Page:     pageNum,
			X0:       r.X,
			Y0:       r.Y,
			X1:       r.X + r.W,
			Y1:       r.Y + r.H,
			FontName: r.FontName,
			FontSize: r.FontSize,
			Bold:     isBoldFont(r.FontName),
			Color:    r.Color,
		})
	}

	return spans
}

// sameSpan reports whether run r continues the span s: same line, same
// style, and close enough horizontally.
func (e *Extractor) sameSpan(s *TextSpan, r TextRun) bool {
	if r.FontName != s.FontName || r.FontSize != s.FontSize || r.Color != s.Color {
		return false
	}
	dy := r.Y - s.Y0
	if dy < -e.cfg.LineTolerance || dy > e.cfg.LineTolerance {
		return false
	}
	gap := r.X - s.X1
	return gap >= -1.0 && gap <= s.FontSize*e.cfg.MergeGapRatio
}

// sampleBackground derives the span's background color by sampling the
// rendered page at fixed points just outside the span box and taking the
// mode of the sampled colors. Tie-break is first-seen sample order, which
// keeps the result deterministic for any input.
func (e *Extractor) sampleBackground(page PageContent, s TextSpan) RGB {
	inset := e.cfg.BackgroundInset
	midX := (s.X0 + s.X1) / 2
	midY := (s.Y0 + s.Y1) / 2

	points := [][2]float64{
		{s.X0, s.Y0 - inset},
		{midX, s.Y0 - inset},
		{s.X1, s.Y0 - inset},
		{s.X0, s.Y1 + inset},
		{midX, s.Y1 + inset},
		{s.X1, s.Y1 + inset},
		{s.X0 - inset, midY},
		{s.X1 + inset, midY},
	}

	counts := make(map[RGB]int, len(points))
	var best RGB
	bestCount := 0
	for _, p := range points {
		c := page.SampleColor(p[0], p[1])
		counts[c]++
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}

	return best
}

// isBoldFont reports whether a PostScript font name declares a bold weight.
func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}
