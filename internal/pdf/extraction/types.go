package extraction

import (
	"fmt"
	"math"
)

// RGB is an 8-bit-per-channel device color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Common colors.
var (
	White = RGB{R: 255, G: 255, B: 255}
	Black = RGB{R: 0, G: 0, B: 0}
)

// Distance returns a perceptually weighted euclidean distance between two
// colors. Green differences dominate, red and blue are weighted lower,
// which approximates human sensitivity without a full colorspace
// conversion.
func (c RGB) Distance(o RGB) float64 {
	dr := float64(c.R) - float64(o.R)
	dg := float64(c.G) - float64(o.G)
	db := float64(c.B) - float64(o.B)
	return math.Sqrt(2*dr*dr + 4*dg*dg + 3*db*db)
}

// MaxColorDistance is the largest value Distance can return (black vs white).
var MaxColorDistance = Black.Distance(White)

// IsNearGray reports whether the color is within tol of the grayscale axis,
// measured as the spread between its largest and smallest channel.
func (c RGB) IsNearGray(tol uint8) bool {
	maxC := max(c.R, c.G, c.B)
	minC := min(c.R, c.G, c.B)
	return maxC-minC <= tol
}

// TextRun is a raw positioned run of text from a page's content, in paint
// order. Coordinates use a top-left origin with y increasing downward, so
// ascending Y reads top to bottom.
type TextRun struct {
	Text     string
	X, Y     float64 // top-left corner of the run box
	W, H     float64 // advance width and nominal height
	FontName string
	FontSize float64 // points; 0 when the content stream never declared one
	Color    RGB     // fill color in effect when the run was painted
}

// TextSpan is a maximal run of text sharing one style on one line,
// enriched with geometry, font and color attributes. Spans for a page are
// ordered top-to-bottom then left-to-right; this order defines document
// order and is preserved through the whole pipeline.
type TextSpan struct {
	Text       string
	Page       int // 1-based
	X0, Y0     float64
	X1, Y1     float64
	FontName   string
	FontSize   float64
	Bold       bool
	Color      RGB // foreground
	Background RGB // derived from the rendered page raster
	Index      int // monotone document-order index
}

// Width returns the horizontal extent of the span box.
func (s TextSpan) Width() float64 { return s.X1 - s.X0 }

// Height returns the vertical extent of the span box.
func (s TextSpan) Height() float64 { return s.Y1 - s.Y0 }

// PageError records a non-fatal failure reading a single page. The page
// contributes zero spans and processing continues.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }
