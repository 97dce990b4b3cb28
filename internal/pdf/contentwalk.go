package pdf

import (
	"github.com/tsawler/tabula/contentstream"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/graphicsstate"

	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// colorMark records the fill color in effect at a text-showing operator,
// at the text position current when it was painted. Marks are matched to
// text runs by nearest position.
type colorMark struct {
	x, y  float64 // top-left origin page coordinates
	color extraction.RGB
}

// pageGraphics is everything recovered from one page's content stream:
// filled rectangles for the background raster and color marks for span
// foreground colors. Zero value means no graphics signal.
type pageGraphics struct {
	fills []extraction.FillRect
	marks []colorMark
}

// colorAt returns the foreground color recorded nearest to (x, y), or
// black when the page yielded no marks. Iteration order is paint order and
// improvement is strict, so the result is deterministic.
func (g *pageGraphics) colorAt(x, y float64) extraction.RGB {
	if len(g.marks) == 0 {
		return extraction.Black
	}
	best := g.marks[0]
	bestDist := sqDist(x, y, best.x, best.y)
	for _, m := range g.marks[1:] {
		d := sqDist(x, y, m.x, m.y)
		if d < bestDist {
			best = m
			bestDist = d
		}
	}
	return best.color
}

func sqDist(x0, y0, x1, y1 float64) float64 {
	dx := x0 - x1
	dy := y0 - y1
	return dx*dx + dy*dy
}

// walkContentStream parses a decoded content stream and recovers filled
// rectangles and text-color marks. Rectangle geometry is delegated to
// tabula's graphics extractor; the text walk tracks the non-stroking
// color and the text line origin across BT/ET blocks.
func walkContentStream(data []byte, pageHeight float64) (*pageGraphics, error) {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, err
	}

	g := &pageGraphics{}

	ge := graphicsstate.NewGraphicsExtractor()
	if err := ge.Extract(ops); err != nil {
		return nil, err
	}
	for _, r := range ge.GetRectangles() {
		if !r.IsFilled {
			continue
		}
		g.fills = append(g.fills, extraction.FillRect{
			X: r.BBox.X,
			Y: pageHeight - (r.BBox.Y + r.BBox.Height),
			W: r.BBox.Width,
			H: r.BBox.Height,
			Color: extraction.RGB{
				R: clamp255(r.FillColor[0]),
				G: clamp255(r.FillColor[1]),
				B: clamp255(r.FillColor[2]),
			},
		})
	}

	g.marks = collectColorMarks(ops, pageHeight)

	return g, nil
}

// collectColorMarks walks the operation list tracking the non-stroking
// fill color and a simplified text position (translation components of
// Tm/Td only), and records a mark at every text-showing operator.
func collectColorMarks(ops []contentstream.Operation, pageHeight float64) []colorMark {
	fill := extraction.Black
	var tx, ty float64
	var marks []colorMark

	for _, op := range ops {
		switch op.Operator {
		case "rg":
			if len(op.Operands) == 3 {
				fill = rgbOperands(op.Operands[0], op.Operands[1], op.Operands[2])
			}
		case "g":
			if len(op.Operands) == 1 {
				v, _ := opFloat(op.Operands[0])
				fill = grayRGB(v)
			}
		case "k":
			if len(op.Operands) == 4 {
				c, _ := opFloat(op.Operands[0])
				m, _ := opFloat(op.Operands[1])
				y, _ := opFloat(op.Operands[2])
				kk, _ := opFloat(op.Operands[3])
				fill = extraction.RGB{
					R: clamp255((1 - c) * (1 - kk)),
					G: clamp255((1 - m) * (1 - kk)),
					B: clamp255((1 - y) * (1 - kk)),
				}
			}
		case "sc", "scn":
			// Device color in the current fill space. One operand is
			// gray, three are RGB; anything else is left alone.
			switch len(op.Operands) {
			case 1:
				v, _ := opFloat(op.Operands[0])
				fill = grayRGB(v)
			case 3:
				fill = rgbOperands(op.Operands[0], op.Operands[1], op.Operands[2])
			}

		case "BT":
			tx, ty = 0, 0
		case "Tm":
			if len(op.Operands) == 6 {
				tx, _ = opFloat(op.Operands[4])
				ty, _ = opFloat(op.Operands[5])
			}
		case "Td", "TD":
			if len(op.Operands) == 2 {
				dx, _ := opFloat(op.Operands[0])
				dy, _ := opFloat(op.Operands[1])
				tx += dx
				ty += dy
			}

		case "Tj", "TJ", "'", "\"":
			marks = append(marks, colorMark{x: tx, y: pageHeight - ty, color: fill})
		}
	}

	return marks
}

func rgbOperands(r, g, b core.Object) extraction.RGB {
	rf, _ := opFloat(r)
	gf, _ := opFloat(g)
	bf, _ := opFloat(b)
	return extraction.RGB{R: clamp255(rf), G: clamp255(gf), B: clamp255(bf)}
}

func grayRGB(v float64) extraction.RGB {
	c := clamp255(v)
	return extraction.RGB{R: c, G: c, B: c}
}

func opFloat(obj core.Object) (float64, bool) {
	switch v := obj.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	default:
		return 0, false
	}
}

func clamp255(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
