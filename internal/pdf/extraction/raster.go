package extraction

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// FillRect is a filled rectangle recovered from a page's content stream,
// in page coordinates (top-left origin).
type FillRect struct {
	X, Y, W, H float64
	Color      RGB
}

// PageRaster is a software rendering of a page's filled regions at one
// pixel per point. The page starts white and fill rectangles are painted
// in paint order, so later fills win, matching PDF painting semantics for
// the flat-color backgrounds this pipeline cares about.
type PageRaster struct {
	img  *image.RGBA
	w, h int
}

// NewPageRaster renders the given fills onto a white page of the given
// size in points. Degenerate page sizes fall back to a single pixel so
// sampling always has a valid target.
func NewPageRaster(width, height float64, fills []FillRect) *PageRaster {
	w := int(math.Ceil(width))
	h := int(math.Ceil(height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, f := range fills {
		x0 := int(math.Floor(f.X))
		y0 := int(math.Floor(f.Y))
		x1 := int(math.Ceil(f.X + f.W))
		y1 := int(math.Ceil(f.Y + f.H))
		rect := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
		if rect.Empty() {
			continue
		}
		c := color.RGBA{R: f.Color.R, G: f.Color.G, B: f.Color.B, A: 255}
		draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
	}

	return &PageRaster{img: img, w: w, h: h}
}

// SampleColor returns the rendered color at (x, y). Coordinates outside
// the page clamp to the nearest valid pixel.
func (r *PageRaster) SampleColor(x, y float64) RGB {
	px := int(x)
	py := int(y)
	if px < 0 {
		px = 0
	}
	if px >= r.w {
		px = r.w - 1
	}
	if py < 0 {
		py = 0
	}
	if py >= r.h {
		py = r.h - 1
	}
	c := r.img.RGBAAt(px, py)
	return RGB{R: c.R, G: c.G, B: c.B}
}
