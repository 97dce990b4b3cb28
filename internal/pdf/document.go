// Package pdf adapts real PDF files to the extraction capability
// interfaces. Text geometry comes from ledongthuc/pdf, while pdfcpu
// provides validated document access and decoded page content streams,
// from which filled regions and text colors are recovered.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpulib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// ErrDocumentParse marks a PDF that cannot be opened at all. Documents
// failing with this error are skipped; the batch continues.
var ErrDocumentParse = errors.New("cannot open document")

// Default page geometry when the document does not declare its media box.
const (
	defaultPageWidth  = 612.0 // US Letter, points
	defaultPageHeight = 792.0
)

// File is an open PDF ready for span extraction. It owns one file handle
// for the text reader; the pdfcpu context is fully materialized at open
// time. Close releases everything.
type File struct {
	path   string
	file   *os.File
	reader *ledongthuc.Reader

	// ctx is nil when pdfcpu could not read the document; extraction then
	// degrades to white backgrounds and black foregrounds.
	ctx  *model.Context
	dims []pageDim
}

type pageDim struct {
	width, height float64
}

// Open opens a PDF for processing. A document whose cross reference table
// or catalog cannot be read fails with ErrDocumentParse; a document that
// merely lacks usable graphics still opens.
func Open(path string) (*File, error) {
	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentParse, path, err)
	}

	doc := &File{path: path, file: f, reader: reader}
	doc.readGraphicsContext()

	return doc, nil
}

// readGraphicsContext builds the pdfcpu context used for content-stream
// graphics. Failure here is not fatal; color signal is best-effort.
func (f *File) readGraphicsContext() {
	g, err := os.Open(f.path)
	if err != nil {
		return
	}
	defer g.Close()

	ctx, err := api.ReadValidateAndOptimize(g, model.NewDefaultConfiguration())
	if err != nil {
		return
	}
	f.ctx = ctx

	dims, err := ctx.PageDims()
	if err != nil {
		return
	}
	for _, d := range dims {
		f.dims = append(f.dims, pageDim{width: d.Width, height: d.Height})
	}
}

// PageCount returns the number of pages in the document.
func (f *File) PageCount() int {
	return f.reader.NumPage()
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}

// Page returns the content of page n (1-based). Malformed pages surface a
// page-scoped error rather than failing the document; ledongthuc panics on
// some broken content models, which is absorbed here.
func (f *File) Page(n int) (pc extraction.PageContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			pc = nil
			err = fmt.Errorf("content model: %v", r)
		}
	}()

	if n < 1 || n > f.reader.NumPage() {
		return nil, fmt.Errorf("invalid page number %d (document has %d pages)", n, f.reader.NumPage())
	}

	width, height := f.pageSize(n)

	graphics := f.pageGraphics(n, height)

	page := f.reader.Page(n)
	content := page.Content()

	runs := make([]extraction.TextRun, 0, len(content.Text))
	for _, t := range content.Text {
		h := t.FontSize
		if h <= 0 {
			h = 0 // extractor backfills from the page's last known size
		}
		run := extraction.TextRun{
			Text:     t.S,
			X:        t.X,
			Y:        height - t.Y - h, // ledongthuc reports baseline in bottom-origin coords
			W:        t.W,
			H:        h,
			FontName: t.Font,
			FontSize: t.FontSize,
			Color:    graphics.colorAt(t.X, height-t.Y),
		}
		runs = append(runs, run)
	}

	return &filePage{
		width:  width,
		height: height,
		runs:   runs,
		raster: extraction.NewPageRaster(width, height, graphics.fills),
	}, nil
}

// pageSize returns the media box dimensions for page n, falling back to
// US Letter when the document does not declare them.
func (f *File) pageSize(n int) (float64, float64) {
	if n-1 < len(f.dims) {
		d := f.dims[n-1]
		if d.width > 0 && d.height > 0 {
			return d.width, d.height
		}
	}
	return defaultPageWidth, defaultPageHeight
}

// pageGraphics decodes page n's content stream and recovers its filled
// rectangles and text-color marks. Any failure yields empty graphics.
func (f *File) pageGraphics(n int, pageHeight float64) *pageGraphics {
	if f.ctx == nil {
		return &pageGraphics{}
	}

	r, err := pdfcpulib.ExtractPageContent(f.ctx, n)
	if err != nil || r == nil {
		return &pageGraphics{}
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return &pageGraphics{}
	}

	g, err := walkContentStream(data, pageHeight)
	if err != nil {
		return &pageGraphics{}
	}
	return g
}

// filePage implements extraction.PageContent for one real page.
type filePage struct {
	width, height float64
	runs          []extraction.TextRun
	raster        *extraction.PageRaster
}

func (p *filePage) Size() (float64, float64) { return p.width, p.height }

func (p *filePage) Runs() []extraction.TextRun { return p.runs }

func (p *filePage) SampleColor(x, y float64) extraction.RGB {
	return p.raster.SampleColor(x, y)
}

// IsPDF reports whether a file name looks like a PDF.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
