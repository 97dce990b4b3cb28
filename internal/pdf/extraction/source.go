package extraction

// PageContent is the narrow capability the extractor needs from one page of
// a document: enumerate text runs in paint order and sample the rendered
// page at a point. Production pages are backed by a real PDF engine; tests
// use synthetic fixtures.
type PageContent interface {
	// Size returns the page dimensions in points.
	Size() (width, height float64)

	// Runs returns the page's text runs in paint order.
	Runs() []TextRun

	// SampleColor returns the rendered page color at (x, y) in page
	// coordinates (top-left origin). Points outside the page clamp to the
	// nearest valid pixel.
	SampleColor(x, y float64) RGB
}

// Document enumerates the pages of a single PDF. Implementations own any
// underlying file handles and release them on Close.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page returns the content of the 1-based page n. An error is scoped
	// to that page only; the caller treats it as a page with no spans.
	Page(n int) (PageContent, error)

	// Close releases all resources held by the document.
	Close() error
}
