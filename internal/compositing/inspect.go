package compositing

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdi"
)

// PageSize is a page's media box dimensions in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Inspect parses a PDF and returns its per-page sizes, 1-indexed. It
// returns a CompositeError for bytes that are not a usable PDF. gofpdi
// reports parse failures by panicking, so the recover here is the error
// boundary for untrusted letterhead input.
func Inspect(pdf []byte) (sizes map[int]PageSize, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CompositeError{Message: fmt.Sprintf("failed to parse pdf: %v", r)}
		}
	}()

	rs := io.ReadSeeker(bytes.NewReader(pdf))
	imp := gofpdi.NewImporter()
	imp.SetSourceStream(&rs)

	pages := imp.GetNumPages()
	if pages == 0 {
		return nil, &CompositeError{Message: "pdf has no pages"}
	}

	raw := imp.GetPageSizes()
	sizes = make(map[int]PageSize, pages)
	for i := 1; i <= pages; i++ {
		box, ok := raw[i]["/MediaBox"]
		if !ok {
			return nil, &CompositeError{Message: fmt.Sprintf("page %d has no media box", i)}
		}
		sizes[i] = PageSize{Width: box["w"], Height: box["h"]}
	}
	return sizes, nil
}

// PageCount returns the number of pages in a PDF, or a CompositeError when
// the bytes cannot be parsed.
func PageCount(pdf []byte) (int, error) {
	sizes, err := Inspect(pdf)
	if err != nil {
		return 0, err
	}
	return len(sizes), nil
}
