package compositing

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	pdfimport "github.com/go-pdf/fpdf/contrib/gofpdi"
)

// Bands are the letterhead exclusion zones in points: a header strip at
// the top and a footer strip at the bottom of every letterhead page that
// content must never cover.
type Bands struct {
	Header float64
	Footer float64
}

// DefaultBands matches the standard letterhead artwork: a 180px header and
// 120px footer at 0.75 points per pixel.
func DefaultBands() Bands {
	return Bands{Header: 135, Footer: 90}
}

// Placement is the computed position of a content page on a letterhead
// page. X and Y are the top-left corner in points measured from the
// page's top-left; Width and Height are the scaled content dimensions.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Scale  float64
}

// Place computes where a content page lands inside a letterhead page's
// usable rectangle. The content is scaled uniformly, never upscaled,
// centered horizontally across the full page width and vertically within
// the area between the bands.
func Place(content, page PageSize, bands Bands) Placement {
	usable := page.Height - bands.Header - bands.Footer

	scale := page.Width / content.Width
	if s := usable / content.Height; s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}

	w := content.Width * scale
	h := content.Height * scale
	return Placement{
		X:      (page.Width - w) / 2,
		Y:      bands.Header + (usable-h)/2,
		Width:  w,
		Height: h,
		Scale:  scale,
	}
}

// Composite draws each content page over a letterhead background page,
// cycling through letterhead pages when the content is longer. Output
// pages take the letterhead page's dimensions. Neither input is mutated.
// An unusable letterhead yields a CompositeError.
func Composite(content, letterhead []byte, bands Bands) (merged []byte, err error) {
	lhSizes, err := Inspect(letterhead)
	if err != nil {
		return nil, err
	}
	contentSizes, err := Inspect(content)
	if err != nil {
		return nil, &CompositeError{Message: "content pdf is unreadable", Cause: err}
	}

	// gofpdi panics on malformed page streams even when the document
	// structure parsed; keep the same error boundary as Inspect.
	defer func() {
		if r := recover(); r != nil {
			merged = nil
			err = &CompositeError{Message: fmt.Sprintf("failed to merge pdfs: %v", r)}
		}
	}()

	out := fpdf.New("P", "pt", "A4", "")
	imp := pdfimport.NewImporter()

	lhRS := io.ReadSeeker(bytes.NewReader(letterhead))
	contentRS := io.ReadSeeker(bytes.NewReader(content))

	lhTemplates := make(map[int]int, len(lhSizes))

	for i := 1; i <= len(contentSizes); i++ {
		lhPage := ((i - 1) % len(lhSizes)) + 1
		page := lhSizes[lhPage]

		orientation := "P"
		if page.Width > page.Height {
			orientation = "L"
		}
		out.AddPageFormat(orientation, fpdf.SizeType{Wd: page.Width, Ht: page.Height})

		// Letterhead first, full page, so content paints over it.
		tpl, ok := lhTemplates[lhPage]
		if !ok {
			tpl = imp.ImportPageFromStream(out, &lhRS, lhPage, "/MediaBox")
			lhTemplates[lhPage] = tpl
		}
		imp.UseImportedTemplate(out, tpl, 0, 0, page.Width, page.Height)

		contentTpl := imp.ImportPageFromStream(out, &contentRS, i, "/MediaBox")
		pl := Place(contentSizes[i], page, bands)
		imp.UseImportedTemplate(out, contentTpl, pl.X, pl.Y, pl.Width, pl.Height)
	}

	if out.Err() {
		return nil, &CompositeError{Message: "failed to assemble merged pdf", Cause: out.Error()}
	}

	var buf bytes.Buffer
	if err := out.Output(&buf); err != nil {
		return nil, &CompositeError{Message: "failed to emit merged pdf", Cause: err}
	}
	return buf.Bytes(), nil
}
