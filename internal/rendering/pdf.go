package rendering

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/santoshgudeti/skillmatrix-offers/internal/letter"
)

// Page geometry in points. A4 content with generous margins, matching the
// look of the original letter layout.
const (
	pageMargin   = 56.0 // ~20mm
	bodyFontSize = 10.0
	bodyLineHt   = 14.0
	labelColWd   = 150.0
)

var (
	bodyColor  = letter.Color{R: 51, G: 51, B: 51}
	mutedColor = letter.Color{R: 102, G: 102, B: 102}
	headFill   = letter.Color{R: 243, G: 244, B: 246}
	totalFill  = letter.Color{R: 254, G: 243, B: 199}
)

// RenderPDF lays the document out on A4 pages and returns the PDF bytes.
// issued pins the PDF creation and modification timestamps so identical
// input always yields identical output.
func RenderPDF(doc letter.Document, issued time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreationDate(issued)
	pdf.SetModificationDate(issued)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	r := &renderer{pdf: pdf, accent: doc.Accent}
	for _, blk := range doc.Blocks {
		r.renderBlock(blk)
	}

	if pdf.Err() {
		return nil, &RenderError{Message: "pdf generation failed", Cause: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to emit pdf", Cause: err}
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf    *fpdf.Fpdf
	accent letter.Color
}

func (r *renderer) contentWidth() float64 {
	pw, _ := r.pdf.GetPageSize()
	return pw - 2*pageMargin
}

func (r *renderer) setColor(c letter.Color) {
	r.pdf.SetTextColor(c.R, c.G, c.B)
}

func (r *renderer) body() {
	r.pdf.SetFont("Helvetica", "", bodyFontSize)
	r.setColor(bodyColor)
}

func (r *renderer) renderBlock(blk letter.Block) {
	switch b := blk.(type) {
	case letter.Heading:
		r.heading(b)
	case letter.Paragraph:
		r.paragraph(b)
	case letter.KeyValues:
		r.keyValues(b)
	case letter.Table:
		r.table(b)
	case letter.List:
		r.list(b)
	case letter.Spacer:
		r.pdf.Ln(b.Height)
	case letter.Signature:
		r.signature(b)
	}
}

func (r *renderer) heading(h letter.Heading) {
	size := 12.0
	switch h.Level {
	case 1:
		size = 20
	case 2:
		size = 13
	}
	r.pdf.SetFont("Helvetica", "B", size)
	r.setColor(r.accent)

	align := "L"
	if h.Center {
		align = "C"
	}
	r.pdf.CellFormat(r.contentWidth(), size+6, h.Text, "", 1, align, false, 0, "")
	r.pdf.Ln(2)
	r.body()
}

func (r *renderer) paragraph(p letter.Paragraph) {
	style := ""
	if p.Bold {
		style = "B"
	}
	r.pdf.SetFont("Helvetica", style, bodyFontSize)
	r.setColor(bodyColor)
	r.pdf.MultiCell(r.contentWidth(), bodyLineHt, p.Text, "", "L", false)
	r.pdf.Ln(4)
}

func (r *renderer) sectionTitle(title string) {
	if title == "" {
		return
	}
	r.pdf.SetFont("Helvetica", "B", 11)
	r.setColor(r.accent)
	r.pdf.CellFormat(r.contentWidth(), bodyLineHt+2, title, "", 1, "L", false, 0, "")
	r.pdf.Ln(2)
	r.body()
}

func (r *renderer) keyValues(kv letter.KeyValues) {
	r.sectionTitle(kv.Title)
	for _, row := range kv.Rows {
		r.pdf.SetFont("Helvetica", "B", bodyFontSize)
		r.setColor(mutedColor)
		r.pdf.CellFormat(labelColWd, bodyLineHt, row.Key+":", "", 0, "L", false, 0, "")
		r.body()
		r.pdf.MultiCell(r.contentWidth()-labelColWd, bodyLineHt, row.Value, "", "L", false)
	}
	r.pdf.Ln(6)
}

func (r *renderer) table(tbl letter.Table) {
	r.sectionTitle(tbl.Title)
	if len(tbl.Columns) == 0 {
		return
	}

	widths := r.columnWidths(len(tbl.Columns))

	r.pdf.SetFont("Helvetica", "B", bodyFontSize)
	r.setColor(bodyColor)
	r.pdf.SetFillColor(headFill.R, headFill.G, headFill.B)
	for i, col := range tbl.Columns {
		r.pdf.CellFormat(widths[i], bodyLineHt+4, col, "1", 0, "L", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.body()
	for _, row := range tbl.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			align := "L"
			if i > 0 {
				align = "R"
			}
			r.pdf.CellFormat(widths[i], bodyLineHt+4, cell, "1", 0, align, false, 0, "")
		}
		r.pdf.Ln(-1)
	}

	if len(tbl.TotalRow) > 0 {
		r.pdf.SetFont("Helvetica", "B", bodyFontSize)
		r.pdf.SetFillColor(totalFill.R, totalFill.G, totalFill.B)
		for i, cell := range tbl.TotalRow {
			if i >= len(widths) {
				break
			}
			align := "L"
			if i > 0 {
				align = "R"
			}
			r.pdf.CellFormat(widths[i], bodyLineHt+4, cell, "1", 0, align, true, 0, "")
		}
		r.pdf.Ln(-1)
	}

	r.body()
	r.pdf.Ln(8)
}

// columnWidths gives the first column 40% of the content width and splits
// the remainder evenly.
func (r *renderer) columnWidths(n int) []float64 {
	total := r.contentWidth()
	widths := make([]float64, n)
	if n == 1 {
		widths[0] = total
		return widths
	}
	widths[0] = total * 0.4
	rest := (total - widths[0]) / float64(n-1)
	for i := 1; i < n; i++ {
		widths[i] = rest
	}
	return widths
}

func (r *renderer) list(l letter.List) {
	r.sectionTitle(l.Title)
	const indent = 24.0
	for i, item := range l.Items {
		marker := "-"
		if l.Ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		r.pdf.SetFont("Helvetica", "B", bodyFontSize)
		r.setColor(r.accent)
		r.pdf.CellFormat(indent, bodyLineHt, marker, "", 0, "R", false, 0, "")
		r.body()
		r.pdf.SetX(pageMargin + indent + 4)
		r.pdf.MultiCell(r.contentWidth()-indent-4, bodyLineHt, item, "", "L", false)
	}
	r.pdf.Ln(6)
}

func (r *renderer) signature(sig letter.Signature) {
	boxWd := r.contentWidth() * 0.45
	gap := r.contentWidth() - 2*boxWd

	// Make sure the whole block stays on one page.
	needed := 40.0 + float64(maxLines(sig))*bodyLineHt + 20
	_, ph := r.pdf.GetPageSize()
	if r.pdf.GetY()+needed > ph-pageMargin {
		r.pdf.AddPage()
	}

	top := r.pdf.GetY() + 10
	r.signatureParty(sig.Left, pageMargin, top, boxWd)
	r.signatureParty(sig.Right, pageMargin+boxWd+gap, top, boxWd)

	r.pdf.SetY(top + 40 + float64(maxLines(sig))*bodyLineHt + 10)
	r.body()
}

func (r *renderer) signatureParty(p letter.SignatureParty, x, y, wd float64) {
	r.pdf.SetXY(x, y)
	r.pdf.SetFont("Helvetica", "B", bodyFontSize)
	r.setColor(bodyColor)
	r.pdf.CellFormat(wd, bodyLineHt, p.Caption, "", 0, "L", false, 0, "")

	lineY := y + 40
	r.pdf.SetDrawColor(55, 65, 81)
	r.pdf.Line(x, lineY, x+wd, lineY)

	r.body()
	for i, line := range p.Lines {
		r.pdf.SetXY(x, lineY+4+float64(i)*bodyLineHt)
		r.pdf.CellFormat(wd, bodyLineHt, line, "", 0, "C", false, 0, "")
	}
}

func maxLines(sig letter.Signature) int {
	n := len(sig.Left.Lines)
	if len(sig.Right.Lines) > n {
		n = len(sig.Right.Lines)
	}
	return n
}
