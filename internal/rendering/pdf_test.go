package rendering

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santoshgudeti/skillmatrix-offers/internal/compositing"
	"github.com/santoshgudeti/skillmatrix-offers/internal/letter"
)

var issued = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func smallDoc() letter.Document {
	return letter.Document{
		Title:  "Offer Letter - A. Sharma",
		Accent: letter.Color{R: 37, G: 99, B: 235},
		Blocks: []letter.Block{
			letter.Heading{Text: "Cognibotz", Level: 1},
			letter.Paragraph{Text: "Date: September 1, 2026"},
			letter.Heading{Text: "OFFER OF EMPLOYMENT", Level: 2, Center: true},
			letter.Paragraph{Text: "Dear A. Sharma,"},
			letter.Table{
				Title:    "Compensation Structure",
				Columns:  []string{"Component", "Monthly", "Annual"},
				Rows:     [][]string{{"Basic", "Rs. 20,000", "Rs. 2,40,000"}},
				TotalRow: []string{"Gross (CTC)", "Rs. 50,000", "Rs. 6,00,000"},
			},
			letter.List{Title: "Terms and Conditions", Ordered: true, Items: []string{"First term.", "Second term."}},
			letter.Signature{
				Left:  letter.SignatureParty{Caption: "Sincerely,", Lines: []string{"R. Iyer", "Human Resources"}},
				Right: letter.SignatureParty{Caption: "Accepted by:", Lines: []string{"A. Sharma", "Date: ____"}},
			},
		},
	}
}

func TestRenderPDF_ProducesValidPDF(t *testing.T) {
	out, err := RenderPDF(smallDoc(), issued)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	pages, err := compositing.PageCount(out)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pages, 1)
}

func TestRenderPDF_Deterministic(t *testing.T) {
	first, err := RenderPDF(smallDoc(), issued)
	require.NoError(t, err)
	second, err := RenderPDF(smallDoc(), issued)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderPDF_LongContentPaginates(t *testing.T) {
	doc := smallDoc()
	for i := 0; i < 80; i++ {
		doc.Blocks = append(doc.Blocks, letter.Paragraph{
			Text: fmt.Sprintf("Additional clause %d: the parties agree that this paragraph exists to force pagination across multiple pages of the rendered document.", i+1),
		})
	}

	out, err := RenderPDF(doc, issued)
	require.NoError(t, err)

	pages, err := compositing.PageCount(out)
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}

func TestRenderPDF_EmptyDocumentStillHasOnePage(t *testing.T) {
	out, err := RenderPDF(letter.Document{Title: "empty"}, issued)
	require.NoError(t, err)

	pages, err := compositing.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}
