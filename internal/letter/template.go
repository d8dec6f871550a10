package letter

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santoshgudeti/skillmatrix-offers/internal/schemas"
)

//go:embed default_template.json
var defaultTemplateJSON []byte

// Template customizes the non-statutory parts of a letter: accent colour,
// closing copy, joining checklist and any company-wide extra terms. The
// compensation annex and statutory terms are never template-controlled.
type Template struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	AccentColor      *Color   `json:"accent_color,omitempty"`
	ExtraTerms       []string `json:"extra_terms,omitempty"`
	JoiningChecklist []string `json:"joining_checklist,omitempty"`
	ClosingLines     []string `json:"closing_lines,omitempty"`
	FooterNote       string   `json:"footer_note,omitempty"`
}

// DefaultTemplate returns the embedded professional template.
func DefaultTemplate() Template {
	tmpl, err := ParseTemplate(defaultTemplateJSON)
	if err != nil {
		// The embedded asset is validated by tests; reaching this is a
		// build defect.
		panic(fmt.Sprintf("embedded default template invalid: %v", err))
	}
	return tmpl
}

// ParseTemplate validates template JSON against the schema and decodes it.
func ParseTemplate(data []byte) (Template, error) {
	if err := schemas.ValidateLetterTemplate(data); err != nil {
		return Template{}, err
	}
	var tmpl Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return Template{}, fmt.Errorf("failed to decode letter template: %w", err)
	}
	return tmpl, nil
}

// LoadTemplate reads and validates a template file from disk.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read letter template %s: %w", path, err)
	}
	return ParseTemplate(data)
}

// accent resolves the template accent colour with the default fallback.
func (t Template) accent() Color {
	if t.AccentColor != nil {
		return *t.AccentColor
	}
	return Color{R: 37, G: 99, B: 235}
}
