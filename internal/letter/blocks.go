// Package letter composes offer letters as a tree of typed content blocks.
// What the letter contains is decided here; how pixels are laid out is the
// rendering package's job.
package letter

// Document is a fully composed letter ready for layout.
type Document struct {
	Title  string
	Accent Color
	Blocks []Block
}

// Color is an RGB color.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Block is a single typed content element. The renderer walks blocks in
// order; it never reorders or merges them.
type Block interface {
	isBlock()
}

// Heading is a section or letter heading.
type Heading struct {
	Text   string
	Level  int    // 1 = letter subject, 2 = section, 3 = subsection
	Center bool
}

// Paragraph is flowing body text.
type Paragraph struct {
	Text string
	Bold bool
}

// KV is one label/value row.
type KV struct {
	Key   string
	Value string
}

// KeyValues is a titled list of label/value rows.
type KeyValues struct {
	Title string
	Rows  []KV
}

// Table is a titled two-or-more-column table with an optional emphasized
// total row.
type Table struct {
	Title    string
	Columns  []string
	Rows     [][]string
	TotalRow []string
}

// List is a titled enumerated or bulleted list.
type List struct {
	Title   string
	Items   []string
	Ordered bool
}

// Spacer inserts fixed vertical whitespace, in points.
type Spacer struct {
	Height float64
}

// SignatureParty is one side of the signature block.
type SignatureParty struct {
	Caption string
	Lines   []string
}

// Signature is the two-party signature block at the end of the letter.
type Signature struct {
	Left  SignatureParty
	Right SignatureParty
}

func (Heading) isBlock()   {}
func (Paragraph) isBlock() {}
func (KeyValues) isBlock() {}
func (Table) isBlock()     {}
func (List) isBlock()      {}
func (Spacer) isBlock()    {}
func (Signature) isBlock() {}
