// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/santoshgudeti/skillmatrix-offers/internal/letter"
	"github.com/santoshgudeti/skillmatrix-offers/internal/payroll"
	"github.com/santoshgudeti/skillmatrix-offers/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
	fm  letter.Formatters
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, fm: letter.DefaultFormatters()}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOfferFacts outputs a human-readable summary of the offer input.
func (p *Printer) PrintOfferFacts(facts *types.OfferFacts) {
	if facts == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate:  %s <%s>\n", facts.CandidateName, facts.CandidateEmail))
	sb.WriteString(fmt.Sprintf("Position:   %s\n", facts.Position))
	if facts.Department != "" {
		sb.WriteString(fmt.Sprintf("Department: %s\n", facts.Department))
	}
	sb.WriteString(fmt.Sprintf("Company:    %s\n", facts.CompanyName))
	sb.WriteString(fmt.Sprintf("Gross CTC:  %s per annum\n", p.fm.Currency(int64(facts.GrossAnnual))))
	sb.WriteString(fmt.Sprintf("Start date: %s\n", p.fm.Date(facts.StartDate)))
	sb.WriteString(fmt.Sprintf("Valid till: %s", p.fm.Date(facts.OfferValidUntil())))

	p.printBox("OFFER FACTS", sb.String())
}

// PrintBreakdown outputs the computed compensation structure.
func (p *Printer) PrintBreakdown(b payroll.Breakdown) {
	if !b.Valid {
		return
	}

	row := func(label string, c payroll.Component) string {
		return fmt.Sprintf("%-18s %14s %14s\n", label,
			p.fm.Currency(c.Monthly), p.fm.Currency(c.Annual))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-18s %14s %14s\n", "Component", "Monthly", "Annual"))
	sb.WriteString(row("Basic", b.Basic))
	sb.WriteString(row("HRA", b.HRA))
	sb.WriteString(row("Special Allowance", b.Allowance))
	sb.WriteString(row("Employer PF", b.EmployerPF))
	sb.WriteString(row("Gross (CTC)", b.Gross))
	sb.WriteString("\n")
	sb.WriteString(row("Employee PF", b.EmployeePF))
	sb.WriteString(row("Professional Tax", b.ProfessionalTax))
	if b.ESI.Annual > 0 {
		sb.WriteString(row("ESI", b.ESI))
	}
	sb.WriteString(row("Total Deductions", b.TotalDeductions))
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSuffix(row("Net Take-Home", b.Net), "\n"))

	p.printBox("COMPENSATION BREAKDOWN", sb.String())
}

// PrintResult outputs the generation outcome.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResult(path string, pages int, size int64, composited bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Output:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Pages:      %d\n", pages))
	sb.WriteString(fmt.Sprintf("Size:       %d bytes\n", size))
	if composited {
		sb.WriteString("Letterhead: applied")
	} else {
		sb.WriteString("Letterhead: none (content-only)")
	}
	p.printBox("GENERATED OFFER", sb.String())
}
