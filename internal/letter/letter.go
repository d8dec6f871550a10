package letter

import (
	"fmt"
	"strings"

	"github.com/santoshgudeti/skillmatrix-offers/internal/payroll"
	"github.com/santoshgudeti/skillmatrix-offers/internal/types"
)

// Display fallbacks for optional presentation fields. These are wording
// choices, not data defaults: validation has already run by the time a
// letter is built.
const (
	fallbackDepartment     = "To be assigned"
	fallbackEmploymentType = "Full-time"
	fallbackManager        = "To be assigned"
	fallbackLocation       = "Office"
	fallbackProbation      = "3 months"
	fallbackNotice         = "30 days"
	fallbackHRName         = "HR Manager"
	fallbackHRTitle        = "Human Resources"
)

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

// Build composes the complete offer letter block tree from validated facts
// and a computed breakdown. The output is deterministic for identical
// inputs: the only date material is what the facts carry.
func Build(facts *types.OfferFacts, b payroll.Breakdown, tmpl Template, fm Formatters) Document {
	doc := Document{
		Title:  fmt.Sprintf("Offer Letter - %s", facts.CandidateName),
		Accent: tmpl.accent(),
	}

	doc.Blocks = append(doc.Blocks,
		Heading{Text: facts.CompanyName, Level: 1},
		Paragraph{Text: "Human Resources Department"},
	)
	if facts.CompanyAddress != "" {
		doc.Blocks = append(doc.Blocks, Paragraph{Text: facts.CompanyAddress})
	}
	doc.Blocks = append(doc.Blocks,
		Paragraph{Text: fmt.Sprintf("Date: %s", fm.Date(facts.OfferDate))},
		Spacer{Height: 8},
	)

	recipient := []KV{
		{Key: "Name", Value: facts.CandidateName},
		{Key: "Email", Value: facts.CandidateEmail},
	}
	if facts.CandidateAddress != "" {
		recipient = append(recipient, KV{Key: "Address", Value: facts.CandidateAddress})
	}
	doc.Blocks = append(doc.Blocks,
		KeyValues{Title: "To", Rows: recipient},
		Spacer{Height: 6},
		Heading{Text: "OFFER OF EMPLOYMENT", Level: 2, Center: true},
		Spacer{Height: 4},
		Paragraph{Text: fmt.Sprintf("Dear %s,", facts.CandidateName)},
		Paragraph{Text: fmt.Sprintf(
			"We are pleased to extend this formal offer of employment to you for the position of %s at %s. After careful consideration of your qualifications, experience, and performance during our interview process, we believe you will be a valuable addition to our team.",
			facts.Position, facts.CompanyName)},
	)

	doc.Blocks = append(doc.Blocks, KeyValues{
		Title: "Position Details",
		Rows: []KV{
			{Key: "Position Title", Value: facts.Position},
			{Key: "Department", Value: orDefault(facts.Department, fallbackDepartment)},
			{Key: "Start Date", Value: fm.Date(facts.StartDate)},
			{Key: "Employment Type", Value: orDefault(facts.EmploymentType, fallbackEmploymentType)},
			{Key: "Reporting Manager", Value: orDefault(facts.ReportingTo, fallbackManager)},
			{Key: "Work Location", Value: orDefault(facts.WorkLocation, fallbackLocation)},
		},
	})

	doc.Blocks = append(doc.Blocks, compensationAnnex(b, fm)...)

	doc.Blocks = append(doc.Blocks, Paragraph{Text: fmt.Sprintf(
		"Your annual gross compensation will be %s, payable in monthly installments as per the company payroll schedule. This package includes all statutory benefits as per applicable labor laws. Income tax will be withheld at source as applicable and will further reduce the net amounts shown above.",
		fm.Currency(b.Gross.Annual))})

	if facts.Benefits != "" {
		doc.Blocks = append(doc.Blocks,
			Heading{Text: "Benefits & Perquisites", Level: 3},
			Paragraph{Text: facts.Benefits},
		)
	}

	doc.Blocks = append(doc.Blocks, List{
		Title:   "Terms and Conditions",
		Ordered: true,
		Items:   terms(facts, tmpl, fm),
	})

	for _, line := range tmpl.ClosingLines {
		doc.Blocks = append(doc.Blocks, Paragraph{Text: line})
	}
	doc.Blocks = append(doc.Blocks, Paragraph{Text: fmt.Sprintf("We look forward to welcoming you to %s!", facts.CompanyName)})

	hrLines := []string{
		orDefault(facts.HRName, fallbackHRName),
		orDefault(facts.HRTitle, fallbackHRTitle),
		facts.CompanyName,
	}
	if facts.HREmail != "" {
		hrLines = append(hrLines, facts.HREmail)
	}
	if facts.HRPhone != "" {
		hrLines = append(hrLines, facts.HRPhone)
	}
	doc.Blocks = append(doc.Blocks, Signature{
		Left:  SignatureParty{Caption: "Sincerely,", Lines: hrLines},
		Right: SignatureParty{Caption: "Accepted by:", Lines: []string{facts.CandidateName, "Date: _______________"}},
	})

	if len(tmpl.JoiningChecklist) > 0 {
		doc.Blocks = append(doc.Blocks, List{
			Title:   "Joining Formalities",
			Ordered: true,
			Items:   tmpl.JoiningChecklist,
		})
	}

	if tmpl.FooterNote != "" {
		doc.Blocks = append(doc.Blocks, Spacer{Height: 6}, Paragraph{Text: tmpl.FooterNote})
	}

	return doc
}

// compensationAnnex builds the three-table annex: earnings, statutory
// deductions and net take-home.
func compensationAnnex(b payroll.Breakdown, fm Formatters) []Block {
	cols := []string{"Component", "Monthly", "Annual"}

	earnings := Table{
		Title:   "Compensation Structure",
		Columns: cols,
		Rows: [][]string{
			{"Basic", fm.Currency(b.Basic.Monthly), fm.Currency(b.Basic.Annual)},
			{"House Rent Allowance", fm.Currency(b.HRA.Monthly), fm.Currency(b.HRA.Annual)},
			{"Special Allowance", fm.Currency(b.Allowance.Monthly), fm.Currency(b.Allowance.Annual)},
			{"Employer PF Contribution", fm.Currency(b.EmployerPF.Monthly), fm.Currency(b.EmployerPF.Annual)},
		},
		TotalRow: []string{"Gross (CTC)", fm.Currency(b.Gross.Monthly), fm.Currency(b.Gross.Annual)},
	}

	deductions := Table{
		Title:   "Statutory Deductions",
		Columns: cols,
		Rows: [][]string{
			{"Employee PF Contribution", fm.Currency(b.EmployeePF.Monthly), fm.Currency(b.EmployeePF.Annual)},
			{"Professional Tax", fm.Currency(b.ProfessionalTax.Monthly), fm.Currency(b.ProfessionalTax.Annual)},
			{"ESI Contribution", fm.Currency(b.ESI.Monthly), fm.Currency(b.ESI.Annual)},
		},
		TotalRow: []string{"Total Deductions", fm.Currency(b.TotalDeductions.Monthly), fm.Currency(b.TotalDeductions.Annual)},
	}

	net := Table{
		Title:    "Net Take-Home",
		Columns:  cols,
		Rows:     [][]string{},
		TotalRow: []string{"Net Salary", fm.Currency(b.Net.Monthly), fm.Currency(b.Net.Annual)},
	}

	return []Block{earnings, deductions, net}
}

// terms assembles the numbered terms and conditions. Statutory terms come
// first, then caller-supplied additional terms, then template extras.
func terms(facts *types.OfferFacts, tmpl Template, fm Formatters) []string {
	items := []string{
		"This offer is contingent upon successful completion of background verification and reference checks.",
		fmt.Sprintf("You will be subject to a probationary period of %s from your start date.", orDefault(facts.ProbationPeriod, fallbackProbation)),
		"Your employment will be governed by the company's policies, procedures, and employee handbook.",
		"You agree to maintain confidentiality of all proprietary and confidential information.",
		fmt.Sprintf("The notice period for resignation is %s or payment in lieu thereof.", orDefault(facts.NoticePeriod, fallbackNotice)),
		fmt.Sprintf("This offer is valid until %s.", fm.Date(facts.OfferValidUntil())),
	}

	for _, line := range strings.Split(facts.AdditionalTerms, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	items = append(items, tmpl.ExtraTerms...)
	return items
}
