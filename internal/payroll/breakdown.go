// Package payroll computes statutory compensation breakdowns from a gross
// annual CTC figure.
package payroll

import (
	"fmt"
	"math"
)

// TaxSlab is one tier of the professional tax table. UpTo is the inclusive
// upper bound on rounded monthly gross; UpTo == 0 marks the open-ended top
// tier.
type TaxSlab struct {
	UpTo   int64
	Amount int64
}

// Policy holds the statutory constants used to derive a breakdown. The
// values are jurisdiction-specific; DefaultPolicy matches the regime the
// deployed system operates under.
type Policy struct {
	BasicRatio     float64 // share of gross
	HRARatio       float64 // share of gross
	AllowanceRatio float64 // share of gross
	PFRate         float64 // share of basic, employer and employee sides
	ESIRate        float64 // share of monthly gross
	ESIWageCeiling int64   // rounded monthly gross at or above which ESI stops
	TaxSlabs       []TaxSlab
}

// DefaultPolicy returns the statutory constants in force today.
func DefaultPolicy() Policy {
	return Policy{
		BasicRatio:     0.40,
		HRARatio:       0.20,
		AllowanceRatio: 0.30,
		PFRate:         0.12,
		ESIRate:        0.0075,
		ESIWageCeiling: 21000,
		TaxSlabs: []TaxSlab{
			{UpTo: 7500, Amount: 0},
			{UpTo: 10000, Amount: 175},
			{UpTo: 0, Amount: 200},
		},
	}
}

// Overrides carries caller-supplied annual component amounts. A nil field,
// or a non-positive or non-finite value, falls back to the policy ratio.
type Overrides struct {
	Basic      *float64
	HRA        *float64
	Allowance  *float64
	EmployerPF *float64
}

// Component is one line of the breakdown, in whole rupees.
type Component struct {
	Monthly int64 `json:"monthly"`
	Annual  int64 `json:"annual"`
}

// Breakdown is the itemized compensation structure derived from a gross
// annual figure. Annual figures are authoritative; monthly figures are
// rounded display values and must not be re-accumulated.
type Breakdown struct {
	Basic           Component `json:"basic"`
	HRA             Component `json:"hra"`
	Allowance       Component `json:"allowance"`
	EmployerPF      Component `json:"employer_pf"`
	Gross           Component `json:"gross"`
	EmployeePF      Component `json:"employee_pf"`
	ProfessionalTax Component `json:"professional_tax"`
	ESI             Component `json:"esi"`
	TotalDeductions Component `json:"total_deductions"`
	Net             Component `json:"net"`
	Valid           bool      `json:"valid"`
}

// InvalidInputError reports a gross figure that cannot be broken down.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid compensation input: %s", e.Message)
}

// roundRupees rounds half away from zero to whole rupees.
func roundRupees(v float64) int64 {
	return int64(math.Round(v))
}

// componentOf applies an override when usable, else ratio*gross, and
// returns the annual amount pre-rounding.
func componentOf(override *float64, gross, ratio float64) float64 {
	if override != nil && *override > 0 && !math.IsInf(*override, 0) && !math.IsNaN(*override) {
		return *override
	}
	return gross * ratio
}

// professionalTax looks up the monthly tax for a rounded monthly gross.
func (p Policy) professionalTax(monthlyGross int64) int64 {
	for _, slab := range p.TaxSlabs {
		if slab.UpTo == 0 || monthlyGross <= slab.UpTo {
			return slab.Amount
		}
	}
	return 0
}

// ComputeBreakdown derives the full statutory breakdown for a gross annual
// CTC. It is a pure function: identical inputs always produce identical
// output. Income/withholding tax is not computed here; it reduces net
// further downstream of this system.
func ComputeBreakdown(gross float64, ov Overrides, pol Policy) (Breakdown, error) {
	if math.IsNaN(gross) || math.IsInf(gross, 0) {
		return Breakdown{}, &InvalidInputError{Message: "gross CTC is not a finite number"}
	}
	if gross <= 0 {
		return Breakdown{}, &InvalidInputError{Message: "gross CTC must be greater than 0"}
	}

	basicAnnual := componentOf(ov.Basic, gross, pol.BasicRatio)
	hraAnnual := componentOf(ov.HRA, gross, pol.HRARatio)
	allowanceAnnual := componentOf(ov.Allowance, gross, pol.AllowanceRatio)
	employerPFAnnual := componentOf(ov.EmployerPF, basicAnnual, pol.PFRate)

	grossMonthly := roundRupees(gross / 12)

	b := Breakdown{
		Basic:      annualized(basicAnnual),
		HRA:        annualized(hraAnnual),
		Allowance:  annualized(allowanceAnnual),
		EmployerPF: annualized(employerPFAnnual),
		Gross:      Component{Monthly: grossMonthly, Annual: roundRupees(gross)},
		Valid:      true,
	}

	// Each deduction is rounded per period from exact arithmetic, never
	// derived from another rounded figure.
	b.EmployeePF = Component{
		Monthly: roundRupees(basicAnnual * pol.PFRate / 12),
		Annual:  roundRupees(basicAnnual * pol.PFRate),
	}

	taxMonthly := pol.professionalTax(grossMonthly)
	b.ProfessionalTax = Component{Monthly: taxMonthly, Annual: taxMonthly * 12}

	if grossMonthly < pol.ESIWageCeiling {
		esiMonthly := roundRupees(gross / 12 * pol.ESIRate)
		b.ESI = Component{Monthly: esiMonthly, Annual: esiMonthly * 12}
	}

	b.TotalDeductions = Component{
		Monthly: b.EmployeePF.Monthly + b.ProfessionalTax.Monthly + b.ESI.Monthly,
		Annual:  b.EmployeePF.Annual + b.ProfessionalTax.Annual + b.ESI.Annual,
	}

	// Annual net is exact integer arithmetic against the authoritative
	// annual figures; monthly net is the monthly-granularity view.
	b.Net = Component{
		Monthly: b.Gross.Monthly - b.TotalDeductions.Monthly,
		Annual:  b.Gross.Annual - b.TotalDeductions.Annual,
	}

	return b, nil
}

// annualized builds a component from an exact annual amount, rounding the
// monthly view independently.
func annualized(annual float64) Component {
	return Component{
		Monthly: roundRupees(annual / 12),
		Annual:  roundRupees(annual),
	}
}
