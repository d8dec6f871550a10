// Package types provides type definitions for structured data shared across
// the offer service.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/santoshgudeti/skillmatrix-offers/internal/payroll"
)

// offerValidityWindow is the default validity period granted when the
// caller does not set an explicit deadline. This is a business rule, not a
// convenience default: downstream consumers of validity must go through
// ValidUntil.
const offerValidityWindow = 7 * 24 * time.Hour

// OfferFacts is the complete input record for one offer letter. Required
// fields are enforced by Validate; everything tagged omitempty is optional.
type OfferFacts struct {
	CandidateID      string `json:"candidate_id" validate:"required"`
	CandidateName    string `json:"candidate_name" validate:"required,min=1"`
	CandidateEmail   string `json:"candidate_email" validate:"required,email"`
	CandidateAddress string `json:"candidate_address,omitempty"`

	Position       string `json:"position" validate:"required,min=1"`
	Department     string `json:"department,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	ReportingTo    string `json:"reporting_to,omitempty"`
	WorkLocation   string `json:"work_location,omitempty"`

	// GrossAnnual is the annual cost-to-company figure in rupees. Absence
	// or a non-positive value is a hard validation failure, never defaulted.
	GrossAnnual float64 `json:"gross_annual" validate:"required,gt=0"`

	// Optional annual component overrides; unset fields use policy ratios.
	Basic      *float64 `json:"basic,omitempty"`
	HRA        *float64 `json:"hra,omitempty"`
	Allowance  *float64 `json:"allowance,omitempty"`
	EmployerPF *float64 `json:"employer_pf,omitempty"`

	StartDate  time.Time  `json:"start_date" validate:"required"`
	OfferDate  time.Time  `json:"offer_date" validate:"required"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	ProbationPeriod string `json:"probation_period,omitempty"`
	NoticePeriod    string `json:"notice_period,omitempty"`
	Benefits        string `json:"benefits,omitempty"`
	AdditionalTerms string `json:"additional_terms,omitempty"`

	CompanyName    string `json:"company_name" validate:"required,min=1"`
	CompanyAddress string `json:"company_address,omitempty"`
	HRName         string `json:"hr_name,omitempty"`
	HRTitle        string `json:"hr_title,omitempty"`
	HREmail        string `json:"hr_email,omitempty" validate:"omitempty,email"`
	HRPhone        string `json:"hr_phone,omitempty"`
}

// Validate checks the facts using the validator. All required-field and
// range rules live here; nothing downstream re-defaults missing input.
func (f *OfferFacts) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// OfferValidUntil resolves the offer validity deadline: the explicit
// override when supplied, otherwise issue date plus seven days.
func (f *OfferFacts) OfferValidUntil() time.Time {
	if f.ValidUntil != nil {
		return *f.ValidUntil
	}
	return f.OfferDate.Add(offerValidityWindow)
}

// PayrollOverrides maps the optional component fields onto the payroll
// engine's override record.
func (f *OfferFacts) PayrollOverrides() payroll.Overrides {
	return payroll.Overrides{
		Basic:      f.Basic,
		HRA:        f.HRA,
		Allowance:  f.Allowance,
		EmployerPF: f.EmployerPF,
	}
}
