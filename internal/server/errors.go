package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/santoshgudeti/skillmatrix-offers/internal/letterhead"
	"github.com/santoshgudeti/skillmatrix-offers/internal/payroll"
	"github.com/santoshgudeti/skillmatrix-offers/internal/pipeline"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrOfferNotFound indicates the offer does not exist for the caller's company
type ErrOfferNotFound struct {
	OfferID uuid.UUID
}

func (e *ErrOfferNotFound) Error() string {
	return fmt.Sprintf("offer not found: %s", e.OfferID)
}

// ErrInvalidTransition indicates a disallowed status change
type ErrInvalidTransition struct {
	From, To string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot move offer from %s to %s", e.From, e.To)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var lhErr *letterhead.ValidationError
	if errors.As(err, &lhErr) {
		return http.StatusBadRequest
	}
	var inputErr *payroll.InvalidInputError
	if errors.As(err, &inputErr) {
		return http.StatusUnprocessableEntity
	}
	var genErr *pipeline.GenerationError
	if errors.As(err, &genErr) && genErr.Stage == pipeline.StageValidating {
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrOfferNotFound:
		return http.StatusNotFound
	case *ErrInvalidTransition:
		return http.StatusConflict
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
