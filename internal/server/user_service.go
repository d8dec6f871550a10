package server

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/santoshgudeti/skillmatrix-offers/internal/config"
	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
)

// UserService handles HR account registration and authentication.
type UserService struct {
	db       *db.DB
	password *config.PasswordConfig
}

// NewUserService creates a user service.
func NewUserService(database *db.DB, password *config.PasswordConfig) *UserService {
	return &UserService{db: database, password: password}
}

// Register creates a new HR account.
func (s *UserService) Register(ctx context.Context, email, password, fullName, companyID string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ErrValidation{Field: "email", Message: "invalid email address"}
	}
	if len(password) < 8 {
		return nil, &ErrValidation{Field: "password", Message: "must be at least 8 characters"}
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, &ErrValidation{Field: "full_name", Message: "is required"}
	}
	if strings.TrimSpace(companyID) == "" {
		return nil, &ErrValidation{Field: "company_id", Message: "is required"}
	}

	existing, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	hash, err := s.password.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.CreateUser(ctx, &db.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		CompanyID:    strings.TrimSpace(companyID),
	})
}

// Authenticate verifies credentials and returns the account. Lookup
// misses and password mismatches return the same error so callers cannot
// probe registered addresses.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.password.VerifyPassword(password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return user, nil
}
