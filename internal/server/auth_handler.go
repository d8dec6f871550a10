package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/santoshgudeti/skillmatrix-offers/internal/server/middleware"
)

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	CompanyID string `json:"company_id"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and account details.
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CompanyID string `json:"company_id"`
}

// AuthHandler serves registration and login.
type AuthHandler struct {
	users *UserService
	jwt   *JWTService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users *UserService, jwt *JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password, req.FullName, req.CompanyID)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.CompanyID)
	if err != nil {
		log.Printf("auth: failed to issue token for %s: %v", user.ID, err)
		errorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	jsonResponse(w, http.StatusCreated, AuthResponse{
		Token:     token,
		UserID:    user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		CompanyID: user.CompanyID,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.CompanyID)
	if err != nil {
		log.Printf("auth: failed to issue token for %s: %v", user.ID, err)
		errorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	jsonResponse(w, http.StatusOK, AuthResponse{
		Token:     token,
		UserID:    user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		CompanyID: user.CompanyID,
	})
}

// handleMe returns the authenticated account.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		errorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}
