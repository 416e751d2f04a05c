package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/patentmarket/admin-gateway/internal/core/auth"
	"github.com/patentmarket/admin-gateway/internal/transport/httpapi/middleware"
)

// AuthServiceInterface defines the auth operations needed by AuthHandler
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Register(ctx context.Context, email, password, name string) error
	VerifyIdentity(ctx context.Context, name, email string) (int64, error)
	ResetPassword(ctx context.Context, memberID int64, newPassword string) error
}

// TokenIssuer defines the token operations needed by AuthHandler
type TokenIssuer interface {
	GenerateSessionToken(session auth.Session) (string, error)
	GenerateResetToken(memberID int64) (string, error)
	ValidateResetToken(tokenString string) (int64, error)
}

// SessionCleaner releases per-session UI state at logout
type SessionCleaner interface {
	Drop(sessionID string)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService AuthServiceInterface
	tokens      TokenIssuer
	cleaner     SessionCleaner
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthServiceInterface, tokens TokenIssuer, cleaner SessionCleaner) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		cleaner:     cleaner,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// VerifyRequest represents the password-reset identity check request body
type VerifyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResetRequest represents the password-reset final step request body
type ResetRequest struct {
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

// MemberInfo represents member information returned after login
type MemberInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token  string     `json:"token"`
	Member MemberInfo `json:"member"`
}

// VerifyResponse carries the token that authorizes the reset step
type VerifyResponse struct {
	ResetToken string `json:"resetToken"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		respondError(w, "email is required", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		respondError(w, "password is required", http.StatusBadRequest)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}

	token, err := h.tokens.GenerateSessionToken(session)
	if err != nil {
		respondError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, LoginResponse{
		Token: token,
		Member: MemberInfo{
			ID:    session.MemberID,
			Email: session.Email,
			Name:  session.Name,
			Role:  session.Role,
		},
	}, http.StatusOK)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), session.ID); err != nil {
		respondAppError(w, err)
		return
	}
	h.cleaner.Drop(session.ID)

	w.WriteHeader(http.StatusNoContent)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		respondError(w, "email is required", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		respondError(w, "password is required", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name); err != nil {
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// VerifyIdentity handles POST /auth/password/verify, the first step of the
// password-reset wizard.
func (h *AuthHandler) VerifyIdentity(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		respondError(w, "email is required", http.StatusBadRequest)
		return
	}

	memberID, err := h.authService.VerifyIdentity(r.Context(), req.Name, req.Email)
	if err != nil {
		respondAppError(w, err)
		return
	}

	resetToken, err := h.tokens.GenerateResetToken(memberID)
	if err != nil {
		respondError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, VerifyResponse{ResetToken: resetToken}, http.StatusOK)
}

// ResetPassword handles POST /auth/password/reset, the final step of the
// wizard. The member is identified by the reset token, never by the body.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.ResetToken == "" {
		respondError(w, "resetToken is required", http.StatusBadRequest)
		return
	}
	if req.NewPassword == "" {
		respondError(w, "newPassword is required", http.StatusBadRequest)
		return
	}

	memberID, err := h.tokens.ValidateResetToken(req.ResetToken)
	if err != nil {
		respondError(w, "invalid or expired reset token", http.StatusUnauthorized)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), memberID, req.NewPassword); err != nil {
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
