package handlers

import (
	"errors"
	"log"
	"net/http"

	"brainsmath/internal/service"
	"brainsmath/internal/validation"
)

// AuthHandler serves registration, token and password recovery endpoints
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Register(req.Username, req.Email, req.Password)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondError(w, http.StatusBadRequest, validationErr.Message)
		case errors.Is(err, service.ErrUserExists):
			respondError(w, http.StatusConflict, "username or email already taken")
		default:
			log.Printf("register failed: %v", err)
			respondError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"username": user.Username})
}

// Token handles POST /api/token, exchanging credentials for a token pair
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "no active account found with the given credentials")
			return
		}
		log.Printf("login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// TokenRefresh handles POST /api/token/refresh
func (h *AuthHandler) TokenRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	access, err := h.auth.Refresh(req.Refresh)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "token is invalid or expired")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"access": access})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is the
// same whether or not the email has an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "invalid email")
		return
	}

	if err := h.auth.RequestPasswordReset(req.Email); err != nil {
		log.Printf("password reset request failed: %v", err)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"detail": "if the email is registered, a reset link has been sent",
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.auth.ResetPassword(req.Token, req.Password)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondError(w, http.StatusBadRequest, validationErr.Message)
		case errors.Is(err, service.ErrInvalidResetToken):
			respondError(w, http.StatusBadRequest, "invalid or expired reset token")
		default:
			log.Printf("password reset failed: %v", err)
			respondError(w, http.StatusInternalServerError, "password reset failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"detail": "password updated"})
}

// Hi handles GET /api/hi, a trivial liveness check
func (h *AuthHandler) Hi(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "hi"})
}
