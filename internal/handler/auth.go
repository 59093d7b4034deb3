package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/handler/dto"
	"github.com/newsdesk/newsdesk/internal/service"
)

// AuthHandler handles signup, login, and logout requests.
type AuthHandler struct {
	svc    *service.AccountService
	logger *slog.Logger
	dev    bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AccountService, logger *slog.Logger, dev bool) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
		dev:    dev,
	}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleAccountError(w, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.SignupResponse{User: user})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleAccountError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.LoginResponse{Token: token, User: user})
}

// Logout handles POST /api/v1/auth/logout.
// Runs behind the auth middleware, so the token is present and valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.ExtractBearerToken(r.Header.Get("Authorization"))

	if err := h.svc.Logout(r.Context(), token); err != nil {
		h.logger.Error("logout_failed", "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "an internal error occurred", err.Error(), h.dev)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAccountError maps account service errors to HTTP responses.
func (h *AuthHandler) handleAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "email and password are required")
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
	case errors.Is(err, service.ErrEmailTaken):
		// 400, not 409 - existing clients depend on this status
		writeError(w, http.StatusBadRequest, "an account with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	default:
		h.logger.Error("internal_error", "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "an internal error occurred", err.Error(), h.dev)
	}
}
