package auth

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"cleanbook/internal/api"
)

type Handlers struct {
	Auth *Service
	Log  *zap.Logger
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := api.DecodeJSON(w, r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if fields := api.Validate(req); fields != nil {
		api.WriteValidationError(w, fields)
		return
	}

	res, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			api.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			return
		}
		if h.Log != nil {
			h.Log.Error("admin login failed", zap.Error(err))
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if h.Log != nil {
		h.Log.Info("admin signed in", zap.String("admin_id", res.Admin.ID))
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// Logout revokes the caller's session. Runs behind AdminAuth.
func (h Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	p := api.AdminFromContext(r.Context())
	if err := h.Auth.Logout(r.Context(), p); err != nil {
		if h.Log != nil {
			h.Log.Error("admin logout failed", zap.Error(err))
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	p := api.AdminFromContext(r.Context())
	if p == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin session")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"admin": p})
}
