package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ojha-sweta/ShopVault/internal/identity"
	"github.com/ojha-sweta/ShopVault/internal/session"
)

type AuthHandler struct {
	binding *session.Binding
	auth    *identity.AuthService
}

func NewAuthHandler(binding *session.Binding, auth *identity.AuthService) *AuthHandler {
	return &AuthHandler{binding: binding, auth: auth}
}

type credentialsDTO struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		respondError(w, http.StatusBadRequest, "validation_error", "passwords do not match")
		return
	}

	user, err := h.binding.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.binding.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.binding.Logout(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Email); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password reset email sent"})
}

// Me returns the current identity, 401 while anonymous.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.binding.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "auth_required", "no user is signed in")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile renames the current identity's display name.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.DisplayName == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "display_name is required")
		return
	}

	user, err := h.auth.UpdateDisplayName(r.Context(), req.DisplayName)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
