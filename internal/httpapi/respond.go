package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ojha-sweta/ShopVault/internal/catalog"
	"github.com/ojha-sweta/ShopVault/internal/identity"
	"github.com/ojha-sweta/ShopVault/internal/order"
	"github.com/ojha-sweta/ShopVault/internal/session"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError maps the domain sentinels onto HTTP statuses.
func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, catalog.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, identity.ErrNotSignedIn), errors.Is(err, order.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "auth_required", err.Error())
	case errors.Is(err, identity.ErrDuplicateAccount):
		respondError(w, http.StatusConflict, "duplicate_account", err.Error())
	case errors.Is(err, identity.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, identity.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, identity.ErrWeakPassword), errors.Is(err, identity.ErrMissingFields):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, session.ErrAlreadyAuthenticated):
		respondError(w, http.StatusConflict, "already_authenticated", err.Error())
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, order.ErrStockChanged):
		respondError(w, http.StatusConflict, "stock_changed", err.Error())
	case errors.Is(err, order.ErrInvalidForm):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
