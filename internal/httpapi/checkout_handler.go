package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/ojha-sweta/ShopVault/internal/order"
	"github.com/ojha-sweta/ShopVault/internal/session"
)

type CheckoutHandler struct {
	binding  *session.Binding
	checkout *order.CheckoutService
	ledger   *order.Ledger
}

func NewCheckoutHandler(binding *session.Binding, checkout *order.CheckoutService, ledger *order.Ledger) *CheckoutHandler {
	return &CheckoutHandler{binding: binding, checkout: checkout, ledger: ledger}
}

type checkoutRequestDTO struct {
	Shipping order.ShippingInfo `json:"shipping"`
	Payment  order.PaymentInfo  `json:"payment"`
}

// Checkout places an order from the active cart. Clients may send an
// Idempotency-Key header to make retries safe; one is minted otherwise.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	idempotencyKey := r.Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		idempotencyKey = uuid.New().String()
	}

	placed, err := h.checkout.Checkout(r.Context(), order.CheckoutRequest{
		Cart:           h.binding.ActiveCart(),
		User:           h.binding.CurrentUser(),
		Shipping:       req.Shipping,
		Payment:        req.Payment,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, placed)
}

// Orders serves the current user's history, most recent first.
func (h *CheckoutHandler) Orders(w http.ResponseWriter, r *http.Request) {
	user := h.binding.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "auth_required", "login to view orders")
		return
	}

	orders, err := h.ledger.Orders(r.Context(), user.UID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
