package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ojha-sweta/ShopVault/internal/cart"
	"github.com/ojha-sweta/ShopVault/internal/catalog"
	"github.com/ojha-sweta/ShopVault/internal/order"
	"github.com/ojha-sweta/ShopVault/internal/session"
)

type CartHandler struct {
	binding *session.Binding
	catalog *catalog.Catalog
}

func NewCartHandler(binding *session.Binding, c *catalog.Catalog) *CartHandler {
	return &CartHandler{binding: binding, catalog: c}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type cartLineDTO struct {
	cart.Line
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

type cartResponse struct {
	Items     []cartLineDTO `json:"items"`
	ItemCount int           `json:"itemCount"`
	Subtotal  float64       `json:"subtotal"`
	Tax       float64       `json:"tax"`
	Shipping  float64       `json:"shipping"`
	Total     float64       `json:"total"`
}

func (h *CartHandler) cartView() cartResponse {
	active := h.binding.ActiveCart()
	totals := order.ComputeTotals(active.Total())

	resp := cartResponse{
		Items:     []cartLineDTO{},
		ItemCount: active.ItemCount(),
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
	}
	for _, line := range active.Lines() {
		dto := cartLineDTO{Line: line}
		if product, err := h.catalog.FindByID(line.ProductID); err == nil {
			dto.Name = product.Name
			dto.UnitPrice = product.Price
			dto.LineTotal = product.Price * float64(line.Quantity)
		}
		resp.Items = append(resp.Items, dto)
	}
	return resp
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartView())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	if err := h.binding.ActiveCart().AddLine(r.Context(), req.ProductID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.cartView())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.binding.ActiveCart().SetLineQuantity(r.Context(), productID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartView())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	if err := h.binding.ActiveCart().RemoveLine(r.Context(), productID); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartView())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.binding.ActiveCart().Clear(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartView())
}

// Validate re-checks the cart against stock and reports whether any line
// was corrected, so the UI can warn before checkout.
func (h *CartHandler) Validate(w http.ResponseWriter, r *http.Request) {
	corrected, err := h.binding.ActiveCart().ValidateAgainstStock(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"corrected": corrected,
		"cart":      h.cartView(),
	})
}

func (h *CartHandler) SaveForLater(w http.ResponseWriter, r *http.Request) {
	user := h.binding.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "auth_required", "login to save cart for later")
		return
	}
	if err := h.binding.ActiveCart().SaveForLater(r.Context(), user.UID); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartView())
}

func (h *CartHandler) LoadSaved(w http.ResponseWriter, r *http.Request) {
	user := h.binding.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "auth_required", "login to load saved cart")
		return
	}
	if err := h.binding.ActiveCart().LoadSaved(r.Context(), user.UID); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartView())
}
