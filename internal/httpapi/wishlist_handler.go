package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ojha-sweta/ShopVault/internal/catalog"
	"github.com/ojha-sweta/ShopVault/internal/session"
	"github.com/ojha-sweta/ShopVault/internal/wishlist"
)

type WishlistHandler struct {
	binding  *session.Binding
	wishlist *wishlist.Service
	catalog  *catalog.Catalog
}

func NewWishlistHandler(binding *session.Binding, wl *wishlist.Service, c *catalog.Catalog) *WishlistHandler {
	return &WishlistHandler{binding: binding, wishlist: wl, catalog: c}
}

func (h *WishlistHandler) requireUser(w http.ResponseWriter) (string, bool) {
	user := h.binding.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "auth_required", "login to use the wishlist")
		return "", false
	}
	return user.UID, true
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requireUser(w)
	if !ok {
		return
	}

	ids, err := h.wishlist.List(r.Context(), uid)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	// Dangling ids (products gone from the catalog) are skipped.
	products := []*catalog.Product{}
	for _, id := range ids {
		if p, err := h.catalog.FindByID(id); err == nil {
			products = append(products, p)
		}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requireUser(w)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	if _, err := h.catalog.FindByID(productID); err != nil {
		handleDomainError(w, err)
		return
	}

	if err := h.wishlist.Add(r.Context(), uid, productID); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requireUser(w)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	if err := h.wishlist.Remove(r.Context(), uid, productID); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
