package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ojha-sweta/ShopVault/internal/catalog"
	"github.com/ojha-sweta/ShopVault/internal/search"
	"github.com/ojha-sweta/ShopVault/internal/session"
)

type ProductHandler struct {
	catalog *catalog.Catalog
	history *search.History
	binding *session.Binding
}

func NewProductHandler(c *catalog.Catalog, history *search.History, binding *session.Binding) *ProductHandler {
	return &ProductHandler{catalog: c, history: history, binding: binding}
}

type productListResponse struct {
	Products   []*catalog.Product `json:"products"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Total      int                `json:"total"`
}

// List serves the filtered, sorted, paginated product listing.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalog.Filter{
		Category:  catalog.Category(q.Get("category")),
		MinPrice:  parseFloat(q.Get("min_price")),
		MaxPrice:  parseFloat(q.Get("max_price")),
		MinRating: parseFloat(q.Get("rating")),
		Query:     q.Get("q"),
		Sort:      catalog.Sort(q.Get("sort")),
	}

	filtered := filter.Apply(h.catalog.All())

	page := parseInt(q.Get("page"))
	if page < 1 {
		page = 1
	}
	items, totalPages := catalog.Paginate(filtered, page, catalog.DefaultPerPage)

	respondJSON(w, http.StatusOK, productListResponse{
		Products:   items,
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
	})
}

// Get serves one product by id.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}

	product, err := h.catalog.FindByID(id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Featured serves the home-page featured selection.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Featured(8))
}

// Search serves full search results and records the query in the current
// user's history.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := search.Products(h.catalog.All(), query)

	if user := h.binding.CurrentUser(); user != nil && len(query) >= search.MinQueryLength {
		if err := h.history.Record(r.Context(), user.UID, query); err != nil {
			handleDomainError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// Suggest serves the capped suggestion dropdown.
func (h *ProductHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, search.Suggest(h.catalog.All(), r.URL.Query().Get("q")))
}

// SearchHistory serves the current user's past searches.
func (h *ProductHandler) SearchHistory(w http.ResponseWriter, r *http.Request) {
	user := h.binding.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "auth_required", "login to view search history")
		return
	}

	entries, err := h.history.Entries(r.Context(), user.UID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// ClearSearchHistory deletes the current user's past searches.
func (h *ProductHandler) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	user := h.binding.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "auth_required", "login to clear search history")
		return
	}

	if err := h.history.Clear(r.Context(), user.UID); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
