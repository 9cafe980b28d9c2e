package catalog

import (
	"math"
	"sort"
	"strings"
)

type Sort string

const (
	SortName      Sort = "name"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
	SortRating    Sort = "rating"
)

const DefaultPerPage = 12

// Filter narrows and orders a product listing the way the storefront's
// filter bar does. Zero values mean "no constraint".
type Filter struct {
	Category  Category
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
	Query     string
	Sort      Sort
}

func (f Filter) Apply(products []*Product) []*Product {
	maxPrice := f.MaxPrice
	if maxPrice == 0 {
		maxPrice = math.MaxFloat64
	}

	var out []*Product
	for _, p := range products {
		if f.Category != "" && f.Category != "all" && p.Category != f.Category {
			continue
		}
		if p.Price < f.MinPrice || p.Price > maxPrice {
			continue
		}
		if p.Rating < f.MinRating {
			continue
		}
		if f.Query != "" && !matchesQuery(p, f.Query) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}

	return out
}

func matchesQuery(p *Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Paginate slices a filtered listing into a 1-based page.
func Paginate(products []*Product, page, perPage int) (pageItems []*Product, totalPages int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page <= 0 {
		page = 1
	}

	totalPages = (len(products) + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start >= len(products) {
		return nil, totalPages
	}
	end := start + perPage
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], totalPages
}
