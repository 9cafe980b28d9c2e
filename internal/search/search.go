// Package search matches products against free-text queries the way the
// storefront's search box does: every term must appear somewhere in the
// product's text, name matches rank first.
package search

import (
	"sort"
	"strings"

	"github.com/ojha-sweta/ShopVault/internal/catalog"
)

const (
	// MinQueryLength below which no search runs.
	MinQueryLength = 2
	// SuggestionLimit caps the dropdown suggestion list.
	SuggestionLimit = 8
)

// Products returns every product matching all terms of query, name
// matches first, then rating descending.
func Products(products []*catalog.Product, query string) []*catalog.Product {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return nil
	}

	terms := strings.Fields(strings.ToLower(query))

	var matches []*catalog.Product
	for _, p := range products {
		if matchesAll(p, terms) {
			matches = append(matches, p)
		}
	}

	lowerQuery := strings.ToLower(query)
	sort.SliceStable(matches, func(i, j int) bool {
		iName := strings.Contains(strings.ToLower(matches[i].Name), lowerQuery)
		jName := strings.Contains(strings.ToLower(matches[j].Name), lowerQuery)
		if iName != jName {
			return iName
		}
		return matches[i].Rating > matches[j].Rating
	})

	return matches
}

// Suggest returns the top matches for the suggestion dropdown.
func Suggest(products []*catalog.Product, query string) []*catalog.Product {
	matches := Products(products, query)
	if len(matches) > SuggestionLimit {
		matches = matches[:SuggestionLimit]
	}
	return matches
}

func matchesAll(p *catalog.Product, terms []string) bool {
	searchable := strings.ToLower(strings.Join(append([]string{
		p.Name,
		p.Description,
		p.Brand,
		string(p.Category),
	}, p.Tags...), " "))

	for _, term := range terms {
		if !strings.Contains(searchable, term) {
			return false
		}
	}
	return true
}
