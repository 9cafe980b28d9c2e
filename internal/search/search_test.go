package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojha-sweta/ShopVault/internal/catalog"
)

func searchFixture() []*catalog.Product {
	return []*catalog.Product{
		{ID: 1, Name: "Gaming Laptop", Description: "High-quality gaming laptop", Brand: "TechPro", Category: catalog.CategoryElectronics, Rating: 4.2, Tags: []string{"tech", "gaming"}},
		{ID: 2, Name: "Laptop", Description: "High-quality laptop", Brand: "TechPro", Category: catalog.CategoryElectronics, Rating: 4.8, Tags: []string{"tech"}},
		{ID: 3, Name: "Desk Lamp", Description: "A lamp for laptop desks", Brand: "HomeEssentials", Category: catalog.CategoryHomeDecor, Rating: 3.9, Tags: []string{"home"}},
		{ID: 4, Name: "Jeans", Description: "Comfortable denim", Brand: "StyleMax", Category: catalog.CategoryFashion, Rating: 4.5, Tags: []string{"style"}},
	}
}

func TestProducts_MatchesAcrossFields(t *testing.T) {
	out := Products(searchFixture(), "laptop")

	// Name, description and tags all count
	assert.Len(t, out, 3)
}

func TestProducts_AllTermsMustMatch(t *testing.T) {
	out := Products(searchFixture(), "gaming laptop")

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestProducts_NameMatchesRankFirst(t *testing.T) {
	out := Products(searchFixture(), "laptop")

	require.Len(t, out, 3)
	// Both name matches precede the description-only match,
	// higher rating first within the name matches
	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, int64(1), out[1].ID)
	assert.Equal(t, int64(3), out[2].ID)
}

func TestProducts_MatchesBrand(t *testing.T) {
	out := Products(searchFixture(), "stylemax")

	require.Len(t, out, 1)
	assert.Equal(t, int64(4), out[0].ID)
}

func TestProducts_CaseInsensitive(t *testing.T) {
	assert.Len(t, Products(searchFixture(), "LAPTOP"), 3)
}

func TestProducts_QueryTooShort(t *testing.T) {
	assert.Nil(t, Products(searchFixture(), "l"))
	assert.Nil(t, Products(searchFixture(), "  "))
}

func TestProducts_NoMatch(t *testing.T) {
	assert.Empty(t, Products(searchFixture(), "submarine"))
}

func TestSuggest_CapsResults(t *testing.T) {
	var products []*catalog.Product
	for i := int64(1); i <= 20; i++ {
		products = append(products, &catalog.Product{ID: i, Name: "Laptop", Rating: 4})
	}

	out := Suggest(products, "laptop")
	assert.Len(t, out, SuggestionLimit)
}

func TestSuggest_FewerThanLimit(t *testing.T) {
	out := Suggest(searchFixture(), "jeans")
	assert.Len(t, out, 1)
}
