package catalog

import "time"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFashion     Category = "fashion"
	CategoryHomeDecor   Category = "home-decor"
	CategoryBooks       Category = "books"
	CategoryHealth      Category = "health"
)

func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryFashion,
		CategoryHomeDecor,
		CategoryBooks,
		CategoryHealth,
	}
}

// Product is created once at catalog generation. Price is already
// discount-adjusted; OriginalPrice is set only when a discount applies.
// Stock and InStock are mutated only by DecrementStock at checkout.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Stock         int      `json:"stock"`
	InStock       bool     `json:"inStock"`
	Featured      bool     `json:"featured"`
	Discount      int      `json:"discount"`
	Brand         string   `json:"brand"`
	Tags          []string `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Purchasable reports whether the product can currently be added to a cart.
// InStock is an independent flag at generation time; after any stock
// decrement it tracks stock > 0.
func (p *Product) Purchasable() bool {
	return p.InStock && p.Stock > 0
}
