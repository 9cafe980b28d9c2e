package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

const storageKey = "products"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Catalog owns the product set. Reads are served from memory; every stock
// mutation writes the whole set back through to the store.
type Catalog struct {
	kv  kvstore.Store
	sfg singleflight.Group

	mu       sync.RWMutex
	products []*Product
	byID     map[int64]*Product
}

func New(kv kvstore.Store) *Catalog {
	return &Catalog{
		kv:   kv,
		byID: make(map[int64]*Product),
	}
}

// Load reads the persisted product set, generating and persisting one from
// seed when none exists yet. Concurrent loads are collapsed to a single
// fetch.
func (c *Catalog) Load(ctx context.Context, seed int64) error {
	_, err, _ := c.sfg.Do(storageKey, func() (interface{}, error) {
		var products []*Product
		err := kvstore.GetJSON(ctx, c.kv, storageKey, &products)
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			products = Generate(rand.New(rand.NewSource(seed)), time.Now())
			if err := kvstore.SetJSON(ctx, c.kv, storageKey, products); err != nil {
				return nil, fmt.Errorf("persist generated catalog: %w", err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}

		c.mu.Lock()
		c.products = products
		c.byID = make(map[int64]*Product, len(products))
		for _, p := range products {
			c.byID[p.ID] = p
		}
		c.mu.Unlock()
		return nil, nil
	})
	return err
}

// FindByID returns a copy of the product so callers can't bypass
// DecrementStock.
func (c *Catalog) FindByID(id int64) (*Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, exists := c.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	out := *p
	return &out, nil
}

// All returns the product set in id order.
func (c *Catalog) All() []*Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Product, len(c.products))
	for i, p := range c.products {
		cp := *p
		out[i] = &cp
	}
	return out
}

// DecrementStock reduces a product's stock by amount in one step: the
// result is clamped at zero and InStock flips to false when stock runs out.
// No caller ever observes negative stock. Returns ErrInsufficientStock when
// amount exceeds what was available; the clamp is still applied, matching
// checkout's logged-anomaly policy.
func (c *Catalog) DecrementStock(ctx context.Context, id int64, amount int) error {
	c.mu.Lock()

	p, exists := c.byID[id]
	if !exists {
		c.mu.Unlock()
		return ErrProductNotFound
	}

	insufficient := amount > p.Stock
	p.Stock -= amount
	if p.Stock <= 0 {
		p.Stock = 0
		p.InStock = false
	}
	c.mu.Unlock()

	if err := c.persist(ctx); err != nil {
		return err
	}
	if insufficient {
		return ErrInsufficientStock
	}
	return nil
}

func (c *Catalog) persist(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := kvstore.SetJSON(ctx, c.kv, storageKey, c.products); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}

// Featured returns up to limit featured products.
func (c *Catalog) Featured(limit int) []*Product {
	var out []*Product
	for _, p := range c.All() {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}
