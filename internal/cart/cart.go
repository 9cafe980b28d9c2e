// Package cart implements the scoped shopping cart: quantity clamping
// against live stock, anonymous/authenticated merge, and write-through
// persistence of every mutation.
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ojha-sweta/ShopVault/internal/alert"
	"github.com/ojha-sweta/ShopVault/internal/catalog"
	"github.com/ojha-sweta/ShopVault/internal/clock"
	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

// AnonymousKey is the storage key for the anonymous-scope cart.
const AnonymousKey = "cart"

// UserKey derives the storage key for an authenticated user's cart.
func UserKey(uid string) string {
	return fmt.Sprintf("cart_%s", uid)
}

// Line is one product/quantity pairing. At most one Line per product per
// cart; quantity stays within the product's current stock after every
// mutation.
type Line struct {
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// ProductFinder is the only capability the cart needs from the catalog.
// Consumers define this interface, not the catalog implementation.
type ProductFinder interface {
	FindByID(id int64) (*catalog.Product, error)
}

// Store holds the lines for one identity scope. Every mutating operation
// persists the full cart under its scope key and then fires the on-change
// observer.
type Store struct {
	key    string
	kv     kvstore.Store
	finder ProductFinder
	notify alert.Notifier
	clock  clock.Clock

	mu       sync.Mutex
	lines    []Line
	onChange func()
}

// NewStore loads any persisted cart for key; an absent record means an
// empty cart.
func NewStore(ctx context.Context, key string, kv kvstore.Store, finder ProductFinder, notify alert.Notifier, clk clock.Clock) (*Store, error) {
	s := &Store{
		key:    key,
		kv:     kv,
		finder: finder,
		notify: notify,
		clock:  clk,
	}

	err := kvstore.GetJSON(ctx, kv, key, &s.lines)
	if err != nil && err != kvstore.ErrKeyNotFound {
		return nil, fmt.Errorf("load cart %q: %w", key, err)
	}
	return s, nil
}

// NewEmptyStore builds a cart for key without consulting the store.
// Used on logout, where any stale anonymous record is intentionally
// discarded rather than resurrected.
func NewEmptyStore(key string, kv kvstore.Store, finder ProductFinder, notify alert.Notifier, clk clock.Clock) *Store {
	return &Store{
		key:    key,
		kv:     kv,
		finder: finder,
		notify: notify,
		clock:  clk,
	}
}

// SetOnChange registers the UI-refresh observer invoked after every
// persisted mutation.
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Key returns the storage key this cart persists under.
func (s *Store) Key() string { return s.key }

// AddLine puts quantity of a product into the cart. An unknown or
// unpurchasable product raises a notice and leaves the cart untouched.
// When the requested total exceeds stock the quantity is clamped, never
// rejected: the operation always partially succeeds.
func (s *Store) AddLine(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.finder.FindByID(productID)
	if err != nil || !product.Purchasable() {
		s.notify.Notify(alert.Error, "Product is out of stock")
		return nil
	}

	s.mu.Lock()
	if line := s.find(productID); line != nil {
		newQuantity := line.Quantity + quantity
		if newQuantity > product.Stock {
			s.notify.Notify(alert.Warning, fmt.Sprintf("Only %d items available", product.Stock))
			newQuantity = product.Stock
		}
		line.Quantity = newQuantity
	} else {
		if quantity > product.Stock {
			s.notify.Notify(alert.Warning, fmt.Sprintf("Only %d items available", product.Stock))
			quantity = product.Stock
		}
		s.lines = append(s.lines, Line{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   s.clock.Now(),
		})
	}
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notify.Notify(alert.Success, fmt.Sprintf("%s added to cart!", product.Name))
	return nil
}

// SetLineQuantity replaces a line's quantity, clamped to stock.
// A quantity of zero or less removes the line.
func (s *Store) SetLineQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.RemoveLine(ctx, productID)
	}

	product, err := s.finder.FindByID(productID)
	if err != nil {
		s.notify.Notify(alert.Warning, "Product is no longer available")
		return nil
	}

	if quantity > product.Stock {
		s.notify.Notify(alert.Warning, fmt.Sprintf("Only %d items available", product.Stock))
		quantity = product.Stock
	}

	s.mu.Lock()
	line := s.find(productID)
	if line == nil {
		s.mu.Unlock()
		return nil
	}
	line.Quantity = quantity
	s.mu.Unlock()

	return s.persist(ctx)
}

// RemoveLine drops a product from the cart. Removing an absent line is
// not an error.
func (s *Store) RemoveLine(ctx context.Context, productID int64) error {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.mu.Unlock()

	return s.persist(ctx)
}

// MergeFrom folds another cart's lines into this one. Existing lines are
// the base: quantities are summed (then clamped to stock) and the base
// line's AddedAt survives. Used once per login to absorb the anonymous
// cart into the user's saved cart.
func (s *Store) MergeFrom(ctx context.Context, lines []Line) error {
	s.mu.Lock()
	for _, incoming := range lines {
		if line := s.find(incoming.ProductID); line != nil {
			line.Quantity += incoming.Quantity
		} else {
			s.lines = append(s.lines, incoming)
		}
	}
	s.clampAll()
	s.mu.Unlock()

	return s.persist(ctx)
}

// Total sums live price times quantity over all lines. Lines whose product
// has vanished contribute nothing. This is the current-session view; the
// order snapshot taken at checkout is frozen separately.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		if product, err := s.finder.FindByID(line.ProductID); err == nil {
			total += product.Price * float64(line.Quantity)
		}
	}
	return total
}

// ItemCount is the sum of quantities across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Quantity reports the quantity of a product in the cart, zero if absent.
func (s *Store) Quantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line := s.find(productID); line != nil {
		return line.Quantity
	}
	return 0
}

// Lines returns a snapshot copy of the cart's lines.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	return s.persist(ctx)
}

// ValidateAgainstStock removes lines whose product is no longer
// purchasable and clamps quantities that exceed current stock. Reports
// whether any correction was made. Checkout must run this first.
func (s *Store) ValidateAgainstStock(ctx context.Context) (bool, error) {
	s.mu.Lock()
	corrected := false
	kept := s.lines[:0]
	for _, line := range s.lines {
		product, err := s.finder.FindByID(line.ProductID)
		if err != nil {
			kept = append(kept, line)
			continue
		}
		if !product.Purchasable() {
			s.notify.Notify(alert.Warning, fmt.Sprintf("%s is no longer available and has been removed from your cart", product.Name))
			corrected = true
			continue
		}
		if line.Quantity > product.Stock {
			s.notify.Notify(alert.Warning, fmt.Sprintf("%s quantity adjusted to available stock (%d)", product.Name, product.Stock))
			line.Quantity = product.Stock
			corrected = true
		}
		kept = append(kept, line)
	}
	s.lines = kept
	s.mu.Unlock()

	if !corrected {
		return false, nil
	}
	return true, s.persist(ctx)
}

// find returns the line for productID, or nil. Caller holds the lock.
func (s *Store) find(productID int64) *Line {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return &s.lines[i]
		}
	}
	return nil
}

// clampAll caps every line at current stock. Caller holds the lock.
func (s *Store) clampAll() {
	for i := range s.lines {
		product, err := s.finder.FindByID(s.lines[i].ProductID)
		if err != nil {
			continue
		}
		if s.lines[i].Quantity > product.Stock {
			s.lines[i].Quantity = product.Stock
		}
	}
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	onChange := s.onChange
	s.mu.Unlock()

	if err := kvstore.SetJSON(ctx, s.kv, s.key, lines); err != nil {
		return fmt.Errorf("persist cart %q: %w", s.key, err)
	}
	if onChange != nil {
		onChange()
	}
	return nil
}
