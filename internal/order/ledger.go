package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

// Ledger is the append-only per-user order history, most recent first.
// Orders are never mutated once appended.
type Ledger struct {
	kv kvstore.Store
}

func NewLedger(kv kvstore.Store) *Ledger {
	return &Ledger{kv: kv}
}

// Orders returns a user's history, most recent first. No orders yet is an
// empty slice, not an error.
func (l *Ledger) Orders(ctx context.Context, uid string) ([]Order, error) {
	var orders []Order
	err := kvstore.GetJSON(ctx, l.kv, LedgerKey(uid), &orders)
	if err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return orders, nil
}

// Append prepends the order to the user's history.
func (l *Ledger) Append(ctx context.Context, o *Order) error {
	orders, err := l.Orders(ctx, o.UserID)
	if err != nil {
		return err
	}

	orders = append([]Order{*o}, orders...)
	if err := kvstore.SetJSON(ctx, l.kv, LedgerKey(o.UserID), orders); err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}
	return nil
}

// FindByKey looks up a user's order by idempotency key, nil if none.
func (l *Ledger) FindByKey(ctx context.Context, uid, idempotencyKey string) (*Order, error) {
	if idempotencyKey == "" {
		return nil, nil
	}

	orders, err := l.Orders(ctx, uid)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].IdempotencyKey == idempotencyKey {
			return &orders[i], nil
		}
	}
	return nil, nil
}
