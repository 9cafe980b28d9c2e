// Package wishlist keeps the per-user wishlist collection.
package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/ojha-sweta/ShopVault/internal/alert"
	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

// Key derives the wishlist storage key for a user.
func Key(uid string) string {
	return fmt.Sprintf("wishlist_%s", uid)
}

type Service struct {
	kv     kvstore.Store
	notify alert.Notifier
}

func NewService(kv kvstore.Store, notify alert.Notifier) *Service {
	return &Service{kv: kv, notify: notify}
}

// Add puts a product on the user's wishlist. A duplicate raises a notice
// and leaves the list unchanged.
func (s *Service) Add(ctx context.Context, uid string, productID int64) error {
	ids, err := s.List(ctx, uid)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if id == productID {
			s.notify.Notify(alert.Warning, "Product already in wishlist")
			return nil
		}
	}

	ids = append(ids, productID)
	return s.persist(ctx, uid, ids)
}

// Remove takes a product off the list; absent entries are a no-op.
func (s *Service) Remove(ctx context.Context, uid string, productID int64) error {
	ids, err := s.List(ctx, uid)
	if err != nil {
		return err
	}

	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	return s.persist(ctx, uid, kept)
}

// Contains reports whether a product is wishlisted.
func (s *Service) Contains(ctx context.Context, uid string, productID int64) (bool, error) {
	ids, err := s.List(ctx, uid)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

// List returns the wishlisted product ids in insertion order.
func (s *Service) List(ctx context.Context, uid string) ([]int64, error) {
	var ids []int64
	err := kvstore.GetJSON(ctx, s.kv, Key(uid), &ids)
	if err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return ids, nil
}

func (s *Service) persist(ctx context.Context, uid string, ids []int64) error {
	if err := kvstore.SetJSON(ctx, s.kv, Key(uid), ids); err != nil {
		return fmt.Errorf("persist wishlist: %w", err)
	}
	return nil
}
