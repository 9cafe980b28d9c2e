package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ojha-sweta/ShopVault/internal/alert"
	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

// SavedKey derives the save-for-later storage key for a user.
func SavedKey(uid string) string {
	return fmt.Sprintf("savedCart_%s", uid)
}

type savedCart struct {
	Items   []Line    `json:"items"`
	SavedAt time.Time `json:"savedAt"`
}

// SaveForLater snapshots the current lines under the user's saved-cart key.
// The active cart keeps its contents.
func (s *Store) SaveForLater(ctx context.Context, uid string) error {
	saved := savedCart{
		Items:   s.Lines(),
		SavedAt: s.clock.Now(),
	}
	if err := kvstore.SetJSON(ctx, s.kv, SavedKey(uid), saved); err != nil {
		return fmt.Errorf("persist saved cart: %w", err)
	}
	s.notify.Notify(alert.Success, "Cart saved for later!")
	return nil
}

// LoadSaved merges the user's saved cart back into the active cart and
// deletes the saved record. A missing or empty saved cart is a notice,
// not an error.
func (s *Store) LoadSaved(ctx context.Context, uid string) error {
	var saved savedCart
	err := kvstore.GetJSON(ctx, s.kv, SavedKey(uid), &saved)
	if errors.Is(err, kvstore.ErrKeyNotFound) || (err == nil && len(saved.Items) == 0) {
		s.notify.Notify(alert.Warning, "No saved cart found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load saved cart: %w", err)
	}

	if err := s.MergeFrom(ctx, saved.Items); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, SavedKey(uid)); err != nil {
		return fmt.Errorf("clear saved cart: %w", err)
	}
	s.notify.Notify(alert.Success, "Saved cart loaded!")
	return nil
}
