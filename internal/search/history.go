package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ojha-sweta/ShopVault/internal/clock"
	"github.com/ojha-sweta/ShopVault/internal/kvstore"
)

// HistoryLimit caps how many past searches are kept per user.
const HistoryLimit = 20

// HistoryKey derives the search-history storage key for a user.
func HistoryKey(uid string) string {
	return fmt.Sprintf("searchHistory_%s", uid)
}

type HistoryEntry struct {
	Query      string    `json:"query"`
	SearchedAt time.Time `json:"searchedAt"`
}

// History records what a signed-in user searched for, most recent first.
type History struct {
	kv    kvstore.Store
	clock clock.Clock
}

func NewHistory(kv kvstore.Store, clk clock.Clock) *History {
	return &History{kv: kv, clock: clk}
}

// Record prepends a query to the user's history, trimming to HistoryLimit.
func (h *History) Record(ctx context.Context, uid, query string) error {
	entries, err := h.Entries(ctx, uid)
	if err != nil {
		return err
	}

	entries = append([]HistoryEntry{{
		Query:      query,
		SearchedAt: h.clock.Now(),
	}}, entries...)
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}

	if err := kvstore.SetJSON(ctx, h.kv, HistoryKey(uid), entries); err != nil {
		return fmt.Errorf("persist search history: %w", err)
	}
	return nil
}

// Entries returns the user's history, most recent first.
func (h *History) Entries(ctx context.Context, uid string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := kvstore.GetJSON(ctx, h.kv, HistoryKey(uid), &entries)
	if err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, fmt.Errorf("load search history: %w", err)
	}
	return entries, nil
}

// Clear deletes the user's history.
func (h *History) Clear(ctx context.Context, uid string) error {
	return h.kv.Delete(ctx, HistoryKey(uid))
}
