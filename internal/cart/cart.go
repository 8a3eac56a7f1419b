// Package cart owns the persisted shopping cart: an ordered list of
// (item, quantity) lines with at most one line per item id.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"daggys-menu/internal/kvstore"
	"daggys-menu/internal/model"
	"daggys-menu/internal/pricing"
)

// StorageKey is the document key the cart persists under.
const StorageKey = "cart"

// Store is the cart state store. It is the sole writer of the cart document:
// every mutation computes the new list, persists it, and only then replaces
// the in-memory state. A failed write leaves the cart unchanged and is
// returned to the caller.
type Store struct {
	mu     sync.Mutex
	kv     kvstore.Store
	logger zerolog.Logger
	lines  []model.CartLine
}

// New creates a cart store over the given document store. Call Load to
// hydrate persisted state before use.
func New(kv kvstore.Store, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("store", "cart").Logger(),
	}
}

// Load hydrates the cart from its persisted document. A missing document
// means an empty cart.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load cart")
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if data == nil {
		s.lines = nil
		return nil
	}

	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Error().Err(err).Msg("failed to decode cart document")
		return fmt.Errorf("failed to decode cart document: %w", err)
	}

	s.lines = lines
	return nil
}

// Add puts quantity units of item in the cart. If a line for item.ID already
// exists its quantity is incremented; otherwise a new line is appended.
// Quantity is assumed positive by caller contract.
func (s *Store) Add(ctx context.Context, item model.MenuItem, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.CartLine, len(s.lines))
	copy(next, s.lines)

	merged := false
	for i := range next {
		if next[i].ID == item.ID {
			next[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, model.CartLine{MenuItem: item, Quantity: quantity})
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.logger.Info().
		Str("item_id", item.ID).
		Str("item_name", item.Name).
		Int("quantity", quantity).
		Bool("merged", merged).
		Msg("item added to cart")

	return nil
}

// Remove deletes the line with the given item id. An absent id is a
// successful no-op.
func (s *Store) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		if line.ID != itemID {
			next = append(next, line)
		}
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.logger.Info().Str("item_id", itemID).Msg("item removed from cart")

	return nil
}

// SetQuantity overwrites the quantity of the line with the given item id.
// A quantity of zero or less removes the line; an absent id is a no-op.
func (s *Store) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.CartLine, len(s.lines))
	copy(next, s.lines)
	for i := range next {
		if next[i].ID == itemID {
			next[i].Quantity = quantity
			break
		}
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.logger.Debug().Str("item_id", itemID).Int("quantity", quantity).Msg("cart quantity updated")

	return nil
}

// Clear removes every line from the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, []model.CartLine{}); err != nil {
		return err
	}

	s.logger.Info().Msg("cart cleared")

	return nil
}

// Items returns a snapshot copy of the cart lines.
func (s *Store) Items() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartLine, len(s.lines))
	copy(items, s.lines)
	return items
}

// Len returns the number of distinct lines in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Total returns the cart total as a 2-decimal string.
func (s *Store) Total() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal, err := pricing.Subtotal(s.lines)
	if err != nil {
		return "", fmt.Errorf("failed to total cart: %w", err)
	}
	return pricing.Format(subtotal), nil
}

// ItemCount returns the sum of quantities across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.ItemCount(s.lines)
}

// persist writes next through to the document store and, only on success,
// makes it the authoritative in-memory state. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, next []model.CartLine) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.kv.Set(ctx, StorageKey, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist cart")
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	s.lines = next
	return nil
}
