// Package history owns the persisted order history: an append-only log of
// submitted orders, most recent first.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"daggys-menu/internal/kvstore"
	"daggys-menu/internal/model"
	"daggys-menu/internal/pricing"
)

// StorageKey is the document key the order history persists under.
const StorageKey = "orderHistory"

// Store is the order history state store. Records are stamped with a unique
// id, an RFC 3339 timestamp and Pending status at append time, and are never
// mutated afterwards. The whole list may be cleared wholesale.
type Store struct {
	mu     sync.Mutex
	kv     kvstore.Store
	logger zerolog.Logger
	orders []model.OrderRecord

	now   func() time.Time
	newID func() string
}

// New creates an order history store over the given document store. Call Load
// to hydrate persisted state before use.
func New(kv kvstore.Store, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("store", "orderHistory").Logger(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Load hydrates the order history from its persisted document.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load order history")
		return fmt.Errorf("failed to load order history: %w", err)
	}
	if data == nil {
		s.orders = nil
		return nil
	}

	var orders []model.OrderRecord
	if err := json.Unmarshal(data, &orders); err != nil {
		s.logger.Error().Err(err).Msg("failed to decode order history document")
		return fmt.Errorf("failed to decode order history document: %w", err)
	}

	s.orders = orders
	return nil
}

// Append stamps payload with a fresh id, the current timestamp and Pending
// status, prepends it to the history and persists. The created record is
// returned.
func (s *Store) Append(ctx context.Context, payload model.OrderPayload) (model.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := model.OrderRecord{
		ID:           s.newID(),
		Date:         s.now().UTC().Format(time.RFC3339),
		Status:       model.StatusPending,
		OrderPayload: payload,
	}

	next := make([]model.OrderRecord, 0, len(s.orders)+1)
	next = append(next, record)
	next = append(next, s.orders...)

	if err := s.persist(ctx, next); err != nil {
		return model.OrderRecord{}, err
	}

	s.logger.Info().
		Str("order_id", record.ID).
		Int("item_count", pricing.ItemCount(pricing.OrderLines(payload))).
		Msg("order appended to history")

	return record, nil
}

// Clear empties the order history.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, []model.OrderRecord{}); err != nil {
		return err
	}

	s.logger.Info().Msg("order history cleared")

	return nil
}

// Orders returns a snapshot copy of the history, most recent first.
func (s *Store) Orders() []model.OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]model.OrderRecord, len(s.orders))
	copy(orders, s.orders)
	return orders
}

// Len returns the number of recorded orders.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// OrderTotal returns an order's total as a 2-decimal string, using the same
// arithmetic as the cart.
func OrderTotal(order model.OrderRecord) (string, error) {
	subtotal, err := pricing.Subtotal(pricing.OrderLines(order.OrderPayload))
	if err != nil {
		return "", fmt.Errorf("failed to total order %s: %w", order.ID, err)
	}
	return pricing.Format(subtotal), nil
}

// OrderItemCount returns the number of units in an order.
func OrderItemCount(order model.OrderRecord) int {
	return pricing.ItemCount(pricing.OrderLines(order.OrderPayload))
}

// persist writes next through to the document store and, only on success,
// makes it the authoritative in-memory state. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, next []model.OrderRecord) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode order history: %w", err)
	}

	if err := s.kv.Set(ctx, StorageKey, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist order history")
		return fmt.Errorf("failed to persist order history: %w", err)
	}

	s.orders = next
	return nil
}
