// Package favorites owns the persisted favourites list: a set of menu item
// snapshots keyed by id.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"daggys-menu/internal/kvstore"
	"daggys-menu/internal/model"
)

// StorageKey is the document key the favourites list persists under.
const StorageKey = "favorites"

// Store is the favourites state store. Entries are unique by item id; adding
// an existing id is rejected without mutation.
type Store struct {
	mu      sync.Mutex
	kv      kvstore.Store
	logger  zerolog.Logger
	entries []model.FavoriteEntry
}

// New creates a favourites store over the given document store. Call Load to
// hydrate persisted state before use.
func New(kv kvstore.Store, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("store", "favorites").Logger(),
	}
}

// Load hydrates the favourites list from its persisted document.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load favorites")
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	if data == nil {
		s.entries = nil
		return nil
	}

	var entries []model.FavoriteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Error().Err(err).Msg("failed to decode favorites document")
		return fmt.Errorf("failed to decode favorites document: %w", err)
	}

	s.entries = entries
	return nil
}

// Add appends item to the favourites list. If the id is already present the
// list is left untouched and ErrDuplicateFavorite is returned.
func (s *Store) Add(ctx context.Context, item model.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.ID == item.ID {
			s.logger.Debug().Str("item_id", item.ID).Msg("item already in favorites")
			return model.ErrDuplicateFavorite
		}
	}

	next := make([]model.FavoriteEntry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	next = append(next, model.FavoriteEntry{MenuItem: item})

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.logger.Info().Str("item_id", item.ID).Str("item_name", item.Name).Msg("item added to favorites")

	return nil
}

// Remove deletes the entry with the given item id. An absent id persists the
// unchanged list and succeeds.
func (s *Store) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.FavoriteEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.ID != itemID {
			next = append(next, entry)
		}
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.logger.Info().Str("item_id", itemID).Msg("item removed from favorites")

	return nil
}

// IsFavorite reports whether the given item id is currently favourited.
// It reflects the latest completed mutation.
func (s *Store) IsFavorite(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.ID == itemID {
			return true
		}
	}
	return false
}

// Items returns a snapshot copy of the favourites list.
func (s *Store) Items() []model.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]model.FavoriteEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Len returns the number of favourited items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// persist writes next through to the document store and, only on success,
// makes it the authoritative in-memory state. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, next []model.FavoriteEntry) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	if err := s.kv.Set(ctx, StorageKey, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist favorites")
		return fmt.Errorf("failed to persist favorites: %w", err)
	}

	s.entries = next
	return nil
}
