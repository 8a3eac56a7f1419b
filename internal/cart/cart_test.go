package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daggys-menu/internal/kvstore"
	"daggys-menu/internal/model"
)

var (
	burger = model.MenuItem{ID: "1", Name: "Classic Burger", Price: "$12.99", Icon: "fast-food"}
	juice  = model.MenuItem{ID: "8", Name: "Fresh Juice", Price: "$4.99", Icon: "wine"}
)

func newTestStore(t *testing.T) (*Store, *kvstore.MemoryStore) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	s := New(kv, zerolog.Nop())
	require.NoError(t, s.Load(context.Background()))
	return s, kv
}

func TestAdd_MergesByID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 2))
	require.NoError(t, s.Add(ctx, burger, 3))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAdd_AppendsNewLine(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 1))
	require.NoError(t, s.Add(ctx, juice, 2))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "8", items[1].ID)
}

func TestCart_NeverHoldsDuplicateIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// An arbitrary mutation sequence must never produce two lines with one id.
	require.NoError(t, s.Add(ctx, burger, 1))
	require.NoError(t, s.Add(ctx, juice, 1))
	require.NoError(t, s.Add(ctx, burger, 4))
	require.NoError(t, s.SetQuantity(ctx, "8", 3))
	require.NoError(t, s.Remove(ctx, "1"))
	require.NoError(t, s.Add(ctx, burger, 2))

	seen := make(map[string]bool)
	for _, line := range s.Items() {
		assert.False(t, seen[line.ID], "duplicate id %s", line.ID)
		seen[line.ID] = true
	}
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 1))
	require.NoError(t, s.Remove(ctx, "1"))
	assert.Equal(t, 0, s.Len())
}

func TestRemove_AbsentIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 1))
	require.NoError(t, s.Remove(ctx, "999"))
	assert.Equal(t, 1, s.Len())
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantUnits int
	}{
		{
			name:      "Positive quantity overwrites",
			quantity:  7,
			wantLines: 1,
			wantUnits: 7,
		},
		{
			name:      "Zero removes the line",
			quantity:  0,
			wantLines: 0,
			wantUnits: 0,
		},
		{
			name:      "Negative removes the line",
			quantity:  -2,
			wantLines: 0,
			wantUnits: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			ctx := context.Background()

			require.NoError(t, s.Add(ctx, burger, 2))
			require.NoError(t, s.SetQuantity(ctx, "1", tt.quantity))

			assert.Equal(t, tt.wantLines, s.Len())
			assert.Equal(t, tt.wantUnits, s.ItemCount())
		})
	}
}

func TestSetQuantity_AbsentIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 2))
	require.NoError(t, s.SetQuantity(ctx, "999", 5))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 2))
	require.NoError(t, s.Add(ctx, juice, 1))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.ItemCount())
}

func TestTotal(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 2))
	require.NoError(t, s.Add(ctx, juice, 1))

	total, err := s.Total()
	require.NoError(t, err)
	assert.Equal(t, "30.97", total)
}

func TestTotal_EmptyCart(t *testing.T) {
	s, _ := newTestStore(t)

	total, err := s.Total()
	require.NoError(t, err)
	assert.Equal(t, "0.00", total)
}

func TestItemCount(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 2))
	require.NoError(t, s.Add(ctx, juice, 3))

	assert.Equal(t, 5, s.ItemCount())
}

func TestPersistence_RoundTrip(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	ctx := context.Background()

	first := New(kv, zerolog.Nop())
	require.NoError(t, first.Load(ctx))
	require.NoError(t, first.Add(ctx, burger, 2))
	require.NoError(t, first.Add(ctx, juice, 1))

	// A fresh store over the same document sees the identical list.
	second := New(kv, zerolog.Nop())
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, first.Items(), second.Items())
}

func TestFailedWrite_LeavesStateUnchanged(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, burger, 2))

	kv.FailWrites = errors.New("disk full")
	err := s.Add(ctx, juice, 1)
	require.Error(t, err)

	// The in-memory cart is still what was last persisted.
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestLoad_ReadFailureSurfaces(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	kv.FailReads = errors.New("io error")

	s := New(kv, zerolog.Nop())
	assert.Error(t, s.Load(context.Background()))
}
