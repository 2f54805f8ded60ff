package journal

import (
	"testing"
	"time"

	"dummy-data/internal/domain/model"
	"dummy-data/internal/infra/sqlite"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	store, err := NewSQLStore(t.Context(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStore_RecordAndList(t *testing.T) {
	store := newStore(t)
	base := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	first := Entry{
		ID:        uuid.New(),
		Operation: model.OpLoadOrders,
		ShopID:    "shop-1",
		Severity:  model.SeveritySuccess,
		Message:   "Successfully created 3 orders.",
		SettledAt: base,
	}
	second := Entry{
		ID:        uuid.New(),
		Operation: model.OpRemoveAllData,
		ShopID:    "shop-1",
		Severity:  model.SeverityError,
		Message:   "Couldn't remove any data.",
		SettledAt: base.Add(time.Minute),
	}
	require.NoError(t, store.Record(t.Context(), first))
	require.NoError(t, store.Record(t.Context(), second))

	entries, err := store.List(t.Context(), 10)
	require.NoError(t, err)
	if diff := cmp.Diff([]Entry{second, first}, entries); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}

	entries, err = store.List(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second.ID, entries[0].ID)
}

func TestSQLStore_RecordFillsDefaults(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Record(t.Context(), Entry{
		Operation: model.OpLoadProductImages,
		ShopID:    "shop-2",
		Severity:  model.SeveritySuccess,
		Message:   "Successfully inserted product images.",
	}))

	entries, err := store.List(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEqual(t, uuid.Nil, entries[0].ID)
	assert.False(t, entries[0].SettledAt.IsZero())
}

func TestNewSQLStore_NilDB(t *testing.T) {
	_, err := NewSQLStore(t.Context(), nil)
	assert.Error(t, err)
}
