package metrics

import (
	"os"
	"testing"

	"github.com/mauv0809/riverwatch/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary SQLite database file for testing.
func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "testdb_metrics_*.db")
	require.NoError(t, err)
	tmpfile.Close()

	db, dbTeardown, err := database.InitDB(tmpfile.Name(), "", "")
	require.NoError(t, err)

	store := New(db)

	teardown := func() {
		dbTeardown()
		os.Remove(tmpfile.Name())
	}

	return store, teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no metrics
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	// 2. Increment a new key
	store.Increment(KeyScansRun)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyScansRun: 1}, metrics)

	// 3. Increment the same key again
	store.Increment(KeyScansRun)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyScansRun: 2}, metrics)

	// 4. Add to a different key
	store.Add(KeyRowsInserted, 12)
	store.Add(KeyRowsInserted, 0)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyScansRun:     2,
		KeyRowsInserted: 12,
	}, metrics)
}

func TestRecordScanAndImport(t *testing.T) {
	store := NewMockStore()

	RecordScan(store, 3, 0)
	RecordScan(store, 0, 3)
	RecordImport(store, 40)
	RecordScan(nil, 1, 1)

	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyScansRun:     2,
		KeyRowsInserted: 3,
		KeyRowsUpdated:  3,
		KeyImportsRun:   1,
		KeyRowsImported: 40,
	}, metrics)
}
