package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "war_history", "metrics"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_WarHistoryIsUniquePerWeekAndPlayer(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO war_history (week_label, player_tag, decks_used, decks_possible, fame) VALUES ('Week-20240101', '#A', 1, 4, 100)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO war_history (week_label, player_tag, decks_used, decks_possible, fame) VALUES ('Week-20240101', '#A', 2, 4, 200)`)
	assert.Error(t, err, "A second row for the same week and player should violate the unique constraint")
}

func TestInitDB_IsRepeatable(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	// Running the migrations again on an up-to-date schema is a no-op.
	require.NoError(t, migrate(db))
}
