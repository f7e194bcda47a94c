package war

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/database"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (clan.ClanStore, *sql.DB) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return clan.New(db), db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM war_history`).Scan(&n))
	return n
}

func weekCounters(t *testing.T, store clan.ClanStore, week clan.WeekLabel) []clan.WeeklyCounter {
	t.Helper()
	counters, err := store.GetWeekCounters(context.Background(), week)
	require.NoError(t, err)
	return counters
}

// playerByTag returns the stored player with the given tag.
func playerByTag(t *testing.T, store clan.ClanStore, tag string) clan.Player {
	t.Helper()
	players, err := store.GetAllPlayers(context.Background())
	require.NoError(t, err)
	for _, p := range players {
		if p.Tag == tag {
			return p
		}
	}
	require.Failf(t, "player not stored", "tag %s", tag)
	return clan.Player{}
}

func intPtr(v int) *int {
	return &v
}
