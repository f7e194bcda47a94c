package war

import (
	"context"

	"github.com/mauv0809/riverwatch/internal/clan"
)

// Store defines the database operations required by the war services.
type Store interface {
	GetAllPlayers(ctx context.Context) ([]clan.Player, error)
	ApplyWeek(ctx context.Context, players []clan.Player, counters []clan.WeeklyCounter, policy clan.ConflictPolicy) (clan.UpsertSummary, error)
	GetWeekCounters(ctx context.Context, week clan.WeekLabel) ([]clan.WeeklyCounter, error)
	GetWeeks(ctx context.Context) ([]clan.WeekLabel, error)
	DeleteHistoricalCounters(ctx context.Context) (int64, error)
	GetHistoricalTotals(ctx context.Context) ([]clan.PlayerTotals, error)
}
