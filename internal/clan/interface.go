package clan

import "context"

// ClanStore defines the interface for interacting with the clan's player and war data.
type ClanStore interface {
	// Players
	GetAllPlayers(ctx context.Context) ([]Player, error)
	SetStatus(ctx context.Context, tag string, status Status) (bool, error)
	SetNote(ctx context.Context, tag, note string) (bool, error)

	// Weekly counters. Every write goes through ApplyWeek under a ConflictPolicy.
	ApplyWeek(ctx context.Context, players []Player, counters []WeeklyCounter, policy ConflictPolicy) (UpsertSummary, error)
	GetWeekCounters(ctx context.Context, week WeekLabel) ([]WeeklyCounter, error)
	GetWeeks(ctx context.Context) ([]WeekLabel, error)
	DeleteHistoricalCounters(ctx context.Context) (int64, error)
	GetHistoricalTotals(ctx context.Context) ([]PlayerTotals, error)
}
