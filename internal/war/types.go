package war

import (
	"errors"
	"time"

	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/pubsub"
	"github.com/mauv0809/riverwatch/internal/royale"
)

// ErrFetchFailed wraps every failure to read from the game API.
var ErrFetchFailed = errors.New("failed to fetch from the game API")

// Reconciler merges the live race snapshot into the counter store.
type Reconciler struct {
	store   Store
	client  royale.RoyaleClient
	metrics metrics.Metrics
	pubsub  pubsub.PubSubClient
	now     func() time.Time
}

// Importer materializes finished races from the race log.
type Importer struct {
	store   Store
	client  royale.RoyaleClient
	metrics metrics.Metrics
	pubsub  pubsub.PubSubClient
	clanTag string
	limit   int
}

// Reporter builds the read-side views shown in chat and on the dashboard.
type Reporter struct {
	store  Store
	client royale.RoyaleClient
	now    func() time.Time
}

// WeekPlan is the full set of writes for one reconciliation of the live week.
type WeekPlan struct {
	Week          clan.WeekLabel
	CurrentDay    int
	DecksPossible int
	Players       []clan.Player
	Counters      []clan.WeeklyCounter
}

// ReconcileResult reports what a reconciliation wrote.
type ReconcileResult struct {
	RunID         string         `json:"run_id"`
	Week          clan.WeekLabel `json:"week"`
	CurrentDay    int            `json:"current_day"`
	DecksPossible int            `json:"decks_possible"`
	Inserted      int            `json:"inserted"`
	Updated       int            `json:"updated"`
	DryRun        bool           `json:"dry_run"`
}

// ImportResult reports what a historical import wrote.
type ImportResult struct {
	RunID   string `json:"run_id"`
	Weeks   int    `json:"weeks"`
	Rows    int    `json:"rows"`
	Skipped int    `json:"skipped"`
	Deleted int64  `json:"deleted"`
	Refresh bool   `json:"refresh"`
	DryRun  bool   `json:"dry_run"`
}

// WeekRow is one member's progress in the live week.
type WeekRow struct {
	Tag       string      `json:"tag"`
	Name      string      `json:"name"`
	Status    clan.Status `json:"status"`
	DecksUsed int         `json:"decks_used"`
	Fame      int         `json:"fame"`
}

// WeekReport is the live weekly standing of the current roster.
type WeekReport struct {
	Week          clan.WeekLabel `json:"week"`
	CurrentDay    int            `json:"current_day"`
	DecksPossible int            `json:"decks_possible"`
	Rows          []WeekRow      `json:"rows"`
}

// TodayRow is one member's attacks on the current battle day.
type TodayRow struct {
	Tag        string      `json:"tag"`
	Name       string      `json:"name"`
	Status     clan.Status `json:"status"`
	DecksToday int         `json:"decks_today"`
}

// TodayReport lists today's attacks, fewest first.
type TodayReport struct {
	Day        int        `json:"day"`
	Training   bool       `json:"training"`
	BattleOver bool       `json:"battle_over"`
	Rows       []TodayRow `json:"rows"`
}

// HistoryRow is one current member's totals over the imported weeks.
type HistoryRow struct {
	Tag           string      `json:"tag"`
	Name          string      `json:"name"`
	Status        clan.Status `json:"status"`
	DecksUsed     int         `json:"decks_used"`
	DecksPossible int         `json:"decks_possible"`
	Fame          int         `json:"fame"`
	Weeks         int         `json:"weeks"`
	Participation float64     `json:"participation"`
	New           bool        `json:"new"`
}

// HistoryReport summarizes the settled weeks for the current roster.
type HistoryReport struct {
	// Weeks counts the settled weeks in the store, whoever played them.
	Weeks int          `json:"weeks"`
	Rows  []HistoryRow `json:"rows"`
}
