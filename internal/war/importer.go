package war

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/pubsub"
	"github.com/mauv0809/riverwatch/internal/royale"
)

// NewImporter creates a new Importer for clanTag. A non-positive limit uses DefaultHistoryLimit.
func NewImporter(store Store, client royale.RoyaleClient, metrics metrics.Metrics, pubsub pubsub.PubSubClient, clanTag string, limit int) *Importer {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Importer{
		store:   store,
		client:  client,
		metrics: metrics,
		pubsub:  pubsub,
		clanTag: royale.NormalizeTag(clanTag),
		limit:   limit,
	}
}

// PlanHistoricalWeek computes the writes for one finished race. It reports false when the
// clan has no standing in the race.
func PlanHistoricalWeek(entry royale.RaceLogEntry, clanTag string) (WeekPlan, bool) {
	standing := entry.StandingFor(clanTag)
	if standing == nil {
		return WeekPlan{}, false
	}
	week := clan.HistoricalWeek(entry.SectionIndex, entry.CreatedDate)
	participants := standing.Clan.Participants
	plan := WeekPlan{
		Week:          week,
		CurrentDay:    BattleDays,
		DecksPossible: FullQuota,
		Players:       make([]clan.Player, 0, len(participants)),
		Counters:      make([]clan.WeeklyCounter, 0, len(participants)),
	}
	for _, p := range participants {
		plan.Players = append(plan.Players, clan.Player{Tag: p.Tag, Name: p.Name})
		plan.Counters = append(plan.Counters, clan.WeeklyCounter{
			Week:          week,
			PlayerTag:     p.Tag,
			DecksUsed:     max(0, p.DecksUsed),
			DecksPossible: FullQuota,
			Fame:          max(0, p.Fame),
		})
	}
	return plan, true
}

// Import fetches the race log and writes one counter per (week, participant) for every
// race the clan took part in. Races without the clan's standing are skipped.
//
// Each race is written in its own transaction; a failure part way leaves the races already
// written in place. With refresh the existing historical weeks are deleted first, once the
// race log has been fetched successfully.
func (i *Importer) Import(ctx context.Context, refresh, dryRun bool) (*ImportResult, error) {
	runID := uuid.NewString()
	i.metrics.IncImportsRun()
	log.Info("Starting history import", "run_id", runID, "refresh", refresh, "dry_run", dryRun, "limit", i.limit)

	entries, err := i.client.GetRiverRaceLog(ctx, i.limit)
	if err != nil {
		i.metrics.IncAPIFailures()
		log.Error("Failed to fetch river race log", "run_id", runID, "error", err)
		return nil, fmt.Errorf("%w: race log: %w", ErrFetchFailed, err)
	}

	result := &ImportResult{RunID: runID, Refresh: refresh, DryRun: dryRun}
	if refresh && !dryRun {
		deleted, err := i.store.DeleteHistoricalCounters(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to clear history: %w", err)
		}
		result.Deleted = deleted
	}

	for _, entry := range entries {
		plan, ok := PlanHistoricalWeek(entry, i.clanTag)
		if !ok {
			result.Skipped++
			log.Debug("Clan not in race standings, skipping", "run_id", runID, "section", entry.SectionIndex, "created", entry.CreatedDate)
			continue
		}
		if !dryRun {
			summary, err := i.store.ApplyWeek(ctx, plan.Players, plan.Counters, clan.PolicyReplace)
			if err != nil {
				log.Error("Failed to write historical week", "run_id", runID, "week", plan.Week, "error", err)
				return result, fmt.Errorf("failed to write week %s: %w", plan.Week, err)
			}
			i.metrics.AddCounterWrites(summary.Inserted, summary.Updated)
		}
		result.Weeks++
		result.Rows += len(plan.Counters)
	}

	if !dryRun {
		event := pubsub.HistoryImported{RunID: runID, Weeks: result.Weeks, Rows: result.Rows, Refresh: refresh}
		if err := i.pubsub.SendMessage(pubsub.EventHistoryImported, event); err != nil {
			log.Error("Failed to publish history-imported event", "run_id", runID, "error", err)
		}
	}

	log.Info("History import finished", "run_id", runID, "weeks", result.Weeks, "rows", result.Rows, "skipped", result.Skipped)
	return result, nil
}

// SyncHistory runs an import and renders its outcome as a status line for chat.
func (i *Importer) SyncHistory(ctx context.Context, refresh bool) string {
	result, err := i.Import(ctx, refresh, false)
	return ImportStatus(result, err)
}

// ImportStatus renders an import outcome as a status line.
func ImportStatus(result *ImportResult, err error) string {
	switch {
	case errors.Is(err, ErrFetchFailed):
		return "❌ API error: unable to download the race history."
	case err != nil:
		return fmt.Sprintf("❌ Import failed: %v", err)
	default:
		return fmt.Sprintf("✅ History restored: %d past weeks loaded.", result.Weeks)
	}
}
