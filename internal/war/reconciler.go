package war

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/pubsub"
	"github.com/mauv0809/riverwatch/internal/royale"
)

// NewReconciler creates a new Reconciler.
func NewReconciler(store Store, client royale.RoyaleClient, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Reconciler {
	return &Reconciler{
		store:   store,
		client:  client,
		metrics: metrics,
		pubsub:  pubsub,
		now:     time.Now,
	}
}

// PlanCurrentWeek computes the counters for every roster member. Members who have not
// attacked yet are recorded with zero decks and zero fame.
func PlanCurrentWeek(roster []royale.Member, participants map[string]royale.Participant, periodLogsCount int, week clan.WeekLabel) WeekPlan {
	day := InferCurrentDay(periodLogsCount, MaxDecksUsed(participants))
	plan := WeekPlan{
		Week:          week,
		CurrentDay:    day,
		DecksPossible: DecksPossible(day),
		Players:       make([]clan.Player, 0, len(roster)),
		Counters:      make([]clan.WeeklyCounter, 0, len(roster)),
	}
	for _, m := range roster {
		counter := clan.WeeklyCounter{Week: week, PlayerTag: m.Tag, DecksPossible: plan.DecksPossible}
		if p, ok := participants[m.Tag]; ok {
			counter.DecksUsed = max(0, p.DecksUsed)
			counter.Fame = max(0, p.Fame)
		}
		plan.Players = append(plan.Players, clan.Player{Tag: m.Tag, Name: m.Name})
		plan.Counters = append(plan.Counters, counter)
	}
	return plan
}

// Reconcile fetches the live race and upserts one counter per roster member for the
// live week. Running it repeatedly in the same week converges on the latest snapshot.
// With dryRun nothing is written and the result reports the writes that would happen.
func (r *Reconciler) Reconcile(ctx context.Context, dryRun bool) (*ReconcileResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	r.metrics.IncScansRun()
	log.Info("Starting war reconciliation", "run_id", runID, "dry_run", dryRun)

	roster, race, err := fetchSnapshot(ctx, r.client)
	if err != nil {
		r.metrics.IncAPIFailures()
		log.Error("Failed to fetch war snapshot", "run_id", runID, "error", err)
		return nil, err
	}

	week := clan.LiveWeek(race.CreatedDate, r.now())
	plan := PlanCurrentWeek(roster.Members, race.Participants(), len(race.ClosedPeriodLogs()), week)
	result := &ReconcileResult{
		RunID:         runID,
		Week:          week,
		CurrentDay:    plan.CurrentDay,
		DecksPossible: plan.DecksPossible,
		DryRun:        dryRun,
	}

	if dryRun {
		existing, err := r.store.GetWeekCounters(ctx, week)
		if err != nil {
			return nil, fmt.Errorf("failed to read week %s: %w", week, err)
		}
		known := make(map[string]bool, len(existing))
		for _, c := range existing {
			known[c.PlayerTag] = true
		}
		for _, c := range plan.Counters {
			if known[c.PlayerTag] {
				result.Updated++
			} else {
				result.Inserted++
			}
		}
		log.Info("DRY RUN: Skipping counter writes", "run_id", runID, "week", week, "would_insert", result.Inserted, "would_update", result.Updated)
		return result, nil
	}

	summary, err := r.store.ApplyWeek(ctx, plan.Players, plan.Counters, clan.PolicyOverwrite)
	if err != nil {
		log.Error("Failed to write live week", "run_id", runID, "week", week, "error", err)
		return nil, fmt.Errorf("failed to write week %s: %w", week, err)
	}
	result.Inserted = summary.Inserted
	result.Updated = summary.Updated

	r.metrics.AddCounterWrites(summary.Inserted, summary.Updated)
	r.metrics.ObserveScanDuration(time.Since(start).Seconds())

	event := pubsub.WarScanned{
		RunID:         runID,
		Week:          string(week),
		CurrentDay:    plan.CurrentDay,
		DecksPossible: plan.DecksPossible,
		Inserted:      summary.Inserted,
		Updated:       summary.Updated,
	}
	if err := r.pubsub.SendMessage(pubsub.EventWarScanned, event); err != nil {
		log.Error("Failed to publish war-scanned event", "run_id", runID, "error", err)
	}

	log.Info("War reconciliation finished", "run_id", runID, "week", week, "day", plan.CurrentDay, "inserted", summary.Inserted, "updated", summary.Updated)
	return result, nil
}
