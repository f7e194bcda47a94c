package handlers

import (
	"context"

	"github.com/mauv0809/riverwatch/internal/war"
)

// Scanner reconciles the live week.
type Scanner interface {
	Reconcile(ctx context.Context, dryRun bool) (*war.ReconcileResult, error)
}

// HistoryImporter reloads settled weeks from the race log.
type HistoryImporter interface {
	Import(ctx context.Context, refresh, dryRun bool) (*war.ImportResult, error)
}

// Reports builds the read-only views.
type Reports interface {
	Week(ctx context.Context) (*war.WeekReport, error)
	Today(ctx context.Context) (*war.TodayReport, error)
	History(ctx context.Context) (*war.HistoryReport, error)
}
