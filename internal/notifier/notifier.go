package notifier

import (
	"context"

	"github.com/mauv0809/riverwatch/internal/war"
)

// Notifier defines a high-level interface for announcing the outcome of background runs.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendScanSummary(ctx context.Context, result *war.ReconcileResult, dryRun bool) error
	SendImportSummary(ctx context.Context, result *war.ImportResult, status string, dryRun bool) error
}
