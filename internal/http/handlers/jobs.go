package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/notifier"
	"github.com/mauv0809/riverwatch/internal/war"
)

// ScanHandler reconciles the live week and announces the result.
func ScanHandler(scanner Scanner, notifier notifier.Notifier, usage metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting war scan...")
		result, err := runScan(r.Context(), scanner, notifier, usage, IsDryRunFromContext(r))
		if err != nil {
			http.Error(w, "Failed to scan the current war", statusFor(err))
			return
		}
		writeJSON(w, result)
	}
}

// ImportHandler reloads the race history. With refresh=true stored history is replaced.
func ImportHandler(importer HistoryImporter, notifier notifier.Notifier, usage metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh := r.URL.Query().Get("refresh") == "true"
		log.Info("Starting history import...", "refresh", refresh)
		result, err := runImport(r.Context(), importer, notifier, usage, refresh, IsDryRunFromContext(r))
		if err != nil {
			http.Error(w, war.ImportStatus(result, err), statusFor(err))
			return
		}
		writeJSON(w, result)
	}
}

func runScan(ctx context.Context, scanner Scanner, notifier notifier.Notifier, usage metrics.MetricsStore, dryRun bool) (*war.ReconcileResult, error) {
	result, err := scanner.Reconcile(ctx, dryRun)
	if err != nil {
		log.Error("War scan failed", "error", err)
		return nil, err
	}
	if !dryRun {
		metrics.RecordScan(usage, result.Inserted, result.Updated)
	}
	if err := notifier.SendScanSummary(ctx, result, dryRun); err != nil {
		log.Error("Failed to announce scan", "run_id", result.RunID, "error", err)
	}
	log.Info("War scan finished", "run_id", result.RunID, "week", result.Week, "inserted", result.Inserted, "updated", result.Updated)
	return result, nil
}

func runImport(ctx context.Context, importer HistoryImporter, notifier notifier.Notifier, usage metrics.MetricsStore, refresh, dryRun bool) (*war.ImportResult, error) {
	result, err := importer.Import(ctx, refresh, dryRun)
	status := war.ImportStatus(result, err)
	if err != nil {
		log.Error("History import failed", "error", err)
		return nil, err
	}
	if !dryRun {
		metrics.RecordImport(usage, result.Rows)
	}
	if err := notifier.SendImportSummary(ctx, result, status, dryRun); err != nil {
		log.Error("Failed to announce import", "run_id", result.RunID, "error", err)
	}
	return result, nil
}
