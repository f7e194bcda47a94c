package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	ScansRun           prometheus.Counter
	ImportsRun         prometheus.Counter
	APIFailures        prometheus.Counter
	ScanDuration       prometheus.Histogram
	CounterWrites      *prometheus.CounterVec
	CommandsHandled    *prometheus.CounterVec
	NotifSent          *prometheus.CounterVec
	NotifFailed        *prometheus.CounterVec
	StartupTimeSeconds prometheus.Gauge
}

// Keys used in the persistent usage table.
const (
	KeyScansRun      = "scans_run"
	KeyImportsRun    = "imports_run"
	KeyRowsInserted  = "rows_inserted"
	KeyRowsUpdated   = "rows_updated"
	KeyRowsImported  = "rows_imported"
	KeyCommandPrefix = "command_"
)
