package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncScansRun()
	IncImportsRun()
	IncAPIFailures()
	ObserveScanDuration(duration float64)
	AddCounterWrites(inserted, updated int)
	IncCommandsHandled(command string)
	IncNotifSent(channel string)
	IncNotifFailed(channel string)
	SetStartupTime(duration float64)
}

// MetricsStore persists usage counters across restarts.
type MetricsStore interface {
	Increment(key string)
	Add(key string, delta int)
	GetAll() (map[string]int, error)
}
