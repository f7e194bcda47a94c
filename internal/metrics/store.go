package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// store persists usage counters in the metrics table.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new metrics Store.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment upserts a metric key and increments its value by one.
func (s *store) Increment(key string) {
	s.Add(key, 1)
}

// Add upserts a metric key and increments its value by delta. Zero deltas are skipped.
func (s *store) Add(key string, delta int) {
	if delta == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = value + excluded.value;
	`, key, delta)
	if err != nil {
		log.Error("Failed to increment metric", "error", err, "key", key)
		return
	}
	log.Debug("Incremented metric", "key", key, "delta", delta)
}

// GetAll returns all metrics from the database.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metrics[key] = value
	}
	return metrics, rows.Err()
}

// RecordScan persists the outcome of a live reconciliation in the usage table.
func RecordScan(s MetricsStore, inserted, updated int) {
	if s == nil {
		return
	}
	s.Increment(KeyScansRun)
	s.Add(KeyRowsInserted, inserted)
	s.Add(KeyRowsUpdated, updated)
}

// RecordImport persists the outcome of a historical import in the usage table.
func RecordImport(s MetricsStore, rows int) {
	if s == nil {
		return
	}
	s.Increment(KeyImportsRun)
	s.Add(KeyRowsImported, rows)
}
