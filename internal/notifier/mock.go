package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/riverwatch/internal/war"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendScanSummaryFunc   func(ctx context.Context, result *war.ReconcileResult, dryRun bool) error
	SendImportSummaryFunc func(ctx context.Context, result *war.ImportResult, status string, dryRun bool) error

	// Call records
	SendScanSummaryCalls []struct {
		Result *war.ReconcileResult
		DryRun bool
	}
	SendImportSummaryCalls []struct {
		Result *war.ImportResult
		Status string
		DryRun bool
	}
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScanSummaryCalls = nil
	m.SendImportSummaryCalls = nil
}

func (m *Mock) SendScanSummary(ctx context.Context, result *war.ReconcileResult, dryRun bool) error {
	m.mu.Lock()
	m.SendScanSummaryCalls = append(m.SendScanSummaryCalls, struct {
		Result *war.ReconcileResult
		DryRun bool
	}{result, dryRun})
	fn := m.SendScanSummaryFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, result, dryRun)
	}
	return nil
}

func (m *Mock) SendImportSummary(ctx context.Context, result *war.ImportResult, status string, dryRun bool) error {
	m.mu.Lock()
	m.SendImportSummaryCalls = append(m.SendImportSummaryCalls, struct {
		Result *war.ImportResult
		Status string
		DryRun bool
	}{result, status, dryRun})
	fn := m.SendImportSummaryFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, result, status, dryRun)
	}
	return nil
}
