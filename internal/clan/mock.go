package clan

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the ClanStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetAllPlayersFunc            func(ctx context.Context) ([]Player, error)
	SetStatusFunc                func(ctx context.Context, tag string, status Status) (bool, error)
	SetNoteFunc                  func(ctx context.Context, tag, note string) (bool, error)
	ApplyWeekFunc                func(ctx context.Context, players []Player, counters []WeeklyCounter, policy ConflictPolicy) (UpsertSummary, error)
	GetWeekCountersFunc          func(ctx context.Context, week WeekLabel) ([]WeeklyCounter, error)
	GetWeeksFunc                 func(ctx context.Context) ([]WeekLabel, error)
	DeleteHistoricalCountersFunc func(ctx context.Context) (int64, error)
	GetHistoricalTotalsFunc      func(ctx context.Context) ([]PlayerTotals, error)

	// Call records
	SetStatusCalls []struct {
		Tag    string
		Status Status
	}
	SetNoteCalls []struct {
		Tag  string
		Note string
	}
	ApplyWeekCalls []struct {
		Players  []Player
		Counters []WeeklyCounter
		Policy   ConflictPolicy
	}
	DeleteHistoricalCountersCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetStatusCalls = nil
	m.SetNoteCalls = nil
	m.ApplyWeekCalls = nil
	m.DeleteHistoricalCountersCalls = 0
}

func (m *MockStore) GetAllPlayers(ctx context.Context) ([]Player, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc(ctx)
	}
	return []Player{}, nil
}

func (m *MockStore) SetStatus(ctx context.Context, tag string, status Status) (bool, error) {
	m.mu.Lock()
	m.SetStatusCalls = append(m.SetStatusCalls, struct {
		Tag    string
		Status Status
	}{tag, status})
	m.mu.Unlock()
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, tag, status)
	}
	return true, nil
}

func (m *MockStore) SetNote(ctx context.Context, tag, note string) (bool, error) {
	m.mu.Lock()
	m.SetNoteCalls = append(m.SetNoteCalls, struct {
		Tag  string
		Note string
	}{tag, note})
	m.mu.Unlock()
	if m.SetNoteFunc != nil {
		return m.SetNoteFunc(ctx, tag, note)
	}
	return true, nil
}

func (m *MockStore) ApplyWeek(ctx context.Context, players []Player, counters []WeeklyCounter, policy ConflictPolicy) (UpsertSummary, error) {
	m.mu.Lock()
	m.ApplyWeekCalls = append(m.ApplyWeekCalls, struct {
		Players  []Player
		Counters []WeeklyCounter
		Policy   ConflictPolicy
	}{players, counters, policy})
	m.mu.Unlock()
	if m.ApplyWeekFunc != nil {
		return m.ApplyWeekFunc(ctx, players, counters, policy)
	}
	return UpsertSummary{Inserted: len(counters)}, nil
}

func (m *MockStore) GetWeekCounters(ctx context.Context, week WeekLabel) ([]WeeklyCounter, error) {
	if m.GetWeekCountersFunc != nil {
		return m.GetWeekCountersFunc(ctx, week)
	}
	return []WeeklyCounter{}, nil
}

func (m *MockStore) GetWeeks(ctx context.Context) ([]WeekLabel, error) {
	if m.GetWeeksFunc != nil {
		return m.GetWeeksFunc(ctx)
	}
	return []WeekLabel{}, nil
}

func (m *MockStore) DeleteHistoricalCounters(ctx context.Context) (int64, error) {
	m.mu.Lock()
	m.DeleteHistoricalCountersCalls++
	m.mu.Unlock()
	if m.DeleteHistoricalCountersFunc != nil {
		return m.DeleteHistoricalCountersFunc(ctx)
	}
	return 0, nil
}

func (m *MockStore) GetHistoricalTotals(ctx context.Context) ([]PlayerTotals, error) {
	if m.GetHistoricalTotalsFunc != nil {
		return m.GetHistoricalTotalsFunc(ctx)
	}
	return []PlayerTotals{}, nil
}
