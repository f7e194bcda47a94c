package royale

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the RoyaleClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetClanFunc             func(ctx context.Context) (*Clan, error)
	GetCurrentRiverRaceFunc func(ctx context.Context) (*RiverRace, error)
	GetRiverRaceLogFunc     func(ctx context.Context, limit int) ([]RaceLogEntry, error)

	// Call records
	GetClanCalls             int
	GetCurrentRiverRaceCalls int
	GetRiverRaceLogCalls     []int
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetClanCalls = 0
	m.GetCurrentRiverRaceCalls = 0
	m.GetRiverRaceLogCalls = nil
}

func (m *MockClient) GetClan(ctx context.Context) (*Clan, error) {
	m.mu.Lock()
	m.GetClanCalls++
	fn := m.GetClanFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return &Clan{Members: []Member{}}, nil
}

func (m *MockClient) GetCurrentRiverRace(ctx context.Context) (*RiverRace, error) {
	m.mu.Lock()
	m.GetCurrentRiverRaceCalls++
	fn := m.GetCurrentRiverRaceFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return &RiverRace{}, nil
}

func (m *MockClient) GetRiverRaceLog(ctx context.Context, limit int) ([]RaceLogEntry, error) {
	m.mu.Lock()
	m.GetRiverRaceLogCalls = append(m.GetRiverRaceLogCalls, limit)
	fn := m.GetRiverRaceLogFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, limit)
	}
	return []RaceLogEntry{}, nil
}
