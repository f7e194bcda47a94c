package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	scansRun        int
	importsRun      int
	apiFailures     int
	scanDurations   []float64
	inserted        int
	updated         int
	commandsHandled map[string]int
	notifSent       map[string]int
	notifFailed     map[string]int
	startupTime     float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		scanDurations:   make([]float64, 0),
		commandsHandled: make(map[string]int),
		notifSent:       make(map[string]int),
		notifFailed:     make(map[string]int),
	}
}

func (m *Mock) IncScansRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scansRun++
}

func (m *Mock) IncImportsRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importsRun++
}

func (m *Mock) IncAPIFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiFailures++
}

func (m *Mock) ObserveScanDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanDurations = append(m.scanDurations, duration)
}

func (m *Mock) AddCounterWrites(inserted, updated int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserted += inserted
	m.updated += updated
}

func (m *Mock) IncCommandsHandled(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandsHandled[command]++
}

func (m *Mock) IncNotifSent(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent[channel]++
}

func (m *Mock) IncNotifFailed(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed[channel]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// ScansRun returns the number of times IncScansRun was called.
func (m *Mock) ScansRun() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scansRun
}

// ImportsRun returns the number of times IncImportsRun was called.
func (m *Mock) ImportsRun() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importsRun
}

// APIFailures returns the number of times IncAPIFailures was called.
func (m *Mock) APIFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiFailures
}

// CounterWrites returns the summed inserted and updated counts.
func (m *Mock) CounterWrites() (inserted, updated int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserted, m.updated
}

// CommandsHandled returns how often a command was recorded.
func (m *Mock) CommandsHandled(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commandsHandled[command]
}

// NotifSent returns the number of notifications sent on a channel.
func (m *Mock) NotifSent(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent[channel]
}

// NotifFailed returns the number of failed notifications on a channel.
func (m *Mock) NotifFailed(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed[channel]
}

// MockStore is an in-memory MetricsStore for testing.
type MockStore struct {
	mu     sync.Mutex
	values map[string]int
}

var _ MetricsStore = (*MockStore)(nil)

// NewMockStore creates a new in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{values: make(map[string]int)}
}

func (s *MockStore) Increment(key string) {
	s.Add(key, 1)
}

func (s *MockStore) Add(key string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delta != 0 {
		s.values[key] += delta
	}
}

func (s *MockStore) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}
