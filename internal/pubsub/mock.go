package pubsub

import (
	"sync"
)

// MockPubSubClient records the war events a service publishes and decodes pushed
// triggers like the real client. It is safe for concurrent use.
type MockPubSubClient struct {
	mu sync.Mutex

	// SendMessageFunc overrides publishing, e.g. to simulate a topic outage.
	SendMessageFunc func(topic EventType, data any) error
	// ProcessMessageFunc overrides msgpack decoding of pushed payloads.
	ProcessMessageFunc func(data []byte, returnValue any) error

	// Published holds every event in publish order, failed publishes included.
	Published []PublishedEvent
	// Decoded counts the pushed payloads handed to ProcessMessage.
	Decoded int
}

// PublishedEvent is one recorded SendMessage call.
type PublishedEvent struct {
	Topic   EventType
	Payload any
}

// NewMock creates a mock client with nothing published.
func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

// Reset forgets the recorded events.
func (m *MockPubSubClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = nil
	m.Decoded = 0
}

func (m *MockPubSubClient) SendMessage(topic EventType, data any) error {
	m.mu.Lock()
	m.Published = append(m.Published, PublishedEvent{Topic: topic, Payload: data})
	fn := m.SendMessageFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(topic, data)
	}
	return nil
}

func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	m.mu.Lock()
	m.Decoded++
	fn := m.ProcessMessageFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(data, returnValue)
	}
	return decode(data, returnValue)
}

func (m *MockPubSubClient) Close() {}

// WarScanned returns the payloads published on the war-scanned topic.
func (m *MockPubSubClient) WarScanned() []WarScanned {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []WarScanned
	for _, e := range m.Published {
		if ev, ok := e.Payload.(WarScanned); ok && e.Topic == EventWarScanned {
			events = append(events, ev)
		}
	}
	return events
}

// HistoryImported returns the payloads published on the history-imported topic.
func (m *MockPubSubClient) HistoryImported() []HistoryImported {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []HistoryImported
	for _, e := range m.Published {
		if ev, ok := e.Payload.(HistoryImported); ok && e.Topic == EventHistoryImported {
			events = append(events, ev)
		}
	}
	return events
}
