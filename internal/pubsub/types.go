package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// noopClient is used when no GCP project is configured. Events are logged and dropped.
type noopClient struct{}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventWarScanned      EventType = "war-scanned"
	EventHistoryImported EventType = "history-imported"
)

// Job names accepted in a Trigger.
const (
	JobScan    = "scan"
	JobImport  = "import"
	JobRefresh = "refresh"
)

// Trigger asks the service to run a job. It is the payload of pushed trigger messages.
type Trigger struct {
	Job    string `msgpack:"job"`
	RunID  string `msgpack:"run_id"`
	DryRun bool   `msgpack:"dry_run"`
}

// WarScanned is published after a successful current-week reconciliation.
type WarScanned struct {
	RunID         string `msgpack:"run_id"`
	Week          string `msgpack:"week"`
	CurrentDay    int    `msgpack:"current_day"`
	DecksPossible int    `msgpack:"decks_possible"`
	Inserted      int    `msgpack:"inserted"`
	Updated       int    `msgpack:"updated"`
}

// HistoryImported is published after a historical import.
type HistoryImported struct {
	RunID   string `msgpack:"run_id"`
	Weeks   int    `msgpack:"weeks"`
	Rows    int    `msgpack:"rows"`
	Refresh bool   `msgpack:"refresh"`
}
