package royale

import "context"

// RoyaleClient defines the interface for interacting with the Clash Royale API.
// This allows for mock implementations to be used in tests.
type RoyaleClient interface {
	GetClan(ctx context.Context) (*Clan, error)
	GetCurrentRiverRace(ctx context.Context) (*RiverRace, error)
	GetRiverRaceLog(ctx context.Context, limit int) ([]RaceLogEntry, error)
}
