package clan

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrInvalidStatus is returned when an admin sets a status outside the known range.
var ErrInvalidStatus = errors.New("invalid player status")

// store handles all database operations for the clan.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status is the admin-assigned marker shown next to a player in every report.
type Status int

const (
	StatusNeutral Status = iota
	StatusGreen
	StatusRed
	StatusBlack
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s >= StatusNeutral && s <= StatusBlack
}

// Icon returns the emoji used for the status in chat and on the dashboard.
func (s Status) Icon() string {
	switch s {
	case StatusGreen:
		return "🟢"
	case StatusRed:
		return "🔴"
	case StatusBlack:
		return "⚫️"
	default:
		return "⚪️"
	}
}

// Player represents a clan member known to the store.
type Player struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Status Status `json:"status"`
	Note   string `json:"note"`
}

// WeeklyCounter is one player's war activity for one week.
type WeeklyCounter struct {
	Week          WeekLabel `json:"week"`
	PlayerTag     string    `json:"player_tag"`
	DecksUsed     int       `json:"decks_used"`
	DecksPossible int       `json:"decks_possible"`
	Fame          int       `json:"fame"`
}

// ConflictPolicy selects how a counter write resolves an existing (week, player) row.
type ConflictPolicy int

const (
	// PolicyOverwrite updates the existing row in place. Used for the live week, which is
	// rescanned many times. Player names are refreshed.
	PolicyOverwrite ConflictPolicy = iota
	// PolicyReplace deletes and reinserts the row. Used for settled historical weeks.
	// Players are only inserted when absent.
	PolicyReplace
)

func (p ConflictPolicy) String() string {
	switch p {
	case PolicyOverwrite:
		return "overwrite"
	case PolicyReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// UpsertOutcome reports whether a counter write created or updated a row.
type UpsertOutcome int

const (
	OutcomeInserted UpsertOutcome = iota
	OutcomeUpdated
)

// UpsertSummary counts the outcomes of a batch write.
type UpsertSummary struct {
	Inserted int
	Updated  int
}

// PlayerTotals aggregates a player's settled historical weeks.
type PlayerTotals struct {
	Tag           string `json:"tag"`
	Name          string `json:"name"`
	Status        Status `json:"status"`
	DecksUsed     int    `json:"decks_used"`
	DecksPossible int    `json:"decks_possible"`
	Fame          int    `json:"fame"`
	Weeks         int    `json:"weeks"`
}
