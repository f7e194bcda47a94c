package royale

import (
	"errors"
	"strings"
)

var (
	// ErrUnexpectedStatus is returned when the API answers with anything but 200.
	ErrUnexpectedStatus = errors.New("received non-OK HTTP status")
	// ErrMalformedResponse is returned when a required top-level list is missing.
	ErrMalformedResponse = errors.New("malformed API response")
)

// RaceState is the state of the current river race.
type RaceState string

const (
	RaceStateMatchmaking RaceState = "matchmaking"
	RaceStateMatched     RaceState = "matched"
	RaceStateFull        RaceState = "full"
	RaceStateEnded       RaceState = "ended"
)

// Member is a clan member from the roster.
type Member struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	ExpLevel int    `json:"expLevel"`
	Trophies int    `json:"trophies"`
}

// Clan is the clan profile including its member list.
type Clan struct {
	Tag     string   `json:"tag"`
	Name    string   `json:"name"`
	Members []Member `json:"memberList"`
}

// Participant holds a player's war activity for one race.
// DecksUsedToday is nil when the API does not report it.
type Participant struct {
	Tag            string `json:"tag"`
	Name           string `json:"name"`
	Fame           int    `json:"fame"`
	RepairPoints   int    `json:"repairPoints"`
	BoatAttacks    int    `json:"boatAttacks"`
	DecksUsed      int    `json:"decksUsed"`
	DecksUsedToday *int   `json:"decksUsedToday"`
}

// PeriodLog is one closed war day.
type PeriodLog struct {
	PeriodIndex  int           `json:"periodIndex"`
	Participants []Participant `json:"participants"`
}

// RaceClan is a clan's standing inside a river race.
type RaceClan struct {
	Tag          string        `json:"tag"`
	Name         string        `json:"name"`
	Fame         int           `json:"fame"`
	Participants []Participant `json:"participants"`
	PeriodLogs   []PeriodLog   `json:"periodLogs"`
}

// RiverRace is the current river race as returned by /currentriverrace.
type RiverRace struct {
	State        RaceState   `json:"state"`
	SectionIndex int         `json:"sectionIndex"`
	PeriodIndex  int         `json:"periodIndex"`
	PeriodType   string      `json:"periodType"`
	CreatedDate  string      `json:"createdDate"`
	Clan         RaceClan    `json:"clan"`
	PeriodLogs   []PeriodLog `json:"periodLogs"`
}

// ClosedPeriodLogs returns the closed war days of the race. The API reports them at the
// top level; older payloads nest them under the clan.
func (r *RiverRace) ClosedPeriodLogs() []PeriodLog {
	if len(r.PeriodLogs) > 0 {
		return r.PeriodLogs
	}
	return r.Clan.PeriodLogs
}

// Participants returns the participants keyed by tag.
func (r *RiverRace) Participants() map[string]Participant {
	participants := make(map[string]Participant, len(r.Clan.Participants))
	for _, p := range r.Clan.Participants {
		participants[p.Tag] = p
	}
	return participants
}

// Standing is one clan's final position in a finished race.
type Standing struct {
	Rank         int      `json:"rank"`
	TrophyChange int      `json:"trophyChange"`
	Clan         RaceClan `json:"clan"`
}

// RaceLogEntry is a finished race from /riverracelog.
type RaceLogEntry struct {
	SeasonID     int        `json:"seasonId"`
	SectionIndex int        `json:"sectionIndex"`
	CreatedDate  string     `json:"createdDate"`
	Standings    []Standing `json:"standings"`
}

// StandingFor returns the standing of the clan with the given tag, or nil when the clan
// did not take part in the race.
func (e *RaceLogEntry) StandingFor(clanTag string) *Standing {
	want := NormalizeTag(clanTag)
	for i := range e.Standings {
		if NormalizeTag(e.Standings[i].Clan.Tag) == want {
			return &e.Standings[i]
		}
	}
	return nil
}

// NormalizeTag upper-cases a player or clan tag and ensures the leading '#'.
func NormalizeTag(tag string) string {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}

type raceLogResponse struct {
	Items []RaceLogEntry `json:"items"`
}
