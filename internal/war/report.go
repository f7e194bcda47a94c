package war

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/royale"
)

// NewReporter creates a new Reporter.
func NewReporter(store Store, client royale.RoyaleClient) *Reporter {
	return &Reporter{
		store:  store,
		client: client,
		now:    time.Now,
	}
}

func (r *Reporter) statuses(ctx context.Context) (map[string]clan.Status, error) {
	players, err := r.store.GetAllPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	statuses := make(map[string]clan.Status, len(players))
	for _, p := range players {
		statuses[p.Tag] = p.Status
	}
	return statuses, nil
}

// Week returns the live standing of every current member, most decks first.
func (r *Reporter) Week(ctx context.Context) (*WeekReport, error) {
	roster, race, err := fetchSnapshot(ctx, r.client)
	if err != nil {
		return nil, err
	}
	statuses, err := r.statuses(ctx)
	if err != nil {
		return nil, err
	}

	participants := race.Participants()
	day := InferCurrentDay(len(race.ClosedPeriodLogs()), MaxDecksUsed(participants))
	report := &WeekReport{
		Week:          clan.LiveWeek(race.CreatedDate, r.now()),
		CurrentDay:    day,
		DecksPossible: DecksPossible(day),
		Rows:          make([]WeekRow, 0, len(roster.Members)),
	}
	for _, m := range roster.Members {
		p := participants[m.Tag]
		report.Rows = append(report.Rows, WeekRow{
			Tag:       m.Tag,
			Name:      m.Name,
			Status:    statuses[m.Tag],
			DecksUsed: p.DecksUsed,
			Fame:      p.Fame,
		})
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].DecksUsed > report.Rows[j].DecksUsed
	})
	return report, nil
}

// Today returns the attacks of every current member on the current battle day, fewest first.
// During training days the report is flagged and has no rows.
func (r *Reporter) Today(ctx context.Context) (*TodayReport, error) {
	roster, race, err := fetchSnapshot(ctx, r.client)
	if err != nil {
		return nil, err
	}
	if race.State == royale.RaceStateMatchmaking {
		return &TodayReport{Training: true, Rows: []TodayRow{}}, nil
	}
	statuses, err := r.statuses(ctx)
	if err != nil {
		return nil, err
	}

	logs := race.ClosedPeriodLogs()
	past := make(map[string]int)
	for _, l := range logs {
		for _, p := range l.Participants {
			past[p.Tag] += p.DecksUsed
		}
	}

	participants := race.Participants()
	report := &TodayReport{
		Day:        len(logs) + 1,
		BattleOver: len(logs)+1 > BattleDays,
		Rows:       make([]TodayRow, 0, len(roster.Members)),
	}
	for _, m := range roster.Members {
		report.Rows = append(report.Rows, TodayRow{
			Tag:        m.Tag,
			Name:       m.Name,
			Status:     statuses[m.Tag],
			DecksToday: decksToday(participants[m.Tag], past[m.Tag]),
		})
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].DecksToday < report.Rows[j].DecksToday
	})
	return report, nil
}

// decksToday prefers the API's own daily counter and otherwise subtracts the decks used on
// closed days from the race total.
func decksToday(p royale.Participant, pastDecks int) int {
	today := p.DecksUsed - pastDecks
	if p.DecksUsedToday != nil {
		today = *p.DecksUsedToday
	}
	return min(DecksPerDay, max(0, today))
}

// History returns the imported-week totals of every current member, most decks first.
// Players who left the clan keep their rows in the store but are not listed.
func (r *Reporter) History(ctx context.Context) (*HistoryReport, error) {
	roster, err := r.client.GetClan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: roster: %w", ErrFetchFailed, err)
	}
	totals, err := r.store.GetHistoricalTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	weeks, err := r.store.GetWeeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load weeks: %w", err)
	}

	members := make(map[string]string, len(roster.Members))
	for _, m := range roster.Members {
		members[m.Tag] = m.Name
	}

	report := &HistoryReport{Rows: []HistoryRow{}}
	for _, w := range weeks {
		if w.IsHistorical() {
			report.Weeks++
		}
	}
	for _, t := range totals {
		rosterName, ok := members[t.Tag]
		if !ok {
			continue
		}
		name := t.Name
		if strings.TrimSpace(name) == "" {
			name = rosterName
		}
		row := HistoryRow{
			Tag:           t.Tag,
			Name:          name,
			Status:        t.Status,
			DecksUsed:     t.DecksUsed,
			DecksPossible: t.DecksPossible,
			Fame:          t.Fame,
			Weeks:         t.Weeks,
			New:           t.Weeks < 2,
		}
		if t.DecksPossible > 0 {
			row.Participation = float64(t.DecksUsed) / float64(t.DecksPossible) * 100
		}
		report.Rows = append(report.Rows, row)
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].DecksUsed > report.Rows[j].DecksUsed
	})
	return report, nil
}
