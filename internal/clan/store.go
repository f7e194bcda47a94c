package clan

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// historicalFilter is the SQL form of WeekLabel.IsHistorical.
const historicalFilter = `week_label GLOB 'W[0-9]*'`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new ClanStore.
func New(db *sql.DB) ClanStore {
	return &store{
		db: db,
	}
}

// Ensure store implements the ClanStore interface.
var _ ClanStore = (*store)(nil)

// upsertPlayer inserts a player or refreshes the name of an existing one.
// Status and note are admin-owned and never touched here.
func upsertPlayer(ctx context.Context, db execer, tag, name string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO players (tag, name) VALUES (?, ?)
		ON CONFLICT(tag) DO UPDATE SET name = excluded.name`, tag, name)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", tag, err)
	}
	return nil
}

// ensurePlayer inserts a player only if the tag is unknown.
func ensurePlayer(ctx context.Context, db execer, tag, name string) error {
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO players (tag, name) VALUES (?, ?)`, tag, name)
	if err != nil {
		return fmt.Errorf("failed to insert player %s: %w", tag, err)
	}
	return nil
}

// GetAllPlayers returns every known player ordered by name.
func (s *store) GetAllPlayers(ctx context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT tag, name, status, admin_notes FROM players ORDER BY name COLLATE NOCASE, tag`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.Tag, &p.Name, &p.Status, &p.Note); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// SetStatus updates a player's admin status. It reports false if the tag is unknown.
func (s *store) SetStatus(ctx context.Context, tag string, status Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidStatus, status)
	}
	return s.updatePlayer(ctx, `UPDATE players SET status = ? WHERE tag = ?`, int(status), tag)
}

// SetNote replaces a player's admin note. It reports false if the tag is unknown.
func (s *store) SetNote(ctx context.Context, tag, note string) (bool, error) {
	return s.updatePlayer(ctx, `UPDATE players SET admin_notes = ? WHERE tag = ?`, note, tag)
}

func (s *store) updatePlayer(ctx context.Context, query string, value any, tag string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, query, value, tag)
	if err != nil {
		return false, fmt.Errorf("failed to update player %s: %w", tag, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ApplyWeek writes the players and counters of one week in a single transaction.
// Under PolicyOverwrite player names are refreshed; under PolicyReplace players are
// only inserted when absent.
func (s *store) ApplyWeek(ctx context.Context, players []Player, counters []WeeklyCounter, policy ConflictPolicy) (UpsertSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary UpsertSummary
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, err
	}

	for _, p := range players {
		if policy == PolicyOverwrite {
			err = upsertPlayer(ctx, tx, p.Tag, p.Name)
		} else {
			err = ensurePlayer(ctx, tx, p.Tag, p.Name)
		}
		if err != nil {
			tx.Rollback()
			return UpsertSummary{}, err
		}
	}

	for _, c := range counters {
		outcome, err := upsertCounter(ctx, tx, c, policy)
		if err != nil {
			tx.Rollback()
			return UpsertSummary{}, err
		}
		if outcome == OutcomeInserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return UpsertSummary{}, fmt.Errorf("failed to commit week: %w", err)
	}
	log.Debug("Applied week", "players", len(players), "counters", len(counters), "policy", policy, "inserted", summary.Inserted, "updated", summary.Updated)
	return summary, nil
}

func upsertCounter(ctx context.Context, db execer, c WeeklyCounter, policy ConflictPolicy) (UpsertOutcome, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM war_history WHERE week_label = ? AND player_tag = ?)`,
		string(c.Week), c.PlayerTag).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check counter %s/%s: %w", c.Week, c.PlayerTag, err)
	}

	var query string
	switch policy {
	case PolicyOverwrite:
		query = `
			INSERT INTO war_history (week_label, player_tag, decks_used, decks_possible, fame)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(week_label, player_tag) DO UPDATE SET
				decks_used = excluded.decks_used,
				decks_possible = excluded.decks_possible,
				fame = excluded.fame`
	case PolicyReplace:
		query = `
			INSERT OR REPLACE INTO war_history (week_label, player_tag, decks_used, decks_possible, fame)
			VALUES (?, ?, ?, ?, ?)`
	default:
		return 0, fmt.Errorf("unknown conflict policy %d", policy)
	}

	if _, err := db.ExecContext(ctx, query, string(c.Week), c.PlayerTag, c.DecksUsed, c.DecksPossible, c.Fame); err != nil {
		return 0, fmt.Errorf("failed to write counter %s/%s: %w", c.Week, c.PlayerTag, err)
	}
	if exists {
		return OutcomeUpdated, nil
	}
	return OutcomeInserted, nil
}

// GetWeekCounters returns every counter recorded for a week.
func (s *store) GetWeekCounters(ctx context.Context, week WeekLabel) ([]WeeklyCounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT player_tag, decks_used, decks_possible, fame FROM war_history
		WHERE week_label = ? ORDER BY player_tag`, string(week))
	if err != nil {
		return nil, fmt.Errorf("failed to query week %s: %w", week, err)
	}
	defer rows.Close()

	var counters []WeeklyCounter
	for rows.Next() {
		c := WeeklyCounter{Week: week}
		if err := rows.Scan(&c.PlayerTag, &c.DecksUsed, &c.DecksPossible, &c.Fame); err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}
	return counters, rows.Err()
}

// GetWeeks returns every distinct week label, newest label first.
func (s *store) GetWeeks(ctx context.Context) ([]WeekLabel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT week_label FROM war_history ORDER BY week_label DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query weeks: %w", err)
	}
	defer rows.Close()

	var weeks []WeekLabel
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		weeks = append(weeks, WeekLabel(w))
	}
	return weeks, rows.Err()
}

// DeleteHistoricalCounters removes every imported week. Live weeks are kept.
func (s *store) DeleteHistoricalCounters(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM war_history WHERE `+historicalFilter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete historical counters: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Info("Deleted historical counters", "rows", n)
	return n, nil
}

// GetHistoricalTotals sums each player's imported weeks.
func (s *store) GetHistoricalTotals(ctx context.Context) ([]PlayerTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT w.player_tag, COALESCE(p.name, ''), COALESCE(p.status, 0),
			SUM(w.decks_used), SUM(w.decks_possible), SUM(w.fame), COUNT(*)
		FROM war_history w
		LEFT JOIN players p ON p.tag = w.player_tag
		WHERE w.`+historicalFilter+`
		GROUP BY w.player_tag
		ORDER BY w.player_tag`)
	if err != nil {
		return nil, fmt.Errorf("failed to query historical totals: %w", err)
	}
	defer rows.Close()

	var totals []PlayerTotals
	for rows.Next() {
		var t PlayerTotals
		if err := rows.Scan(&t.Tag, &t.Name, &t.Status, &t.DecksUsed, &t.DecksPossible, &t.Fame, &t.Weeks); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
