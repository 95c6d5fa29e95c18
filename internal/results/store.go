// Package results keeps finished matches and the per-user counters derived
// from them (games played, wins, win streak).
package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/battleships/internal/session"
)

// Entry is one finished match.
type Entry struct {
	MatchID       string `json:"matchId"`
	OwnerID       string `json:"ownerId"`
	Won           bool   `json:"won"`
	Score         int    `json:"score"`
	ComputerScore int    `json:"computerScore"`
	CreatedAt     string `json:"createdAt"`
}

type LBRow struct {
	OwnerID  string `json:"ownerId"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Record stores a finished match and, when its owner is a registered user,
// bumps that user's counters in the same transaction.
func (s *Store) Record(ctx context.Context, r session.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO results(match_id, owner_id, won, score, computer_score) VALUES(?,?,?,?,?)`,
		r.MatchID, r.MatchID, r.Won, r.Score, r.ComputerScore,
	); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	if err := bumpStats(ctx, tx, r.MatchID, r.Won); err != nil {
		return fmt.Errorf("bump stats: %w", err)
	}
	return tx.Commit()
}

// bumpStats increments games played and updates wins and streak.
// Guests have no users row, so nothing changes for them.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	err := tx.QueryRowContext(ctx,
		`SELECT games_played, wins, streak FROM users WHERE id=?`, userID,
	).Scan(&gp, &wins, &streak)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// Leaderboard returns the highest winning scores. An empty date covers all
// time; otherwise only results recorded on that UTC day are included.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.owner_id, COALESCE(u.username, 'guest'), r.score
        FROM results r
        LEFT JOIN users u ON u.id = r.owner_id
        WHERE r.won = 1 AND (? = '' OR date(r.created_at) = ?)
        ORDER BY r.score DESC, r.created_at ASC, r.id ASC
        LIMIT ?`, date, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Username, &r.Score); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ForOwner lists an owner's most recent results first.
func (s *Store) ForOwner(ctx context.Context, ownerID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT match_id, owner_id, won, score, computer_score, COALESCE(created_at, '')
        FROM results
        WHERE owner_id=?
        ORDER BY id DESC
        LIMIT ?`, ownerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.MatchID, &e.OwnerID, &e.Won, &e.Score, &e.ComputerScore, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Claim moves results recorded under an anonymous id to a user account.
func (s *Store) Claim(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `UPDATE results SET owner_id=? WHERE owner_id=?`, userID, anonID)
	return err
}
