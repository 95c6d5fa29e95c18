// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// A match is spread across matches, players, boards, fleets and ships;
// grids are kept in their serialized form (game.Encode). Save writes all
// rows in one transaction, Delete relies on ON DELETE CASCADE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/battleships/internal/game"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a Store over db. Migrate must have been applied.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Save(ctx context.Context, m *game.Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO matches (id, created_at, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		m.ID, formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
	); err != nil {
		return fmt.Errorf("save match %s: %w", m.ID, err)
	}

	for _, p := range []*game.Player{&m.Human, &m.Computer} {
		if err := savePlayer(ctx, tx, m.ID, p); err != nil {
			return fmt.Errorf("save match %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

func savePlayer(ctx context.Context, tx *sql.Tx, matchID string, p *game.Player) error {
	b := &p.Board
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO boards (id, match_id, size, grid) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET grid = excluded.grid`,
		b.ID, matchID, b.Size, game.Encode(b.Grid),
	); err != nil {
		return fmt.Errorf("board %s: %w", b.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO fleets (id, board_id) VALUES (?, ?)
        ON CONFLICT(id) DO NOTHING`,
		b.Fleet.ID, b.ID,
	); err != nil {
		return fmt.Errorf("fleet %s: %w", b.Fleet.ID, err)
	}
	for i, sh := range b.Fleet.Ships {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO ships (id, fleet_id, seq, name, size, hits, start_row, start_col, horizontal)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(id) DO UPDATE SET
                hits = excluded.hits,
                start_row = excluded.start_row,
                start_col = excluded.start_col,
                horizontal = excluded.horizontal`,
			sh.ID, b.Fleet.ID, i, sh.Name, sh.Size, sh.Hits, sh.Row, sh.Col, sh.Orientation != game.Vertical,
		); err != nil {
			return fmt.Errorf("ship %s: %w", sh.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO players (id, match_id, board_id, name, is_computer, score) VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET score = excluded.score`,
		p.ID, matchID, b.ID, p.Name, p.Computer, p.Score,
	); err != nil {
		return fmt.Errorf("player %s: %w", p.ID, err)
	}
	return nil
}

// Load reads every row of the match inside one transaction, so a concurrent
// Save is seen either entirely or not at all.
func (s *sqliteStore) Load(ctx context.Context, id string) (*game.Match, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	m := &game.Match{ID: id}
	var created, updated string
	err = tx.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM matches WHERE id=?`, id,
	).Scan(&created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	if m.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	if m.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}

	rows, err := tx.QueryContext(ctx, `
        SELECT p.id, p.name, p.is_computer, p.score, b.id, b.size, b.grid, f.id
        FROM players p
        JOIN boards b ON b.id = p.board_id
        JOIN fleets f ON f.board_id = b.id
        WHERE p.match_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("load players %s: %w", id, err)
	}
	defer rows.Close()

	var players []game.Player
	for rows.Next() {
		var (
			p    game.Player
			grid string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Computer, &p.Score,
			&p.Board.ID, &p.Board.Size, &grid, &p.Board.Fleet.ID); err != nil {
			return nil, err
		}
		if p.Board.Grid, err = game.Decode(grid, p.Board.Size); err != nil {
			return nil, fmt.Errorf("board %s: %w", p.Board.ID, err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	var haveHuman, haveComputer bool
	for i := range players {
		p := players[i]
		if p.Board.Fleet.Ships, err = loadShips(ctx, tx, p.Board.Fleet.ID); err != nil {
			return nil, err
		}
		if p.Computer {
			m.Computer, haveComputer = p, true
		} else {
			m.Human, haveHuman = p, true
		}
	}
	if !haveHuman || !haveComputer {
		return nil, fmt.Errorf("load match %s: incomplete player rows", id)
	}
	return m, nil
}

func loadShips(ctx context.Context, tx *sql.Tx, fleetID string) ([]game.Ship, error) {
	rows, err := tx.QueryContext(ctx, `
        SELECT id, name, size, hits, start_row, start_col, horizontal
        FROM ships WHERE fleet_id = ? ORDER BY seq`, fleetID)
	if err != nil {
		return nil, fmt.Errorf("load ships %s: %w", fleetID, err)
	}
	defer rows.Close()

	ships := make([]game.Ship, 0, 4)
	for rows.Next() {
		var (
			sh         game.Ship
			horizontal bool
		)
		if err := rows.Scan(&sh.ID, &sh.Name, &sh.Size, &sh.Hits, &sh.Row, &sh.Col, &horizontal); err != nil {
			return nil, err
		}
		sh.Orientation = game.Vertical
		if horizontal {
			sh.Orientation = game.Horizontal
		}
		ships = append(ships, sh)
	}
	return ships, rows.Err()
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id=?`, id); err != nil {
		return fmt.Errorf("delete match %s: %w", id, err)
	}
	return nil
}

func (s *sqliteStore) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM matches WHERE id=?`, id,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }
