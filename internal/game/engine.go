// internal/game/engine.go
//
// Match lifecycle for a human vs. computer game.
// Responsibilities:
//   - Create matches: two empty boards, two freshly placed fleets, zero scores.
//   - Reset boards to their pre-shot state without re-placing ships.
//   - Report game over and the winner.
//
// Notes:
//   - The engine is pure: persistence and locking belong to the caller.
//   - All randomness comes from the injected Rand.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Winner values reported by Match.Winner.
const (
	WinnerNone     = ""
	WinnerHuman    = "human"
	WinnerComputer = "computer"
)

// NewBoard returns an empty board of the given size with unplaced ships.
func NewBoard(size int, specs []ShipSpec) Board {
	return Board{
		ID:    uuid.NewString(),
		Size:  size,
		Grid:  NewGrid(size),
		Fleet: NewFleet(specs),
	}
}

// NewMatch creates both players and places both fleets.
func NewMatch(id string, size int, specs []ShipSpec, rng Rand, now time.Time) (*Match, error) {
	human := Player{ID: uuid.NewString(), Name: "User:" + id, Board: NewBoard(size, specs)}
	computer := Player{ID: uuid.NewString(), Name: "Computer:" + id, Computer: true, Board: NewBoard(size, specs)}

	for _, p := range []*Player{&human, &computer} {
		if err := PlaceFleet(p.Board.Grid, p.Board.Fleet.Ships, rng); err != nil {
			return nil, fmt.Errorf("place fleet for %s: %w", p.Name, err)
		}
	}
	return &Match{
		ID:        id,
		Human:     human,
		Computer:  computer,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Reset turns hits back into ships and misses back into water and clears damage.
func (b *Board) Reset() {
	for r := range b.Grid {
		for c, v := range b.Grid[r] {
			switch v {
			case Hit:
				b.Grid[r][c] = ShipCell
			case Miss:
				b.Grid[r][c] = Water
			}
		}
	}
	for i := range b.Fleet.Ships {
		b.Fleet.Ships[i].Hits = 0
	}
}

// Clone returns a deep copy of b.
func (b Board) Clone() Board {
	b.Grid = b.Grid.Clone()
	b.Fleet = b.Fleet.Clone()
	return b
}

// Reset restores both boards. Scores are left as they are.
func (m *Match) Reset() {
	m.Human.Board.Reset()
	m.Computer.Board.Reset()
}

// Over reports whether either fleet has been destroyed.
func (m *Match) Over() bool {
	return m.Human.Board.Fleet.Destroyed() || m.Computer.Board.Fleet.Destroyed()
}

// Winner names the side whose opponent's fleet is destroyed.
// If both are destroyed in the same exchange the human, who fired first, wins.
func (m *Match) Winner() string {
	switch {
	case m.Computer.Board.Fleet.Destroyed():
		return WinnerHuman
	case m.Human.Board.Fleet.Destroyed():
		return WinnerComputer
	}
	return WinnerNone
}

// Clone returns a deep copy of m.
func (m *Match) Clone() *Match {
	out := *m
	out.Human.Board = m.Human.Board.Clone()
	out.Computer.Board = m.Computer.Board.Clone()
	return &out
}
