// internal/game/types.go
//
// Core type definitions for the Battleships engine.
// Defines:
//   - Cell: state of a single grid square (water/ship/hit/miss).
//   - Ship, Fleet: ship geometry and cumulative damage.
//   - Board, Player, Match: the two-board human vs. computer game.

package game

import (
	"errors"
	"time"
)

// Cell is the state of one grid square.
type Cell uint8

const (
	Water Cell = iota
	ShipCell
	Hit
	Miss
)

// Symbols used by the serialized grid and the board display.
const (
	SymbolWater = "~"
	SymbolShip  = "S"
	SymbolHit   = "X"
	SymbolMiss  = "O"
)

// DefaultBoardSize is the classic 10x10 board.
const DefaultBoardSize = 10

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrMalformedGrid   = errors.New("malformed grid")
	ErrPlacementFailed = errors.New("cannot place fleet")
	ErrOrphanCell      = errors.New("ship cell not covered by any ship")
)

// String returns the single-character symbol for c.
func (c Cell) String() string {
	switch c {
	case ShipCell:
		return SymbolShip
	case Hit:
		return SymbolHit
	case Miss:
		return SymbolMiss
	default:
		return SymbolWater
	}
}

// ParseCell maps a symbol back to its Cell.
func ParseCell(s string) (Cell, bool) {
	switch s {
	case SymbolWater:
		return Water, true
	case SymbolShip:
		return ShipCell, true
	case SymbolHit:
		return Hit, true
	case SymbolMiss:
		return Miss, true
	}
	return Water, false
}

// Shot reports whether a cell has already been fired at.
func (c Cell) Shot() bool { return c == Hit || c == Miss }

// Orientation of a ship measured from its origin cell.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Ship holds geometry and damage for a single vessel.
// Occupied cells are derived from (Row, Col, Orientation, Size); they are never stored.
type Ship struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Size        int         `json:"size"`
	Hits        int         `json:"hits"`
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Orientation Orientation `json:"orientation"`
}

// Fleet is the ordered set of ships belonging to one board.
type Fleet struct {
	ID    string `json:"id"`
	Ships []Ship `json:"ships"`
}

// Board owns one grid and its fleet.
type Board struct {
	ID    string `json:"id"`
	Size  int    `json:"size"`
	Grid  Grid   `json:"grid"`
	Fleet Fleet  `json:"fleet"`
}

// Player is one side of a match.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Computer bool   `json:"computer"`
	Score    int    `json:"score"`
	Board    Board  `json:"board"`
}

// Match pairs the human and the computer player for one external identifier.
type Match struct {
	ID        string    `json:"id"`
	Human     Player    `json:"human"`
	Computer  Player    `json:"computer"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
