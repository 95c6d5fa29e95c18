// internal/game/shot.go
//
// Shot processing and scoring.
// Responsibilities:
//   - Apply a shot to a board: ship → hit, water → miss, hit/miss → already shot.
//   - Attribute each hit to the ship whose span covers the cell and bump its damage.
//   - Award points for hits and sinking hits.

package game

import "fmt"

// Outcome is the result of firing at one cell.
type Outcome string

const (
	OutcomeHit         Outcome = "hit"
	OutcomeMiss        Outcome = "miss"
	OutcomeAlreadyShot Outcome = "already_shot"
)

// Shot describes a resolved shot.
type Shot struct {
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Outcome  Outcome `json:"outcome"`
	Ship     int     `json:"-"`              // index into the fleet, -1 unless Outcome is hit
	ShipName string  `json:"ship,omitempty"` // name of the ship that was hit
	Sunk     bool    `json:"sunk,omitempty"` // this hit brought the ship's hits to its size
}

// Fire resolves a shot at (r, c) on b.
// AlreadyShot leaves the board untouched.
func Fire(b *Board, r, c int) (Shot, error) {
	shot := Shot{Row: r, Col: c, Ship: -1}
	if !b.Grid.InBounds(r, c) {
		return shot, fmt.Errorf("%w: (%d,%d)", ErrInvalidPosition, r, c)
	}

	switch b.Grid[r][c] {
	case ShipCell:
		i := b.Fleet.ShipAt(r, c)
		if i < 0 {
			return shot, fmt.Errorf("%w: (%d,%d)", ErrOrphanCell, r, c)
		}
		ship := &b.Fleet.Ships[i]
		if ship.Hits < ship.Size {
			ship.Hits++
		}
		b.Grid[r][c] = Hit
		shot.Outcome = OutcomeHit
		shot.Ship = i
		shot.ShipName = ship.Name
		shot.Sunk = ship.Hits == ship.Size
	case Water:
		b.Grid[r][c] = Miss
		shot.Outcome = OutcomeMiss
	default:
		shot.Outcome = OutcomeAlreadyShot
	}
	return shot, nil
}

// Scoring holds the points awarded to the shooter.
type Scoring struct {
	Hit  int `yaml:"hit" json:"hit"`
	Sink int `yaml:"sink" json:"sink"`
}

// DefaultScoring awards 15 per hit and 50 more for the sinking hit.
var DefaultScoring = Scoring{Hit: 15, Sink: 50}

// Award returns the points earned by shot.
func (s Scoring) Award(shot Shot) int {
	if shot.Outcome != OutcomeHit {
		return 0
	}
	pts := s.Hit
	if shot.Sunk {
		pts += s.Sink
	}
	return pts
}
