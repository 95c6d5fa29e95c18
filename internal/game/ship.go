package game

import "github.com/google/uuid"

// ShipSpec describes a ship before it is placed.
type ShipSpec struct {
	Name string `yaml:"name" json:"name"`
	Size int    `yaml:"size" json:"size"`
}

// DefaultFleet is the three-ship fleet each board starts with.
var DefaultFleet = []ShipSpec{
	{Name: "Battleship", Size: 5},
	{Name: "Destroyer1", Size: 4},
	{Name: "Destroyer2", Size: 4},
}

// Point is a zero-based (row, col) grid coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewFleet builds unplaced ships from specs.
func NewFleet(specs []ShipSpec) Fleet {
	f := Fleet{ID: uuid.NewString(), Ships: make([]Ship, 0, len(specs))}
	for _, s := range specs {
		f.Ships = append(f.Ships, Ship{ID: uuid.NewString(), Name: s.Name, Size: s.Size})
	}
	return f
}

// step returns the row/col delta between consecutive cells of the ship.
func (s Ship) step() (int, int) {
	if s.Orientation == Vertical {
		return 1, 0
	}
	return 0, 1
}

// Cells lists the cells the ship occupies, origin first.
func (s Ship) Cells() []Point {
	dr, dc := s.step()
	out := make([]Point, s.Size)
	for i := 0; i < s.Size; i++ {
		out[i] = Point{Row: s.Row + i*dr, Col: s.Col + i*dc}
	}
	return out
}

// Covers reports whether (r, c) falls inside the ship's span.
func (s Ship) Covers(r, c int) bool {
	if s.Orientation == Vertical {
		return c == s.Col && r >= s.Row && r < s.Row+s.Size
	}
	return r == s.Row && c >= s.Col && c < s.Col+s.Size
}

// Sunk reports whether every cell of the ship has been hit.
func (s Ship) Sunk() bool { return s.Hits >= s.Size }

// Destroyed reports whether every ship in the fleet is sunk.
// A fleet without ships is never destroyed.
func (f Fleet) Destroyed() bool {
	if len(f.Ships) == 0 {
		return false
	}
	for _, s := range f.Ships {
		if !s.Sunk() {
			return false
		}
	}
	return true
}

// ShipAt returns the index of the ship covering (r, c), or -1.
func (f Fleet) ShipAt(r, c int) int {
	for i, s := range f.Ships {
		if s.Covers(r, c) {
			return i
		}
	}
	return -1
}

// Afloat counts ships that are not yet sunk.
func (f Fleet) Afloat() int {
	n := 0
	for _, s := range f.Ships {
		if !s.Sunk() {
			n++
		}
	}
	return n
}

// Clone returns a copy that shares no ship storage with f.
func (f Fleet) Clone() Fleet {
	return Fleet{ID: f.ID, Ships: append([]Ship(nil), f.Ships...)}
}
