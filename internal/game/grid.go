// internal/game/grid.go
//
// Grid representation and its flat wire/storage form.
// The serialized grid is the row-major list of cell symbols joined by ",",
// exactly size*size tokens. It is what every persistence backend stores.

package game

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// gridSep never appears in a cell symbol.
const gridSep = ","

// Grid is a square matrix of cells indexed [row][col].
type Grid [][]Cell

// NewGrid returns an all-water grid of the given size.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for r := range g {
		g[r] = make([]Cell, size)
	}
	return g
}

// Size is the side length of the grid.
func (g Grid) Size() int { return len(g) }

// InBounds reports whether (r, c) lies on the grid.
func (g Grid) InBounds(r, c int) bool {
	return r >= 0 && r < len(g) && c >= 0 && c < len(g)
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r := range g {
		out[r] = append([]Cell(nil), g[r]...)
	}
	return out
}

// Equal reports whether both grids have identical cells.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(o[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Count returns how many cells hold state c.
func (g Grid) Count(c Cell) int {
	n := 0
	for r := range g {
		for _, v := range g[r] {
			if v == c {
				n++
			}
		}
	}
	return n
}

// Encode flattens g in row-major order.
func Encode(g Grid) string {
	tokens := make([]string, 0, len(g)*len(g))
	for r := range g {
		for _, c := range g[r] {
			tokens = append(tokens, c.String())
		}
	}
	return strings.Join(tokens, gridSep)
}

// Decode rebuilds a size x size grid from its serialized form.
func Decode(s string, size int) (Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrMalformedGrid, size)
	}
	tokens := strings.Split(s, gridSep)
	if len(tokens) != size*size {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrMalformedGrid, len(tokens), size*size)
	}
	g := NewGrid(size)
	for i, tok := range tokens {
		cell, ok := ParseCell(tok)
		if !ok {
			return nil, fmt.Errorf("%w: unknown symbol %q at %d", ErrMalformedGrid, tok, i)
		}
		g[i/size][i%size] = cell
	}
	return g, nil
}

// MarshalJSON stores the grid in its serialized string form.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(Encode(g))
}

// UnmarshalJSON infers the size from the token count.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n := strings.Count(s, gridSep) + 1
	size := int(math.Sqrt(float64(n)))
	if size*size != n {
		return fmt.Errorf("%w: %d cells is not a square", ErrMalformedGrid, n)
	}
	out, err := Decode(s, size)
	if err != nil {
		return err
	}
	*g = out
	return nil
}
