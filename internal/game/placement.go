// internal/game/placement.go
//
// Randomized, non-overlapping ship placement.
// Each ship repeatedly samples a uniform origin and orientation until every
// covered cell is on the board and still water (reject-and-resample).
//
// Notes:
//   - Fleets that can never fit (a ship longer than the board, or more ship
//     cells than board cells) are rejected before sampling starts.
//   - Attempts are capped per ship; the cap is far above what sparse boards need,
//     so hitting it means the board is too crowded for random placement.
//   - On failure neither the grid nor the ships are modified.

package game

import "fmt"

// attemptsPerCell scales the per-ship retry cap with the board area.
const attemptsPerCell = 1000

// PlaceFleet places ships on g using rng, marking their cells ShipCell and
// recording each ship's origin and orientation.
func PlaceFleet(g Grid, ships []Ship, rng Rand) error {
	size := g.Size()
	total := 0
	for _, s := range ships {
		if s.Size <= 0 || s.Size > size {
			return fmt.Errorf("%w: %s (size %d) on a %dx%d board", ErrPlacementFailed, s.Name, s.Size, size, size)
		}
		total += s.Size
	}
	if total > g.Count(Water) {
		return fmt.Errorf("%w: %d ship cells do not fit", ErrPlacementFailed, total)
	}

	work := g.Clone()
	placed := make([]Ship, len(ships))
	copy(placed, ships)
	limit := attemptsPerCell * size * size

	for i := range placed {
		ok := false
		for try := 0; try < limit; try++ {
			cand := placed[i]
			cand.Row = rng.Intn(size)
			cand.Col = rng.Intn(size)
			cand.Orientation = Horizontal
			if rng.Intn(2) == 1 {
				cand.Orientation = Vertical
			}
			if canPlace(work, cand) {
				for _, p := range cand.Cells() {
					work[p.Row][p.Col] = ShipCell
				}
				placed[i] = cand
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: no room for %s after %d attempts", ErrPlacementFailed, placed[i].Name, limit)
		}
	}

	for r := range g {
		copy(g[r], work[r])
	}
	copy(ships, placed)
	return nil
}

// canPlace reports whether every cell of s is in bounds and water.
func canPlace(g Grid, s Ship) bool {
	for _, p := range s.Cells() {
		if !g.InBounds(p.Row, p.Col) || g[p.Row][p.Col] != Water {
			return false
		}
	}
	return true
}
