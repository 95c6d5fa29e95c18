package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkPlacement verifies ships are in bounds, on ShipCell cells, and disjoint.
func checkPlacement(t *testing.T, g Grid, ships []Ship) {
	t.Helper()
	seen := map[Point]string{}
	for _, s := range ships {
		require.Contains(t, []Orientation{Horizontal, Vertical}, s.Orientation)
		for _, p := range s.Cells() {
			require.True(t, g.InBounds(p.Row, p.Col), "%s out of bounds at %v", s.Name, p)
			require.Equal(t, ShipCell, g[p.Row][p.Col], "%s at %v", s.Name, p)
			if other, ok := seen[p]; ok {
				t.Fatalf("%s overlaps %s at %v", s.Name, other, p)
			}
			seen[p] = s.Name
		}
	}
	require.Equal(t, len(seen), g.Count(ShipCell))
}

func TestPlaceFleetManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 1000; seed++ {
		g := NewGrid(DefaultBoardSize)
		fleet := NewFleet(DefaultFleet)
		require.NoError(t, PlaceFleet(g, fleet.Ships, NewRand(seed)), "seed %d", seed)
		checkPlacement(t, g, fleet.Ships)
	}
}

func TestPlaceFleetDeterministic(t *testing.T) {
	g1, g2 := NewGrid(DefaultBoardSize), NewGrid(DefaultBoardSize)
	f1, f2 := NewFleet(DefaultFleet), NewFleet(DefaultFleet)
	require.NoError(t, PlaceFleet(g1, f1.Ships, NewRand(42)))
	require.NoError(t, PlaceFleet(g2, f2.Ships, NewRand(42)))
	require.True(t, g1.Equal(g2))
	for i := range f1.Ships {
		require.Equal(t, f1.Ships[i].Row, f2.Ships[i].Row)
		require.Equal(t, f1.Ships[i].Col, f2.Ships[i].Col)
		require.Equal(t, f1.Ships[i].Orientation, f2.Ships[i].Orientation)
	}
}

func TestPlaceFleetTightBoard(t *testing.T) {
	// 3x3 with 3+3+3 only fits as three parallel stripes.
	specs := []ShipSpec{{"a", 3}, {"b", 3}, {"c", 3}}
	for seed := int64(1); seed <= 50; seed++ {
		g := NewGrid(3)
		f := NewFleet(specs)
		require.NoError(t, PlaceFleet(g, f.Ships, NewRand(seed)), "seed %d", seed)
		checkPlacement(t, g, f.Ships)
		for _, s := range f.Ships[1:] {
			require.Equal(t, f.Ships[0].Orientation, s.Orientation)
		}
	}
}

func TestPlaceFleetRejectsImpossible(t *testing.T) {
	testCases := []struct {
		name  string
		size  int
		specs []ShipSpec
	}{
		{"ship longer than board", 4, []ShipSpec{{"long", 5}}},
		{"too many cells", 3, []ShipSpec{{"a", 3}, {"b", 3}, {"c", 3}, {"d", 1}}},
		{"zero size ship", 5, []ShipSpec{{"ghost", 0}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(tc.size)
			f := NewFleet(tc.specs)
			err := PlaceFleet(g, f.Ships, NewRand(1))
			require.ErrorIs(t, err, ErrPlacementFailed)
			require.Equal(t, tc.size*tc.size, g.Count(Water))
		})
	}
}

func TestPlaceFleetAvoidsExistingShips(t *testing.T) {
	g := NewGrid(DefaultBoardSize)
	first := NewFleet(DefaultFleet)
	require.NoError(t, PlaceFleet(g, first.Ships, NewRand(3)))
	second := NewFleet([]ShipSpec{{"Patrol", 2}, {"Cruiser", 3}})
	require.NoError(t, PlaceFleet(g, second.Ships, NewRand(4)))
	checkPlacement(t, g, append(append([]Ship{}, first.Ships...), second.Ships...))
}
