package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePositionIdentity(t *testing.T) {
	for r := 'A'; r <= 'J'; r++ {
		for c := 1; c <= 10; c++ {
			ri, ci, err := ParsePosition(r, c, DefaultBoardSize)
			require.NoError(t, err)
			gotR, gotC := FormatPosition(ri, ci)
			require.Equal(t, r, gotR)
			require.Equal(t, c, gotC)
		}
	}
}

func TestParsePositionCaseInsensitive(t *testing.T) {
	r, c, err := ParsePosition('c', 4, DefaultBoardSize)
	require.NoError(t, err)
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
}

func TestParsePositionOutOfBounds(t *testing.T) {
	testCases := []struct {
		row rune
		col int
	}{
		{'K', 1},
		{'A', 0},
		{'A', 11},
		{'@', 5},
		{'z', 5},
	}
	for _, tc := range testCases {
		_, _, err := ParsePosition(tc.row, tc.col, DefaultBoardSize)
		require.ErrorIs(t, err, ErrInvalidPosition, "%c%d", tc.row, tc.col)
	}
}

func TestParseCoordinate(t *testing.T) {
	row, col, err := ParseCoordinate(" j10 ")
	require.NoError(t, err)
	require.Equal(t, 'j', row)
	require.Equal(t, 10, col)

	for _, bad := range []string{"", "A", "5A", "AA", "B-"} {
		_, _, err := ParseCoordinate(bad)
		require.ErrorIs(t, err, ErrInvalidPosition, bad)
	}
}
