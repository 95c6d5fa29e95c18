package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParsePosition converts a letter row and 1-based column into grid indices.
func ParsePosition(row rune, col, size int) (int, int, error) {
	r := int(unicode.ToUpper(row) - 'A')
	c := col - 1
	if r < 0 || r >= size || c < 0 || c >= size {
		return 0, 0, fmt.Errorf("%w: %c%d", ErrInvalidPosition, row, col)
	}
	return r, c, nil
}

// FormatPosition is the inverse of ParsePosition.
func FormatPosition(r, c int) (rune, int) {
	return rune('A' + r), c + 1
}

// ParseCoordinate splits a compact coordinate such as "b7" or "J10".
// Bounds are checked by ParsePosition.
func ParseCoordinate(s string) (rune, int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	row := rune(s[0])
	if !unicode.IsLetter(row) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return row, col, nil
}
