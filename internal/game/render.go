package game

import "strings"

// Render formats g as one space-joined line of symbols per row.
// Unless reveal is set, ship cells that have not been hit are shown as water.
func Render(g Grid, reveal bool) []string {
	rows := make([]string, len(g))
	for r := range g {
		cells := make([]string, len(g[r]))
		for c, v := range g[r] {
			if v == ShipCell && !reveal {
				v = Water
			}
			cells[c] = v.String()
		}
		rows[r] = strings.Join(cells, " ")
	}
	return rows
}
