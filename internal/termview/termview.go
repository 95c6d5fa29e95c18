// Package termview draws matches for the terminal client.
package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/session"
)

var (
	cellStyles = map[string]lipgloss.Style{
		game.SymbolWater: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		game.SymbolShip:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
		game.SymbolHit:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		game.SymbolMiss:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	hitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Board draws one rendered grid with row letters and column numbers.
func Board(title string, rows []string) string {
	var b strings.Builder
	b.WriteString("  ")
	for c := 1; c <= len(rows); c++ {
		fmt.Fprintf(&b, "%3d", c)
	}
	for i, row := range rows {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%-2c", 'A'+i)
		for _, tok := range strings.Fields(row) {
			b.WriteString("  ")
			b.WriteString(cellStyles[tok].Render(tok))
		}
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), b.String()))
}

// Match draws both boards side by side with the scores underneath.
func Match(v *session.BoardView) string {
	boards := lipgloss.JoinHorizontal(lipgloss.Top,
		Board("Your fleet", v.Player),
		"  ",
		Board("Enemy waters", v.Computer),
	)
	score := fmt.Sprintf("You %d : %d Computer", v.PlayerScore, v.ComputerScore)
	return lipgloss.JoinVertical(lipgloss.Left, boards, score)
}

// Shot describes one exchange of fire.
func Shot(r *session.ShotReport) string {
	lines := []string{
		describe("You", r.PlayerAt, r.Player),
		describe("Computer", r.ComputerAt, r.Computer),
	}
	if r.GameOver {
		if r.Winner == game.WinnerHuman {
			lines = append(lines, titleStyle.Render("All enemy ships sunk. You win!"))
		} else {
			lines = append(lines, hitStyle.Render("Your fleet is destroyed. The computer wins."))
		}
	}
	return strings.Join(lines, "\n")
}

func describe(who string, at session.Coordinate, s game.Shot) string {
	pos := fmt.Sprintf("%s%d", at.Row, at.Column)
	switch {
	case s.Outcome == game.OutcomeHit && s.Sunk:
		return hitStyle.Render(fmt.Sprintf("%s fired at %s: hit, %s sunk!", who, pos, s.ShipName))
	case s.Outcome == game.OutcomeHit:
		return hitStyle.Render(fmt.Sprintf("%s fired at %s: hit", who, pos))
	default:
		return dimStyle.Render(fmt.Sprintf("%s fired at %s: miss", who, pos))
	}
}
