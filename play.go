package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/session"
	"github.com/robalobadob/battleships/internal/store"
	"github.com/robalobadob/battleships/internal/termview"
)

const localMatchID = "local"

var flagNoColor bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match against the computer in the terminal",
	Long: `Play a match against the computer in the terminal.

Commands at the prompt:
  b7       fire at row B, column 7
  reveal   show the computer's ships
  reset    clear all shots, keep ship positions and scores
  quit     leave the game`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		logger := log.Logger.Level(zerolog.WarnLevel)
		svc := session.New(store.NewMemoryStore(), cfg.Game, game.NewRand(cfg.Game.Seed), logger)
		return runPlay(cmd.Context(), svc, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	playCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colours")
}

// runPlay drives one local match from line-oriented input until the match
// ends, the player quits, or input runs out.
func runPlay(ctx context.Context, svc *session.Service, in io.Reader, out io.Writer) error {
	if err := svc.Initialize(ctx, localMatchID); err != nil {
		return err
	}
	defer func() { _ = svc.Quit(ctx, localMatchID) }()

	show := func(reveal bool) error {
		v, err := svc.Boards(ctx, localMatchID, reveal)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, termview.Match(v))
		return nil
	}
	if err := show(false); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "reveal":
			if err := show(true); err != nil {
				return err
			}
			continue
		case "reset":
			if err := svc.Reset(ctx, localMatchID); err != nil {
				return err
			}
			if err := show(false); err != nil {
				return err
			}
			continue
		}

		row, col, err := game.ParseCoordinate(line)
		if err != nil {
			fmt.Fprintf(out, "Enter a coordinate like b7, or reveal, reset, quit.\n")
			continue
		}
		rep, err := svc.Shoot(ctx, localMatchID, row, col)
		if err != nil {
			switch session.Classify(err) {
			case session.KindValidation:
				fmt.Fprintf(out, "%s is off the board.\n", strings.ToUpper(line))
				continue
			case session.KindState:
				if errors.Is(err, session.ErrComputerAlreadyShot) {
					fmt.Fprintln(out, "The computer fired at a cell it had already shot, so the turn was cancelled. Fire again.")
				} else {
					fmt.Fprintf(out, "You already fired at %s, nothing changed. Fire again.\n", strings.ToUpper(line))
				}
				continue
			}
			return err
		}
		if err := show(rep.GameOver); err != nil {
			return err
		}
		fmt.Fprintln(out, termview.Shot(rep))
		if rep.GameOver {
			return nil
		}
	}
}
