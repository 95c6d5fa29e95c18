// battleships runs a human vs. computer Battleships game.
//
// Usage:
//
//	battleships serve   - Start the HTTP API
//	battleships play    - Play a match in the terminal
//
// Global flags:
//
//	--config <path>  - YAML config file (default: ./configs/battleships.yaml, then built-in)
//	--seed <value>   - RNG seed for placement and computer shots (0 = random based on time)
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/battleships/internal/config"
	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/httpserver"
	"github.com/robalobadob/battleships/internal/results"
	"github.com/robalobadob/battleships/internal/session"
)

var (
	flagConfig string
	flagSeed   int64
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "battleships",
	Short:         "Battleships - sink the computer's fleet before it sinks yours",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}

// loadConfig reads the config, applies --seed, and sets the global log level.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	matches, closeMatches, err := openMatchStore(ctx, cfg.Storage, db)
	if err != nil {
		return fmt.Errorf("open match store: %w", err)
	}
	defer closeMatches()

	svc := session.New(matches, cfg.Game, game.NewRand(cfg.Game.Seed), log.Logger,
		session.WithRecorder(results.NewStore(db)))
	srv := httpserver.New(svc, db, cfg)

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("store", cfg.Storage.Driver).
		Int("board_size", cfg.Game.BoardSize).
		Str("targeting", cfg.Game.ComputerTargeting).
		Msg("starting battleships server")
	return srv.Run(ctx, cfg.Server.Addr)
}
