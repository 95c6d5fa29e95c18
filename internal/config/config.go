// Package config provides YAML-based configuration for the Battleships server:
// HTTP settings, the match store backend, auth, and the game rules
// (board size, fleet composition, scoring, computer targeting).
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/battleships/internal/game"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Computer targeting modes.
const (
	// TargetUniform picks any cell, so it can land on a cell that was already shot.
	TargetUniform = "uniform"
	// TargetUntried picks only cells that have not been shot yet.
	TargetUntried = "untried"
)

// maxBoardSize keeps every row addressable by a single letter A..Z.
const maxBoardSize = 26

var ErrInvalid = errors.New("invalid config")

// Config is the full server configuration.
type Config struct {
	Server  Server  `yaml:"server"`
	Storage Storage `yaml:"storage"`
	Auth    Auth    `yaml:"auth"`
	Game    Game    `yaml:"game"`
	Log     Log     `yaml:"log"`
}

// Server holds HTTP listener settings.
type Server struct {
	Addr           string        `yaml:"addr"`
	ClientOrigin   string        `yaml:"client_origin"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Storage selects and configures the match store.
type Storage struct {
	Driver        string        `yaml:"driver"`
	DBPath        string        `yaml:"db_path"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RedisTTL      time.Duration `yaml:"redis_ttl"`
}

// Auth configures JWT tokens and cookies.
type Auth struct {
	JWTSecret   string `yaml:"jwt_secret"`
	ExpiresDays int    `yaml:"expires_days"`
	CookieName  string `yaml:"cookie_name"`
	Production  bool   `yaml:"production"`
}

// Game holds the rules every new match is created with.
type Game struct {
	BoardSize         int             `yaml:"board_size"`
	Fleet             []game.ShipSpec `yaml:"fleet"`
	Scoring           game.Scoring    `yaml:"scoring"`
	ComputerTargeting string          `yaml:"computer_targeting"`
	Seed              int64           `yaml:"seed"` // 0 = random based on time
}

// Log configures zerolog.
type Log struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:           ":5175",
			ClientOrigin:   "http://localhost:5173",
			RequestTimeout: 10 * time.Second,
		},
		Storage: Storage{
			Driver:    DriverSQLite,
			DBPath:    "./data/battleships.db",
			RedisAddr: "localhost:6379",
			RedisTTL:  7 * 24 * time.Hour,
		},
		Auth: Auth{
			JWTSecret:   "dev_secret_change_me",
			ExpiresDays: 14,
			CookieName:  "battleships_token",
		},
		Game: Game{
			BoardSize:         game.DefaultBoardSize,
			Fleet:             append([]game.ShipSpec(nil), game.DefaultFleet...),
			Scoring:           game.DefaultScoring,
			ComputerTargeting: TargetUniform,
		},
		Log: Log{Level: "info"},
	}
}

// Validate rejects configurations the engine cannot play.
func (c Config) Validate() error {
	g := c.Game
	if g.BoardSize < 1 || g.BoardSize > maxBoardSize {
		return fmt.Errorf("%w: board_size %d not in 1..%d", ErrInvalid, g.BoardSize, maxBoardSize)
	}
	if len(g.Fleet) == 0 {
		return fmt.Errorf("%w: fleet is empty", ErrInvalid)
	}
	total := 0
	for _, s := range g.Fleet {
		if s.Size < 1 || s.Size > g.BoardSize {
			return fmt.Errorf("%w: ship %q size %d does not fit a %d board", ErrInvalid, s.Name, s.Size, g.BoardSize)
		}
		total += s.Size
	}
	if total > g.BoardSize*g.BoardSize {
		return fmt.Errorf("%w: fleet needs %d cells, board has %d", ErrInvalid, total, g.BoardSize*g.BoardSize)
	}
	if g.Scoring.Hit < 0 || g.Scoring.Sink < 0 {
		return fmt.Errorf("%w: negative scoring", ErrInvalid)
	}
	switch g.ComputerTargeting {
	case TargetUniform, TargetUntried:
	default:
		return fmt.Errorf("%w: computer_targeting %q", ErrInvalid, g.ComputerTargeting)
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("%w: storage driver %q", ErrInvalid, c.Storage.Driver)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalid)
	}
	if c.Auth.ExpiresDays <= 0 {
		return fmt.Errorf("%w: expires_days must be positive", ErrInvalid)
	}
	return nil
}
