package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/battleships/internal/game"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmbeddedDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Game.BoardSize)
	require.Equal(t, game.DefaultFleet, cfg.Game.Fleet)
	require.Equal(t, game.DefaultScoring, cfg.Game.Scoring)
	require.Equal(t, TargetUniform, cfg.Game.ComputerTargeting)
	require.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, 168*time.Hour, cfg.Storage.RedisTTL)
}

func TestLoadCustomFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("game:\n  board_size: 8\n  fleet:\n    - { name: Sub, size: 3 }\n  computer_targeting: untried\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Game.BoardSize)
	require.Equal(t, []game.ShipSpec{{Name: "Sub", Size: 3}}, cfg.Game.Fleet)
	require.Equal(t, TargetUntried, cfg.Game.ComputerTargeting)
	require.Equal(t, game.DefaultScoring, cfg.Game.Scoring)
	require.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE", "memory")
	t.Setenv("SEED", "1234")
	t.Setenv("BOARD_SIZE", "12")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("REDIS_TTL", "1h")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, DriverMemory, cfg.Storage.Driver)
	require.Equal(t, int64(1234), cfg.Game.Seed)
	require.Equal(t, 12, cfg.Game.BoardSize)
	require.True(t, cfg.Auth.Production)
	require.Equal(t, time.Hour, cfg.Storage.RedisTTL)
}

func TestEnvOverrideBadNumber(t *testing.T) {
	t.Setenv("BOARD_SIZE", "ten")
	_, err := Load("")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"board too small", func(c *Config) { c.Game.BoardSize = 0 }},
		{"board too large", func(c *Config) { c.Game.BoardSize = 27 }},
		{"empty fleet", func(c *Config) { c.Game.Fleet = nil }},
		{"ship too long", func(c *Config) { c.Game.Fleet = []game.ShipSpec{{Name: "x", Size: 11}} }},
		{"ship size zero", func(c *Config) { c.Game.Fleet = []game.ShipSpec{{Name: "x", Size: 0}} }},
		{"fleet too big", func(c *Config) {
			c.Game.BoardSize = 2
			c.Game.Fleet = []game.ShipSpec{{Name: "a", Size: 2}, {Name: "b", Size: 2}, {Name: "c", Size: 1}}
		}},
		{"negative scoring", func(c *Config) { c.Game.Scoring.Hit = -1 }},
		{"unknown targeting", func(c *Config) { c.Game.ComputerTargeting = "smart" }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "postgres" }},
		{"no expiry", func(c *Config) { c.Auth.ExpiresDays = 0 }},
		{"no request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
