package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/battleships.yaml
var defaultYAML []byte

// localPath is tried when no explicit path is given.
const localPath = "configs/battleships.yaml"

// Load reads configuration, applies environment overrides, and validates it.
// Search order: customPath -> ./configs/battleships.yaml -> embedded default.
// Keys missing from the file keep their built-in defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	switch {
	case customPath != "":
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
	default:
		data, err := os.ReadFile(localPath)
		if err != nil {
			data = defaultYAML
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables (.env is loaded by main).
func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	setStr(&cfg.Server.ClientOrigin, "CLIENT_ORIGIN")
	setStr(&cfg.Storage.Driver, "STORE")
	setStr(&cfg.Storage.DBPath, "DB_PATH")
	setStr(&cfg.Storage.RedisAddr, "REDIS_ADDR")
	setStr(&cfg.Storage.RedisPassword, "REDIS_PASSWORD")
	setStr(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setStr(&cfg.Auth.CookieName, "COOKIE_NAME")
	setStr(&cfg.Log.Level, "LOG_LEVEL")
	setStr(&cfg.Game.ComputerTargeting, "COMPUTER_TARGETING")
	if os.Getenv("NODE_ENV") == "production" {
		cfg.Auth.Production = true
	}

	if err := setInt(&cfg.Auth.ExpiresDays, "JWT_EXPIRES_DAYS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Game.BoardSize, "BOARD_SIZE"); err != nil {
		return err
	}
	if v := os.Getenv("SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: SEED=%q", ErrInvalid, v)
		}
		cfg.Game.Seed = n
	}
	if v := os.Getenv("REDIS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: REDIS_TTL=%q", ErrInvalid, v)
		}
		cfg.Storage.RedisTTL = d
	}
	return nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalid, key, v)
	}
	*dst = n
	return nil
}
