// Package config provides runtime configuration values for the simulator.
package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	dotenvLoaded sync.Once
)

// Config holds logging knobs and where the machine's inventory comes from.
type Config struct {
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`
	InventoryFile string `env:"VENDING_INVENTORY_FILE"`
	DefaultStock  int64  `env:"VENDING_DEFAULT_STOCK" envDefault:"1"`
}

// Load collects configuration from the environment with defaults.
// A .env file in the working directory is read once if present.
func Load() (Config, error) {
	dotenvLoaded.Do(func() {
		// a missing .env is fine
		_ = godotenv.Load()
	})
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if c.DefaultStock < 0 {
		return Config{}, errors.Join(ErrParsingConfig, errors.New("VENDING_DEFAULT_STOCK must be >= 0"))
	}
	return c, nil
}
