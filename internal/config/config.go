package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// AppConfig holds all application-wide configuration, parsed from
// environment variables.
type AppConfig struct {
	ServerPort string        `env:"SERVER_PORT" envDefault:"8080"`
	DataFile   string        `env:"DATA_FILE" envDefault:"data/instantshare.json"`
	MediaDir   string        `env:"MEDIA_DIR" envDefault:"data/media"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// LoadConfig parses the environment into an AppConfig.
func LoadConfig() (*AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
