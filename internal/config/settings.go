package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are the runtime knobs of the simulator service.
type Settings struct {
	Trials    int    `env:"DUELSIM_TRIALS" envDefault:"1000"`
	Workers   int    `env:"DUELSIM_WORKERS" envDefault:"0"`
	MaxTicks  int    `env:"DUELSIM_MAX_TICKS" envDefault:"100000"`
	Seed      int64  `env:"DUELSIM_SEED" envDefault:"0"`
	HTTPAddr  string `env:"DUELSIM_HTTP_ADDR" envDefault:":8080"`
	LogLevel  string `env:"DUELSIM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"DUELSIM_LOG_FORMAT" envDefault:"console"`
}

// LoadSettings preloads envFile (if it exists) and parses Settings from the
// environment. Variables already set win over the file.
func LoadSettings(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &s, nil
}
