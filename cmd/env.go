package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig holds the environment overrides. A flag set on the command line
// always wins over the environment.
type envConfig struct {
	Seed      *int64 `env:"MATCHSIM_SEED"`
	LogLevel  string `env:"MATCHSIM_LOG_LEVEL"`
	Store     string `env:"MATCHSIM_STORE"`
	StorePath string `env:"MATCHSIM_STORE_PATH"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
