package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into cfg using `env` struct tags.
// Defaults live in `envDefault` tags so a bare local environment needs only
// the handful of variables without one (the completion-service API key,
// chiefly).
//
//	type Config struct {
//	    DataDir   string `env:"DATA_DIR" envDefault:"./data"`
//	    GenAPIKey string `env:"GEN_API_KEY"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
