package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "FEEDBACKBOARD_"

// dotEnvFile is read for variables missing from the real environment.
var dotEnvFile = ".env"

func parseEnv(cfg *Config, environ []string) error {
	vars := env.ToMap(environ)

	fromFile, err := godotenv.Read(dotEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", dotEnvFile, err)
	}
	for k, v := range fromFile {
		if _, set := vars[k]; !set {
			vars[k] = v
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix, Environment: vars}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
