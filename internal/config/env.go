package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"splashd/internal/common/fsutil"
)

// DefaultEnvFile is loaded by ApplyEnv when no files are given.
const DefaultEnvFile = ".env"

// ApplyEnv overlays SPLASHD_* environment variables on cfg. The dotenv files
// are read first (missing ones are skipped); they never override variables
// already present in the process environment.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if !fsutil.PathExists(f) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
