package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override splitledger.yaml.
const (
	EnvLedgerDir     = "SPLITLEDGER_LEDGER_DIR"
	EnvRoundingStep  = "SPLITLEDGER_ROUNDING_STEP"
	EnvLogLevel      = "SPLITLEDGER_LOG_LEVEL"
	EnvGitAutoCommit = "SPLITLEDGER_GIT_AUTO_COMMIT"
)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup over the process environment, falling back to
// the project's .env file when present. Process variables win.
func EnvLookup(root string) (LookupFunc, error) {
	dotenv, err := godotenv.Read(filepath.Join(root, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides cfg with any variables lookup resolves.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvLedgerDir); ok && v != "" {
		cfg.Ledger.Dir = v
	}
	if v, ok := lookup(EnvRoundingStep); ok && v != "" {
		step, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvRoundingStep, v, err)
		}
		cfg.Rounding.Step = step
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvGitAutoCommit); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvGitAutoCommit, v, err)
		}
		cfg.Git.AutoCommit = b
	}
	return nil
}
