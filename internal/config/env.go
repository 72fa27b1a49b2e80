package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that provide defaults for command line flags.
const (
	EnvDBPath     = "TETRIS_DB"
	EnvConfigPath = "TETRIS_CONFIG"
	EnvSSHAddr    = "TETRIS_SSH_ADDR"
	EnvHostKey    = "TETRIS_HOST_KEY"
)

// LoadEnv reads KEY=value pairs from the given files (".env" when none are
// given) into the process environment. Missing files are skipped and
// variables already set in the environment are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var found []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: stat %s: %w", f, err)
		}
		found = append(found, f)
	}
	if len(found) == 0 {
		return nil
	}

	if err := godotenv.Load(found...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// LookupEnv returns the value of key when it is set and not empty.
func LookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return v, ok && v != ""
}
