// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sengokuquiz/sengoku/internal/llm"
	"github.com/sengokuquiz/sengoku/internal/store"
)

// Progress backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Config is the resolved runtime configuration. Flags are applied on top by
// the command layer.
type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string

	// Store selects the progress backend: StoreSQLite or StoreRedis.
	Store    string
	RedisURL string

	// QuestionsDir overrides the embedded question files when set.
	QuestionsDir string

	// RemoteConfigURL serves the forced-update document. Empty disables the check.
	RemoteConfigURL string

	// LogFile receives the TUI log. Empty means sengoku.log in the data dir.
	LogFile string

	LLM llm.Config
}

// Load reads envFiles (DefaultEnvFile when none are given) and then the
// process environment, which wins over file values. Missing files are
// skipped; unreadable ones are an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	fileVals := map[string]string{}
	for _, f := range envFiles {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read env file %s: %w", f, err)
		}
		for k, v := range vals {
			if _, ok := fileVals[k]; !ok {
				fileVals[k] = v
			}
		}
	}
	return FromEnv(func(k string) string {
		if v, ok := os.LookupEnv(k); ok {
			return v
		}
		return fileVals[k]
	}), nil
}

// FromEnv builds a Config from getenv alone.
func FromEnv(getenv func(string) string) Config {
	c := Config{
		DBPath:          getenv("SENGOKU_DB"),
		Store:           getenv("SENGOKU_STORE"),
		RedisURL:        getenv("SENGOKU_REDIS_URL"),
		QuestionsDir:    getenv("SENGOKU_QUESTIONS_DIR"),
		RemoteConfigURL: getenv("SENGOKU_REMOTE_CONFIG_URL"),
		LogFile:         getenv("SENGOKU_LOG_FILE"),
		LLM:             llm.ConfigFromEnv(getenv),
	}
	if c.Store == "" {
		c.Store = StoreSQLite
	}
	return c
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("SENGOKU_REDIS_URL is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreSQLite, StoreRedis)
	}
	return nil
}

// ResolveDBPath returns DBPath, or the default path, with its directory created.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	return store.DefaultDBPath()
}

// ResolveLogFile returns LogFile, or sengoku.log in the data directory,
// with its directory created.
func (c Config) ResolveLogFile() (string, error) {
	p := c.LogFile
	if p == "" {
		dir, err := store.DataDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "sengoku.log")
	}
	return p, store.EnsureDir(p)
}
