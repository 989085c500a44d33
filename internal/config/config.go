// Package config reads the runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sstent/trackedit/internal/track"
)

type Config struct {
	DataDir      string
	DBPath       string
	InboxDir     string
	ListenAddr   string
	SyncSchedule string

	Quiet    bool
	Verbatim bool
	Strict   bool
}

// Load reads the .env files (if any) into the environment, then the
// settings from the environment.
func Load(envFiles ...string) (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DataDir:      getenv("DATA_DIR", "./data"),
		ListenAddr:   getenv("LISTEN_ADDR", ":8888"),
		SyncSchedule: getenv("SYNC_SCHEDULE", "@hourly"),
	}
	cfg.DBPath = getenv("DB_PATH", filepath.Join(cfg.DataDir, "trackedit.db"))
	cfg.InboxDir = getenv("INBOX_DIR", filepath.Join(cfg.DataDir, "inbox"))

	var err error
	if cfg.Quiet, err = getbool("TRACK_QUIET"); err != nil {
		return nil, err
	}
	if cfg.Verbatim, err = getbool("TRACK_VERBATIM"); err != nil {
		return nil, err
	}
	if cfg.Strict, err = getbool("TRACK_STRICT"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TrackOptions returns the track processing options the config selects.
func (c *Config) TrackOptions() track.Options {
	return track.Options{Quiet: c.Quiet, Verbatim: c.Verbatim, Strict: c.Strict}
}

// EnsureDirs creates the data and inbox directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.InboxDir, filepath.Dir(c.DBPath)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return b, nil
}
