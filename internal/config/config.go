// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/phishcourse/internal/store"
)

// Config is the application configuration.
type Config struct {
	DBPath           string        `env:"PHISHCOURSE_DB"`
	ExportDir        string        `env:"PHISHCOURSE_EXPORT_DIR"`
	LogLevel         string        `env:"PHISHCOURSE_LOG_LEVEL"         envDefault:"info"  validate:"oneof=debug info warn error"`
	LogFile          string        `env:"PHISHCOURSE_LOG_FILE"`
	AutosaveInterval time.Duration `env:"PHISHCOURSE_AUTOSAVE_INTERVAL" envDefault:"30s"   validate:"gt=0"`
	AdvanceDelay     time.Duration `env:"PHISHCOURSE_ADVANCE_DELAY"     envDefault:"2s"    validate:"gt=0"`
	NoticeDuration   time.Duration `env:"PHISHCOURSE_NOTICE_DURATION"   envDefault:"3s"    validate:"gt=0"`
	Resume           bool          `env:"PHISHCOURSE_RESUME"            envDefault:"false"`
}

// Load reads a .env file from the working directory if one exists, then
// parses the environment. Unset paths default to the data directory.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	if err := cfg.fillPaths(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fillPaths() error {
	if c.DBPath != "" && c.ExportDir != "" && c.LogFile != "" {
		return nil
	}
	dataDir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dataDir, "phishcourse.db")
	}
	if c.ExportDir == "" {
		c.ExportDir = filepath.Join(dataDir, "certificates")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dataDir, "phishcourse.log")
	}
	return nil
}
