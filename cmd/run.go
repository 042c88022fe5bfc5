package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/phishcourse/internal/app"
	"github.com/abhisek/phishcourse/internal/config"
	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/logging"
	"github.com/abhisek/phishcourse/internal/store"
	"github.com/abhisek/phishcourse/internal/training"
)

// deps holds what every command needs: configuration, a file logger and
// the open store.
type deps struct {
	cfg    config.Config
	logger *slog.Logger
	store  *store.Store
	log    io.Closer
}

// openDeps loads configuration, resolving the database path from the --db
// flag (highest priority), then PHISHCOURSE_DB, then the data directory.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "db", cfg.DBPath)
	return &deps{cfg: cfg, logger: logger, store: st, log: closer}, nil
}

func (d *deps) Close() error {
	return errors.Join(d.store.Close(), d.log.Close())
}

// service builds the training service over the store.
func (d *deps) service(cmd *cobra.Command) *training.Service {
	return training.New(cmd.Context(), course.Default(), d.store.KV(), d.store.EventRepo(), d.logger,
		training.Config{
			AdvanceDelay:     d.cfg.AdvanceDelay,
			NoticeDuration:   d.cfg.NoticeDuration,
			AutosaveInterval: d.cfg.AutosaveInterval,
			ExportDir:        d.cfg.ExportDir,
		})
}

// runApp opens the store, builds the training service, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	svc := d.service(cmd)
	d.logger.Info("starting", "session", svc.SessionID(), "resume", d.cfg.Resume)
	if err := app.Run(svc, d.cfg.Resume); err != nil {
		d.logger.Error("app exited with error", "error", err)
		return err
	}
	return nil
}
