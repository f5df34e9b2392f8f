// Package cli wires the pantry store into a local command-line shell.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/doc4437/pantri/internal/config"
	"github.com/doc4437/pantri/internal/db"
	"github.com/doc4437/pantri/internal/logging"
	"github.com/doc4437/pantri/internal/pantry"
	"github.com/doc4437/pantri/internal/snapshot"
)

// NewRootCommand creates the root command for the pantri CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pantri",
		Short:         "Local-first pantry tracker",
		Long:          "Track household items, quantities and par levels, and text a shopping list when you run short.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newAddCommand())
	cmd.AddCommand(newAdjustCommand())
	cmd.AddCommand(newArchiveCommand())
	cmd.AddCommand(newDeleteCommand())
	cmd.AddCommand(newSelectCommand())
	cmd.AddCommand(newShareCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newImportCommand())
	cmd.AddCommand(newResetCommand())

	return cmd
}

// app bundles the wired dependencies every command needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	database *sql.DB
	gateway  *snapshot.Store
	store    *pantry.Store

	logCleanup func()
}

func openApp(ctx context.Context) (*app, error) {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	gateway := snapshot.NewStore(database, logger)
	store := pantry.NewStore(ctx, gateway, logger, cfg.SaveDebounce)

	return &app{
		cfg:        cfg,
		logger:     logger,
		database:   database,
		gateway:    gateway,
		store:      store,
		logCleanup: cleanup,
	}, nil
}

// close flushes pending state and releases resources. Safe to defer.
func (a *app) close(ctx context.Context) {
	if err := a.store.Close(ctx); err != nil {
		a.logger.Error("failed to flush state", "error", err)
	}
	if err := a.database.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
	a.logCleanup()
}
