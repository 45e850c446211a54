package main

import (
	"database/sql"
	"log/slog"

	"github.com/phrazzld/item-api/internal/config"
	"github.com/phrazzld/item-api/internal/platform/postgres"
	"github.com/phrazzld/item-api/internal/store"
)

// application holds the shared dependencies for the server: configuration,
// the logger, the database handle, and the stores built on top of it.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	itemStore store.ItemStore
}

// newApplication wires the application dependencies. The database handle is
// owned by the application from this point on and is closed by cleanup.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		itemStore: postgres.NewPostgresItemStore(db, logger),
	}
}

// cleanup releases resources held by the application. Called once during
// server shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
			return
		}
		app.logger.Info("Database connection closed")
	}
}
