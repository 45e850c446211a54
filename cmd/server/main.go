// Package main implements the entry point for the item API server,
// a CRUD service managing item records backed by PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/item-api/internal/config"
	"github.com/phrazzld/item-api/internal/platform/logger"
)

// main is the entry point for the item-api server.
// It initializes configuration, sets up logging, establishes the database
// connection, applies migrations, injects dependencies, and starts the
// HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires the application, and serves HTTP until
// shutdown. Separated from main so initialization failures surface as
// ordinary errors.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	// Schema is created/updated before the server accepts traffic.
	if err := runMigrations(db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", "error", closeErr)
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app := newApplication(cfg, appLogger, db)

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
