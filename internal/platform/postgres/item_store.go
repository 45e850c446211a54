package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/platform/logger"
	"github.com/phrazzld/item-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// Create implements store.ItemStore.Create
// It inserts a new item and fills in the database-assigned ID.
// Returns validation errors from the domain Item if data is invalid.
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO items (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, item.Name, item.Description).Scan(&item.ID)
	if err != nil {
		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.String("name", item.Name))
		return MapError(err)
	}

	log.Info("item created successfully",
		slog.Int64("item_id", item.ID),
		slog.String("name", item.Name))
	return nil
}

// GetByID implements store.ItemStore.GetByID
// It retrieves an item by its unique ID.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving item by ID", slog.Int64("item_id", id))

	query := `
		SELECT id, name, description
		FROM items
		WHERE id = $1
	`

	var item domain.Item
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("item not found", slog.Int64("item_id", id))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get item by ID",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return nil, MapError(err)
	}

	return &item, nil
}

// List implements store.ItemStore.List
// It retrieves items in ascending ID order with limit/offset pagination.
// Returns an empty slice if no items match.
func (s *PostgresItemStore) List(ctx context.Context, limit, offset int) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Normalize pagination parameters.
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	if limit > store.MaxListLimit {
		limit = store.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	log.Debug("listing items",
		slog.Int("limit", limit),
		slog.Int("offset", offset))

	query := `
		SELECT id, name, description
		FROM items
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to query items",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var items []*domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description); err != nil {
			log.Error("failed to scan item row",
				slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no items found
	if items == nil {
		items = []*domain.Item{}
	}

	log.Debug("listed items", slog.Int("count", len(items)))
	return items, nil
}

// Update implements store.ItemStore.Update
// It merges only the supplied fields of the patch into the stored item and
// returns the updated record.
// Returns store.ErrItemNotFound if the item does not exist.
// Returns validation errors if a supplied field is invalid.
func (s *PostgresItemStore) Update(
	ctx context.Context,
	id int64,
	patch domain.ItemPatch,
) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Warn("item patch validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return nil, err
	}

	// COALESCE keeps the stored value for fields the patch leaves nil,
	// so the merge happens in a single statement.
	query := `
		UPDATE items
		SET name = COALESCE($1, name), description = COALESCE($2, description)
		WHERE id = $3
		RETURNING id, name, description
	`

	var item domain.Item
	err := s.db.QueryRowContext(ctx, query, patch.Name, patch.Description, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("item not found for update", slog.Int64("item_id", id))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to update item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return nil, MapError(err)
	}

	log.Info("item updated successfully", slog.Int64("item_id", id))
	return &item, nil
}

// Delete implements store.ItemStore.Delete
// It removes an item by its ID.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM items
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "item"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("item not found for delete", slog.Int64("item_id", id))
			return store.ErrItemNotFound
		}
		return err
	}

	log.Info("item deleted successfully", slog.Int64("item_id", id))
	return nil
}

// WithTx implements store.ItemStore.WithTx
// It returns a new ItemStore that runs all operations on the provided transaction.
func (s *PostgresItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		logger: s.logger,
	}
}
