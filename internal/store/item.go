package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/item-api/internal/domain"
)

// Pagination bounds applied by List implementations.
const (
	// DefaultListLimit is used when the caller supplies no limit or a
	// non-positive one.
	DefaultListLimit = 10

	// MaxListLimit caps a caller-supplied limit to keep a single request
	// from reading the whole table.
	MaxListLimit = 100
)

// ItemStore defines the interface for item data persistence.
type ItemStore interface {
	// Create saves a new item to the store and fills in the assigned ID.
	// It handles domain validation internally.
	// Returns validation errors from the domain Item if data is invalid.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Item, error)

	// List retrieves items in ascending ID order.
	// A non-positive limit falls back to DefaultListLimit, a limit above
	// MaxListLimit is clamped, and a negative offset is treated as zero.
	// Returns an empty slice if no items match.
	List(ctx context.Context, limit, offset int) ([]*domain.Item, error)

	// Update applies the supplied fields of the patch to an existing item
	// and returns the updated record. Fields not present in the patch are
	// left unchanged.
	// Returns ErrItemNotFound if the item does not exist.
	// Returns validation errors if a supplied field is invalid.
	Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error)

	// Delete removes an item by its ID.
	// Returns ErrItemNotFound if the item does not exist, including when
	// it was already deleted.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new ItemStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) ItemStore
}
