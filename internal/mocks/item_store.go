package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/store"
)

// MockItemStore implements store.ItemStore for testing
type MockItemStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, item *domain.Item) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Item, error)
	ListFn    func(ctx context.Context, limit, offset int) ([]*domain.Item, error)
	UpdateFn  func(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error)
	DeleteFn  func(ctx context.Context, id int64) error

	// Data for default implementation
	Items      map[int64]*domain.Item
	LastItemID int64
}

// NewMockItemStore creates a new mock store with initialized defaults
func NewMockItemStore() *MockItemStore {
	return &MockItemStore{
		Items: make(map[int64]*domain.Item),
	}
}

// Ensure MockItemStore implements store.ItemStore interface
var _ store.ItemStore = (*MockItemStore)(nil)

// Create implements the ItemStore interface
func (m *MockItemStore) Create(ctx context.Context, item *domain.Item) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}

	if err := item.Validate(); err != nil {
		return err
	}

	m.LastItemID++
	item.ID = m.LastItemID
	stored := *item
	m.Items[item.ID] = &stored
	return nil
}

// GetByID implements the ItemStore interface
func (m *MockItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	item, exists := m.Items[id]
	if !exists {
		return nil, store.ErrItemNotFound
	}
	found := *item
	return &found, nil
}

// List implements the ItemStore interface
func (m *MockItemStore) List(ctx context.Context, limit, offset int) ([]*domain.Item, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}

	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	if limit > store.MaxListLimit {
		limit = store.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	ids := make([]int64, 0, len(m.Items))
	for id := range m.Items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := []*domain.Item{}
	for i := offset; i < len(ids) && len(items) < limit; i++ {
		item := *m.Items[ids[i]]
		items = append(items, &item)
	}
	return items, nil
}

// Update implements the ItemStore interface
func (m *MockItemStore) Update(
	ctx context.Context,
	id int64,
	patch domain.ItemPatch,
) (*domain.Item, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	item, exists := m.Items[id]
	if !exists {
		return nil, store.ErrItemNotFound
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}

	updated := *item
	return &updated, nil
}

// Delete implements the ItemStore interface
func (m *MockItemStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Items[id]; !exists {
		return store.ErrItemNotFound
	}
	delete(m.Items, id)
	return nil
}

// WithTx implements the ItemStore interface; the mock has no transactions,
// so it returns itself.
func (m *MockItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return m
}
