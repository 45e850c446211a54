package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/item-api/internal/api"
	"github.com/phrazzld/item-api/internal/api/shared"
	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/mocks"
	"github.com/phrazzld/item-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts the item handler on a chi router the same way the
// server does, so path parameters resolve as in production.
func newTestRouter(itemStore *mocks.MockItemStore) http.Handler {
	handler := api.NewItemHandler(itemStore, nil)

	r := chi.NewRouter()
	r.Route("/items", func(r chi.Router) {
		r.Post("/", handler.CreateItem)
		r.Get("/", handler.ListItems)
		r.Get("/{id}", handler.GetItem)
		r.Put("/{id}", handler.UpdateItem)
		r.Delete("/{id}", handler.DeleteItem)
	})
	return r
}

// doRequest executes the request against the router and returns the recorder.
func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = &bytes.Buffer{}
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		reqBody = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes the recorded JSON response into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "Response body should be valid JSON")
}

// mustCreateItem seeds an item through the API and returns its response.
func mustCreateItem(t *testing.T, router http.Handler, name, description string) api.ItemResponse {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/items/", api.CreateItemRequest{
		Name:        name,
		Description: description,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "Seeding an item should succeed")

	var created api.ItemResponse
	decodeBody(t, rec, &created)
	return created
}

func TestCreateItem(t *testing.T) {
	t.Parallel()

	t.Run("creates item and assigns ID", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodPost, "/items/", api.CreateItemRequest{
			Name:        "Sample Item",
			Description: "This is a sample item",
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var created api.ItemResponse
		decodeBody(t, rec, &created)
		assert.Equal(t, int64(1), created.ID, "First created item should get ID 1")
		assert.Equal(t, "Sample Item", created.Name)
		assert.Equal(t, "This is a sample item", created.Description)
	})

	t.Run("rejects empty name with field detail", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodPost, "/items/", api.CreateItemRequest{
			Name:        "",
			Description: "has a description",
		})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var errResp shared.ErrorResponse
		decodeBody(t, rec, &errResp)
		require.Len(t, errResp.Details, 1, "Exactly one field should be reported")
		assert.Equal(t, "name", errResp.Details[0].Field)
	})

	t.Run("rejects missing description", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodPost, "/items/", `{"name":"only a name"}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var errResp shared.ErrorResponse
		decodeBody(t, rec, &errResp)
		require.Len(t, errResp.Details, 1)
		assert.Equal(t, "description", errResp.Details[0].Field)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodPost, "/items/", `{"name": "broken"`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps storage failure to generic 500", func(t *testing.T) {
		t.Parallel()
		itemStore := mocks.NewMockItemStore()
		itemStore.CreateFn = func(ctx context.Context, item *domain.Item) error {
			return errors.New("connection refused")
		}
		router := newTestRouter(itemStore)

		rec := doRequest(t, router, http.MethodPost, "/items/", api.CreateItemRequest{
			Name:        "name",
			Description: "description",
		})

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var errResp shared.ErrorResponse
		decodeBody(t, rec, &errResp)
		assert.NotContains(t, errResp.Error, "connection refused",
			"Internal error details must not leak to the client")
	})
}

func TestListItems(t *testing.T) {
	t.Parallel()

	t.Run("returns items in ascending ID order", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		mustCreateItem(t, router, "first", "first description")
		mustCreateItem(t, router, "second", "second description")
		mustCreateItem(t, router, "third", "third description")

		rec := doRequest(t, router, http.MethodGet, "/items/", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var items []api.ItemResponse
		decodeBody(t, rec, &items)
		require.Len(t, items, 3)
		assert.Equal(t, int64(1), items[0].ID)
		assert.Equal(t, int64(2), items[1].ID)
		assert.Equal(t, int64(3), items[2].ID)
	})

	t.Run("applies limit and offset parameters", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		mustCreateItem(t, router, "first", "first description")
		mustCreateItem(t, router, "second", "second description")
		mustCreateItem(t, router, "third", "third description")

		rec := doRequest(t, router, http.MethodGet, "/items/?limit=1&offset=1", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var items []api.ItemResponse
		decodeBody(t, rec, &items)
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].ID, "Offset should skip the first item")
	})

	t.Run("defaults to limit 10 offset 0", func(t *testing.T) {
		t.Parallel()
		itemStore := mocks.NewMockItemStore()
		var gotLimit, gotOffset int
		itemStore.ListFn = func(ctx context.Context, limit, offset int) ([]*domain.Item, error) {
			gotLimit, gotOffset = limit, offset
			return []*domain.Item{}, nil
		}
		router := newTestRouter(itemStore)

		rec := doRequest(t, router, http.MethodGet, "/items/", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 10, gotLimit)
		assert.Equal(t, 0, gotOffset)
	})

	t.Run("clamps an oversized limit", func(t *testing.T) {
		t.Parallel()
		itemStore := mocks.NewMockItemStore()
		for i := 1; i <= store.MaxListLimit+10; i++ {
			itemStore.Items[int64(i)] = &domain.Item{
				ID:          int64(i),
				Name:        fmt.Sprintf("item %d", i),
				Description: "seeded description",
			}
		}
		itemStore.LastItemID = int64(store.MaxListLimit + 10)
		router := newTestRouter(itemStore)

		rec := doRequest(t, router, http.MethodGet, "/items/?limit=1000", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var items []api.ItemResponse
		decodeBody(t, rec, &items)
		assert.Len(t, items, store.MaxListLimit,
			"A limit above the maximum should be clamped, not honored")
	})

	t.Run("treats a negative offset as zero", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		mustCreateItem(t, router, "first", "first description")
		mustCreateItem(t, router, "second", "second description")

		rec := doRequest(t, router, http.MethodGet, "/items/?offset=-5", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var items []api.ItemResponse
		decodeBody(t, rec, &items)
		require.Len(t, items, 2)
		assert.Equal(t, int64(1), items[0].ID, "Negative offset should start at the first item")
	})

	t.Run("returns empty array rather than null", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodGet, "/items/", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("rejects non-integer limit", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodGet, "/items/?limit=ten", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetItem(t *testing.T) {
	t.Parallel()

	t.Run("returns the item by ID", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		created := mustCreateItem(t, router, "Sample Item", "This is a sample item")

		rec := doRequest(t, router, http.MethodGet, "/items/1", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var got api.ItemResponse
		decodeBody(t, rec, &got)
		assert.Equal(t, created, got, "GET should return the identical record")
	})

	t.Run("returns 404 for unknown ID", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodGet, "/items/42", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var errResp shared.ErrorResponse
		decodeBody(t, rec, &errResp)
		assert.Equal(t, "Item not found", errResp.Error)
	})

	t.Run("returns 400 for non-integer ID", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodGet, "/items/abc", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	t.Parallel()

	t.Run("updates only the supplied field", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		mustCreateItem(t, router, "original name", "original description")

		rec := doRequest(t, router, http.MethodPut, "/items/1",
			`{"description":"updated description"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var updated api.ItemResponse
		decodeBody(t, rec, &updated)
		assert.Equal(t, "original name", updated.Name, "Omitted field should be unchanged")
		assert.Equal(t, "updated description", updated.Description)
	})

	t.Run("update with no fields leaves the record unchanged", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		created := mustCreateItem(t, router, "original name", "original description")

		rec := doRequest(t, router, http.MethodPut, "/items/1", `{}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var updated api.ItemResponse
		decodeBody(t, rec, &updated)
		assert.Equal(t, created, updated)
	})

	t.Run("rejects supplied empty name", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		mustCreateItem(t, router, "original name", "original description")

		rec := doRequest(t, router, http.MethodPut, "/items/1", `{"name":""}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var errResp shared.ErrorResponse
		decodeBody(t, rec, &errResp)
		require.Len(t, errResp.Details, 1)
		assert.Equal(t, "name", errResp.Details[0].Field)
	})

	t.Run("returns 404 for unknown ID", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodPut, "/items/42", `{"name":"new name"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		mustCreateItem(t, router, "original name", "original description")

		rec := doRequest(t, router, http.MethodPut, "/items/1", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteItem(t *testing.T) {
	t.Parallel()

	t.Run("deletes and confirms", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		mustCreateItem(t, router, "Sample Item", "This is a sample item")

		rec := doRequest(t, router, http.MethodDelete, "/items/1", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var msg shared.MessageResponse
		decodeBody(t, rec, &msg)
		assert.Equal(t, "Item deleted successfully", msg.Message)

		// The record is gone afterwards.
		rec = doRequest(t, router, http.MethodGet, "/items/1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())
		mustCreateItem(t, router, "Sample Item", "This is a sample item")

		rec := doRequest(t, router, http.MethodDelete, "/items/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, router, http.MethodDelete, "/items/1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns 404 for unknown ID", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(mocks.NewMockItemStore())

		rec := doRequest(t, router, http.MethodDelete, "/items/42", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// TestItemLifecycle runs the full create/read/delete scenario end to end
// against the handler stack.
func TestItemLifecycle(t *testing.T) {
	t.Parallel()
	router := newTestRouter(mocks.NewMockItemStore())

	created := mustCreateItem(t, router, "Sample Item", "This is a sample item")
	require.Equal(t, int64(1), created.ID)

	rec := doRequest(t, router, http.MethodGet, "/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched api.ItemResponse
	decodeBody(t, rec, &fetched)
	assert.Equal(t, created, fetched)

	rec = doRequest(t, router, http.MethodDelete, "/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/items/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
