package api

import (
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/item-api/internal/api/shared"
	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/platform/logger"
	"github.com/phrazzld/item-api/internal/store"
)

// CreateItemRequest represents the request body for creating a new item.
type CreateItemRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required,min=1,max=1000"`
}

// UpdateItemRequest represents the request body for updating an existing item.
// Both fields are optional; an omitted field leaves the stored value unchanged,
// while a supplied field is validated like on create.
type UpdateItemRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1,max=1000"`
}

// ItemResponse represents the response data for an item.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemStore store.ItemStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
// If baseLogger is nil, the default logger is used.
func NewItemHandler(itemStore store.ItemStore, baseLogger *slog.Logger) *ItemHandler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return &ItemHandler{
		itemStore: itemStore,
		validator: newRequestValidator(),
		logger:    baseLogger.With(slog.String("component", "item_handler")),
	}
}

// newRequestValidator builds a validator that reports JSON field names in
// validation errors instead of Go struct field names.
func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateItem handles POST /items/ requests.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, "Validation failed", ValidationDetails(err))
		return
	}

	item, err := domain.NewItem(req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.itemStore.Create(r.Context(), item); err != nil {
		log.Error("failed to create item", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "Failed to create item")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}

// ListItems handles GET /items/ requests.
// It reads limit and offset query parameters, falling back to the store
// defaults when they are absent.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	limit, err := queryIntParam(r, "limit", store.DefaultListLimit)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	offset, err := queryIntParam(r, "offset", 0)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid offset parameter")
		return
	}

	items, err := h.itemStore.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list items", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "Failed to list items")
		return
	}

	response := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, itemToResponse(item))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathItemID(w, r)
	if !ok {
		return
	}

	item, err := h.itemStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// UpdateItem handles PUT /items/{id} requests.
// Only the fields present in the request body are applied; omitted fields
// keep their stored values.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathItemID(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, "Validation failed", ValidationDetails(err))
		return
	}

	patch := domain.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
	}

	item, err := h.itemStore.Update(r.Context(), id, patch)
	if err != nil {
		if !store.IsNotFoundError(err) && !domain.IsValidationError(err) {
			log.Error("failed to update item",
				slog.String("error", err.Error()),
				slog.Int64("item_id", id))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /items/{id} requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathItemID(w, r)
	if !ok {
		return
	}

	if err := h.itemStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message: "Item deleted successfully",
	})
}

// pathItemID extracts and parses the {id} path parameter.
// On failure it writes an error response and returns false.
func (h *ItemHandler) pathItemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Warn("invalid item ID in path", slog.String("value", idParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID")
		return 0, false
	}

	return id, true
}

// queryIntParam parses an optional integer query parameter, returning the
// fallback when the parameter is absent.
func queryIntParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// itemToResponse converts a domain.Item to an ItemResponse.
func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
	}
}
