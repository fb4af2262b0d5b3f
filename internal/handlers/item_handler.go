package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/AjayLohith/admin-access/internal/auth"
	"github.com/AjayLohith/admin-access/internal/middleware"
	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/AjayLohith/admin-access/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemService is the interface that wraps methods for item business logic.
type ItemService interface {
	// Method ListItems returns a page of items visible to the requesting identity.
	//
	// "authCtx" parameter carries the resolved identity; non-admins only see their own items.
	// "page", "limit" and "search" parameters control paging and filtering.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	ListItems(ctx context.Context, authCtx auth.Context, page, limit int, search string) (*models.ItemListResponse, error)
	// Method GetItem retrieves a single item, enforcing the ownership policy.
	//
	// If the item does not exist, services.ErrNotFound will be returned.
	// If the identity may not access the item, services.ErrForbidden will be returned.
	GetItem(ctx context.Context, authCtx auth.Context, itemID int) (*models.Item, error)
	// Method CreateItem creates an item owned by the requesting identity.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	CreateItem(ctx context.Context, authCtx auth.Context, req *models.ItemRequest) (*models.Item, error)
	// Method UpdateItem updates an item, enforcing the ownership policy.
	//
	// Please reference GetItem method for error values.
	UpdateItem(ctx context.Context, authCtx auth.Context, itemID int, req *models.ItemRequest) (*models.Item, error)
	// Method DeleteItem deletes an item, enforcing the ownership policy.
	//
	// Please reference GetItem method for error values.
	DeleteItem(ctx context.Context, authCtx auth.Context, itemID int) error
}

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	BaseHandler
	itemService ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService ItemService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		BaseHandler: BaseHandler{Logger: logger},
		itemService: itemService,
	}
}

// RegisterRoutes registers all item handler routes behind the auth middleware
// Note: This assumes the router is already scoped to /api
func (h *ItemHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/items", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListItems)
		r.Post("/", h.CreateItem)
		r.Get("/{id}", h.GetItem)
		r.Put("/{id}", h.UpdateItem)
		r.Delete("/{id}", h.DeleteItem)
	})
}

// ListItems handles GET /items
// @Summary List items
// @Description Get a paginated list of items with optional search. Users see only their own items; admins see all items.
// @Tags items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search in title or description"
// @Success 200 {object} models.ItemListResponse "Page of items"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /items [get]
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page := 1
	limit := 10
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	search := r.URL.Query().Get("search")

	resp, err := h.itemService.ListItems(r.Context(), authCtx, page, limit, search)
	if err != nil {
		h.Logger.Error("failed to list items", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// GetItem handles GET /items/{id}
// @Summary Get a single item
// @Description Get an item by ID. Users may only access their own items; admins may access any item.
// @Tags items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Item ID"
// @Success 200 {object} models.Item "Item"
// @Failure 400 {object} map[string]string "Invalid item ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	itemID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || itemID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.itemService.GetItem(r.Context(), authCtx, itemID)
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// CreateItem handles POST /items
// @Summary Create an item
// @Description Create a new item owned by the authenticated user.
// @Tags items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.ItemRequest true "Item data"
// @Success 201 {object} models.Item "Created item"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /items [post]
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		h.RespondError(w, http.StatusBadRequest, "title is required")
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), authCtx, &req)
	if err != nil {
		h.Logger.Error("failed to create item", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.RespondJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /items/{id}
// @Summary Update an item
// @Description Update an item's title and description. Users may only update their own items; admins may update any item.
// @Tags items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Item ID"
// @Param request body models.ItemRequest true "Item data"
// @Success 200 {object} models.Item "Updated item"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id} [put]
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	itemID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || itemID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req models.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		h.RespondError(w, http.StatusBadRequest, "title is required")
		return
	}

	item, err := h.itemService.UpdateItem(r.Context(), authCtx, itemID, &req)
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /items/{id}
// @Summary Delete an item
// @Description Delete an item by ID. Users may only delete their own items; admins may delete any item.
// @Tags items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string "Item deleted successfully"
// @Failure 400 {object} map[string]string "Invalid item ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id} [delete]
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	itemID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || itemID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), authCtx, itemID); err != nil {
		h.respondItemError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// respondItemError maps service errors onto HTTP status codes
func (h *ItemHandler) respondItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, services.ErrForbidden):
		h.RespondError(w, http.StatusForbidden, "access denied")
	default:
		h.Logger.Error("item operation failed", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
