package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/AjayLohith/admin-access/internal/auth"
	"github.com/AjayLohith/admin-access/internal/middleware"
	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/AjayLohith/admin-access/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user administration logic.
type UserService interface {
	// Method ListUsers returns a page of registered accounts.
	//
	// "authCtx" parameter carries the resolved identity; non-admins get services.ErrForbidden.
	// "page", "limit" and "search" parameters control paging and filtering.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	ListUsers(ctx context.Context, authCtx auth.Context, page, limit int, search string) (*models.UserListResponse, error)
	// Method GetUser retrieves a single account.
	//
	// If the user does not exist, services.ErrNotFound will be returned.
	// If the identity may not access the account, services.ErrForbidden will be returned.
	GetUser(ctx context.Context, authCtx auth.Context, userID int) (*models.UserListItem, error)
}

// UserHandler handles admin user-listing HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers all user handler routes behind the auth and admin middlewares
// Note: This assumes the router is already scoped to /api
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
	})
}

// ListUsers handles GET /users
// @Summary List users
// @Description Get a paginated list of registered accounts with optional search. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Users per page (default: 10)"
// @Param search query string false "Search in name or email"
// @Success 200 {object} models.UserListResponse "Page of users"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
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

	resp, err := h.userService.ListUsers(r.Context(), authCtx, page, limit, search)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			h.RespondError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		h.Logger.Error("failed to list users", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// GetUser handles GET /users/{id}
// @Summary Get a single user
// @Description Get a registered account by ID. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.UserListItem "User"
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || userID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetUser(r.Context(), authCtx, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			h.RespondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrForbidden):
			h.RespondError(w, http.StatusForbidden, "insufficient permissions")
		default:
			h.Logger.Error("failed to get user", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to get user")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
