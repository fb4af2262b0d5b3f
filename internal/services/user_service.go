package services

import (
	"context"
	"errors"

	"github.com/AjayLohith/admin-access/internal/auth"
	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/AjayLohith/admin-access/internal/repositories"
	"go.uber.org/zap"
)

// AdminUserRepository is the interface that wraps methods for User table data access needed by the user service
type AdminUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, repositories.ErrUserNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetAll retrieves a page of users, newest first, optionally filtered by a search term.
	//
	// "page" parameter is used for pagination.
	// "count" parameter is used for page size.
	// "search" parameter is matched against name and email.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, page, count int, search string) ([]models.User, error)
	// Method Count returns the total number of users matching the search term.
	//
	// If some error occurs, the error will be returned together with 0.
	Count(ctx context.Context, search string) (int, error)
}

// userService implements UserService
type userService struct {
	userRepo AdminUserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo AdminUserRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns a page of registered accounts. The route is gated by the
// admin middleware, and the policy is re-checked here so the listing cannot
// be reached without an admin identity. Password hashes never appear in the
// result.
func (s *userService) ListUsers(ctx context.Context, authCtx auth.Context, page, limit int, search string) (*models.UserListResponse, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, err := s.userRepo.GetAll(ctx, page, limit, search)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx, search)
	if err != nil {
		return nil, err
	}

	list := make([]models.UserListItem, len(users))
	for i, user := range users {
		list[i] = models.UserListItem{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		}
	}

	totalPages := (total + limit - 1) / limit

	return &models.UserListResponse{
		Users:       list,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalUsers:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

// GetUser retrieves a single account, enforcing the access policy (admins
// may read any account, everyone else only their own)
func (s *userService) GetUser(ctx context.Context, authCtx auth.Context, userID int) (*models.UserListItem, error) {
	if !auth.CanAccess(authCtx, userID) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &models.UserListItem{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}
