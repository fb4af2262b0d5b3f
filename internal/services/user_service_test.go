package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AjayLohith/admin-access/internal/auth"
	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/AjayLohith/admin-access/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminUserRepository is a mock implementation of AdminUserRepository
type mockAdminUserRepository struct {
	user      *models.User
	users     []models.User
	total     int
	getErr    error
	getAllErr error
	countErr  error
}

func (m *mockAdminUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockAdminUserRepository) GetAll(ctx context.Context, page, count int, search string) ([]models.User, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.users, nil
}

func (m *mockAdminUserRepository) Count(ctx context.Context, search string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.total, nil
}

func TestUserService_ListUsers(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	registered := []models.User{
		{ID: 1, Name: "Ada", Email: "ada@example.com", Role: models.RoleAdmin, PasswordHash: "secret-hash", CreatedAt: time.Now()},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Role: models.RoleUser, PasswordHash: "secret-hash", CreatedAt: time.Now()},
	}

	tests := []struct {
		name          string
		authCtx       auth.Context
		page          int
		limit         int
		userRepo      *mockAdminUserRepository
		expectedError error
		expectedTotal int
	}{
		{
			name:          "admin lists users",
			authCtx:       adminCtx,
			page:          1,
			limit:         10,
			userRepo:      &mockAdminUserRepository{users: registered, total: 2},
			expectedTotal: 2,
		},
		{
			name:          "non-admin is rejected",
			authCtx:       userCtx,
			page:          1,
			limit:         10,
			userRepo:      &mockAdminUserRepository{users: registered, total: 2},
			expectedError: ErrForbidden,
		},
		{
			name:          "page and limit defaults",
			authCtx:       adminCtx,
			page:          0,
			limit:         0,
			userRepo:      &mockAdminUserRepository{users: registered, total: 2},
			expectedTotal: 2,
		},
		{
			name:     "database error on query",
			authCtx:  adminCtx,
			page:     1,
			limit:    10,
			userRepo: &mockAdminUserRepository{getAllErr: errors.New("database error")},
		},
		{
			name:     "database error on count",
			authCtx:  adminCtx,
			page:     1,
			limit:    10,
			userRepo: &mockAdminUserRepository{users: registered, countErr: errors.New("database error")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.userRepo, logger)

			resp, err := svc.ListUsers(context.Background(), tt.authCtx, tt.page, tt.limit, "")

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
			case tt.userRepo.getAllErr != nil || tt.userRepo.countErr != nil:
				assert.Error(t, err)
				assert.Nil(t, resp)
			default:
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, tt.expectedTotal, resp.TotalUsers)
				assert.Len(t, resp.Users, len(registered))
				for i, u := range resp.Users {
					assert.Equal(t, registered[i].Email, u.Email)
					assert.Equal(t, registered[i].Role, u.Role)
				}
			}
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	registered := &models.User{
		ID:           1,
		Name:         "Ada",
		Email:        "ada@example.com",
		Role:         models.RoleUser,
		PasswordHash: "secret-hash",
	}

	tests := []struct {
		name          string
		authCtx       auth.Context
		userID        int
		userRepo      *mockAdminUserRepository
		expectedError error
	}{
		{
			name:     "user reads own account",
			authCtx:  userCtx,
			userID:   1,
			userRepo: &mockAdminUserRepository{user: registered},
		},
		{
			name:          "user denied foreign account",
			authCtx:       userCtx,
			userID:        2,
			userRepo:      &mockAdminUserRepository{user: registered},
			expectedError: ErrForbidden,
		},
		{
			name:     "admin reads any account",
			authCtx:  adminCtx,
			userID:   1,
			userRepo: &mockAdminUserRepository{user: registered},
		},
		{
			name:          "account does not exist",
			authCtx:       adminCtx,
			userID:        404,
			userRepo:      &mockAdminUserRepository{getErr: repositories.ErrUserNotFound},
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.userRepo, logger)

			user, err := svc.GetUser(context.Background(), tt.authCtx, tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, registered.Email, user.Email)
			}
		})
	}
}
