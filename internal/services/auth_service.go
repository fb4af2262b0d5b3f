package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AjayLohith/admin-access/internal/auth"
	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/AjayLohith/admin-access/internal/repositories"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for User table data access needed by the auth service
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user.
	//
	// If the email is already registered, repositories.ErrDuplicateEmail will be returned.
	// If some other error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter is expected to be normalized (trimmed, lowercased).
	//
	// If user with such email does not exist, repositories.ErrUserNotFound will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Signup registers a new account and issues a session token.
// The email is normalized for lookup and storage; the role defaults to User
// when unspecified. Signup performs exactly one write to the user store.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the pre-check; the unique index
		// reports it as the same condition.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return s.authResponse(user)
}

// Login authenticates a user by email and password and issues a session
// token. Login performs zero writes.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// authResponse issues a token scoped to the user's ID and role and builds
// the response returned by signup and login. The password hash never leaves
// the service.
func (s *authService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokenGenerator.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Token:     token,
	}, nil
}

// normalizeEmail lowercases and trims an email so lookups are case-insensitive
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
