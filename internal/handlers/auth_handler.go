package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/AjayLohith/admin-access/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Signup registers a new account and issues a session token.
	//
	// "req" parameter contains name, email, password and optional role.
	//
	// If a user with such email already exists, services.ErrUserExists will be returned.
	// If some other error occurs, the error will be returned together with "nil" value.
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	// Method Login authenticates a user and issues a session token.
	//
	// "req" parameter contains email and password.
	//
	// If the email is unknown or the password is wrong, services.ErrInvalidCredentials will be returned.
	// If some other error occurs, the error will be returned together with "nil" value.
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
	})
}

// Signup handles POST /auth/signup
// @Summary Register a new user
// @Description Register a new user with name, email, password and optional role. Returns the created user and a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup request"
// @Success 201 {object} models.AuthResponse "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body, invalid role, or user already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	resp, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			h.RespondError(w, http.StatusBadRequest, "User already exists")
			return
		}
		if errors.Is(err, services.ErrInvalidRole) {
			h.RespondError(w, http.StatusBadRequest, "invalid role")
			return
		}
		h.Logger.Error("failed to sign up user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to sign up")
		return
	}

	h.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate user with email and password. Returns the user and a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse "Login successful"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.Logger.Error("failed to login user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}
