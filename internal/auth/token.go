package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Token resolution errors. The HTTP layer collapses all of them into a
// single unauthenticated response so callers cannot probe why a token
// was rejected.
var (
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("token signature is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
)

// TokenGenerator handles session token generation and resolution
type TokenGenerator struct {
	secret string
	expiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, expiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret: secret,
		expiry: expiry,
	}
}

// Generate creates a signed session token carrying the user ID and role.
// The token is self-contained: resolving it later needs no database lookup,
// which also means a role change only takes effect once the token expires.
func (tg *TokenGenerator) Generate(userID int, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(tg.expiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Resolve validates a session token and returns the embedded user ID and role.
// Signature is checked before expiry, expiry before claim shape.
func (tg *TokenGenerator) Resolve(tokenString string) (int, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return 0, "", ErrTokenInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, "", ErrTokenExpired
	default:
		return 0, "", ErrTokenMalformed
	}

	if !token.Valid {
		return 0, "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrTokenMalformed
	}

	// Extract userID (JWT claims decode numbers as float64)
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", ErrTokenMalformed
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return 0, "", ErrTokenMalformed
	}
	role := models.Role(roleStr)
	if !role.Valid() {
		return 0, "", ErrTokenMalformed
	}

	return int(userID), role, nil
}
