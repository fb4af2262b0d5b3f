package auth

import (
	"testing"
	"time"

	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator(t *testing.T) {
	tg := NewTokenGenerator("secret", time.Hour)

	assert.NotNil(t, tg)
	assert.Equal(t, "secret", tg.secret)
	assert.Equal(t, time.Hour, tg.expiry)
}

func TestTokenGenerator_Generate(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	token, err := tg.Generate(42, models.RoleAdmin)

	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, role, err := tg.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestTokenGenerator_Resolve(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	validToken, err := tg.Generate(1, models.RoleUser)
	require.NoError(t, err)

	otherSecret := NewTokenGenerator("other-secret", time.Hour)
	forgedToken, err := otherSecret.Generate(1, models.RoleAdmin)
	require.NoError(t, err)

	expiredGen := NewTokenGenerator("test-secret", -time.Minute)
	expiredToken, err := expiredGen.Generate(1, models.RoleUser)
	require.NoError(t, err)

	tampered := []byte(validToken)
	if tampered[len(tampered)-1] == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}

	tests := []struct {
		name          string
		token         string
		expectedError error
		expectedID    int
		expectedRole  models.Role
	}{
		{
			name:         "valid token",
			token:        validToken,
			expectedID:   1,
			expectedRole: models.RoleUser,
		},
		{
			name:          "wrong signing key",
			token:         forgedToken,
			expectedError: ErrTokenInvalid,
		},
		{
			name:          "expired token",
			token:         expiredToken,
			expectedError: ErrTokenExpired,
		},
		{
			name:          "empty token",
			token:         "",
			expectedError: ErrTokenMalformed,
		},
		{
			name:          "garbage token",
			token:         "not.a.token",
			expectedError: ErrTokenMalformed,
		},
		{
			name:          "tampered signature",
			token:         string(tampered),
			expectedError: ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, role, err := tg.Resolve(tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Zero(t, userID)
				assert.Empty(t, role)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, userID)
				assert.Equal(t, tt.expectedRole, role)
			}
		})
	}
}

func TestTokenGenerator_Resolve_BadClaims(t *testing.T) {
	secret := []byte("test-secret")

	sign := func(t *testing.T, claims jwt.MapClaims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)
		return token
	}

	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{
			name:   "missing user_id",
			claims: jwt.MapClaims{"role": "User", "exp": exp},
		},
		{
			name:   "user_id is a string",
			claims: jwt.MapClaims{"user_id": "1", "role": "User", "exp": exp},
		},
		{
			name:   "missing role",
			claims: jwt.MapClaims{"user_id": 1, "exp": exp},
		},
		{
			name:   "role is a number",
			claims: jwt.MapClaims{"user_id": 1, "role": 2, "exp": exp},
		},
		{
			name:   "role outside the enumeration",
			claims: jwt.MapClaims{"user_id": 1, "role": "SuperAdmin", "exp": exp},
		},
	}

	tg := NewTokenGenerator("test-secret", time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, role, err := tg.Resolve(sign(t, tt.claims))

			assert.ErrorIs(t, err, ErrTokenMalformed)
			assert.Zero(t, userID)
			assert.Empty(t, role)
		})
	}
}

func TestTokenGenerator_Resolve_RejectsNoneAlgorithm(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1,
		"role":    "Admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = tg.Resolve(tokenString)
	assert.Error(t, err)
}

func TestTokenGenerator_RoleSurvivesRoundTrip(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	for _, role := range []models.Role{models.RoleUser, models.RoleAdmin} {
		token, err := tg.Generate(7, role)
		require.NoError(t, err)

		_, resolved, err := tg.Resolve(token)
		require.NoError(t, err)
		assert.Equal(t, role, resolved)
	}
}
