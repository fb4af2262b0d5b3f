package auth

import (
	"testing"

	"github.com/AjayLohith/admin-access/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_IsAdmin(t *testing.T) {
	assert.True(t, Context{UserID: 1, Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, Context{UserID: 1, Role: models.RoleUser}.IsAdmin())
	assert.False(t, Context{}.IsAdmin())
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		ownerID  int
		expected bool
	}{
		{
			name:     "user accesses own resource",
			ctx:      Context{UserID: 1, Role: models.RoleUser},
			ownerID:  1,
			expected: true,
		},
		{
			name:     "user denied foreign resource",
			ctx:      Context{UserID: 1, Role: models.RoleUser},
			ownerID:  2,
			expected: false,
		},
		{
			name:     "admin accesses own resource",
			ctx:      Context{UserID: 3, Role: models.RoleAdmin},
			ownerID:  3,
			expected: true,
		},
		{
			name:     "admin accesses foreign resource",
			ctx:      Context{UserID: 3, Role: models.RoleAdmin},
			ownerID:  1,
			expected: true,
		},
		{
			name:     "zero identity denied",
			ctx:      Context{},
			ownerID:  1,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanAccess(tt.ctx, tt.ownerID))
		})
	}
}

func TestOwnerScope(t *testing.T) {
	t.Run("admin is unrestricted", func(t *testing.T) {
		scope := OwnerScope(Context{UserID: 3, Role: models.RoleAdmin})
		assert.Nil(t, scope)
	})

	t.Run("user is scoped to own ID", func(t *testing.T) {
		scope := OwnerScope(Context{UserID: 7, Role: models.RoleUser})
		require.NotNil(t, scope)
		assert.Equal(t, 7, *scope)
	})
}
