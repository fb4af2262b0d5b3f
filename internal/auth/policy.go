package auth

import "github.com/AjayLohith/admin-access/internal/models"

// Context is the resolved identity of one in-flight request. It is built by
// the auth middleware after token resolution, passed explicitly down the call
// chain, and discarded when the request completes.
type Context struct {
	UserID int
	Role   models.Role
}

// IsAdmin reports whether the identity holds the admin role
func (c Context) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// CanAccess reports whether the identity may operate on a resource owned by
// ownerID. Admins may access any resource; everyone else only their own.
func CanAccess(c Context, ownerID int) bool {
	return c.IsAdmin() || c.UserID == ownerID
}

// OwnerScope returns the ownership restriction for list queries: nil (no
// restriction) for admins, the requesting user's ID for everyone else.
func OwnerScope(c Context) *int {
	if c.IsAdmin() {
		return nil
	}
	id := c.UserID
	return &id
}
