package services

import "errors"

// Error taxonomy shared by the services. Handlers map these onto HTTP status
// codes; anything else is treated as an internal error.
var (
	// ErrUserExists is returned on signup when the email is already registered
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidRole is returned on signup when the requested role is not one
	// of the enumerated values
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidCredentials is returned on login for an unknown email or a
	// wrong password. The two cases are intentionally indistinguishable so
	// the endpoint cannot be used to probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when the targeted resource does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an authenticated identity is not
	// authorized for the targeted resource
	ErrForbidden = errors.New("forbidden")
)
