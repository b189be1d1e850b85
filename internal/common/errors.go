// Package common defines shared sentinel errors and the application error
// taxonomy used across the catalog server. Callers should use errors.Is and
// errors.As to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Credential errors: empty password or malformed stored hash.
	ErrInvalidCredential = errors.New("invalid credential")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
