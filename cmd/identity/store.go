package identity

import (
	"context"
	"time"
)

// User is habitd's canonical security principal.
// PasswordHash is the encoded Argon2id digest; it is never serialized
// into any HTTP response and never logged.
type User struct {
	ID       string
	Username string
	Email    string

	PasswordHash string

	CreatedAt time.Time
}

// CreateUserInput describes a user registration request.
// PasswordHash must already be an encoded digest; the store never sees
// plaintext credentials.
type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	Now          time.Time
}

// Store is the credential persistence boundary.
//
// Uniqueness contract:
//   - CreateUser relies on the store's unique index on the normalized email.
//     There is no separate existence check; concurrent duplicate
//     registrations resolve to exactly one success and one ConflictError.
type Store interface {
	// CreateUser inserts a new user record.
	// Returns ConflictError{Field: "email"} on a duplicate email.
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)

	// GetUserByEmail looks up a user by (normalized) email.
	// Returns NotFoundError when no record exists.
	GetUserByEmail(ctx context.Context, email string) (User, error)
}
