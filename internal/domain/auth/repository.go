package auth

import (
	"context"

	"jobdesk/internal/core/id"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates user data, including login bookkeeping.
	Update(ctx context.Context, user *User) error

	// Exists reports whether a user with the email exists.
	Exists(ctx context.Context, email string) (bool, error)
}
