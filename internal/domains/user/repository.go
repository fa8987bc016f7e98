package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for accounts
type Repository interface {
	// Create inserts a new user.
	// Errors: ErrEmailAlreadyExists.
	Create(ctx context.Context, user *User) error

	// FindByID loads a user, excluding soft-deleted rows.
	// Errors: ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail loads a user for login.
	// Errors: ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// GetEmailByID resolves just the email column, used by moderation
	// outcome notifications
	GetEmailByID(ctx context.Context, id uuid.UUID) (string, error)

	// UpdateLastLogin stamps a successful login
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
