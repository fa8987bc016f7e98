package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines account business logic
type Service interface {
	// Register creates an account with a bcrypt-hashed password.
	// Errors: ErrEmailAlreadyExists, validation errors.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)

	// Login verifies credentials and issues an access/refresh token pair.
	// Errors: ErrInvalidCredentials (also for unknown emails, so the
	// endpoint does not leak which addresses exist), ErrUserInactive.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// RefreshToken exchanges a valid refresh token for a new pair.
	// Errors: ErrInvalidToken, ErrUserNotFound, ErrUserInactive.
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)

	// GetProfile returns the account plus its submission-quota standing.
	// Errors: ErrUserNotFound.
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
}
