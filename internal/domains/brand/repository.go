package brand

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines brand data access
type Repository interface {
	// Create inserts a brand.
	// Errors: ErrDuplicateSlug.
	Create(ctx context.Context, brand *Brand) error

	// GetByID excludes soft-deleted rows.
	// Errors: ErrBrandNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	// GetBySlug retrieves a brand by URL slug.
	// Errors: ErrBrandNotFound.
	GetBySlug(ctx context.Context, slug string) (*Brand, error)

	// List returns all live brands ordered by name
	List(ctx context.Context) ([]Brand, error)

	// Update persists name/website/description changes.
	// Errors: ErrBrandNotFound, ErrDuplicateSlug.
	Update(ctx context.Context, brand *Brand) error

	// Delete soft-deletes a brand.
	// Errors: ErrBrandNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountApprovedProducts counts the brand's products visible in the
	// public catalog
	CountApprovedProducts(ctx context.Context, brandID uuid.UUID) (int, error)

	// HasProducts reports whether any product references the brand,
	// pending submissions included
	HasProducts(ctx context.Context, brandID uuid.UUID) (bool, error)
}
