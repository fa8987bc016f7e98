package brand

import (
	"context"

	"github.com/google/uuid"
)

// Service defines brand business logic. Create/Update/Delete are
// admin-only; listing is public.
type Service interface {
	Create(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error)
	GetBySlug(ctx context.Context, slug string) (*BrandResponse, error)
	List(ctx context.Context) ([]BrandResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error)

	// Delete refuses to remove a brand that products still reference.
	// Errors: ErrBrandNotFound, ErrBrandHasProducts.
	Delete(ctx context.Context, id uuid.UUID) error
}
