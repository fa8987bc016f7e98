package product

import (
	"context"
	"time"

	"pvadb-backend/internal/domains/product/model"

	"github.com/google/uuid"
)

// ListFilter is the resolved query object passed to the repository after
// the service has normalized pagination and validated enum filters.
type ListFilter struct {
	Search    string
	Category  string
	PVAStatus string
	BrandID   *uuid.UUID
	Sort      string
	Offset    int
	Limit     int
	// Status restricts results to one moderation state. Public listings
	// always pass StatusApproved.
	Status model.SubmissionStatus
}

// Repository defines data access for products and their moderation state
type Repository interface {
	// Create inserts a single submission.
	// Errors: ErrDuplicateSlug if the slug is already taken.
	Create(ctx context.Context, product *model.Product) error

	// CreateBatch inserts a validated bulk-import batch in one transaction.
	// All-or-nothing: a slug collision rolls the whole batch back.
	CreateBatch(ctx context.Context, products []*model.Product) error

	// GetByID retrieves a product regardless of moderation state.
	// Errors: ErrProductNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetBySlug retrieves an approved product by its URL slug.
	// Errors: ErrProductNotFound.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// List retrieves a filtered, paginated page of products plus the total
	// match count
	List(ctx context.Context, filter ListFilter) ([]model.Product, int64, error)

	// ListPending retrieves the moderation queue, oldest first
	ListPending(ctx context.Context, offset, limit int) ([]model.Product, int64, error)

	// PendingStats summarizes the moderation queue for the daily digest
	PendingStats(ctx context.Context) (*model.PendingStats, error)

	// UpdateModeration transitions a pending product to approved or
	// rejected. Guarded by status='pending' in the WHERE clause so a
	// concurrent double-moderation loses cleanly.
	// Errors: ErrAlreadyModerated if the row was no longer pending,
	// ErrProductNotFound if it does not exist.
	UpdateModeration(ctx context.Context, id uuid.UUID, status model.SubmissionStatus, reason *string, moderatedBy uuid.UUID, moderatedAt time.Time) error

	// UpdateImageURL stores the object key of the processed primary image
	UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error

	// ExistsBySlug checks slug uniqueness before insert
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// ExistsBrand validates a brand reference on submission
	ExistsBrand(ctx context.Context, brandID uuid.UUID) (bool, error)
}
