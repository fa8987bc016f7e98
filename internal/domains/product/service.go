package product

import (
	"context"
	"io"

	"pvadb-backend/internal/domains/product/model"

	"github.com/google/uuid"
)

// Submitter identifies who is submitting. A zero-value Submitter is an
// anonymous caller; the quota engine treats it as an untrusted identity.
type Submitter struct {
	UserID  string
	IsAdmin bool
}

// Service defines business logic for the product catalog and the
// community submission pipeline.
type Service interface {
	// Submit creates one pending submission after checking the caller's
	// submission quota and records the consumption on success.
	// Errors: quota.ErrSubmissionLimitReached when the tier allowance is
	// exhausted, model.ErrDuplicateSlug, model.ErrBrandNotFound,
	// validation sentinels from the entity constructor.
	Submit(ctx context.Context, submitter Submitter, req *model.SubmitProductRequest) (*model.SubmissionResponse, error)

	// List retrieves the public catalog: approved products only
	List(ctx context.Context, query model.ListProductsQuery) ([]model.ProductResponse, int64, error)

	// GetBySlug retrieves one approved product for the detail page.
	// Errors: model.ErrProductNotFound.
	GetBySlug(ctx context.Context, slug string) (*model.ProductResponse, error)

	// ListPending retrieves the moderation queue for admins, oldest first
	ListPending(ctx context.Context, page, limit int) ([]model.ProductResponse, int64, error)

	// Approve marks a pending submission approved and notifies the
	// submitter by email.
	// Errors: model.ErrProductNotFound, model.ErrAlreadyModerated.
	Approve(ctx context.Context, productID, moderatorID uuid.UUID) error

	// Reject marks a pending submission rejected with mandatory feedback.
	// Errors: model.ErrProductNotFound, model.ErrAlreadyModerated,
	// model.ErrRejectionReason.
	Reject(ctx context.Context, productID, moderatorID uuid.UUID, reason string) error

	// UploadImage validates, stores and asynchronously resizes a product
	// image. Returns the stored object key.
	UploadImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64) (string, error)
}

// BulkImportService handles spreadsheet imports. Split from Service
// because it drags in the xlsx parser, which most callers never need.
type BulkImportService interface {
	// ImportFromExcel parses an .xlsx upload, validates every row, checks
	// the caller's bulk quota against the row count, and inserts the valid
	// rows as pending submissions.
	// Errors: quota.ErrSubmissionLimitReached, model.ErrEmptyFile,
	// model.ErrTooManyRows.
	ImportFromExcel(ctx context.Context, submitter Submitter, reader io.Reader) (*model.BulkImportResult, error)
}
