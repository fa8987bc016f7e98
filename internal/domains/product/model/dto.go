package model

import (
	"time"

	"pvadb-backend/internal/domains/quota"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// SUBMISSION DTOs
// ========================================

// SubmitProductRequest is the single-submission payload.
// Accepted from both authenticated and anonymous callers.
type SubmitProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	PVAStatus     string   `json:"pva_status" binding:"required"`
	BrandID       string   `json:"brand_id,omitempty"`
	Barcode       string   `json:"barcode,omitempty"`
	Description   string   `json:"description,omitempty"`
	PVAPercentage *float64 `json:"pva_percentage,omitempty"`
	Ingredients   []string `json:"ingredients,omitempty"`
}

func (r SubmitProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("product name is required"),
			validation.Length(2, 255),
		),
		validation.Field(&r.Category,
			validation.Required,
			validation.By(validCategory),
		),
		validation.Field(&r.PVAStatus,
			validation.Required,
			validation.By(validPVAStatus),
		),
		validation.Field(&r.Barcode,
			validation.Length(0, 64),
		),
		validation.Field(&r.Description,
			validation.Length(0, 4000),
		),
		validation.Field(&r.PVAPercentage,
			validation.By(validPercentage),
		),
		validation.Field(&r.Ingredients,
			validation.Length(0, 200),
		),
	)
}

func validCategory(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !Category(s).IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

func validPVAStatus(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !PVAStatus(s).IsValid() {
		return ErrInvalidPVAStatus
	}
	return nil
}

func validPercentage(value interface{}) error {
	p, ok := value.(*float64)
	if !ok || p == nil {
		return nil
	}
	if *p < 0 || *p > 100 {
		return ErrInvalidPVAPercentage
	}
	return nil
}

// RejectSubmissionRequest carries the mandatory moderator feedback
type RejectSubmissionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (r RejectSubmissionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason,
			validation.Required.Error("a rejection reason is required"),
			validation.Length(3, 1000),
		),
	)
}

// ========================================
// QUERY DTOs
// ========================================

// ListProductsQuery holds the public browse filters
type ListProductsQuery struct {
	Search    string `form:"q"`
	Category  string `form:"category"`
	PVAStatus string `form:"pva_status"`
	BrandID   string `form:"brand_id"`
	Sort      string `form:"sort"` // name, newest
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ========================================
// RESPONSE DTOs
// ========================================

type ProductResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	BrandID       *uuid.UUID `json:"brand_id,omitempty"`
	Category      string     `json:"category"`
	Barcode       *string    `json:"barcode,omitempty"`
	PVAStatus     string     `json:"pva_status"`
	PVAPercentage *string    `json:"pva_percentage,omitempty"`
	Ingredients   []string   `json:"ingredients,omitempty"`
	Description   *string    `json:"description,omitempty"`
	ImageURL      *string    `json:"image_url,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (p *Product) ToResponse() *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		BrandID:     p.BrandID,
		Category:    string(p.Category),
		Barcode:     p.Barcode,
		PVAStatus:   string(p.PVAStatus),
		Ingredients: p.Ingredients,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
	if p.PVAPercentage != nil {
		s := p.PVAPercentage.String()
		resp.PVAPercentage = &s
	}
	return resp
}

// SubmissionResponse is returned after a submission is accepted, carrying
// the remaining quota so the UI can tell the user how many they have left.
// RemainingAllowed marshals as null when the submitter is uncapped.
type SubmissionResponse struct {
	Product          *ProductResponse `json:"product"`
	RemainingAllowed quota.Limit      `json:"remaining_allowed"`
	TrustLevel       string           `json:"trust_level"`
}

// ========================================
// BULK IMPORT DTOs
// ========================================

type ImportValidationError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Error string `json:"error"`
}

type BulkImportResult struct {
	Success         bool                    `json:"success"`
	TotalRows       int                     `json:"total_rows"`
	SuccessRows     int                     `json:"success_rows"`
	FailedRows      int                     `json:"failed_rows"`
	CreatedProducts []uuid.UUID             `json:"created_products,omitempty"`
	Errors          []ImportValidationError `json:"errors,omitempty"`
}

// PendingStats summarizes the moderation queue for the admin digest
type PendingStats struct {
	PendingCount int
	OldestAt     *time.Time
}
