package model

import (
	"strings"
	"time"

	"pvadb-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PVAStatus records whether a product contains polyvinyl alcohol
type PVAStatus string

const (
	PVAStatusContains PVAStatus = "contains"
	PVAStatusFree     PVAStatus = "free"
	PVAStatusUnknown  PVAStatus = "unknown"
)

func (s PVAStatus) IsValid() bool {
	switch s {
	case PVAStatusContains, PVAStatusFree, PVAStatusUnknown:
		return true
	}
	return false
}

func (s PVAStatus) String() string {
	return string(s)
}

// SubmissionStatus is the moderation state of a community submission
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s SubmissionStatus) String() string {
	return string(s)
}

// Category buckets for the public browse filters
type Category string

const (
	CategoryLaundry      Category = "laundry"
	CategoryDishwasher   Category = "dishwasher"
	CategoryPersonalCare Category = "personal_care"
	CategoryCleaning     Category = "cleaning"
	CategoryOther        Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryLaundry, CategoryDishwasher, CategoryPersonalCare, CategoryCleaning, CategoryOther:
		return true
	}
	return false
}

// Product is the domain entity, mapped 1:1 to the products table
type Product struct {
	// Identity
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	Slug string    `db:"slug" json:"slug"`

	// Classification
	BrandID  *uuid.UUID `db:"brand_id" json:"brand_id,omitempty"`
	Category Category   `db:"category" json:"category"`
	Barcode  *string    `db:"barcode" json:"barcode,omitempty"`

	// PVA facts
	PVAStatus     PVAStatus        `db:"pva_status" json:"pva_status"`
	PVAPercentage *decimal.Decimal `db:"pva_percentage" json:"pva_percentage,omitempty"`
	Ingredients   pq.StringArray   `db:"ingredients" json:"ingredients,omitempty"`

	// Presentation
	Description *string `db:"description" json:"description,omitempty"`
	ImageURL    *string `db:"image_url" json:"image_url,omitempty"`

	// Moderation
	Status          SubmissionStatus `db:"status" json:"status"`
	RejectionReason *string          `db:"rejection_reason" json:"rejection_reason,omitempty"`
	SubmittedBy     *uuid.UUID       `db:"submitted_by" json:"submitted_by,omitempty"`
	ModeratedBy     *uuid.UUID       `db:"moderated_by" json:"-"`
	ModeratedAt     *time.Time       `db:"moderated_at" json:"moderated_at,omitempty"`

	// Timestamps
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewProduct builds a pending submission with entity-level validation
func NewProduct(name string, category Category, pvaStatus PVAStatus, submittedBy *uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 {
		return nil, ErrInvalidProductName
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if !pvaStatus.IsValid() {
		return nil, ErrInvalidPVAStatus
	}

	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Slug:        utils.GenerateSlug(name),
		Category:    category,
		PVAStatus:   pvaStatus,
		Status:      StatusPending,
		SubmittedBy: submittedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsPending reports whether the submission still awaits moderation
func (p *Product) IsPending() bool {
	return p.Status == StatusPending
}
