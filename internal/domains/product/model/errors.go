package model

import "errors"

// Repository-level errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSlug   = errors.New("product slug already exists")
)

// Validation errors
var (
	ErrInvalidProductName   = errors.New("invalid product name")
	ErrInvalidCategory      = errors.New("invalid product category")
	ErrInvalidPVAStatus     = errors.New("invalid pva status")
	ErrInvalidPVAPercentage = errors.New("pva percentage must be between 0 and 100")
	ErrBrandNotFound        = errors.New("referenced brand not found")
)

// Moderation errors
var (
	ErrAlreadyModerated = errors.New("submission has already been moderated")
	ErrRejectionReason  = errors.New("a rejection reason is required")
)

// Bulk import errors
var (
	ErrImportFileRequired = errors.New("an xlsx file is required")
	ErrTooManyRows        = errors.New("import file exceeds the row limit")
	ErrEmptyFile          = errors.New("import file contains no data rows")
)
