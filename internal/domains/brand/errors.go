package brand

import "errors"

var (
	ErrBrandNotFound    = errors.New("brand not found")
	ErrDuplicateSlug    = errors.New("brand slug already exists")
	ErrInvalidBrandName = errors.New("brand name must be 1-255 characters")
	ErrBrandHasProducts = errors.New("brand still has products")
)
