package content

import "errors"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrResearchNotFound = errors.New("research link not found")
	ErrVideoNotFound    = errors.New("video not found")
	ErrDuplicateSlug    = errors.New("post slug already exists")
	ErrInvalidTitle     = errors.New("title must be 1-255 characters")
	ErrInvalidBody      = errors.New("body must not be empty")
)
