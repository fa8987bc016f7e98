package content

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type CreatePostRequest struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Body, validation.Required),
	)
}

type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

type CreateResearchRequest struct {
	Title   string `json:"title" binding:"required"`
	URL     string `json:"url" binding:"required"`
	Source  string `json:"source" binding:"required"`
	Summary string `json:"summary,omitempty"`
}

func (r CreateResearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.URL, validation.Required, is.URL),
		validation.Field(&r.Source, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Summary, validation.Length(0, 2000)),
	)
}

type CreateVideoRequest struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Platform    string `json:"platform" binding:"required"`
	Description string `json:"description,omitempty"`
}

func (r CreateVideoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.URL, validation.Required, is.URL),
		validation.Field(&r.Platform, validation.Required, validation.In("youtube", "vimeo", "tiktok", "other")),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}
