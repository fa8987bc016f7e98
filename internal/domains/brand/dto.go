package brand

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

func (r CreateBrandRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("brand name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Website,
			validation.When(r.Website != "", is.URL.Error("website must be a valid URL")),
		),
		validation.Field(&r.Description,
			validation.Length(0, 2000),
		),
	)
}

type UpdateBrandRequest struct {
	Name        *string `json:"name,omitempty"`
	Website     *string `json:"website,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r UpdateBrandRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.Website,
			validation.When(r.Website != nil && *r.Website != "", is.URL),
		),
	)
}

// BrandResponse adds the approved-product count to the entity fields
type BrandResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Website      *string   `json:"website,omitempty"`
	Description  *string   `json:"description,omitempty"`
	ProductCount int       `json:"product_count"`
}

func (b *Brand) ToResponse(productCount int) *BrandResponse {
	return &BrandResponse{
		ID:           b.ID,
		Name:         b.Name,
		Slug:         b.Slug,
		Website:      b.Website,
		Description:  b.Description,
		ProductCount: productCount,
	}
}
