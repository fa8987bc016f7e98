package brand

import (
	"strings"
	"time"

	"pvadb-backend/internal/shared/utils"

	"github.com/google/uuid"
)

// Brand is a manufacturer or product line products hang off of
type Brand struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Slug        string     `db:"slug" json:"slug"`
	Website     *string    `db:"website" json:"website,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`
}

// NewBrand builds a brand with a generated slug
func NewBrand(name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 {
		return nil, ErrInvalidBrandName
	}

	now := time.Now().UTC()
	return &Brand{
		ID:        uuid.New(),
		Name:      name,
		Slug:      utils.GenerateSlug(name),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
