package content

import (
	"strings"
	"time"

	"pvadb-backend/internal/shared/utils"

	"github.com/google/uuid"
)

// Post is an editorial blog entry
type Post struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Body        string     `db:"body" json:"body"`
	Published   bool       `db:"published" json:"published"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// NewPost builds an unpublished draft
func NewPost(title, body string) (*Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 255 {
		return nil, ErrInvalidTitle
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrInvalidBody
	}

	now := time.Now().UTC()
	return &Post{
		ID:        uuid.New(),
		Title:     title,
		Slug:      utils.GenerateSlug(title),
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Publish stamps the first publication time once; re-publishing a post
// keeps its original date
func (p *Post) Publish() {
	p.Published = true
	if p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}
}

// ResearchLink is a curated pointer to external PVA research
type ResearchLink struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	URL       string    `db:"url" json:"url"`
	Source    string    `db:"source" json:"source"`
	Summary   *string   `db:"summary" json:"summary,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Video is a curated external video
type Video struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	URL         string    `db:"url" json:"url"`
	Platform    string    `db:"platform" json:"platform"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
