package content

import (
	"context"

	"github.com/google/uuid"
)

// Repository covers the three curated-content tables
type Repository interface {
	// Posts
	CreatePost(ctx context.Context, post *Post) error
	GetPostByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	// ListPosts returns published posts only when publishedOnly is set
	ListPosts(ctx context.Context, publishedOnly bool, offset, limit int) ([]Post, int64, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error

	// Research links
	CreateResearch(ctx context.Context, link *ResearchLink) error
	ListResearch(ctx context.Context) ([]ResearchLink, error)
	DeleteResearch(ctx context.Context, id uuid.UUID) error

	// Videos
	CreateVideo(ctx context.Context, video *Video) error
	ListVideos(ctx context.Context) ([]Video, error)
	DeleteVideo(ctx context.Context, id uuid.UUID) error
}
