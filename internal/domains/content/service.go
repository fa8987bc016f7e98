package content

import (
	"context"

	"github.com/google/uuid"
)

// Service defines curated-content business logic. Writes are admin-only;
// reads are public and only surface published posts.
type Service interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	ListPublishedPosts(ctx context.Context, page, limit int) ([]Post, int64, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error

	AddResearch(ctx context.Context, req CreateResearchRequest) (*ResearchLink, error)
	ListResearch(ctx context.Context) ([]ResearchLink, error)
	DeleteResearch(ctx context.Context, id uuid.UUID) error

	AddVideo(ctx context.Context, req CreateVideoRequest) (*Video, error)
	ListVideos(ctx context.Context) ([]Video, error)
	DeleteVideo(ctx context.Context, id uuid.UUID) error
}
