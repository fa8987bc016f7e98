package service

import (
	"context"
	"strings"
	"time"

	"pvadb-backend/internal/domains/content"
	"pvadb-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type contentService struct {
	repo content.Repository
}

func NewContentService(repo content.Repository) content.Service {
	return &contentService{repo: repo}
}

// ========================================
// POSTS
// ========================================

func (s *contentService) CreatePost(ctx context.Context, req content.CreatePostRequest) (*content.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := content.NewPost(req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	if req.Published {
		p.Publish()
	}

	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("post_id", p.ID.String()).Bool("published", p.Published).Msg("Post created")

	return p, nil
}

// GetPostBySlug only surfaces published posts to the public
func (s *contentService) GetPostBySlug(ctx context.Context, slug string) (*content.Post, error) {
	p, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, content.ErrPostNotFound
	}
	return p, nil
}

func (s *contentService) ListPublishedPosts(ctx context.Context, page, limit int) ([]content.Post, int64, error) {
	page, limit = utils.NormalizePage(page, limit)
	return s.repo.ListPosts(ctx, true, (page-1)*limit, limit)
}

func (s *contentService) UpdatePost(ctx context.Context, id uuid.UUID, req content.UpdatePostRequest) (*content.Post, error) {
	p, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 255 {
			return nil, content.ErrInvalidTitle
		}
		p.Title = title
		p.Slug = utils.GenerateSlug(title)
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, content.ErrInvalidBody
		}
		p.Body = *req.Body
	}
	if req.Published != nil {
		if *req.Published {
			p.Publish()
		} else {
			p.Published = false
		}
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdatePost(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *contentService) DeletePost(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePost(ctx, id)
}

// ========================================
// RESEARCH LINKS
// ========================================

func (s *contentService) AddResearch(ctx context.Context, req content.CreateResearchRequest) (*content.ResearchLink, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	link := &content.ResearchLink{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		URL:       req.URL,
		Source:    strings.TrimSpace(req.Source),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Summary != "" {
		summary := req.Summary
		link.Summary = &summary
	}

	if err := s.repo.CreateResearch(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (s *contentService) ListResearch(ctx context.Context) ([]content.ResearchLink, error) {
	return s.repo.ListResearch(ctx)
}

func (s *contentService) DeleteResearch(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteResearch(ctx, id)
}

// ========================================
// VIDEOS
// ========================================

func (s *contentService) AddVideo(ctx context.Context, req content.CreateVideoRequest) (*content.Video, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &content.Video{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		URL:       req.URL,
		Platform:  req.Platform,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != "" {
		desc := req.Description
		v.Description = &desc
	}

	if err := s.repo.CreateVideo(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *contentService) ListVideos(ctx context.Context) ([]content.Video, error) {
	return s.repo.ListVideos(ctx)
}

func (s *contentService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVideo(ctx, id)
}
