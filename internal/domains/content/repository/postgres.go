package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pvadb-backend/internal/domains/content"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) content.Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// POSTS
// ========================================

func (r *postgresRepository) CreatePost(ctx context.Context, p *content.Post) error {
	query := `
        INSERT INTO posts (id, title, slug, body, published, published_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Slug, p.Body, p.Published, p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
			return content.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*content.Post, error) {
	query := `
        SELECT id, title, slug, body, published, published_at, created_at, updated_at
        FROM posts
        WHERE id = $1
    `

	var p content.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Body, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) GetPostBySlug(ctx context.Context, slug string) (*content.Post, error) {
	query := `
        SELECT id, title, slug, body, published, published_at, created_at, updated_at
        FROM posts
        WHERE slug = $1
    `

	var p content.Post
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Body, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) ListPosts(ctx context.Context, publishedOnly bool, offset, limit int) ([]content.Post, int64, error) {
	where := ""
	if publishedOnly {
		where = " WHERE published = true"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM posts"+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := `
        SELECT id, title, slug, body, published, published_at, created_at, updated_at
        FROM posts` + where + `
        ORDER BY COALESCE(published_at, created_at) DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []content.Post{}
	for rows.Next() {
		var p content.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read post rows: %w", err)
	}

	return posts, total, nil
}

func (r *postgresRepository) UpdatePost(ctx context.Context, p *content.Post) error {
	query := `
        UPDATE posts
        SET title = $2, slug = $3, body = $4, published = $5, published_at = $6, updated_at = NOW()
        WHERE id = $1
    `

	tag, err := r.pool.Exec(ctx, query, p.ID, p.Title, p.Slug, p.Body, p.Published, p.PublishedAt)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return content.ErrPostNotFound
	}

	return nil
}

func (r *postgresRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return content.ErrPostNotFound
	}
	return nil
}

// ========================================
// RESEARCH LINKS
// ========================================

func (r *postgresRepository) CreateResearch(ctx context.Context, link *content.ResearchLink) error {
	query := `
        INSERT INTO research_links (id, title, url, source, summary, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err := r.pool.Exec(ctx, query,
		link.ID, link.Title, link.URL, link.Source, link.Summary, link.CreatedAt, link.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create research link: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListResearch(ctx context.Context) ([]content.ResearchLink, error) {
	query := `
        SELECT id, title, url, source, summary, created_at, updated_at
        FROM research_links
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list research links: %w", err)
	}
	defer rows.Close()

	links := []content.ResearchLink{}
	for rows.Next() {
		var l content.ResearchLink
		if err := rows.Scan(&l.ID, &l.Title, &l.URL, &l.Source, &l.Summary, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan research row: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read research rows: %w", err)
	}

	return links, nil
}

func (r *postgresRepository) DeleteResearch(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM research_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete research link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return content.ErrResearchNotFound
	}
	return nil
}

// ========================================
// VIDEOS
// ========================================

func (r *postgresRepository) CreateVideo(ctx context.Context, v *content.Video) error {
	query := `
        INSERT INTO videos (id, title, url, platform, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.Title, v.URL, v.Platform, v.Description, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListVideos(ctx context.Context) ([]content.Video, error) {
	query := `
        SELECT id, title, url, platform, description, created_at, updated_at
        FROM videos
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := []content.Video{}
	for rows.Next() {
		var v content.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.URL, &v.Platform, &v.Description, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read video rows: %w", err)
	}

	return videos, nil
}

func (r *postgresRepository) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return content.ErrVideoNotFound
	}
	return nil
}
