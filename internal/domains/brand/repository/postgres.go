package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pvadb-backend/internal/domains/brand"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) brand.Repository {
	return &postgresRepository{pool: pool}
}

const brandColumns = `id, name, slug, website, description, created_at, updated_at, deleted_at`

func scanBrand(row pgx.Row, b *brand.Brand) error {
	return row.Scan(
		&b.ID, &b.Name, &b.Slug, &b.Website, &b.Description,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, b *brand.Brand) error {
	query := `
        INSERT INTO brands (id, name, slug, website, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Slug, b.Website, b.Description, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isSlugViolation(err) {
			return brand.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*brand.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1 AND deleted_at IS NULL`

	var b brand.Brand
	if err := scanBrand(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, brand.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand by id: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*brand.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE slug = $1 AND deleted_at IS NULL`

	var b brand.Brand
	if err := scanBrand(r.pool.QueryRow(ctx, query, slug), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, brand.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand by slug: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]brand.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE deleted_at IS NULL ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []brand.Brand{}
	for rows.Next() {
		var b brand.Brand
		if err := scanBrand(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan brand row: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read brand rows: %w", err)
	}

	return brands, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *brand.Brand) error {
	query := `
        UPDATE brands
        SET name = $2, slug = $3, website = $4, description = $5, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	tag, err := r.pool.Exec(ctx, query, b.ID, b.Name, b.Slug, b.Website, b.Description)
	if err != nil {
		if isSlugViolation(err) {
			return brand.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return brand.ErrBrandNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE brands SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return brand.ErrBrandNotFound
	}
	return nil
}

func (r *postgresRepository) CountApprovedProducts(ctx context.Context, brandID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE brand_id = $1 AND status = 'approved'`, brandID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count brand products: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) HasProducts(ctx context.Context, brandID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE brand_id = $1)`, brandID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check brand products: %w", err)
	}
	return exists, nil
}

func isSlugViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug")
}
