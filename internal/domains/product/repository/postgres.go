package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/domains/product/model"
	"pvadb-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// postgresRepository implements product.Repository on pgxpool with a
// Redis read-through cache for slug lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) product.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	productSlugKeyPrefix = "product:slug:"
	productListPattern   = "products:list:*"
	productCacheTTL      = 15 * time.Minute
)

const productColumns = `
	id, name, slug, brand_id, category, barcode,
	pva_status, pva_percentage, ingredients, description, image_url,
	status, rejection_reason, submitted_by, moderated_by, moderated_at,
	created_at, updated_at
`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.BrandID, &p.Category, &p.Barcode,
		&p.PVAStatus, &p.PVAPercentage, pq.Array(&p.Ingredients), &p.Description, &p.ImageURL,
		&p.Status, &p.RejectionReason, &p.SubmittedBy, &p.ModeratedBy, &p.ModeratedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

// Create inserts a single pending submission
func (r *postgresRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, slug, brand_id, category, barcode,
            pva_status, pva_percentage, ingredients, description,
            status, submitted_by, created_at, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.BrandID, p.Category, p.Barcode,
		p.PVAStatus, p.PVAPercentage, pq.Array(p.Ingredients), p.Description,
		p.Status, p.SubmittedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "slug") {
			return model.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// CreateBatch inserts a bulk-import batch atomically
func (r *postgresRepository) CreateBatch(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO products (
            id, name, slug, brand_id, category, barcode,
            pva_status, pva_percentage, ingredients, description,
            status, submitted_by, created_at, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(query,
			p.ID, p.Name, p.Slug, p.BrandID, p.Category, p.Barcode,
			p.PVAStatus, p.PVAPercentage, pq.Array(p.Ingredients), p.Description,
			p.Status, p.SubmittedBy, p.CreatedAt, p.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range products {
		if _, err := results.Exec(); err != nil {
			results.Close()
			if isUniqueViolation(err, "slug") {
				return model.ErrDuplicateSlug
			}
			return fmt.Errorf("failed to insert batch row: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a product in any moderation state
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p model.Product
	if err := scanProduct(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	return &p, nil
}

// GetBySlug retrieves an approved product with read-through caching
func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	cacheKey := productSlugKeyPrefix + slug

	var p model.Product
	if hit, err := r.cache.Get(ctx, cacheKey, &p); err == nil && hit {
		return &p, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1 AND status = 'approved'`

	if err := scanProduct(r.pool.QueryRow(ctx, query, slug), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &p, productCacheTTL)

	return &p, nil
}

// List retrieves a filtered, paginated page plus the total match count
func (r *postgresRepository) List(ctx context.Context, filter product.ListFilter) ([]model.Product, int64, error) {
	var where strings.Builder
	args := []interface{}{}
	argPos := 1

	where.WriteString(" WHERE 1=1")

	if filter.Status != "" {
		where.WriteString(fmt.Sprintf(" AND status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Search != "" {
		where.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR barcode = $%d)", argPos, argPos+1))
		args = append(args, "%"+filter.Search+"%", filter.Search)
		argPos += 2
	}
	if filter.Category != "" {
		where.WriteString(fmt.Sprintf(" AND category = $%d", argPos))
		args = append(args, filter.Category)
		argPos++
	}
	if filter.PVAStatus != "" {
		where.WriteString(fmt.Sprintf(" AND pva_status = $%d", argPos))
		args = append(args, filter.PVAStatus)
		argPos++
	}
	if filter.BrandID != nil {
		where.WriteString(fmt.Sprintf(" AND brand_id = $%d", argPos))
		args = append(args, *filter.BrandID)
		argPos++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM products" + where.String()
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy := "created_at DESC"
	if filter.Sort == "name" {
		orderBy = "name ASC"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where.String(), orderBy, argPos, argPos+1,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read product rows: %w", err)
	}

	return products, total, nil
}

// ListPending retrieves the moderation queue, oldest submissions first
func (r *postgresRepository) ListPending(ctx context.Context, offset, limit int) ([]model.Product, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE status = 'pending'`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pending products: %w", err)
	}

	query := `SELECT ` + productColumns + `
        FROM products
        WHERE status = 'pending'
        ORDER BY created_at ASC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan pending row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read pending rows: %w", err)
	}

	return products, total, nil
}

// PendingStats summarizes the moderation queue for the daily digest
func (r *postgresRepository) PendingStats(ctx context.Context) (*model.PendingStats, error) {
	query := `SELECT COUNT(*), MIN(created_at) FROM products WHERE status = 'pending'`

	var stats model.PendingStats
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.PendingCount, &stats.OldestAt); err != nil {
		return nil, fmt.Errorf("failed to read pending stats: %w", err)
	}

	return &stats, nil
}

// UpdateModeration transitions a pending product to its final state.
// The status='pending' guard makes concurrent double-moderation lose
// cleanly instead of overwriting the first decision.
func (r *postgresRepository) UpdateModeration(ctx context.Context, id uuid.UUID, status model.SubmissionStatus, reason *string, moderatedBy uuid.UUID, moderatedAt time.Time) error {
	query := `
        UPDATE products
        SET status = $2, rejection_reason = $3, moderated_by = $4, moderated_at = $5, updated_at = $5
        WHERE id = $1 AND status = 'pending'
    `

	tag, err := r.pool.Exec(ctx, query, id, status, reason, moderatedBy, moderatedAt)
	if err != nil {
		return fmt.Errorf("failed to update moderation state: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either the row does not exist or it was already moderated
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check product existence: %w", err)
		}
		if !exists {
			return model.ErrProductNotFound
		}
		return model.ErrAlreadyModerated
	}

	r.invalidateCaches(ctx)

	return nil
}

// UpdateImageURL stores the object key of the processed primary image
func (r *postgresRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE products SET image_url = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, imageURL)
	if err != nil {
		return fmt.Errorf("failed to update image url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.invalidateCaches(ctx)

	return nil
}

// ExistsBySlug checks slug uniqueness before insert
func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

// ExistsBrand validates a brand reference on submission
func (r *postgresRepository) ExistsBrand(ctx context.Context, brandID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM brands WHERE id = $1 AND deleted_at IS NULL)`, brandID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check brand existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidateCaches(ctx context.Context) {
	r.cache.DeletePattern(ctx, productSlugKeyPrefix+"*")
	r.cache.DeletePattern(ctx, productListPattern)
}

func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Message, column)
	}
	return false
}
