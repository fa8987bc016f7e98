package repository

import (
	"context"
	"fmt"

	"pvadb-backend/internal/domains/quota"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresTrustRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTrustRepository creates the TrustRepository backed by the main database
func NewPostgresTrustRepository(pool *pgxpool.Pool) quota.TrustRepository {
	return &postgresTrustRepository{
		pool: pool,
	}
}

func (r *postgresTrustRepository) HasAdminRole(ctx context.Context, userID string) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM users
			WHERE id = $1 AND role = 'admin' AND deleted_at IS NULL
		)
	`

	var isAdmin bool
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&isAdmin); err != nil {
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}

	return isAdmin, nil
}

func (r *postgresTrustRepository) CountApprovedSubmissions(ctx context.Context, userID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM products
		WHERE submitted_by = $1 AND status = 'approved'
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count approved submissions: %w", err)
	}

	return count, nil
}
