package admin

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vowbook/backend/internal/models"
)

// Repository handles couple provisioning.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an admin repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateCouple inserts a new couple.
func (r *Repository) CreateCouple(ctx context.Context, displayName string) (*models.Couple, error) {
	const q = `INSERT INTO couples (display_name) VALUES ($1) RETURNING id, display_name, created_at`
	var cp models.Couple
	err := r.pool.QueryRow(ctx, q, displayName).Scan(&cp.ID, &cp.DisplayName, &cp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// ListCouples returns all couples, newest first.
func (r *Repository) ListCouples(ctx context.Context) ([]models.Couple, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, display_name, created_at FROM couples ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Couple
	for rows.Next() {
		var cp models.Couple
		if err := rows.Scan(&cp.ID, &cp.DisplayName, &cp.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, cp)
	}
	return list, rows.Err()
}
