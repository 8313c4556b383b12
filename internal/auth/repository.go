package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vowbook/backend/internal/models"
)

// Repository handles account persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID returns an account by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `SELECT id, email, password_hash, full_name, role, couple_id, created_at, updated_at
		FROM users WHERE id = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Role, &u.CoupleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns an account by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, email, password_hash, full_name, role, couple_id, created_at, updated_at
		FROM users WHERE email = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Role, &u.CoupleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new couple account linked to the given couple.
func (r *Repository) Create(ctx context.Context, email, passwordHash, fullName string, role models.Role, coupleID *uuid.UUID) (*models.User, error) {
	const q = `INSERT INTO users (email, password_hash, full_name, role, couple_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, full_name, role, couple_id, created_at, updated_at`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email, passwordHash, fullName, string(role), coupleID).
		Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Role, &u.CoupleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CoupleExists reports whether a couple row with the given ID exists.
func (r *Repository) CoupleExists(ctx context.Context, coupleID uuid.UUID) (bool, error) {
	const q = `SELECT 1 FROM couples WHERE id = $1`
	var one int
	err := r.pool.QueryRow(ctx, q, coupleID).Scan(&one)
	if err != nil {
		return false, nil
	}
	return true, nil
}
