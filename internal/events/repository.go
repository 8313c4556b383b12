package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vowbook/backend/internal/models"
)

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, couple_id, slug, title, settings, COALESCE(background_image_url, ''), created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	var settings []byte
	err := row.Scan(&e.ID, &e.CoupleID, &e.Slug, &e.Title, &settings, &e.BackgroundImageURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &e.Settings); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

// Create inserts a new event for a couple.
func (r *Repository) Create(ctx context.Context, coupleID uuid.UUID, slug, title string, settings models.EventSettings) (*models.Event, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	const q = `INSERT INTO events (couple_id, slug, title, settings)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + eventColumns
	return scanEvent(r.pool.QueryRow(ctx, q, coupleID, slug, title, raw))
}

// GetByID returns an event by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

// GetBySlug returns an event by its public slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug))
}

// GetByCoupleID returns the event owned by a couple. Each couple owns one event.
func (r *Repository) GetByCoupleID(ctx context.Context, coupleID uuid.UUID) (*models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE couple_id = $1`, coupleID))
}

// Update updates the mutable event fields from the settings form.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, title, slug string, settings models.EventSettings, backgroundImageURL string) (*models.Event, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE events
		SET title = $1, slug = $2, settings = $3, background_image_url = NULLIF($4, ''), updated_at = NOW()
		WHERE id = $5
		RETURNING ` + eventColumns
	return scanEvent(r.pool.QueryRow(ctx, q, title, slug, raw, backgroundImageURL, id))
}
