package submissions

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vowbook/backend/internal/models"
)

// Repository handles submission persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a submissions repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const submissionColumns = `id, event_id, sender_name, COALESCE(sender_contact, ''), type,
	COALESCE(content, ''), COALESCE(storage_path, ''), storage_meta, moderated, is_favorite, created_at`

func scanSubmission(row interface{ Scan(...any) error }) (*models.Submission, error) {
	var s models.Submission
	var meta []byte
	err := row.Scan(&s.ID, &s.EventID, &s.SenderName, &s.SenderContact, &s.Type,
		&s.Content, &s.StoragePath, &meta, &s.Moderated, &s.IsFavorite, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &s.StorageMeta); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]models.Submission, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Create inserts a new submission. Guests always arrive unmoderated.
func (r *Repository) Create(ctx context.Context, s *models.Submission) error {
	meta, err := json.Marshal(s.StorageMeta)
	if err != nil {
		return err
	}
	const q = `INSERT INTO submissions (event_id, sender_name, sender_contact, type, content, storage_path, storage_meta, moderated, is_favorite)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7, FALSE, FALSE)
		RETURNING id, moderated, is_favorite, created_at`
	return r.pool.QueryRow(ctx, q, s.EventID, s.SenderName, s.SenderContact, string(s.Type), s.Content, s.StoragePath, meta).
		Scan(&s.ID, &s.Moderated, &s.IsFavorite, &s.CreatedAt)
}

// GetByID returns a submission by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id))
}

// ListByEvent returns all submissions for an event, newest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Submission, error) {
	return r.list(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE event_id = $1 ORDER BY created_at DESC`, eventID)
}

// ListPublic returns the submissions visible on the public page: moderated
// only, unless the event opted into showing everything.
func (r *Repository) ListPublic(ctx context.Context, eventID uuid.UUID, includeUnmoderated bool) ([]models.Submission, error) {
	if includeUnmoderated {
		return r.ListByEvent(ctx, eventID)
	}
	return r.list(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE event_id = $1 AND moderated = TRUE ORDER BY created_at DESC`, eventID)
}

// ListSlideshow returns approved visual submissions (photos and videos),
// newest first.
func (r *Repository) ListSlideshow(ctx context.Context, eventID uuid.UUID) ([]models.Submission, error) {
	const q = `SELECT ` + submissionColumns + ` FROM submissions
		WHERE event_id = $1 AND moderated = TRUE AND type IN ('photo', 'image', 'video')
		ORDER BY created_at DESC`
	return r.list(ctx, q, eventID)
}

// ToggleModerated flips the moderated flag and returns the new value.
func (r *Repository) ToggleModerated(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `UPDATE submissions SET moderated = NOT moderated WHERE id = $1 RETURNING moderated`
	var moderated bool
	err := r.pool.QueryRow(ctx, q, id).Scan(&moderated)
	return moderated, err
}

// ToggleFavorite flips the is_favorite flag and returns the new value.
func (r *Repository) ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `UPDATE submissions SET is_favorite = NOT is_favorite WHERE id = $1 RETURNING is_favorite`
	var favorite bool
	err := r.pool.QueryRow(ctx, q, id).Scan(&favorite)
	return favorite, err
}

// Delete removes a submission row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	return err
}

// Stats holds per-event submission counts for the dashboard overview.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Favorites int `json:"favorites"`
}

// CountByEvent returns submission counts for an event.
func (r *Repository) CountByEvent(ctx context.Context, eventID uuid.UUID) (*Stats, error) {
	const q = `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE NOT moderated),
		COUNT(*) FILTER (WHERE moderated),
		COUNT(*) FILTER (WHERE is_favorite)
		FROM submissions WHERE event_id = $1`
	var st Stats
	err := r.pool.QueryRow(ctx, q, eventID).Scan(&st.Total, &st.Pending, &st.Approved, &st.Favorites)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	return &st, nil
}
