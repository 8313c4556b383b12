package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vowbook/backend/internal/models"
)

// Repository handles notification log persistence and recipient lookup.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notify repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RecipientsForEvent returns the email addresses of the accounts linked to
// the couple owning the event.
func (r *Repository) RecipientsForEvent(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	const q = `SELECT u.email FROM users u
		JOIN events e ON e.couple_id = u.couple_id
		WHERE e.id = $1`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// CreatePending inserts a pending notification log row and returns its ID.
func (r *Repository) CreatePending(ctx context.Context, eventID, submissionID uuid.UUID, recipient, subject string) (uuid.UUID, error) {
	const q = `INSERT INTO notification_logs (event_id, submission_id, recipient_email, subject, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, q, eventID, submissionID, recipient, subject, models.NotificationStatusPending).Scan(&id)
	return id, err
}

// MarkSent records a successful send.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE notification_logs SET status = $1, sent_at = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, models.NotificationStatusSent, time.Now(), id)
	return err
}

// MarkFailed records a failed send with its error.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	const q = `UPDATE notification_logs SET status = $1, error_message = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, models.NotificationStatusFailed, errMsg, id)
	return err
}

// ListByEvent returns notification logs for an event, newest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.NotificationLog, error) {
	const q = `SELECT id, event_id, submission_id, recipient_email, COALESCE(subject, ''), status, COALESCE(error_message, ''), sent_at, created_at
		FROM notification_logs WHERE event_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.NotificationLog
	for rows.Next() {
		var nl models.NotificationLog
		if err := rows.Scan(&nl.ID, &nl.EventID, &nl.SubmissionID, &nl.RecipientEmail, &nl.Subject, &nl.Status, &nl.ErrorMessage, &nl.SentAt, &nl.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, nl)
	}
	return list, rows.Err()
}
