package events

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vowbook/backend/internal/auth"
	"github.com/vowbook/backend/internal/models"
)

// Resolution chain errors. Each missing link surfaces as its own message so
// the dashboard can tell the user what is wrong instead of a blank screen.
var (
	ErrNoAccount = errors.New("account not found")
	ErrNoCouple  = errors.New("account is not linked to a couple")
	ErrNoEvent   = errors.New("no event linked to this couple")
)

// Resolver walks the authenticated identity to its owned event:
// user -> couple -> event.
type Resolver struct {
	users  *auth.Repository
	events *Repository
}

// NewResolver creates an event resolver.
func NewResolver(users *auth.Repository, events *Repository) *Resolver {
	return &Resolver{users: users, events: events}
}

// Resolve returns the event owned by the user's couple.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (*models.Event, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNoAccount
	}
	if user.CoupleID == nil {
		return nil, ErrNoCouple
	}
	event, err := r.events.GetByCoupleID(ctx, *user.CoupleID)
	if err != nil {
		return nil, ErrNoEvent
	}
	return event, nil
}
