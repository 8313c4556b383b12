package models

import (
	"time"

	"github.com/google/uuid"
)

// Couple is the owning identity for one guestbook event.
type Couple struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
