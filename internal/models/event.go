package models

import (
	"time"

	"github.com/google/uuid"
)

// EventSettings is the free-form settings bag stored as jsonb on events.
type EventSettings struct {
	ShowAllSubmissions  bool   `json:"show_all_submissions"`
	EnableNotifications bool   `json:"enable_notifications"`
	AccentColor         string `json:"accent_color,omitempty"`
}

// Event represents one wedding guestbook instance, owned by exactly one couple
// and reachable publicly via its slug.
type Event struct {
	ID                 uuid.UUID     `json:"id"`
	CoupleID           uuid.UUID     `json:"couple_id"`
	Slug               string        `json:"slug"`
	Title              string        `json:"title"`
	Settings           EventSettings `json:"settings"`
	BackgroundImageURL string        `json:"background_image_url,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// EventPublic is the slice of Event exposed on the public entry page.
type EventPublic struct {
	ID                 uuid.UUID     `json:"id"`
	Slug               string        `json:"slug"`
	Title              string        `json:"title"`
	Settings           EventSettings `json:"settings"`
	BackgroundImageURL string        `json:"background_image_url,omitempty"`
}

// ToPublic converts Event to EventPublic.
func (e *Event) ToPublic() EventPublic {
	return EventPublic{
		ID:                 e.ID,
		Slug:               e.Slug,
		Title:              e.Title,
		Settings:           e.Settings,
		BackgroundImageURL: e.BackgroundImageURL,
	}
}
