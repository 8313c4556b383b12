package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionType is the kind of guest message.
type SubmissionType string

const (
	SubmissionText  SubmissionType = "text"
	SubmissionVoice SubmissionType = "voice"
	SubmissionPhoto SubmissionType = "photo"
	SubmissionVideo SubmissionType = "video"
)

// IsMedia reports whether the type carries a stored blob. The dashboard of the
// first deployment wrote "image" for some photo rows; both spellings are media.
func (t SubmissionType) IsMedia() bool {
	switch t {
	case SubmissionVoice, SubmissionPhoto, SubmissionVideo, "image":
		return true
	}
	return false
}

// IsVisual reports whether the type belongs in the slideshow (photo or video).
func (t SubmissionType) IsVisual() bool {
	switch t {
	case SubmissionPhoto, SubmissionVideo, "image":
		return true
	}
	return false
}

// StorageMeta describes the uploaded blob backing a media submission.
type StorageMeta struct {
	Size int64  `json:"size,omitempty"`
	Mime string `json:"mime,omitempty"`
	Name string `json:"name,omitempty"`
}

// Submission is one guest message tied to an event.
//
// Invariant: type=text has Content set and no StoragePath; media types have
// StoragePath set (unless the upload failed) and no Content.
type Submission struct {
	ID            uuid.UUID      `json:"id"`
	EventID       uuid.UUID      `json:"event_id"`
	SenderName    string         `json:"sender_name"`
	SenderContact string         `json:"sender_contact,omitempty"`
	Type          SubmissionType `json:"type"`
	Content       string         `json:"content,omitempty"`
	StoragePath   string         `json:"storage_path,omitempty"`
	StorageMeta   StorageMeta    `json:"storage_meta"`
	Moderated     bool           `json:"moderated"`
	IsFavorite    bool           `json:"is_favorite"`
	CreatedAt     time.Time      `json:"created_at"`
}
