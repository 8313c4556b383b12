package submissions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vowbook/backend/internal/models"
	"github.com/vowbook/backend/pkg/storage"
)

// Intake validation errors reported inline to the guest form.
var (
	ErrNameRequired    = errors.New("sender name is required")
	ErrContentRequired = errors.New("message text is required")
	ErrFileRequired    = errors.New("a recorded or uploaded file is required")
	ErrInvalidType     = errors.New("invalid submission type")
	ErrInvalidFileType = errors.New("file type not allowed")
)

// SizeExceededError is returned when an upload is larger than the per-type cap.
type SizeExceededError struct {
	Limit int64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("file size exceeds %dMB limit", e.Limit/(1024*1024))
}

// IntakeInput is the guest-supplied intake form, before validation. File
// fields are empty for text submissions.
type IntakeInput struct {
	SenderName    string
	SenderContact string
	Type          string
	Content       string
	Filename      string
	ContentType   string
	FileSize      int64
}

// ValidateIntake checks the guest form and returns the normalized submission
// type. File-size and file-type checks run before any upload is attempted.
func ValidateIntake(in IntakeInput) (models.SubmissionType, error) {
	if strings.TrimSpace(in.SenderName) == "" {
		return "", ErrNameRequired
	}

	t := models.SubmissionType(strings.TrimSpace(in.Type))
	switch t {
	case models.SubmissionText:
		if strings.TrimSpace(in.Content) == "" {
			return "", ErrContentRequired
		}
		return t, nil
	case models.SubmissionVoice, models.SubmissionPhoto, models.SubmissionVideo, "image":
	default:
		return "", ErrInvalidType
	}

	if in.Filename == "" && in.FileSize == 0 {
		return "", ErrFileRequired
	}
	if limit := storage.MaxFileSize(string(t)); in.FileSize > limit {
		return "", &SizeExceededError{Limit: limit}
	}
	if !storage.ValidateMediaType(in.ContentType, in.Filename) {
		return "", ErrInvalidFileType
	}
	return t, nil
}

// DownloadFilename derives the attachment filename for a media download:
// {sender}-{type}.{extension-from-mime}.
func DownloadFilename(sub *models.Submission) string {
	return fmt.Sprintf("%s-%s.%s", sub.SenderName, sub.Type, storage.ExtensionForMime(sub.StorageMeta.Mime))
}
