package submissions

import (
	"errors"
	"testing"

	"github.com/vowbook/backend/internal/models"
)

func TestValidateIntakeText(t *testing.T) {
	got, err := ValidateIntake(IntakeInput{SenderName: "Alice", Type: "text", Content: "Congrats!"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != models.SubmissionText {
		t.Errorf("type = %q, want text", got)
	}
}

func TestValidateIntakeRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		in   IntakeInput
		want error
	}{
		{"missing name", IntakeInput{SenderName: "  ", Type: "text", Content: "hi"}, ErrNameRequired},
		{"missing text content", IntakeInput{SenderName: "Alice", Type: "text"}, ErrContentRequired},
		{"whitespace content", IntakeInput{SenderName: "Alice", Type: "text", Content: "   "}, ErrContentRequired},
		{"missing file", IntakeInput{SenderName: "Alice", Type: "photo"}, ErrFileRequired},
		{"bad type", IntakeInput{SenderName: "Alice", Type: "carrier-pigeon"}, ErrInvalidType},
		{"bad file type", IntakeInput{SenderName: "Alice", Type: "photo", Filename: "virus.exe", FileSize: 100}, ErrInvalidFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateIntake(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateIntakeFileSize(t *testing.T) {
	// 201MB video rejected before any upload attempt
	in := IntakeInput{SenderName: "Alice", Type: "video", Filename: "clip.mp4", ContentType: "video/mp4", FileSize: 201 * 1024 * 1024}
	_, err := ValidateIntake(in)
	var sizeErr *SizeExceededError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected SizeExceededError, got %v", err)
	}

	// 200MB video accepted
	in.FileSize = 200 * 1024 * 1024
	if _, err := ValidateIntake(in); err != nil {
		t.Errorf("200MB video rejected: %v", err)
	}

	// 9MB image accepted
	img := IntakeInput{SenderName: "Alice", Type: "photo", Filename: "pic.jpg", ContentType: "image/jpeg", FileSize: 9 * 1024 * 1024}
	if _, err := ValidateIntake(img); err != nil {
		t.Errorf("9MB image rejected: %v", err)
	}

	// 11MB image rejected
	img.FileSize = 11 * 1024 * 1024
	if _, err := ValidateIntake(img); !errors.As(err, &sizeErr) {
		t.Errorf("11MB image accepted, want size error; got %v", err)
	}
}

func TestValidateIntakeImageAlias(t *testing.T) {
	in := IntakeInput{SenderName: "Alice", Type: "image", Filename: "pic.png", ContentType: "image/png", FileSize: 1024}
	got, err := ValidateIntake(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "image" {
		t.Errorf("type = %q, want image", got)
	}
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		sender string
		typ    models.SubmissionType
		mime   string
		want   string
	}{
		{"Alice", models.SubmissionVoice, "audio/webm", "Alice-voice.webm"},
		{"Bob", models.SubmissionPhoto, "image/jpeg", "Bob-photo.jpg"},
		{"Cara", models.SubmissionVideo, "video/mp4", "Cara-video.mp4"},
		{"Dan", models.SubmissionVideo, "video/x-custom", "Dan-video.x-custom"},
	}
	for _, tt := range tests {
		sub := &models.Submission{
			SenderName:  tt.sender,
			Type:        tt.typ,
			StorageMeta: models.StorageMeta{Mime: tt.mime},
		}
		if got := DownloadFilename(sub); got != tt.want {
			t.Errorf("DownloadFilename(%s, %s, %s) = %q, want %q", tt.sender, tt.typ, tt.mime, got, tt.want)
		}
	}
}
