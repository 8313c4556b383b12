package slideshow

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vowbook/backend/internal/models"
)

func visual(t models.SubmissionType, moderated bool) models.Submission {
	return models.Submission{ID: uuid.New(), Type: t, Moderated: moderated, StoragePath: "x/y.bin"}
}

func TestNewPlaylistSelection(t *testing.T) {
	subs := []models.Submission{
		visual(models.SubmissionPhoto, true),
		visual(models.SubmissionVideo, true),
		visual("image", true),                   // legacy spelling counts as photo
		visual(models.SubmissionPhoto, false),   // unmoderated excluded
		visual(models.SubmissionVoice, true),    // audio excluded
		{ID: uuid.New(), Type: models.SubmissionText, Moderated: true, Content: "hi"}, // text excluded
	}
	p := NewPlaylist(subs)
	if p.Len() != 3 {
		t.Fatalf("playlist has %d items, want 3", p.Len())
	}
	for _, item := range p.Items {
		if !item.Moderated || !item.Type.IsVisual() {
			t.Errorf("item %s (%s) should not be in playlist", item.ID, item.Type)
		}
	}
}

func TestPlaylistWrap(t *testing.T) {
	p := NewPlaylist([]models.Submission{
		visual(models.SubmissionPhoto, true),
		visual(models.SubmissionPhoto, true),
		visual(models.SubmissionVideo, true),
	})

	if got := p.Next(); got != 1 {
		t.Errorf("Next = %d, want 1", got)
	}
	if got := p.Next(); got != 2 {
		t.Errorf("Next = %d, want 2", got)
	}
	// advancing past the last item wraps to the first
	if got := p.Next(); got != 0 {
		t.Errorf("Next past end = %d, want 0", got)
	}
}

func TestPlaylistPrevBoundedAtZero(t *testing.T) {
	p := NewPlaylist([]models.Submission{
		visual(models.SubmissionPhoto, true),
		visual(models.SubmissionPhoto, true),
	})

	if p.CanPrev() {
		t.Error("CanPrev at index 0 should be false")
	}
	if got := p.Prev(); got != 0 {
		t.Errorf("Prev at index 0 = %d, want 0", got)
	}
	p.Next()
	if !p.CanPrev() {
		t.Error("CanPrev at index 1 should be true")
	}
	if got := p.Prev(); got != 0 {
		t.Errorf("Prev = %d, want 0", got)
	}
}

func TestPlaylistEmpty(t *testing.T) {
	p := NewPlaylist(nil)
	if p.Current() != nil {
		t.Error("Current on empty playlist should be nil")
	}
	if got := p.Next(); got != 0 {
		t.Errorf("Next on empty playlist = %d, want 0", got)
	}
}
