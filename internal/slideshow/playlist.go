package slideshow

import (
	"github.com/vowbook/backend/internal/models"
)

// Playlist holds the ordered slideshow items and the current position.
// Advancing past the last item wraps to the first; retreating before the
// first is not permitted.
type Playlist struct {
	Items []models.Submission
	Index int
}

// NewPlaylist builds a playlist from approved visual submissions, keeping
// only photos and videos. Input order (newest first) is preserved.
func NewPlaylist(subs []models.Submission) *Playlist {
	items := make([]models.Submission, 0, len(subs))
	for _, s := range subs {
		if s.Moderated && s.Type.IsVisual() {
			items = append(items, s)
		}
	}
	return &Playlist{Items: items}
}

// Len returns the number of items.
func (p *Playlist) Len() int { return len(p.Items) }

// Current returns the item at the current index, or nil when empty.
func (p *Playlist) Current() *models.Submission {
	if len(p.Items) == 0 {
		return nil
	}
	return &p.Items[p.Index]
}

// Next advances to the following item, wrapping to the start after the last.
func (p *Playlist) Next() int {
	if len(p.Items) == 0 {
		return 0
	}
	p.Index = (p.Index + 1) % len(p.Items)
	return p.Index
}

// Prev moves to the preceding item. At index 0 it stays put.
func (p *Playlist) Prev() int {
	if p.Index > 0 {
		p.Index--
	}
	return p.Index
}

// CanPrev reports whether a previous item exists.
func (p *Playlist) CanPrev() bool { return p.Index > 0 }
