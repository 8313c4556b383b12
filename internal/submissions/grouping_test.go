package submissions

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vowbook/backend/internal/models"
)

func sub(sender string, createdAt time.Time) models.Submission {
	return models.Submission{
		ID:         uuid.New(),
		SenderName: sender,
		Type:       models.SubmissionText,
		Content:    "hi",
		CreatedAt:  createdAt,
	}
}

func TestGroupBySenderPartition(t *testing.T) {
	now := time.Now()
	subs := []models.Submission{
		sub("Alice", now),
		sub("Bob", now.Add(-time.Minute)),
		sub("Alice", now.Add(-2*time.Minute)),
		sub("alice", now.Add(-3*time.Minute)), // different casing is a different group
	}

	grouped := GroupBySender(subs)

	if len(grouped) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(grouped))
	}
	total := 0
	seen := make(map[uuid.UUID]int)
	for _, group := range grouped {
		total += len(group)
		for _, s := range group {
			seen[s.ID]++
		}
	}
	if total != len(subs) {
		t.Errorf("groups cover %d submissions, want %d", total, len(subs))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("submission %s appears in %d groups", id, n)
		}
	}
	if len(grouped["Alice"]) != 2 {
		t.Errorf("Alice group has %d submissions, want 2", len(grouped["Alice"]))
	}
	if len(grouped["alice"]) != 1 {
		t.Errorf("alice group has %d submissions, want 1", len(grouped["alice"]))
	}
}

func TestGroupBySenderKeepsOrderWithinGroup(t *testing.T) {
	now := time.Now()
	newest := sub("Alice", now)
	oldest := sub("Alice", now.Add(-time.Hour))
	grouped := GroupBySender([]models.Submission{newest, oldest})

	group := grouped["Alice"]
	if group[0].ID != newest.ID || group[1].ID != oldest.ID {
		t.Error("newest-first order not preserved within group")
	}
}

func TestGroupBySenderEmptyName(t *testing.T) {
	grouped := GroupBySender([]models.Submission{sub("", time.Now())})
	if len(grouped["Unknown"]) != 1 {
		t.Error("empty sender name should fall back to Unknown group")
	}
}

func TestFilterSenders(t *testing.T) {
	now := time.Now()
	grouped := GroupBySender([]models.Submission{
		sub("Alice", now),
		sub("Bob", now),
		sub("Alina", now),
	})

	tests := []struct {
		query string
		want  []string
	}{
		{"ali", []string{"Alice", "Alina"}},
		{"ALI", []string{"Alice", "Alina"}},
		{"bob", []string{"Bob"}},
		{"", []string{"Alice", "Alina", "Bob"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		got := FilterSenders(grouped, tt.query)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FilterSenders(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
