package submissions

import (
	"sort"
	"strings"

	"github.com/vowbook/backend/internal/models"
)

// senderFallback is the group key for submissions with an empty sender name.
const senderFallback = "Unknown"

// GroupBySender partitions submissions by exact sender display name. No
// normalization is applied: two spellings of the same guest form two groups,
// matching what guests actually typed. Input order (newest first) is kept
// within each group.
func GroupBySender(subs []models.Submission) map[string][]models.Submission {
	grouped := make(map[string][]models.Submission, len(subs))
	for _, s := range subs {
		key := s.SenderName
		if key == "" {
			key = senderFallback
		}
		grouped[key] = append(grouped[key], s)
	}
	return grouped
}

// FilterSenders returns the sender names matching the query by
// case-insensitive substring, sorted alphabetically. An empty query matches
// every sender.
func FilterSenders(grouped map[string][]models.Submission, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, len(grouped))
	for name := range grouped {
		if q == "" || strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
