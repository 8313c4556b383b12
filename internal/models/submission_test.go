package models

import "testing"

func TestSubmissionTypeIsMedia(t *testing.T) {
	tests := []struct {
		typ  SubmissionType
		want bool
	}{
		{SubmissionText, false},
		{SubmissionVoice, true},
		{SubmissionPhoto, true},
		{SubmissionVideo, true},
		{"image", true},
		{"bogus", false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsMedia(); got != tt.want {
			t.Errorf("IsMedia(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestSubmissionTypeIsVisual(t *testing.T) {
	tests := []struct {
		typ  SubmissionType
		want bool
	}{
		{SubmissionText, false},
		{SubmissionVoice, false},
		{SubmissionPhoto, true},
		{SubmissionVideo, true},
		{"image", true},
	}
	for _, tt := range tests {
		if got := tt.typ.IsVisual(); got != tt.want {
			t.Errorf("IsVisual(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
