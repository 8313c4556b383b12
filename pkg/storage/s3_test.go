package storage

import (
	"regexp"
	"strings"
	"testing"
)

func TestMediaKeyFormat(t *testing.T) {
	key := MediaKey("11111111-2222-3333-4444-555555555555", "My Photo.JPG")
	if !strings.HasPrefix(key, "11111111-2222-3333-4444-555555555555/") {
		t.Fatalf("key %q not namespaced by event id", key)
	}
	// {event_id}/{unix-ms}-{random}{ext}; original name contributes only the extension
	re := regexp.MustCompile(`^[^/]+/\d+-[0-9a-f]{8}\.jpg$`)
	if !re.MatchString(key) {
		t.Errorf("key %q does not match expected layout", key)
	}
	if strings.Contains(key, "My Photo") {
		t.Errorf("key %q leaks the original filename", key)
	}
}

func TestMediaKeyUnique(t *testing.T) {
	a := MediaKey("ev", "a.png")
	b := MediaKey("ev", "a.png")
	if a == b {
		t.Errorf("two keys for the same filename collided: %q", a)
	}
}

func TestMaxFileSize(t *testing.T) {
	if MaxFileSize("video") != MaxVideoFileSize {
		t.Error("video should use the large cap")
	}
	for _, typ := range []string{"photo", "image", "voice"} {
		if MaxFileSize(typ) != MaxImageFileSize {
			t.Errorf("%s should use the 10MB cap", typ)
		}
	}
}

func TestValidateMediaType(t *testing.T) {
	tests := []struct {
		contentType string
		filename    string
		want        bool
	}{
		{"image/jpeg", "pic.jpg", true},
		{"", "pic.jpeg", true},
		{"audio/webm", "voice-message.webm", true},
		{"video/quicktime", "clip.mov", true},
		{"application/x-msdownload", "setup.exe", false},
		{"", "notes.txt", false},
		{"IMAGE/PNG", "pic", true}, // content type is case-insensitive
	}
	for _, tt := range tests {
		if got := ValidateMediaType(tt.contentType, tt.filename); got != tt.want {
			t.Errorf("ValidateMediaType(%q, %q) = %v, want %v", tt.contentType, tt.filename, got, tt.want)
		}
	}
}

func TestContentTypeForFilename(t *testing.T) {
	if ct := ContentTypeForFilename("pic.JPEG"); ct != "image/jpeg" {
		t.Errorf("ContentTypeForFilename(pic.JPEG) = %q", ct)
	}
	if ct := ContentTypeForFilename("mystery"); ct != "application/octet-stream" {
		t.Errorf("unknown extension should fall back to octet-stream, got %q", ct)
	}
}

func TestExtensionForMime(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", "jpg"},
		{"audio/webm", "webm"},
		{"video/mp4", "mp4"},
		{"video/x-custom", "x-custom"}, // unknown but well-formed falls back to subtype
		{"garbage", "bin"},
	}
	for _, tt := range tests {
		if got := ExtensionForMime(tt.mime); got != tt.want {
			t.Errorf("ExtensionForMime(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}
