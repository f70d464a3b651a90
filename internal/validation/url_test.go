package validation_test

import (
	"testing"

	"github.com/shohag/airegistry/internal/validation"
)

func TestValidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"https", "https://x.com", true},
		{"http with path", "http://api.example.com/generate", true},
		{"with port", "https://api.example.com:8443/v1", true},
		{"with query", "https://api.example.com/v1?model=gpt", true},
		{"ip host", "http://127.0.0.1:11434/api/generate", true},
		{"surrounding whitespace", "  https://x.com  ", true},
		{"other scheme with host", "ftp://files.example.com/model.bin", true},
		{"websocket", "wss://stream.example.com/v1", true},

		{"empty", "", false},
		{"whitespace", "   ", false},
		{"no scheme", "example.com", false},
		{"relative path", "/api/generate", false},
		{"no host", "http://", false},
		{"opaque", "javascript:alert(1)", false},
		{"mailto", "mailto:sam@example.com", false},
		{"port only", "http://:8080", false},
		{"bad escape", "http://example.com/%zz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validation.ValidURL(tt.url); got != tt.want {
				t.Errorf("ValidURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
