package validation

import (
	"net/url"
	"strings"
)

// ValidURL reports whether raw is a well-formed absolute URL: a scheme and a
// host are both required.
func ValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if !parsed.IsAbs() || parsed.Host == "" {
		return false
	}

	return parsed.Hostname() != ""
}
