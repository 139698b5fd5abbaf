package pagecarve

import (
	"net/url"
	"strings"
)

// NormalizeURL prepares user-entered URLs for fetching.
// Whitespace is trimmed and a missing scheme defaults to https.
// Returns EINVALID when the input is empty or has no host.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", Errorf(EINVALID, "URL required")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		trimmed = "https://" + trimmed
		parsed, err = url.Parse(trimmed)
		if err != nil {
			return "", Errorf(EINVALID, "invalid URL %q", raw)
		}
	}

	if parsed.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}

	return trimmed, nil
}
