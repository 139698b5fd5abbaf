package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// sanitizeFragment decides whether a split remnant still carries
// content. The remnant is re-parsed as a body fragment: remnants with
// no visible text anywhere are dropped, the rest are kept in their
// re-serialized, normalized form. A remnant that cannot be re-parsed or
// re-serialized passes through unchanged.
func sanitizeFragment(markup string) (string, bool) {
	if strings.TrimSpace(markup) == "" {
		return "", false
	}

	nodes, err := parseBodyFragment(markup)
	if err != nil {
		return markup, true
	}
	if !hasText(nodes) {
		return "", false
	}

	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return markup, true
		}
	}
	return b.String(), true
}
