package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mabho/pagecarve"
)

// CollectLinks returns the same-host links found on a page, in document
// order, deduplicated by URL. External links and non-HTTP schemes are
// filtered out; fragments are stripped before deduplication.
func CollectLinks(pageHTML, baseURL string) ([]pagecarve.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, pagecarve.Errorf(pagecarve.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, pagecarve.Errorf(pagecarve.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []pagecarve.DiscoveredLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if !isSameHost(base, resolved) {
			return
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, pagecarve.DiscoveredLink{
			URL:      resolved,
			Priority: pagecarve.PriorityContent,
			Text:     strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved
// URL is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
