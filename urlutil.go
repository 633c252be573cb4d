package teaserfeed

import (
	"net/url"
	"strings"
)

// ResolveURL absolutizes href against base. Absolute hrefs pass through
// unchanged; relative paths are resolved against the base URL. Returns the
// empty string when either input cannot be parsed.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return ""
	}
	return b.ResolveReference(u).String()
}

// OnHost reports whether link points at the same site as base. Subdomains of
// the base host count as on-site; a leading "www." is ignored on both sides.
func OnHost(base, link string) bool {
	baseHost := hostOf(base)
	linkHost := hostOf(link)
	if baseHost == "" || linkHost == "" {
		return false
	}
	return linkHost == baseHost || strings.HasSuffix(linkHost, "."+baseHost)
}

// ExcludedHost reports whether link's host matches any of the excluded
// hosts, exactly or as a subdomain.
func ExcludedHost(link string, excluded []string) bool {
	linkHost := hostOf(link)
	if linkHost == "" {
		return false
	}
	for _, ex := range excluded {
		ex = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ex)), "www.")
		if ex == "" {
			continue
		}
		if linkHost == ex || strings.HasSuffix(linkHost, "."+ex) {
			return true
		}
	}
	return false
}

// CollapseWhitespace trims s and collapses runs of whitespace (including
// newlines) into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
