package fetcher

import (
	"net/url"
	"regexp"
	"strings"
)

var schemeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// HasScheme reports whether raw starts with a scheme such as "https://".
func HasScheme(raw string) bool {
	return schemeRegex.MatchString(raw)
}

// EnsureScheme returns raw with a scheme. Protocol-relative URLs
// ("//host/path") get "https:", bare hosts get "http://", and URLs that
// already have a scheme are returned unchanged.
func EnsureScheme(raw string) string {
	switch {
	case HasScheme(raw):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	default:
		return "http://" + raw
	}
}

// Domain returns the host of raw, port included, without scheme or path.
// It returns "" when raw cannot be parsed.
func Domain(raw string) string {
	u, err := url.Parse(EnsureScheme(strings.TrimSpace(raw)))
	if err != nil {
		return ""
	}
	return u.Host
}

// withFallbackScheme is the URL tried after ErrSchemaMissing.
func withFallbackScheme(raw string) string {
	if strings.HasPrefix(raw, "//") {
		return "http:" + raw
	}
	return "http://" + raw
}
