package robots

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/nao1215/looter/internal/fetcher"
)

// directives whose values are paths or URLs.
var directives = map[string]bool{
	"allow":    true,
	"disallow": true,
	"sitemap":  true,
}

// Parse reads a robots.txt body and returns the absolute URL of every
// Allow, Disallow and Sitemap entry, resolved against base. Duplicates and
// empty values are dropped and the order of first appearance is kept.
func Parse(r io.Reader, base *url.URL) ([]string, error) {
	var (
		urls []string
		seen = make(map[string]struct{})
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok || !directives[strings.ToLower(strings.TrimSpace(key))] {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		abs := value
		if base != nil {
			if ref, err := url.Parse(value); err == nil {
				abs = base.ResolveReference(ref).String()
			}
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		urls = append(urls, abs)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}
	return urls, nil
}

// Getter fetches the body of a URL.
type Getter interface {
	SendRequest(ctx context.Context, rawURL string) (*fetcher.Response, error)
}

// Client fetches robots.txt files.
type Client struct {
	getter Getter
}

// NewClient returns a Client that fetches through getter.
func NewClient(getter Getter) *Client {
	return &Client{getter: getter}
}

// URL returns the robots.txt location for any page of a site.
func URL(site string) (*url.URL, error) {
	u, err := url.Parse(fetcher.EnsureScheme(strings.TrimSpace(site)))
	if err != nil {
		return nil, fmt.Errorf("parse site %q: %w", site, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse site %q: no host", site)
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}, nil
}

// Fetch downloads the robots.txt of the site that page belongs to and
// returns its URLs.
func (c *Client) Fetch(ctx context.Context, page string) ([]string, error) {
	robotsURL, err := URL(page)
	if err != nil {
		return nil, err
	}
	resp, err := c.getter.SendRequest(ctx, robotsURL.String())
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(resp.Body), robotsURL)
}
