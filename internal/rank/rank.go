package rank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"

	"github.com/nao1215/looter/internal/fetcher"
)

// DefaultEndpoint is the Alexa data endpoint queried by Lookup.
const DefaultEndpoint = "http://data.alexa.com/data?cli=10&dat=snbamz"

// ErrRankNotFound is returned when the response lacks either rank.
var ErrRankNotFound = errors.New("rank: rank not found")

var (
	reachRegex      = regexp.MustCompile(`REACH[^\d]*(\d+)`)
	popularityRegex = regexp.MustCompile(`POPULARITY[^\d]*(\d+)`)
)

// Rank is the reach and popularity of a site.
type Rank struct {
	Site       string
	Reach      int64
	Popularity int64
}

// Getter fetches the body of a URL.
type Getter interface {
	SendRequest(ctx context.Context, rawURL string) (*fetcher.Response, error)
}

// Client looks up ranks.
type Client struct {
	getter   Getter
	endpoint string
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint replaces DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a Client that queries DefaultEndpoint through getter.
func NewClient(getter Getter, opts ...Option) *Client {
	c := &Client{
		getter:   getter,
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Lookup returns the rank of site.
func (c *Client) Lookup(ctx context.Context, site string) (*Rank, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", site)
	u.RawQuery = q.Encode()

	resp, err := c.getter.SendRequest(ctx, u.String())
	if err != nil {
		return nil, err
	}
	page, err := resp.Text()
	if err != nil {
		return nil, err
	}

	rank, err := Parse(site, page)
	if err != nil {
		c.logger.Warn("get rank failed", "site", site)
		return nil, err
	}
	c.logger.Info("rank", "site", site, "reach", rank.Reach, "popularity", rank.Popularity)
	return rank, nil
}

// Parse extracts the first REACH and POPULARITY numbers from page.
func Parse(site, page string) (*Rank, error) {
	reach := reachRegex.FindStringSubmatch(page)
	popularity := popularityRegex.FindStringSubmatch(page)
	if reach == nil || popularity == nil {
		return nil, fmt.Errorf("%w: %s", ErrRankNotFound, site)
	}

	r := &Rank{Site: site}
	var err error
	if r.Reach, err = strconv.ParseInt(reach[1], 10, 64); err != nil {
		return nil, fmt.Errorf("%w: reach %q", ErrRankNotFound, reach[1])
	}
	if r.Popularity, err = strconv.ParseInt(popularity[1], 10, 64); err != nil {
		return nil, fmt.Errorf("%w: popularity %q", ErrRankNotFound, popularity[1])
	}
	return r, nil
}
