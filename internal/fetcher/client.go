package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"

	"github.com/nao1215/looter/internal/document"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent is sent when no UserAgentSource is configured.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// UserAgentSource yields the User-Agent for one request.
// It is called once per request.
type UserAgentSource interface {
	UserAgent() string
}

// StaticUserAgent always yields the same User-Agent.
type StaticUserAgent string

// UserAgent returns s.
func (s StaticUserAgent) UserAgent() string {
	return string(s)
}

// Response is the result of a successful request.
type Response struct {
	// URL is the final URL after redirects.
	URL string

	// StatusCode is the HTTP status of the final response.
	StatusCode int

	// Header holds the final response headers.
	Header http.Header

	// Body is the raw response body.
	Body []byte
}

// ContentType returns the Content-Type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Text returns the body decoded to UTF-8 using the declared or sniffed
// character set.
func (r *Response) Text() (string, error) {
	reader, err := charset.NewReader(bytes.NewReader(r.Body), r.ContentType())
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}
	text, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	return string(text), nil
}

// Document parses the body as HTML with the final URL as base.
func (r *Response) Document() (*document.Document, error) {
	return document.Parse(bytes.NewReader(r.Body), r.ContentType(), r.URL)
}

// Client sends GET requests for scraping.
type Client struct {
	http      *resty.Client
	userAgent UserAgentSource
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout   time.Duration
	userAgent UserAgentSource
	headers   map[string]string
	cookies   []*http.Cookie
	proxyURL  string
	logger    *slog.Logger
}

// WithTimeout sets the timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent source.
func WithUserAgent(src UserAgentSource) Option {
	return func(o *clientOptions) {
		o.userAgent = src
	}
}

// WithHeaders adds headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(o *clientOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		maps.Copy(o.headers, headers)
	}
}

// WithCookies adds cookies to the client. A cookie without a Domain is sent
// with every request. A cookie with a Domain, such as one read from a
// cookies.txt file, only goes to matching hosts.
func WithCookies(cookies []*http.Cookie) Option {
	return func(o *clientOptions) {
		o.cookies = append(o.cookies, cookies...)
	}
}

// WithProxy routes requests through an HTTP or SOCKS5 proxy.
func WithProxy(proxyURL string) Option {
	return func(o *clientOptions) {
		o.proxyURL = proxyURL
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient returns a Client. Without options it uses DefaultTimeout,
// DefaultUserAgent and slog.Default().
func NewClient(opts ...Option) *Client {
	o := clientOptions{
		timeout:   DefaultTimeout,
		userAgent: StaticUserAgent(DefaultUserAgent),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	rc := resty.New().SetTimeout(o.timeout)
	if len(o.headers) > 0 {
		rc.SetHeaders(o.headers)
	}
	if len(o.cookies) > 0 {
		setCookies(rc, o.cookies)
	}
	if o.proxyURL != "" {
		rc.SetProxy(o.proxyURL)
	}

	return &Client{
		http:      rc,
		userAgent: o.userAgent,
		logger:    o.logger,
	}
}

// setCookies attaches unscoped cookies to every request and stores
// domain-scoped ones in the cookie jar grouped by host.
func setCookies(rc *resty.Client, cookies []*http.Cookie) {
	byHost := make(map[string][]*http.Cookie)
	for _, c := range cookies {
		if c.Domain == "" {
			rc.SetCookie(c)
			continue
		}
		scoped := *c
		host := strings.TrimPrefix(c.Domain, ".")
		if !strings.HasPrefix(c.Domain, ".") {
			// host-only
			scoped.Domain = ""
		}
		byHost[host] = append(byHost[host], &scoped)
	}
	if len(byHost) == 0 {
		return
	}

	hc := rc.GetClient()
	if hc.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return
		}
		hc.Jar = jar
	}
	for host, scoped := range byHost {
		hc.Jar.SetCookies(&url.URL{Scheme: "https", Host: host, Path: "/"}, scoped)
	}
}

// SendRequest GETs rawURL. A URL without a scheme is tried once more with
// "http://" prepended.
func (c *Client) SendRequest(ctx context.Context, rawURL string) (*Response, error) {
	resp, err := c.get(ctx, rawURL)
	if errors.Is(err, ErrSchemaMissing) {
		fallback := withFallbackScheme(rawURL)
		c.logger.Debug("retrying with scheme", "url", rawURL, "retry", fallback)
		return c.get(ctx, fallback)
	}
	return resp, err
}

// Fetch GETs rawURL and parses the body as HTML.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*document.Document, error) {
	resp, err := c.SendRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return resp.Document()
}

// get performs a single attempt.
func (c *Client) get(ctx context.Context, rawURL string) (*Response, error) {
	if !HasScheme(rawURL) {
		return nil, fmt.Errorf("%w: %q", ErrSchemaMissing, rawURL)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent.UserAgent()).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	c.logger.Debug("response",
		"url", rawURL,
		"status", resp.StatusCode(),
		"elapsed", time.Since(start),
	)
	return toResponse(rawURL, resp)
}

// toResponse converts a resty response, reporting error statuses.
func toResponse(rawURL string, resp *resty.Response) (*Response, error) {
	if resp.IsError() {
		return nil, &StatusError{
			URL:        rawURL,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	finalURL := rawURL
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}
	return &Response{
		URL:        finalURL,
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}
