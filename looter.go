package looter

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/nao1215/looter/internal/document"
	"github.com/nao1215/looter/internal/downloader"
	"github.com/nao1215/looter/internal/export"
	"github.com/nao1215/looter/internal/fetcher"
	"github.com/nao1215/looter/internal/filename"
	"github.com/nao1215/looter/internal/preview"
	"github.com/nao1215/looter/internal/rank"
	"github.com/nao1215/looter/internal/robots"
	"github.com/nao1215/looter/internal/useragent"
)

type (
	// Client sends requests. Use NewClient to create one.
	Client = fetcher.Client

	// Response is a fetched page.
	Response = fetcher.Response

	// StatusError reports a 4xx or 5xx response.
	StatusError = fetcher.StatusError

	// Option configures a Client.
	Option = fetcher.Option

	// Document is a parsed HTML page.
	Document = document.Document

	// LinkOption filters Links.
	LinkOption = document.LinkOption

	// Target is a URL or an <a>/<img> element to download.
	Target = filename.Target

	// URL is a Target given as a string.
	URL = filename.URL

	// Record is one row of scraped data.
	Record = export.Record

	// Rank is the reach and popularity of a site.
	Rank = rank.Rank
)

var (
	// ErrRequestFailed matches every response with an error status.
	ErrRequestFailed = fetcher.ErrRequestFailed

	// ErrNoLink is returned for elements without href or src.
	ErrNoLink = filename.ErrNoLink

	// ErrRankNotFound is returned when a rank lookup finds nothing.
	ErrRankNotFound = rank.ErrRankNotFound

	// ErrInvalidNumber is returned by ExpandNum.
	ErrInvalidNumber = rank.ErrInvalidNumber
)

var (
	WithTimeout = fetcher.WithTimeout
	WithHeaders = fetcher.WithHeaders
	WithCookies = fetcher.WithCookies
	WithProxy   = fetcher.WithProxy
	WithLogger  = fetcher.WithLogger

	WithSearch   = document.WithSearch
	WithAbsolute = document.WithAbsolute
	Text         = document.Text

	URLs     = filename.URLs
	Elements = filename.Elements
)

// WithUserAgent fixes the User-Agent. An empty ua keeps it random.
func WithUserAgent(ua string) Option {
	return fetcher.WithUserAgent(useragent.New(ua))
}

// NewClient returns a Client with a random User-Agent per request and a
// 60 second timeout, adjusted by opts.
func NewClient(opts ...Option) *Client {
	return fetcher.NewClient(append([]Option{fetcher.WithUserAgent(useragent.Random{})}, opts...)...)
}

// SendRequest GETs rawURL, retrying once with "http://" when it has no
// scheme. A 4xx or 5xx status is reported as a *StatusError.
func SendRequest(ctx context.Context, rawURL string, opts ...Option) (*Response, error) {
	return NewClient(opts...).SendRequest(ctx, rawURL)
}

// Fetch GETs rawURL and parses it as HTML.
func Fetch(ctx context.Context, rawURL string, opts ...Option) (*Document, error) {
	return NewClient(opts...).Fetch(ctx, rawURL)
}

// Links returns the unique, non-empty links of doc other than "#".
func Links(doc *Document, opts ...LinkOption) []string {
	return doc.Links(opts...)
}

// ReLinks returns the absolute links of doc matching pattern.
func ReLinks(doc *Document, pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return doc.ReLinks(re), nil
}

// SaveImg downloads target into the current directory and returns the
// file path. With randomName a random suffix avoids name collisions.
func SaveImg(ctx context.Context, target Target, randomName bool, opts ...Option) (string, error) {
	return downloader.New(NewClient(opts...)).Save(ctx, target, randomName)
}

// SaveImgs downloads targets one by one and stops at the first error.
func SaveImgs(ctx context.Context, targets []Target, randomName bool, opts ...Option) ([]string, error) {
	return downloader.New(NewClient(opts...)).SaveAll(ctx, targets, randomName)
}

// SaveImgsConcurrently downloads targets on up to 20 goroutines. Every
// target is attempted and the errors of all failures are joined.
func SaveImgsConcurrently(ctx context.Context, targets []Target, randomName bool, opts ...Option) ([]string, error) {
	return downloader.New(NewClient(opts...)).SaveConcurrently(ctx, targets, randomName)
}

// SaveAsJSON writes records to name.json, sorted by sortBy unless it is
// empty.
func SaveAsJSON(records []Record, name, sortBy string) (string, error) {
	return export.SaveAsJSON(records, name, sortBy)
}

// View saves rawURL as name.html in encoding and opens it in the browser.
// Empty name and encoding mean "test" and UTF-8.
func View(ctx context.Context, rawURL, encoding, name string, opts ...Option) error {
	resp, err := SendRequest(ctx, rawURL, opts...)
	if err != nil {
		return err
	}
	text, err := resp.Text()
	if err != nil {
		return err
	}
	path := preview.Path(name)
	if err := preview.Write(path, text, encoding); err != nil {
		return err
	}
	return preview.Open(path)
}

// AlexaRank returns the reach and popularity rank of site.
func AlexaRank(ctx context.Context, site string, opts ...Option) (*Rank, error) {
	return rank.NewClient(NewClient(opts...)).Lookup(ctx, site)
}

// ParseRobots returns the URLs listed in the robots.txt of the site page
// belongs to.
func ParseRobots(ctx context.Context, page string, opts ...Option) ([]string, error) {
	return robots.NewClient(NewClient(opts...)).Fetch(ctx, page)
}

// ReadCookies reads a Netscape cookies.txt file for use with WithCookies.
func ReadCookies(path string) ([]*http.Cookie, error) {
	return fetcher.ReadCookies(path)
}

// Login POSTs form with params as the query string and returns the
// response together with the client holding the session cookies.
func Login(ctx context.Context, loginURL string, form, params map[string]string, opts ...Option) (*Response, *Client, error) {
	client := NewClient(opts...)
	resp, err := client.Login(ctx, loginURL, form, params)
	if err != nil {
		return nil, nil, err
	}
	return resp, client, nil
}

// Rectify removes characters that are illegal in file names and
// percent-decodes the rest.
func Rectify(name string) string {
	return filename.Rectify(name)
}

// ImageName returns the file name SaveImg would use for rawURL.
func ImageName(rawURL string) (string, error) {
	link, err := filename.Resolve(URL(rawURL), filename.DefaultMaxLength)
	if err != nil {
		return "", err
	}
	return link.Name, nil
}

// ExpandNum converts counts such as "61.8K" to numbers.
func ExpandNum(s string) (float64, error) {
	return rank.ExpandNum(s)
}

// EnsureScheme adds "http://" to bare hosts and "https:" to
// protocol-relative URLs.
func EnsureScheme(rawURL string) string {
	return fetcher.EnsureScheme(rawURL)
}

// Domain returns the host of rawURL.
func Domain(rawURL string) string {
	return fetcher.Domain(rawURL)
}
