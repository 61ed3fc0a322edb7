package filename

import (
	"errors"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// DefaultMaxLength caps the length of a derived name, extension excluded.
const DefaultMaxLength = 160

// illegalChars are removed from file names.
const illegalChars = `?<>|*":`

var (
	// ErrNoLink is returned when an element carries no usable URL.
	ErrNoLink = errors.New("filename: element has no link")

	// ErrEmptyName is returned when a URL ends without a file name.
	ErrEmptyName = errors.New("filename: url has no file name")
)

// Link is a URL paired with the local file name derived from it.
type Link struct {
	URL  string
	Name string
}

// Target is something a Link can be derived from.
type Target interface {
	// LinkURL returns the URL the target points at.
	LinkURL() (string, error)
}

// URL is a Target given as a plain URL string.
type URL string

// LinkURL returns the URL itself.
func (u URL) LinkURL() (string, error) {
	return string(u), nil
}

// URLs converts plain URL strings to Targets.
func URLs(raw []string) []Target {
	targets := make([]Target, 0, len(raw))
	for _, r := range raw {
		targets = append(targets, URL(r))
	}
	return targets
}

// Element is a Target backed by an <a> or <img> element. Base, when set,
// resolves relative links.
type Element struct {
	Node *html.Node
	Base *url.URL
}

// LinkURL returns the href of an anchor or the src of an image.
func (e Element) LinkURL() (string, error) {
	if e.Node == nil || e.Node.Type != html.ElementNode {
		return "", ErrNoLink
	}

	var key string
	switch e.Node.Data {
	case "a":
		key = "href"
	case "img":
		key = "src"
	default:
		return "", ErrNoLink
	}

	value := strings.TrimSpace(attr(e.Node, key))
	if value == "" {
		return "", ErrNoLink
	}
	if e.Base == nil {
		return value, nil
	}
	ref, err := url.Parse(value)
	if err != nil {
		return value, nil
	}
	return e.Base.ResolveReference(ref).String(), nil
}

// Elements converts element nodes to Targets without a base URL.
func Elements(nodes []*html.Node) []Target {
	targets := make([]Target, 0, len(nodes))
	for _, n := range nodes {
		targets = append(targets, Element{Node: n})
	}
	return targets
}

// Rectify removes the characters ? < > | * " : from name and
// percent-decodes the remainder. Invalid escapes are left as they are.
func Rectify(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) {
			return -1
		}
		return r
	}, name)

	return unescape(name)
}

// unescape decodes each valid %XX escape and copies malformed ones through.
func unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// Resolve derives the Link for target. The name is the rectified last path
// segment of the URL, cut to maxLength characters with its extension kept,
// and never ends in a doubled extension such as ".jpg.jpg".
// A maxLength of zero or less uses DefaultMaxLength.
func Resolve(target Target, maxLength int) (Link, error) {
	raw, err := target.LinkURL()
	if err != nil {
		return Link{}, err
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	name := Rectify(lastSegment(raw))
	// an escaped separator such as %2F must not produce a path
	name = name[strings.LastIndexAny(name, `/\`)+1:]
	if name == "" || name == "." || name == ".." {
		return Link{}, ErrEmptyName
	}

	ext := path.Ext(name)
	if utf8.RuneCountInString(name) > maxLength {
		name = truncate(name, maxLength)
		if !strings.HasSuffix(name, ext) {
			name += ext
		}
	}
	if ext != "" && strings.HasSuffix(name, ext+ext) {
		name = strings.TrimSuffix(name, ext)
	}
	return Link{URL: raw, Name: name}, nil
}

// WithRandomSuffix inserts suffix between the stem and the extension.
func WithRandomSuffix(name, suffix string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + suffix + ext
}

// RandomSuffix returns 8 random hexadecimal characters.
func RandomSuffix() string {
	return uuid.NewString()[:8]
}

// lastSegment returns the final path segment of raw, still escaped.
// The query and fragment are ignored when raw parses as a URL.
func lastSegment(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		p := u.EscapedPath()
		if u.Opaque != "" {
			p = u.Opaque
		}
		return p[strings.LastIndex(p, "/")+1:]
	}
	return raw[strings.LastIndex(raw, "/")+1:]
}

func truncate(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
