package document

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/nao1215/looter/internal/filename"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
	doc  *goquery.Document
	base *url.URL
}

// Parse reads an HTML page from r. contentType selects the character set
// when it carries one; otherwise the encoding is sniffed from the content.
// baseURL may be empty, in which case links are never made absolute.
func Parse(r io.Reader, contentType, baseURL string) (*Document, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}

	root, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return FromNode(root, baseURL), nil
}

// FromNode wraps an already parsed tree.
func FromNode(root *html.Node, baseURL string) *Document {
	d := &Document{
		root: root,
		doc:  goquery.NewDocumentFromNode(root),
	}
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil {
			d.base = u
			d.doc.Url = u
		}
	}
	return d
}

// URL returns the base URL of the page, or "" when unknown.
func (d *Document) URL() string {
	if d.base == nil {
		return ""
	}
	return d.base.String()
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Find returns the elements matching a CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Nodes returns the elements matching a CSS selector as raw nodes.
func (d *Document) Nodes(selector string) []*html.Node {
	return d.doc.Find(selector).Nodes
}

// XPath returns the nodes matching an XPath expression. Attribute
// selections such as //a/@href yield nodes whose inner text is the value.
func (d *Document) XPath(expr string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath %q: %w", expr, err)
	}
	return nodes, nil
}

// Attrs returns the non-empty values of attr on elements matching selector.
func (d *Document) Attrs(selector, attr string) []string {
	values := make([]string, 0)
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok && v != "" {
			values = append(values, v)
		}
	})
	return values
}

// Texts returns the trimmed text of each element matching selector.
func (d *Document) Texts(selector string) []string {
	texts := make([]string, 0)
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

// Text returns the text content of n, whitespace trimmed.
func Text(n *html.Node) string {
	return strings.TrimSpace(htmlquery.InnerText(n))
}

// Render returns the markup of n. Attribute nodes produced by XPath
// selections such as //a/@href render as their value and text nodes as
// their trimmed text.
func Render(n *html.Node) string {
	if n.Type == html.TextNode || (n.Type == html.ElementNode && n.Parent == nil && n.FirstChild != nil &&
		n.FirstChild == n.LastChild && n.FirstChild.Type == html.TextNode) {
		return Text(n)
	}
	return htmlquery.OutputHTML(n, true)
}

// Title returns the trimmed content of the <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// HTML renders the document back to markup.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// Targets returns download targets for the elements matching selector.
// Anchors contribute their href and images their src, resolved against the
// page URL.
func (d *Document) Targets(selector string) []filename.Target {
	nodes := d.Nodes(selector)
	targets := make([]filename.Target, 0, len(nodes))
	for _, n := range nodes {
		targets = append(targets, filename.Element{Node: n, Base: d.base})
	}
	return targets
}

// LinkOption configures Links.
type LinkOption func(*linkOptions)

type linkOptions struct {
	search   string
	absolute bool
}

// WithSearch keeps only links containing substr.
func WithSearch(substr string) LinkOption {
	return func(o *linkOptions) {
		o.search = substr
	}
}

// WithAbsolute resolves relative links against the page URL.
func WithAbsolute() LinkOption {
	return func(o *linkOptions) {
		o.absolute = true
	}
}

// Links returns the href of every anchor on the page. The result holds no
// empty strings, no bare "#" and no duplicates, in document order.
func (d *Document) Links(opts ...LinkOption) []string {
	var o linkOptions
	for _, opt := range opts {
		opt(&o)
	}

	seen := make(map[string]bool)
	links := make([]string, 0)
	for _, href := range d.Attrs("a", "href") {
		href = strings.TrimSpace(href)
		if href == "" || href == "#" {
			continue
		}
		if o.search != "" && !strings.Contains(href, o.search) {
			continue
		}
		if o.absolute {
			href = d.resolve(href)
		}
		if seen[href] {
			continue
		}
		seen[href] = true
		links = append(links, href)
	}
	return links
}

// ReLinks returns the absolute links whose URL matches pattern.
func (d *Document) ReLinks(pattern *regexp.Regexp) []string {
	matched := make([]string, 0)
	for _, link := range d.Links(WithAbsolute()) {
		if pattern.MatchString(link) {
			matched = append(matched, link)
		}
	}
	return matched
}

// resolve makes href absolute. It returns href unchanged when the page URL
// is unknown or href does not parse.
func (d *Document) resolve(href string) string {
	if d.base == nil {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return d.base.ResolveReference(u).String()
}
