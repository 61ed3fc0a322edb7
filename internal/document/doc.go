// Package document wraps a parsed HTML page.
//
// A Document answers CSS selector queries through goquery and XPath queries
// through htmlquery over the same golang.org/x/net/html tree, and resolves
// relative links against the URL the page was fetched from.
//
//	doc, err := document.Parse(body, "text/html; charset=shift_jis", "https://konachan.net/post")
//	hrefs := doc.Attrs("a.directlink", "href")
//	nodes, err := doc.XPath("//ul[@id='post-list-posts']/li")
package document
