// Package looter is a small toolkit for writing web scrapers.
//
// It wraps an HTTP client that sends a random browser User-Agent with
// every request, an HTML document that answers CSS selectors and XPath
// expressions, and helpers to save images and scraped records:
//
//	doc, err := looter.Fetch(ctx, "konachan.net/post")
//	if err != nil {
//		return err
//	}
//	paths, err := looter.SaveImgsConcurrently(ctx, doc.Targets("a.directlink"), false)
//
// URLs without a scheme are retried once with "http://". Images are
// written to the current directory under a name derived from the last
// segment of their URL.
//
// Spiders generated by "looter genspider" start from this package.
package looter
