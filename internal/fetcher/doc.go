// Package fetcher sends the HTTP requests behind every looter operation.
//
// A Client issues plain GET requests with a fresh User-Agent per request and
// a per-client timeout. When a URL has no scheme the first attempt fails
// with ErrSchemaMissing and the request is retried exactly once with
// "http://" prepended; there is no other retry. A final status of 400 or
// above is reported as a *StatusError matching ErrRequestFailed.
//
//	client := fetcher.NewClient(fetcher.WithTimeout(30 * time.Second))
//	doc, err := client.Fetch(ctx, "konachan.net/post")
package fetcher
