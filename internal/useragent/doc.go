// Package useragent supplies User-Agent strings for outgoing requests.
//
// Random draws a fresh browser User-Agent for every call, which keeps a
// scraper from sending one fixed header across a whole run. The fetcher
// only sees the fetcher.UserAgentSource interface, so tests can plug in a
// fixed value without touching the browser database.
package useragent
