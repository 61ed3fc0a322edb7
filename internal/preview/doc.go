// Package preview saves a fetched page to a local HTML file and opens it
// in the default browser, to check how a page renders without scripts
// from the live site interfering.
package preview
