// Package main provides the entry point for the looter CLI.
//
// looter generates scraper skeletons and opens an interactive shell on a
// page for trying out selectors.
//
// Usage:
//
//	looter genspider <name> <data|image> [--async]
//	looter shell [url]
//
// See --help for all available options.
package main

func main() {
	Execute()
}
