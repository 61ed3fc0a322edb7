// Package export writes scraped records to files.
//
// A Record is one row of scraped data. Records can be written as JSON
// (SaveAsJSON, JSONWriter), as a Markdown table (MarkdownWriter) or
// appended to a SQLite database (Store). Save picks the format from the
// file extension.
//
// JSON output keeps non-ASCII and HTML characters as they are, so titles
// scraped from Japanese or Chinese pages stay readable in the file.
package export
