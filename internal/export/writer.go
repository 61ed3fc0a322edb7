package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes a batch of records to its destination.
type Writer interface {
	// Write returns the number of bytes written.
	Write(records []Record) (int, error)
}

// SaveAsJSON writes records to name.json, sorted by sortBy when it is not
// empty, and returns the file path. A name already ending in ".json" is
// used as is.
func SaveAsJSON(records []Record, name, sortBy string) (string, error) {
	path := name
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		path += ".json"
	}
	err := writeFile(path, SortRecords(records, sortBy), func(w io.Writer) Writer {
		return NewJSONWriter(w)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// Save writes records to path in the format its extension names:
// ".md" for a Markdown table, ".db", ".sqlite" or ".sqlite3" for a SQLite
// database and JSON for anything else. A database groups the records under
// source, usually the URL they were scraped from.
func Save(ctx context.Context, path, source string, records []Record, sortBy string) (string, error) {
	records = SortRecords(records, sortBy)

	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		title := strings.TrimSuffix(filepath.Base(path), ext)
		err := writeFile(path, records, func(w io.Writer) Writer {
			return NewMarkdownWriter(w, WithTitle(title))
		})
		if err != nil {
			return "", err
		}
		return path, nil
	case ".db", ".sqlite", ".sqlite3":
		store, err := Open(path)
		if err != nil {
			return "", err
		}
		defer store.Close()
		if err := store.Save(ctx, source, records); err != nil {
			return "", err
		}
		return path, nil
	default:
		return SaveAsJSON(records, path, "")
	}
}

// writeFile creates path and writes records with the Writer newWriter
// returns for it.
func writeFile(path string, records []Record, newWriter func(io.Writer) Writer) error {
	f, err := os.Create(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := newWriter(f).Write(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
