package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortRecords(t *testing.T) {
	t.Parallel()

	records := []Record{
		{"title": "b", "score": 10},
		{"title": "a", "score": 2.5},
		{"title": "c"},
		{"title": "d", "score": 2.5},
	}

	t.Run("numbers compare numerically", func(t *testing.T) {
		t.Parallel()

		got := SortRecords(records, "score")
		titles := make([]string, 0, len(got))
		for _, r := range got {
			titles = append(titles, r["title"].(string))
		}
		if diff := cmp.Diff([]string{"a", "d", "b", "c"}, titles); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		t.Parallel()

		_ = SortRecords(records, "title")
		if records[0]["title"] != "b" {
			t.Error("expected input order to be kept")
		}
	})

	t.Run("empty key keeps order", func(t *testing.T) {
		t.Parallel()

		got := SortRecords(records, "")
		if got[0]["title"] != "b" || got[3]["title"] != "d" {
			t.Error("expected unsorted copy")
		}
	})
}

func TestColumns(t *testing.T) {
	t.Parallel()

	got := Columns([]Record{{"title": 1, "url": 2}, {"author": 3}})
	if diff := cmp.Diff([]string{"author", "title", "url"}, got); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	records := []Record{{"title": "日本語 <b>&</b>", "url": "https://example.com/?a=1&b=2"}}

	t.Run("compact keeps non-ascii and html", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewJSONWriter(&buf).Write(records)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}
		want := `[{"title":"日本語 <b>&</b>","url":"https://example.com/?a=1&b=2"}]` + "\n"
		if buf.String() != want {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  {\n    \"title\"") {
			t.Errorf("expected indented output:\n%s", buf.String())
		}
	})

	t.Run("nil is an empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "[]\n" {
			t.Errorf("expected empty array, got %q", buf.String())
		}
	})
}

func TestSaveAsJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	records := []Record{
		{"title": "second", "rank": 2},
		{"title": "first", "rank": 1},
	}

	path, err := SaveAsJSON(records, filepath.Join(dir, "konachan"), "rank")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "konachan.json"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 || got[0]["title"] != "first" {
		t.Errorf("expected records sorted by rank, got %v", got)
	}

	again, err := SaveAsJSON(records, path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != path {
		t.Errorf("expected .json name to be kept, got %s", again)
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("table with one column per key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := NewMarkdownWriter(&buf, WithTitle("Posts")).Write([]Record{
			{"title": "hello", "tags": []string{"a", "b"}},
			{"title": "world"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"# Posts", "tags", "title", "hello", `["a","b"]`, "world"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("no records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No records.") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "looter.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if store.Path() != path {
		t.Errorf("expected path %s, got %s", path, store.Path())
	}

	if err := store.Save(ctx, "https://example.com/a", []Record{
		{"title": "one", "rank": 1},
		{"title": "two", "rank": 2},
	}); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Save(ctx, "https://example.com/b", []Record{{"title": "three"}}); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	got, err := store.Load(ctx, "https://example.com/a")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	want := []Record{
		{"title": "one", "rank": float64(1)},
		{"title": "two", "rank": float64(2)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	sources, err := store.Sources(ctx)
	if err != nil {
		t.Fatalf("failed to list sources: %v", err)
	}
	if diff := cmp.Diff([]string{"https://example.com/a", "https://example.com/b"}, sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	missing, err := store.Load(ctx, "https://example.com/none")
	if err != nil || len(missing) != 0 {
		t.Errorf("expected no records, got %v, %v", missing, err)
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	records := []Record{{"title": "b"}, {"title": "a"}}

	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "markdown", file: "out.md", want: "title"},
		{name: "json", file: "out", want: `[{"title":"a"},{"title":"b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, err := Save(ctx, filepath.Join(t.TempDir(), tt.file), "", records, "title")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, err := os.ReadFile(path) //nolint:gosec // test file
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("expected %q in:\n%s", tt.want, data)
			}
		})
	}

	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.db")
		if _, err := Save(ctx, path, "https://example.com/a", records, "title"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := Save(ctx, path, "https://example.com/b", records[:1], ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		store, err := Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()
		sources, err := store.Sources(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"https://example.com/a", "https://example.com/b"}, sources); diff != "" {
			t.Errorf("sources mismatch (-want +got):\n%s", diff)
		}
		got, err := store.Load(ctx, "https://example.com/a")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0]["title"] != "a" {
			t.Errorf("unexpected records %v", got)
		}
	})
}
