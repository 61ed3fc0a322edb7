package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/markdown"
)

// MarkdownWriter writes records as a Markdown table, one column per key.
type MarkdownWriter struct {
	output io.Writer
	title  string
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithTitle puts a level one heading above the table.
func WithTitle(title string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.title = title
	}
}

// NewMarkdownWriter returns a MarkdownWriter.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders records. Missing values become empty cells.
func (w *MarkdownWriter) Write(records []Record) (int, error) {
	md := markdown.NewMarkdown(w.output)
	if w.title != "" {
		md.H1(w.title)
		md.PlainText("")
	}

	columns := Columns(records)
	if len(columns) == 0 {
		md.PlainText("No records.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = cell(r[c])
		}
		rows = append(rows, row)
	}
	md.Table(markdown.TableSet{
		Header: columns,
		Rows:   rows,
	})
	return len(md.String()), md.Build()
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case bool, int, int64, float64:
		return fmt.Sprint(val)
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprint(v)
}
