package preview

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/browser"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultName is the file name stem used when none is given.
const DefaultName = "test"

// ErrUnknownEncoding is returned for an encoding label htmlindex does not
// know.
var ErrUnknownEncoding = errors.New("preview: unknown encoding")

// openFile opens a local file in the browser. Tests replace it.
var openFile = browser.OpenFile

// Path returns the file name for name, "test.html" when name is empty.
func Path(name string) string {
	if name == "" {
		name = DefaultName
	}
	if !strings.HasSuffix(strings.ToLower(name), ".html") {
		name += ".html"
	}
	return name
}

// Write saves text to path encoded as enc, a WHATWG label such as
// "utf-8", "shift_jis" or "gbk". An empty enc writes UTF-8. Characters
// enc cannot represent are replaced with HTML numeric references.
func Write(path, text, enc string) error {
	data := []byte(text)
	if enc != "" {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
		}
		out, err := encoding.HTMLEscapeUnsupported(e.NewEncoder()).String(text)
		if err != nil {
			return fmt.Errorf("encode as %s: %w", enc, err)
		}
		data = []byte(out)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // page preview is meant to be readable
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Open shows path in the default browser.
func Open(path string) error {
	if err := openFile(path); err != nil {
		return fmt.Errorf("open %s in browser: %w", path, err)
	}
	return nil
}
