package useragent

import (
	"testing"

	"github.com/nao1215/looter/internal/fetcher"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("fixed value wins", func(t *testing.T) {
		t.Parallel()

		src := New("  looter/1.0 ")
		if got := src.UserAgent(); got != "looter/1.0" {
			t.Errorf("expected looter/1.0, got %q", got)
		}
		if _, ok := src.(fetcher.StaticUserAgent); !ok {
			t.Errorf("expected StaticUserAgent, got %T", src)
		}
	})

	t.Run("blank selects random", func(t *testing.T) {
		t.Parallel()

		if _, ok := New("").(Random); !ok {
			t.Error("expected Random source for blank input")
		}
	})
}
