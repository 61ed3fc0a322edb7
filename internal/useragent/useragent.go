package useragent

import (
	"strings"

	browser "github.com/EDDYCJY/fake-useragent"

	"github.com/nao1215/looter/internal/fetcher"
)

// Random yields a random desktop or mobile browser User-Agent per call.
type Random struct{}

// UserAgent returns a random browser User-Agent, or the fetcher default
// when the browser database yields nothing.
func (Random) UserAgent() string {
	if ua := strings.TrimSpace(browser.Random()); ua != "" {
		return ua
	}
	return fetcher.DefaultUserAgent
}

// New returns a source that always yields fixed, or Random when fixed is
// blank.
func New(fixed string) fetcher.UserAgentSource {
	if fixed = strings.TrimSpace(fixed); fixed != "" {
		return fetcher.StaticUserAgent(fixed)
	}
	return Random{}
}
