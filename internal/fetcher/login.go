package fetcher

import (
	"context"
	"fmt"
)

// Login POSTs form to loginURL with params as the query string.
// Session cookies set by the server stay in the client's cookie jar, so
// subsequent requests from c are authenticated.
func (c *Client) Login(ctx context.Context, loginURL string, form, params map[string]string) (*Response, error) {
	target := EnsureScheme(loginURL)
	c.logger.Debug("login", "url", target, "fields", len(form))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent.UserAgent()).
		SetQueryParams(params).
		SetFormData(form).
		Post(target)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", target, err)
	}
	return toResponse(target, resp)
}
