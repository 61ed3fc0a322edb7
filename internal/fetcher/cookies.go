package fetcher

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// httpOnlyPrefix marks HttpOnly cookies in the Netscape format.
const httpOnlyPrefix = "#HttpOnly_"

// ReadCookies loads cookies from a Netscape cookies.txt file, the format
// written by curl and most browser export extensions.
func ReadCookies(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided cookie file
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseCookies(f)
}

// ParseCookies reads Netscape cookies.txt content. Each non-comment line has
// seven tab-separated fields: domain, include-subdomains flag, path, secure
// flag, expiry as Unix seconds (0 for session cookies), name and value.
func ParseCookies(r io.Reader) ([]*http.Cookie, error) {
	cookies := make([]*http.Cookie, 0)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = strings.TrimPrefix(line, httpOnlyPrefix)
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return nil, fmt.Errorf("cookies line %d: expected 7 fields, got %d", lineNo, len(fields))
		}

		cookie := &http.Cookie{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cookies line %d: invalid expiry %q: %w", lineNo, fields[4], err)
		}
		if expiry > 0 {
			cookie.Expires = time.Unix(expiry, 0)
		}
		cookies = append(cookies, cookie)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cookies, nil
}

// CookiesFromHeader parses a Cookie header value such as "a=1; b=2".
func CookiesFromHeader(header string) ([]*http.Cookie, error) {
	if strings.TrimSpace(header) == "" {
		return nil, nil
	}
	return http.ParseCookie(header)
}
