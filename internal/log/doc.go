// Package log provides the slog setup shared by the looter CLI and library.
//
// Scraping sessions routinely carry credentials: cookies read from a
// cookies.txt file, login form fields, Authorization headers configured per
// site, and URLs with embedded user info. The SecureHandler wraps any
// slog.Handler and masks those values before they reach the output.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//	logger.Info("login", "url", loginURL, "password", pw) // password is masked
//	slog.SetDefault(logger)
package log
