// Package config holds the settings shared by the looter CLI commands.
//
// A Config is built from command-line flags with NewConfig supplying the
// defaults, then checked once with Validate before any request is sent.
// Per-site settings (headers, cookies, a fixed User-Agent) live in an
// optional YAML file named ".looter":
//
//	defaults:
//	  headers:
//	    Accept-Language: ja,en;q=0.8
//	sites:
//	  konachan.net:
//	    cookie: "vote=1"
//	    userAgent: "Mozilla/5.0 (X11; Linux x86_64)"
//
// The file is looked up in the current directory, the home directory and
// the XDG config directory, in that order.
package config
