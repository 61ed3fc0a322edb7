package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Timeout is 60 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 60*time.Second {
			t.Errorf("expected Timeout to be 60s, got %v", cfg.Timeout)
		}
	})

	t.Run("default Workers is 20", func(t *testing.T) {
		t.Parallel()
		if cfg.Workers != 20 {
			t.Errorf("expected Workers to be 20, got %d", cfg.Workers)
		}
	})

	t.Run("default MaxNameLength is 160", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxNameLength != 160 {
			t.Errorf("expected MaxNameLength to be 160, got %d", cfg.MaxNameLength)
		}
	})

	t.Run("default UserAgent is random", func(t *testing.T) {
		t.Parallel()
		if cfg.UserAgent != "" {
			t.Errorf("expected empty UserAgent, got %q", cfg.UserAgent)
		}
	})

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "zero workers", modify: func(c *Config) { c.Workers = 0 }, wantErr: ErrInvalidWorkers},
		{name: "zero name length", modify: func(c *Config) { c.MaxNameLength = 0 }, wantErr: ErrInvalidMaxNameLength},
		{name: "empty output dir", modify: func(c *Config) { c.OutputDir = "" }, wantErr: ErrEmptyOutputDir},
		{name: "fixed user agent", modify: func(c *Config) { c.UserAgent = "test-agent" }, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFileGetSiteConfig(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: SiteConfig{
			Cookie:  "lang=en",
			Headers: map[string]string{"Accept-Language": "en", "X-Default": "1"},
		},
		Sites: map[string]SiteConfig{
			"konachan.net": {
				Cookie:    "vote=1",
				Headers:   map[string]string{"Accept-Language": "ja"},
				UserAgent: "site-agent",
			},
		},
	}

	t.Run("site overrides defaults", func(t *testing.T) {
		t.Parallel()

		got := cf.GetSiteConfig("konachan.net")
		if got.Cookie != "vote=1" {
			t.Errorf("expected site cookie, got %q", got.Cookie)
		}
		if got.UserAgent != "site-agent" {
			t.Errorf("expected site user agent, got %q", got.UserAgent)
		}
		if got.Headers["Accept-Language"] != "ja" {
			t.Errorf("expected site header to win, got %q", got.Headers["Accept-Language"])
		}
		if got.Headers["X-Default"] != "1" {
			t.Errorf("expected default header to be kept, got %v", got.Headers)
		}
	})

	t.Run("unknown site gets defaults", func(t *testing.T) {
		t.Parallel()

		got := cf.GetSiteConfig("example.com")
		if got.Cookie != "lang=en" {
			t.Errorf("expected default cookie, got %q", got.Cookie)
		}
		if got.Headers["Accept-Language"] != "en" {
			t.Errorf("expected default header, got %v", got.Headers)
		}
	})

	t.Run("merging does not modify defaults", func(t *testing.T) {
		t.Parallel()

		_ = cf.GetSiteConfig("konachan.net")
		if cf.Defaults.Headers["Accept-Language"] != "en" {
			t.Errorf("defaults were mutated: %v", cf.Defaults.Headers)
		}
	})
}

func TestConfigSite(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if got := cfg.Site("example.com"); got.Cookie != "" || got.Headers != nil {
		t.Errorf("expected zero SiteConfig without file, got %+v", got)
	}

	cfg.SiteConfigs = &File{Sites: map[string]SiteConfig{"example.com": {Cookie: "a=b"}}}
	if got := cfg.Site("example.com"); got.Cookie != "a=b" {
		t.Errorf("expected cookie from file, got %q", got.Cookie)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads sites and defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `defaults:
  headers:
    Accept-Language: en
sites:
  konachan.net:
    cookie: "vote=1"
    userAgent: "custom"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		site := cf.GetSiteConfig("konachan.net")
		if site.Cookie != "vote=1" || site.UserAgent != "custom" {
			t.Errorf("unexpected site config: %+v", site)
		}
		if site.Headers["Accept-Language"] != "en" {
			t.Errorf("expected default header, got %v", site.Headers)
		}
	})

	t.Run("empty file yields empty sites map", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatal(err)
		}
		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Sites == nil {
			t.Error("expected Sites to be initialized")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sites: [unclosed"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("sites: {}"), 0600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})
}

func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	if dir := XDGConfigDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected XDG config dir to end with %q, got %q", AppName, dir)
	}
}
