package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths.
	AppName = "looter"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 60 * time.Second

	// DefaultWorkers is the number of concurrent downloads in a batch.
	DefaultWorkers = 20

	// DefaultMaxNameLength caps the stem of a derived file name.
	DefaultMaxNameLength = 160

	// DefaultOutputDir is where downloaded files are written.
	DefaultOutputDir = "."
)

// Config holds the options for one CLI invocation.
type Config struct {
	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// UserAgent fixes the User-Agent header. Empty means a random
	// User-Agent for every request.
	UserAgent string

	// Workers is the concurrency of batch downloads.
	Workers int

	// OutputDir is the directory downloaded images are written to.
	OutputDir string

	// RandomName appends a random suffix to downloaded file names.
	RandomName bool

	// MaxNameLength caps the length of derived file names.
	MaxNameLength int

	// ProxyURL routes every request through an HTTP or SOCKS5 proxy.
	ProxyURL string

	// CookiesFile is a Netscape cookies.txt file loaded into the client.
	CookiesFile string

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches log output from text to JSON lines.
	JSONLog bool

	// ConfigFilePath is an explicit path to the site configuration file.
	ConfigFilePath string

	// SiteConfigs is populated from the configuration file, if any.
	SiteConfigs *File
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:       DefaultTimeout,
		Workers:       DefaultWorkers,
		OutputDir:     DefaultOutputDir,
		MaxNameLength: DefaultMaxNameLength,
	}
}

// Site returns the site configuration for domain, merged with defaults.
// It returns the zero SiteConfig when no configuration file was loaded.
func (c *Config) Site(domain string) SiteConfig {
	if c.SiteConfigs == nil {
		return SiteConfig{}
	}
	return c.SiteConfigs.GetSiteConfig(domain)
}

// XDGConfigDir returns the looter directory under the XDG config home
// (~/.config/looter on Linux).
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.MaxNameLength <= 0 {
		return ErrInvalidMaxNameLength
	}
	if c.OutputDir == "" {
		return ErrEmptyOutputDir
	}
	return nil
}
