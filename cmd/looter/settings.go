package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/looter/internal/config"
	"github.com/nao1215/looter/internal/fetcher"
	looterlog "github.com/nao1215/looter/internal/log"
	"github.com/nao1215/looter/internal/useragent"
)

// buildConfig creates a Config from the global flags and the
// configuration file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.JSONLog, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.ProxyURL, err = flags.GetString("proxy"); err != nil {
		return nil, err
	}
	if cfg.CookiesFile, err = flags.GetString("cookies"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}

	// An explicit config path must exist; the default locations are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}
	}

	return cfg, nil
}

// setupLogger creates a redacting logger that writes to stderr.
func setupLogger(cfg *config.Config) *slog.Logger {
	if cfg.JSONLog {
		return looterlog.NewSecureJSONLogger(os.Stderr, cfg.Verbose)
	}
	return looterlog.NewSecureLogger(os.Stderr, cfg.Verbose)
}

// newClient builds a client for requests to the site of target.
// The User-Agent flag beats the site setting, which beats a random one.
func newClient(cfg *config.Config, target string, logger *slog.Logger) (*fetcher.Client, error) {
	site := cfg.Site(fetcher.Domain(target))

	ua := cfg.UserAgent
	if ua == "" {
		ua = site.UserAgent
	}

	opts := []fetcher.Option{
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithUserAgent(useragent.New(ua)),
		fetcher.WithHeaders(site.Headers),
		fetcher.WithLogger(logger),
	}
	if site.Cookie != "" {
		cookies, err := fetcher.CookiesFromHeader(site.Cookie)
		if err != nil {
			return nil, fmt.Errorf("invalid cookie for %s: %w", fetcher.Domain(target), err)
		}
		opts = append(opts, fetcher.WithCookies(cookies))
	}
	if cfg.CookiesFile != "" {
		cookies, err := fetcher.ReadCookies(cfg.CookiesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fetcher.WithCookies(cookies))
	}
	if cfg.ProxyURL != "" {
		opts = append(opts, fetcher.WithProxy(cfg.ProxyURL))
	}

	logger.Debug("client configured",
		"site", fetcher.Domain(target),
		"headers", len(site.Headers),
		"cookie", site.Cookie,
		"proxy", cfg.ProxyURL,
	)
	return fetcher.NewClient(opts...), nil
}
