package config

import "maps"

// SiteConfig holds request settings for a single domain.
type SiteConfig struct {
	// Cookie is sent as the Cookie header, e.g. "a=1; b=2".
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are added to every request for the domain.
	Headers map[string]string `yaml:"headers,omitempty"`

	// UserAgent fixes the User-Agent for the domain.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// File is the structure of the .looter configuration file.
type File struct {
	// Sites maps a domain (host without scheme, e.g. "konachan.net") to its settings.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults apply to every domain unless overridden.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the settings for domain merged over the defaults.
func (cf *File) GetSiteConfig(domain string) SiteConfig {
	result := SiteConfig{
		Cookie:    cf.Defaults.Cookie,
		UserAgent: cf.Defaults.UserAgent,
	}
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = maps.Clone(cf.Defaults.Headers)
	}

	site, ok := cf.Sites[domain]
	if !ok {
		return result
	}
	if site.Cookie != "" {
		result.Cookie = site.Cookie
	}
	if site.UserAgent != "" {
		result.UserAgent = site.UserAgent
	}
	if len(site.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(site.Headers))
		}
		maps.Copy(result.Headers, site.Headers)
	}
	return result
}
