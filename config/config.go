package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds checker configuration.
type Config struct {
	InputFile    string
	MirrorURL    string
	GroupPaths   []string
	OutputFile   string
	OutputFormat string // xlsx, csv, json, or dual
	Timeout      time.Duration
	UserAgent    string
	CacheSize    int
	MetricsAddr  string
	Verbose      bool
}

// DefaultConfig returns the defaults used when no flag overrides them.
func DefaultConfig() *Config {
	return &Config{
		OutputFile:   "report.xls",
		OutputFormat: "xlsx",
		Timeout:      0,
		UserAgent:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		CacheSize:    256,
		Verbose:      false,
	}
}

// ParseGroupPaths splits a -g value into path prefixes. Tokens are separated
// by whitespace.
func ParseGroupPaths(value string) []string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input file cannot be empty")
	}

	if c.MirrorURL == "" {
		return fmt.Errorf("mirror URL cannot be empty")
	}
	parsedURL, err := url.Parse(c.MirrorURL)
	if err != nil {
		return fmt.Errorf("invalid mirror URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("mirror URL must include a host")
	}

	for _, group := range c.GroupPaths {
		if !strings.HasPrefix(group, "/") {
			return fmt.Errorf("group path %q must start with /", group)
		}
	}

	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	switch c.OutputFormat {
	case "xlsx", "csv", "json", "dual":
	default:
		return fmt.Errorf("output format must be xlsx, csv, json, or dual")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}

// MirrorBase returns the mirror URL without trailing slashes so relative
// paths, which always begin with "/", can be appended directly.
func (c *Config) MirrorBase() string {
	return strings.TrimRight(c.MirrorURL, "/")
}
