package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.InputFile = "expected.xlsx"
	cfg.MirrorURL = "http://mirror.example.com"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "empty input file",
			mutate: func(cfg *Config) {
				cfg.InputFile = ""
			},
			wantErr: "input file",
		},
		{
			name: "empty mirror url",
			mutate: func(cfg *Config) {
				cfg.MirrorURL = ""
			},
			wantErr: "mirror URL",
		},
		{
			name: "invalid url format",
			mutate: func(cfg *Config) {
				cfg.MirrorURL = "http://"
			},
			wantErr: "mirror URL",
		},
		{
			name: "relative group path",
			mutate: func(cfg *Config) {
				cfg.GroupPaths = []string{"/news", "blog"}
			},
			wantErr: "group path",
		},
		{
			name: "unknown format",
			mutate: func(cfg *Config) {
				cfg.OutputFormat = "xls"
			},
			wantErr: "output format",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "negative cache size",
			mutate: func(cfg *Config) {
				cfg.CacheSize = -1
			},
			wantErr: "cache size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.OutputFile != "report.xls" {
		t.Fatalf("output file = %q, want report.xls", cfg.OutputFile)
	}
}

func TestParseGroupPaths(t *testing.T) {
	assert.Equal(t, []string{"/news", "/blog"}, ParseGroupPaths("/news /blog"))
	assert.Equal(t, []string{"/news", "/blog"}, ParseGroupPaths("  /news\t/blog\n"))
	assert.Equal(t, []string{"/a,/b"}, ParseGroupPaths("/a,/b"))
	assert.Nil(t, ParseGroupPaths("   "))
	assert.Nil(t, ParseGroupPaths(""))
}

func TestMirrorBase(t *testing.T) {
	cfg := validConfig()
	cfg.MirrorURL = "http://mirror.example.com//"
	assert.Equal(t, "http://mirror.example.com", cfg.MirrorBase())
}
