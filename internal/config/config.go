package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Values are fixed at process start
// and never mutated at runtime.
type Config struct {
	// DataDir is the root directory holding one subdirectory per category.
	DataDir string `yaml:"data_dir"`

	// Categories is the fixed set of valid prompt categories. Each category
	// is also the name of its storage directory under DataDir.
	Categories []string `yaml:"categories"`

	// Host and Port configure the web server bind address.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// ShareMaxPerWindow is the number of share tokens a single requester may
	// obtain within ShareWindow before issuance is refused.
	ShareMaxPerWindow int `yaml:"share_max_per_window"`

	// ShareWindow is the sliding window over which issuance attempts are counted.
	ShareWindow time.Duration `yaml:"share_window"`

	// ShareTTL bounds token lifetime. Zero means process-lifetime only.
	ShareTTL time.Duration `yaml:"share_ttl"`

	// TunnelCommand is the external tunnel binary invoked by `serve --tunnel`.
	TunnelCommand string `yaml:"tunnel_command"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `yaml:"disabled_tools"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:           "prompts",
		Categories:        []string{"coding", "writing", "analysis"},
		Host:              "127.0.0.1",
		Port:              5000,
		ShareMaxPerWindow: 5,
		ShareWindow:       30 * time.Minute,
		TunnelCommand:     "cloudflared",
		LogLevel:          "info",
	}
}

// Load builds configuration in three layers: defaults, then baseDir/config.yaml
// if present, then environment variables (a .env file in the working directory
// is loaded first, matching the reference deployment). The baseDir parameter
// allows tests to use t.TempDir().
func Load(baseDir string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := loadFile(filepath.Join(baseDir, "config.yaml"))
	if err != nil {
		return nil, err
	}
	cfg = Merge(cfg, file)

	// Missing .env is fine; only real read errors matter and godotenv folds
	// both into one error, so the result is ignored.
	_ = godotenv.Load()

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads a YAML config file, returning a zero-valued config if the
// file doesn't exist.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values take precedence for
// non-zero scalars; slices are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DataDir = overlay.DataDir
	if result.DataDir == "" {
		result.DataDir = base.DataDir
	}
	result.Host = overlay.Host
	if result.Host == "" {
		result.Host = base.Host
	}
	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}
	result.ShareMaxPerWindow = overlay.ShareMaxPerWindow
	if result.ShareMaxPerWindow == 0 {
		result.ShareMaxPerWindow = base.ShareMaxPerWindow
	}
	result.ShareWindow = overlay.ShareWindow
	if result.ShareWindow == 0 {
		result.ShareWindow = base.ShareWindow
	}
	result.ShareTTL = overlay.ShareTTL
	if result.ShareTTL == 0 {
		result.ShareTTL = base.ShareTTL
	}
	result.TunnelCommand = overlay.TunnelCommand
	if result.TunnelCommand == "" {
		result.TunnelCommand = base.TunnelCommand
	}
	result.LogLevel = overlay.LogLevel
	if result.LogLevel == "" {
		result.LogLevel = base.LogLevel
	}

	// Categories replace rather than merge: the category set is an enumeration,
	// not an additive list.
	result.Categories = overlay.Categories
	if len(result.Categories) == 0 {
		result.Categories = base.Categories
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// applyEnv overrides config fields from PROMPTBIN_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PROMPTBIN_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PROMPTBIN_CATEGORIES"); v != "" {
		cfg.Categories = splitList(v)
	}
	if v := os.Getenv("PROMPTBIN_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PROMPTBIN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("PROMPTBIN_SHARE_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ShareMaxPerWindow = n
		}
	}
	if v := os.Getenv("PROMPTBIN_SHARE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShareWindow = d
		}
	}
	if v := os.Getenv("PROMPTBIN_SHARE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShareTTL = d
		}
	}
	if v := os.Getenv("PROMPTBIN_TUNNEL_COMMAND"); v != "" {
		cfg.TunnelCommand = v
	}
	if v := os.Getenv("PROMPTBIN_DISABLED_TOOLS"); v != "" {
		cfg.DisabledTools = splitList(v)
	}
	if v := os.Getenv("PROMPTBIN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

// Validate checks invariants that would otherwise fail deep inside the store.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	if len(c.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat == "" || cat != filepath.Base(cat) || strings.ContainsAny(cat, "./\\") {
			return errors.New("category names must be plain directory names: " + strconv.Quote(cat))
		}
		if seen[cat] {
			return errors.New("duplicate category: " + cat)
		}
		seen[cat] = true
	}
	if c.ShareMaxPerWindow < 1 {
		return errors.New("share_max_per_window must be at least 1")
	}
	if c.ShareWindow <= 0 {
		return errors.New("share_window must be positive")
	}
	return nil
}

// ValidCategory reports whether category is in the configured set.
func (c *Config) ValidCategory(category string) bool {
	for _, cat := range c.Categories {
		if cat == category {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated string, trims whitespace, drops empties.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
