// Package config handles repository discovery and configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File and directory names inside a paperlist repository.
const (
	CatalogFile  = "papers.yaml"
	PaperlistDir = ".paperlist"
	ConfigFile   = "config.yml"
	CacheDir     = "cache"
	IndexFile    = "catalog.db"

	DefaultOutputFile = "index.html"
)

// Config is the optional per-repository configuration stored in
// .paperlist/config.yml. Zero values fall back to defaults.
type Config struct {
	PageTitle     string `yaml:"page_title,omitempty"`
	OutputFile    string `yaml:"output_file,omitempty"`     // generated HTML path
	ThumbnailTool string `yaml:"thumbnail_tool,omitempty"`  // external generator command
	UserAgent     string `yaml:"user_agent,omitempty"`      // override for link checks
	ArxivBaseURL  string `yaml:"arxiv_base_url,omitempty"`  // override for testing
}

// CatalogPath returns the catalog file path from a repository root.
func CatalogPath(root string) string {
	return filepath.Join(root, CatalogFile)
}

// ConfigPath returns the config file path from a repository root.
func ConfigPath(root string) string {
	return filepath.Join(root, PaperlistDir, ConfigFile)
}

// IndexPath returns the SQLite cache path from a repository root.
func IndexPath(root string) string {
	return filepath.Join(root, PaperlistDir, CacheDir, IndexFile)
}

// OutputPath returns the generated page path for a config.
func (c *Config) OutputPath(root string) string {
	out := c.OutputFile
	if out == "" {
		out = DefaultOutputFile
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(root, out)
}

// IsRepository checks whether the given path holds a paperlist repository
// (a catalog file or a .paperlist directory).
func IsRepository(root string) bool {
	if _, err := os.Stat(CatalogPath(root)); err == nil {
		return true
	}
	info, err := os.Stat(filepath.Join(root, PaperlistDir))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a repository root.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a paperlist repository (no %s found)", CatalogFile)
		}
		abs = parent
	}
}

// Load reads the repository configuration. A missing config file yields the
// defaults, not an error. Environment variables (PAPERLIST_USER_AGENT,
// PAPERLIST_THUMBNAIL_TOOL) override file values; a .env file next to the
// catalog is honored.
func Load(root string) (*Config, error) {
	// Best effort; a repository without .env is normal.
	_ = godotenv.Load(filepath.Join(root, ".env"))

	var cfg Config
	data, err := os.ReadFile(ConfigPath(root))
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if ua := os.Getenv("PAPERLIST_USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}
	if tool := os.Getenv("PAPERLIST_THUMBNAIL_TOOL"); tool != "" {
		cfg.ThumbnailTool = tool
	}
	return &cfg, nil
}

// Save writes the configuration file, creating .paperlist if needed.
func Save(root string, cfg *Config) error {
	dir := filepath.Dir(ConfigPath(root))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
