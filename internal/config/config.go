// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// Data sources for the history view.
const (
	SourceAPI   = "api"
	SourceLocal = "local"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	History HistoryConfig `toml:"history"`
	Export  ExportConfig  `toml:"export"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	UI      UIConfig      `toml:"ui"`
}

// APIConfig holds settings for the history backend.
type APIConfig struct {
	Source  string `toml:"source"`   // "api" or "local"
	BaseURL string `toml:"base_url"` // e.g., "http://localhost:8080"
	Token   string `toml:"token"`    // optional bearer token
	Timeout string `toml:"timeout"`  // e.g., "15s"
}

// HistoryConfig holds the initial list settings.
type HistoryConfig struct {
	PageSize int    `toml:"page_size"` // 10, 20 or 50
	Sort     string `toml:"sort"`      // "created_at_desc" or "created_at_asc"
}

// ExportConfig holds CSV and print export settings.
type ExportConfig struct {
	Dir       string `toml:"dir"`
	OpenPrint bool   `toml:"open_print"` // open print views in the browser
	Schedule  string `toml:"schedule"`   // cron spec for snapshots while serving, empty disables
}

// StorageConfig holds local database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ServerConfig holds the local API server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme       string `toml:"theme"`        // "mocha", "latte"
	MobileWidth int    `toml:"mobile_width"` // below this width records render as cards
	Timezone    string `toml:"timezone"`     // IANA name or "Local"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Source:  SourceAPI,
			BaseURL: "http://localhost:8080",
			Timeout: "15s",
		},
		History: HistoryConfig{
			PageSize: supply.DefaultPageSize,
			Sort:     string(supply.SortNewest),
		},
		Export: ExportConfig{
			Dir:       defaultExportDir(),
			OpenPrint: true,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		UI: UIConfig{
			Theme:       "mocha",
			MobileWidth: 100,
			Timezone:    "Local",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "abastecimentos.db"
	}
	return filepath.Join(home, ".local", "share", "abastecimentos", "abastecimentos.db")
}

func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "abastecimentos", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, loads a .env
// file from the working directory, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Missing .env files are fine; variables may come from the environment directly.
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Export.Dir = expandPath(cfg.Export.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ABASTECIMENTOS_SOURCE"); v != "" {
		cfg.API.Source = v
	}
	if v := os.Getenv("ABASTECIMENTOS_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("ABASTECIMENTOS_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("ABASTECIMENTOS_API_TIMEOUT"); v != "" {
		cfg.API.Timeout = v
	}
	if v := os.Getenv("ABASTECIMENTOS_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ABASTECIMENTOS_PAGE_SIZE: %w", err)
		}
		cfg.History.PageSize = n
	}
	if v := os.Getenv("ABASTECIMENTOS_SORT"); v != "" {
		cfg.History.Sort = v
	}
	if v := os.Getenv("ABASTECIMENTOS_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("ABASTECIMENTOS_EXPORT_SCHEDULE"); v != "" {
		cfg.Export.Schedule = v
	}
	if v := os.Getenv("ABASTECIMENTOS_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ABASTECIMENTOS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ABASTECIMENTOS_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("ABASTECIMENTOS_TIMEZONE"); v != "" {
		cfg.UI.Timezone = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.API.Source {
	case SourceAPI:
		if c.API.BaseURL == "" {
			return errors.New("base_url must be set when source is api")
		}
	case SourceLocal:
	default:
		return fmt.Errorf("source must be %q or %q, got %q", SourceAPI, SourceLocal, c.API.Source)
	}
	if _, err := c.APITimeout(); err != nil {
		return err
	}
	if c.History.PageSize < 1 || c.History.PageSize > supply.MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", supply.MaxPageSize, c.History.PageSize)
	}
	if _, err := supply.ParseSort(c.History.Sort); err != nil {
		return err
	}
	if c.Export.Dir == "" {
		return errors.New("export dir must be set")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.UI.MobileWidth < 0 {
		return errors.New("mobile_width must not be negative")
	}
	if _, err := time.LoadLocation(locationName(c.UI.Timezone)); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.UI.Timezone, err)
	}
	return nil
}

func locationName(name string) string {
	if name == "" || strings.EqualFold(name, "local") {
		return "Local"
	}
	return name
}

// APITimeout parses the configured request timeout.
func (c *Config) APITimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout must be a duration like 15s, got %q", c.API.Timeout)
	}
	if d < 0 {
		return 0, errors.New("timeout must not be negative")
	}
	return d, nil
}

// Sort returns the configured initial ordering.
func (c *Config) Sort() supply.Sort {
	s, err := supply.ParseSort(c.History.Sort)
	if err != nil {
		return supply.SortNewest
	}
	return s
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
