// ABOUTME: Officetime configuration management with backend selection
// ABOUTME: Handles settings, storage backend factory, and path expansion

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/officetime/internal/charm"
	"github.com/harper/officetime/internal/storage"
)

// Config stores officetime configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage. SQLite puts
	// officetime.db here and the geocode cache lives under geocache/.
	// Supports ~ expansion. Defaults to ~/.local/share/officetime.
	DataDir string `json:"data_dir,omitempty"`

	// CharmHost overrides the Charm server used for cloud sync.
	CharmHost string `json:"charm_host,omitempty"`

	// NominatimURL overrides the geocoding endpoint.
	NominatimURL string `json:"nominatim_url,omitempty"`

	// DefaultRadiusMeters overrides the proximity radius applied when the
	// office has none configured.
	DefaultRadiusMeters float64 `json:"default_radius_meters,omitempty"`
}

const dbFilename = "officetime.db"

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetCharmHost returns the configured Charm server, defaulting to the
// CHARM_HOST environment variable and then the built-in default.
func (c *Config) GetCharmHost() string {
	if c.CharmHost != "" {
		return c.CharmHost
	}
	if host := os.Getenv("CHARM_HOST"); host != "" {
		return host
	}
	return charm.DefaultCharmHost
}

// GetNominatimURL returns the geocoding endpoint to use.
func (c *Config) GetNominatimURL() string {
	if c.NominatimURL == "" {
		return ""
	}
	return c.NominatimURL
}

// GeocodeCacheDir returns the directory for the geocoding cache.
func (c *Config) GeocodeCacheDir() string {
	return filepath.Join(c.GetDataDir(), "geocache")
}

// defaultDataDir returns the default XDG data directory for officetime.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "officetime")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case "sqlite":
		dbPath := filepath.Join(c.GetDataDir(), dbFilename)
		return storage.NewSQLiteDB(dbPath)
	case "charm":
		return charm.NewClient(&charm.Config{
			CharmHost: c.GetCharmHost(),
			AutoSync:  true,
		})
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "officetime", "config.json")
}

// Load reads config from disk, returning defaults when no file exists.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
