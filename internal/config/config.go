// ABOUTME: Configuration for the notes server and CLI.
// ABOUTME: Loads YAML from XDG config paths and applies NOTES_* env overrides.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harper/notes/internal/db"
	"gopkg.in/yaml.v3"
)

// Config holds all notes configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`

	Session SessionConfig `yaml:"session"`
	Logging LogConfig     `yaml:"logging"`
}

// SessionConfig configures login sessions.
type SessionConfig struct {
	// Dir holds the badger session store. Empty keeps sessions in memory.
	Dir           string        `yaml:"dir"`
	TTL           time.Duration `yaml:"ttl"`
	CookieName    string        `yaml:"cookie_name"`
	SecureCookies bool          `yaml:"secure_cookies"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	dataDir := DataDir()
	return &Config{
		Addr:   "127.0.0.1:8000",
		DBPath: db.DefaultPath(),
		Session: SessionConfig{
			Dir:        filepath.Join(dataDir, "sessions"),
			TTL:        14 * 24 * time.Hour,
			CookieName: "notes_session",
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notes")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the XDG data directory for notes.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notes")
}

// Load reads the config file at path (ConfigPath when empty), falling back to
// defaults when it does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // User-specified config path is expected CLI behavior
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.DBPath = ExpandPath(cfg.DBPath)
	cfg.Session.Dir = ExpandPath(cfg.Session.Dir)
	return cfg, nil
}

// ApplyEnvOverrides applies NOTES_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("NOTES_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("NOTES_DB"); v != "" {
		c.DBPath = v
	}
	if v, ok := os.LookupEnv("NOTES_SESSIONS"); ok {
		c.Session.Dir = v
	}
	if v := os.Getenv("NOTES_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid NOTES_SESSION_TTL: %w", err)
		}
		c.Session.TTL = ttl
	}
	if v := os.Getenv("NOTES_SECURE_COOKIES"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid NOTES_SECURE_COOKIES: %w", err)
		}
		c.Session.SecureCookies = secure
	}
	if v := os.Getenv("NOTES_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// Save writes the configuration to path (ConfigPath when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
