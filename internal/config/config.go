// ABOUTME: Fittrack configuration management with backend selection.
// ABOUTME: Handles settings, .env overrides, and the storage backend factory.

package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/harperreed/fittrack/internal/storage"
)

// Backends lists the supported storage backends.
var Backends = []string{"sqlite", "markdown", "badger"}

// Config stores fittrack configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "markdown" or "badger".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts fittrack.db here, markdown uses documents/, badger uses kv/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fittrack.
	DataDir string `json:"data_dir,omitempty"`

	// Timezone is the location whose midnight unlocks the next plan day.
	// Empty or "Local" uses the system zone.
	Timezone string `json:"timezone,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `json:"log_level,omitempty"`

	// SessionSecret signs login tokens. When empty a random key is kept in
	// the data directory.
	SessionSecret string `json:"session_secret,omitempty"`
}

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
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// DefaultDataDir returns the XDG data directory for fittrack.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fittrack")
}

// Location resolves the day-boundary timezone.
func (c *Config) Location() (*time.Location, error) {
	switch strings.TrimSpace(c.Timezone) {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GetLogLevel parses LogLevel, defaulting to info.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// GetSessionSecret returns the signing key for login tokens, creating and
// persisting a random one on first use.
func (c *Config) GetSessionSecret() ([]byte, error) {
	if c.SessionSecret != "" {
		return []byte(c.SessionSecret), nil
	}

	path := filepath.Join(c.GetDataDir(), "session.key")
	data, err := os.ReadFile(path)
	if err == nil && len(strings.TrimSpace(string(data))) > 0 {
		return []byte(strings.TrimSpace(string(data))), nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read session key: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	key := hex.EncodeToString(buf)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(key), 0600); err != nil {
		return nil, fmt.Errorf("write session key: %w", err)
	}
	return []byte(key), nil
}

// Validate checks the backend name and timezone.
func (c *Config) Validate() error {
	var errs []error
	if !isBackend(c.GetBackend()) {
		errs = append(errs, fmt.Errorf("unknown backend: %q", c.Backend))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func isBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
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

// OpenBackend opens the named backend under dataDir.
func OpenBackend(backend, dataDir string) (storage.Backend, error) {
	switch backend {
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "fittrack.db"))
	case "markdown":
		return storage.NewMarkdownStore(filepath.Join(dataDir, "documents"))
	case "badger":
		return storage.OpenKV(filepath.Join(dataDir, "kv"))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// BackendPath returns where a backend keeps its data under dataDir.
func BackendPath(backend, dataDir string) string {
	switch backend {
	case "markdown":
		return filepath.Join(dataDir, "documents")
	case "badger":
		return filepath.Join(dataDir, "kv")
	default:
		return filepath.Join(dataDir, "fittrack.db")
	}
}

// OpenStorage creates a Repository over the configured backend.
func (c *Config) OpenStorage() (*storage.Store, error) {
	b, err := OpenBackend(c.GetBackend(), c.GetDataDir())
	if err != nil {
		return nil, err
	}
	return storage.NewStore(b), nil
}

// GetConfigDir returns the fittrack config directory.
func GetConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fittrack")
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.json")
}

// LoadFile reads config from disk without applying the environment.
func LoadFile() (*Config, error) {
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
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Load reads config from disk, then applies .env files and FITTRACK_*
// environment variables on top.
func Load() (*Config, error) {
	loadDotEnv()

	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// loadDotEnv loads .env from the working directory and the config
// directory. Variables already set in the environment are kept.
func loadDotEnv() {
	for _, path := range []string{".env", filepath.Join(GetConfigDir(), ".env")} {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			slog.Debug("skipping .env file", "path", path, "error", err)
		}
	}
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"FITTRACK_BACKEND":   &c.Backend,
		"FITTRACK_DATA_DIR":  &c.DataDir,
		"FITTRACK_TIMEZONE":  &c.Timezone,
		"FITTRACK_LOG_LEVEL": &c.LogLevel,
	}
	for env, field := range overrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Set updates one field by its JSON key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		if !isBackend(value) {
			return fmt.Errorf("unknown backend: %q (use %s)", value, strings.Join(Backends, ", "))
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "timezone":
		prev := c.Timezone
		c.Timezone = value
		if _, err := c.Location(); err != nil {
			c.Timezone = prev
			return err
		}
	case "log_level":
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", value, err)
		}
		c.LogLevel = value
	case "session_secret":
		c.SessionSecret = value
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}
