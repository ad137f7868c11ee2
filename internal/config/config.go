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

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/layout"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Layout   LayoutConfig   `toml:"layout"`
	Google   GoogleConfig   `toml:"google"`
	Sources  SourcesConfig  `toml:"sources"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds calendar navigation settings.
type CalendarConfig struct {
	WeekStart  string `toml:"week_start"`  // "sunday" or "monday"
	AgendaDays int    `toml:"agenda_days"` // agenda horizon in days
}

// LayoutConfig holds the vertical scale of the time grids, in terminal lines.
type LayoutConfig struct {
	DayRowHeight   float64 `toml:"day_row_height"`   // lines per hour in the day view
	WeekRowHeight  float64 `toml:"week_row_height"`  // lines per hour in the week view
	MinEventHeight float64 `toml:"min_event_height"` // smallest event block
}

// GoogleConfig holds Google Calendar API settings.
type GoogleConfig struct {
	CredentialsFile string   `toml:"credentials_file"` // service account or OAuth client JSON
	CalendarIDs     []string `toml:"calendar_ids"`     // e.g., ["primary"]
}

// SourcesConfig lists local files synced into the cache.
type SourcesConfig struct {
	ICSFiles   []string `toml:"ics_files"`
	EventFiles []string `toml:"event_files"` // .json, .yaml or .yml
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			WeekStart:  "sunday",
			AgendaDays: 30,
		},
		Layout: LayoutConfig{
			DayRowHeight:   2,
			WeekRowHeight:  1,
			MinEventHeight: 1,
		},
		Google: GoogleConfig{
			CalendarIDs: []string{"primary"},
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "homedash.db"
	}
	return filepath.Join(home, ".local", "share", "homedash", "events.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "homedash", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Google.CredentialsFile = expandPath(cfg.Google.CredentialsFile)
	for i, p := range cfg.Sources.ICSFiles {
		cfg.Sources.ICSFiles[i] = expandPath(p)
	}
	for i, p := range cfg.Sources.EventFiles {
		cfg.Sources.EventFiles[i] = expandPath(p)
	}

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
	if v := os.Getenv("HOMEDASH_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("HOMEDASH_AGENDA_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HOMEDASH_AGENDA_DAYS: %w", err)
		}
		cfg.Calendar.AgendaDays = n
	}

	if v := os.Getenv("HOMEDASH_GOOGLE_CREDENTIALS"); v != "" {
		cfg.Google.CredentialsFile = v
	}
	if v := os.Getenv("HOMEDASH_GOOGLE_CALENDAR_IDS"); v != "" {
		cfg.Google.CalendarIDs = splitList(v)
	}

	if v := os.Getenv("HOMEDASH_ICS_FILES"); v != "" {
		cfg.Sources.ICSFiles = splitList(v)
	}
	if v := os.Getenv("HOMEDASH_EVENT_FILES"); v != "" {
		cfg.Sources.EventFiles = splitList(v)
	}

	if v := os.Getenv("HOMEDASH_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("HOMEDASH_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
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

var validThemes = map[string]bool{
	"mocha":     true,
	"macchiato": true,
	"frappe":    true,
	"latte":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := dateutil.ParseWeekday(c.Calendar.WeekStart); err != nil {
		return fmt.Errorf("week_start: %w", err)
	}
	if c.Calendar.AgendaDays <= 0 {
		return errors.New("agenda_days must be positive")
	}
	if c.Layout.DayRowHeight <= 0 {
		return errors.New("day_row_height must be positive")
	}
	if c.Layout.WeekRowHeight <= 0 {
		return errors.New("week_row_height must be positive")
	}
	if c.Layout.MinEventHeight < 0 {
		return errors.New("min_event_height must not be negative")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.UI.Theme != "" && !validThemes[strings.ToLower(c.UI.Theme)] {
		return fmt.Errorf("unknown theme: %s", c.UI.Theme)
	}
	return nil
}

// WeekStart returns the configured first day of the week, Sunday when unset.
func (c *Config) WeekStart() time.Weekday {
	wd, err := dateutil.ParseWeekday(c.Calendar.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return wd
}

// DayPackOptions returns the packer scale for the day view.
func (c *Config) DayPackOptions() layout.PackOptions {
	return layout.PackOptions{RowHeight: c.Layout.DayRowHeight, MinHeight: c.Layout.MinEventHeight}
}

// WeekPackOptions returns the packer scale for the week view.
func (c *Config) WeekPackOptions() layout.PackOptions {
	return layout.PackOptions{RowHeight: c.Layout.WeekRowHeight, MinHeight: c.Layout.MinEventHeight}
}

// HasGoogle reports whether Google Calendar sync is configured.
func (c *Config) HasGoogle() bool {
	return c.Google.CredentialsFile != "" && len(c.Google.CalendarIDs) > 0
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
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
