package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Strava  StravaConfig  `json:"strava"`
	Sync    SyncConfig    `json:"sync"`
	Display DisplayConfig `json:"display"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// SyncConfig controls when automatic syncs run. Syncs are gated to a night
// window so interactive sessions stay fast.
type SyncConfig struct {
	NightWindowStartHour int `json:"night_window_start_hour"`
	NightWindowEndHour   int `json:"night_window_end_hour"`
	MinIntervalHours     int `json:"min_interval_hours"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Sync: SyncConfig{
			NightWindowStartHour: 20,
			NightWindowEndHour:   6,
			MinIntervalHours:     20,
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
		},
	}
}

// Load reads the configuration from the XDG config directory
// (gearwear/config.json). A .env file or environment variables named
// STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET override the file.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := decode(data, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// decode unmarshals file contents over the defaults already in cfg. Keys
// missing from the file keep their defaults; an explicit zero stays zero.
func decode(data []byte, cfg *Config) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	// Best effort; a missing .env is normal.
	godotenv.Load()

	if v := os.Getenv("STRAVA_CLIENT_ID"); v != "" {
		cfg.Strava.ClientID = v
	}
	if v := os.Getenv("STRAVA_CLIENT_SECRET"); v != "" {
		cfg.Strava.ClientSecret = v
	}
}

// Save writes the configuration to the XDG config directory
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}
	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api")
	}

	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}

	if c.Sync.NightWindowStartHour < 0 || c.Sync.NightWindowStartHour > 23 {
		return fmt.Errorf("sync.night_window_start_hour must be 0-23, got %d", c.Sync.NightWindowStartHour)
	}
	if c.Sync.NightWindowEndHour < 0 || c.Sync.NightWindowEndHour > 23 {
		return fmt.Errorf("sync.night_window_end_hour must be 0-23, got %d", c.Sync.NightWindowEndHour)
	}
	if c.Sync.MinIntervalHours < 0 {
		return fmt.Errorf("sync.min_interval_hours must not be negative, got %d", c.Sync.MinIntervalHours)
	}

	return nil
}

// Path returns the path to the config file
func Path() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("gearwear", "config.json"))
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return path, nil
}
