package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/code-wave/internal/choreo"
)

const appName = "code-wave"

// TimingConfig overrides the transition timing. Zero values keep the defaults.
type TimingConfig struct {
	RemoveMS      int     `toml:"remove_ms"`
	MoveMS        int     `toml:"move_ms"`
	InsertMS      int     `toml:"insert_ms"`
	StaggerMS     int     `toml:"stagger_ms"`
	DimOpacity    float64 `toml:"dim_opacity"`
	SlideDistance float64 `toml:"slide_distance"`
}

// InterestConfig controls how interest sets are derived
type InterestConfig struct {
	IncludeDisplaced bool `toml:"include_displaced"`
}

// Config holds application configuration
type Config struct {
	Theme      string            `toml:"theme"`
	Highlight  string            `toml:"highlight"`
	Motion     string            `toml:"motion"`
	LogFile    string            `toml:"log_file"`
	TimeFormat string            `toml:"time_format"` // strftime layout for listed times
	FPS        int               `toml:"fps"`
	Timing     TimingConfig      `toml:"timing"`
	Interest   InterestConfig    `toml:"interest"`
	Settings   map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	if config.FPS <= 0 {
		config.FPS = defaultFPS
	}
	if config.TimeFormat == "" {
		config.TimeFormat = DefaultTimeFormat
	}

	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

const defaultFPS = 60

// DefaultTimeFormat is the strftime layout used when time_format is unset
const DefaultTimeFormat = "%Y-%m-%d %H:%M:%S"

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:           "dark",
		Motion:          "linear",
		LogFile:         "codewave.log",
		TimeFormat:      DefaultTimeFormat,
		FPS:             defaultFPS,
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return defaultConfig()
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	if val, ok := c.Settings[key]; ok {
		return val
	}
	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string, len(c.Settings)+len(c.sessionSettings))
	maps.Copy(result, c.Settings)
	maps.Copy(result, c.sessionSettings)
	return result
}

// Effective returns a copy of the config with session values for the
// well-known keys applied to the typed fields
func (c *Config) Effective() (*Config, error) {
	eff := *c
	eff.Settings = maps.Clone(c.Settings)
	eff.sessionSettings = maps.Clone(c.sessionSettings)

	for key, value := range c.sessionSettings {
		if err := eff.apply(key, value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return &eff, nil
}

func (c *Config) apply(key, value string) error {
	var err error
	switch key {
	case "theme":
		c.Theme = value
	case "highlight":
		c.Highlight = value
	case "motion":
		c.Motion = value
	case "log_file":
		c.LogFile = value
	case "time_format":
		c.TimeFormat = value
	case "fps":
		c.FPS, err = strconv.Atoi(value)
		if err == nil && c.FPS <= 0 {
			err = fmt.Errorf("fps must be positive")
		}
	case "timing.remove_ms":
		c.Timing.RemoveMS, err = strconv.Atoi(value)
	case "timing.move_ms":
		c.Timing.MoveMS, err = strconv.Atoi(value)
	case "timing.insert_ms":
		c.Timing.InsertMS, err = strconv.Atoi(value)
	case "timing.stagger_ms":
		c.Timing.StaggerMS, err = strconv.Atoi(value)
	case "timing.dim_opacity":
		c.Timing.DimOpacity, err = strconv.ParseFloat(value, 64)
	case "timing.slide_distance":
		c.Timing.SlideDistance, err = strconv.ParseFloat(value, 64)
	case "interest.include_displaced":
		c.Interest.IncludeDisplaced, err = strconv.ParseBool(value)
	}
	return err
}

// ChoreoTiming returns the default timing with the configured overrides
func (c *Config) ChoreoTiming() choreo.Timing {
	t := choreo.DefaultTiming()
	ms := func(dst *time.Duration, v int) {
		if v > 0 {
			*dst = time.Duration(v) * time.Millisecond
		}
	}
	ms(&t.Remove, c.Timing.RemoveMS)
	ms(&t.Move, c.Timing.MoveMS)
	ms(&t.Insert, c.Timing.InsertMS)
	ms(&t.Stagger, c.Timing.StaggerMS)
	if c.Timing.DimOpacity > 0 {
		t.DimOpacity = min(c.Timing.DimOpacity, 1)
	}
	if c.Timing.SlideDistance > 0 {
		t.SlideDistance = c.Timing.SlideDistance
	}
	return t
}

// Save persists the configuration to the TOML file
// Note: session settings are not written
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return c.SaveToFile(configPath)
}

// SaveToFile writes the configuration to filePath
func (c *Config) SaveToFile(filePath string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
