package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name      string `toml:"name"`
	Highlight string `toml:"highlight"`
	Colors    struct {
		Background     string `toml:"background"`
		Code           string `toml:"code"`
		Gutter         string `toml:"gutter"`
		Focus          string `toml:"focus"`
		Title          string `toml:"title"`
		Caption        string `toml:"caption"`
		DiffInserted   string `toml:"diff_inserted"`
		DiffDeleted    string `toml:"diff_deleted"`
		DiffMoved      string `toml:"diff_moved"`
		SearchLabel    string `toml:"search_label"`
		SearchText     string `toml:"search_text"`
		SearchMatch    string `toml:"search_match"`
		HelpBackground string `toml:"help_background"`
		HelpBorder     string `toml:"help_border"`
		HelpTitle      string `toml:"help_title"`
		HelpContent    string `toml:"help_content"`
		StatusMode     string `toml:"status_mode"`
		StatusMessage  string `toml:"status_message"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "code-wave", "themes"),
			filepath.Join(home, ".local", "share", "code-wave", "themes"))
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

func override(dst *tcell.Color, value string) {
	if value != "" {
		*dst = ParseColorString(value)
	}
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Dark for missing colors
func configToTheme(config ThemeConfig) *Theme {
	t := Dark()
	c := &t.Colors
	raw := config.Colors

	override(&c.Background, raw.Background)
	override(&c.Code, raw.Code)
	override(&c.Gutter, raw.Gutter)
	override(&c.Focus, raw.Focus)
	override(&c.Title, raw.Title)
	override(&c.Caption, raw.Caption)
	override(&c.DiffInserted, raw.DiffInserted)
	override(&c.DiffDeleted, raw.DiffDeleted)
	override(&c.DiffMoved, raw.DiffMoved)
	override(&c.SearchLabel, raw.SearchLabel)
	override(&c.SearchText, raw.SearchText)
	override(&c.SearchMatch, raw.SearchMatch)
	override(&c.HelpBackground, raw.HelpBackground)
	override(&c.HelpBorder, raw.HelpBorder)
	override(&c.HelpTitle, raw.HelpTitle)
	override(&c.HelpContent, raw.HelpContent)
	override(&c.StatusMode, raw.StatusMode)
	override(&c.StatusMessage, raw.StatusMessage)

	if config.Name != "" {
		t.Name = config.Name
	}
	if config.Highlight != "" {
		t.Highlight = config.Highlight
	}

	return t
}

// LoadThemeOrDefault loads a theme by name, or returns Dark if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "dark":
		return Dark()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return Dark()
	}

	return theme
}
