package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Theme holds the color names the TUI maps onto tcell colors.
type Theme struct {
	Header        string `yaml:"header"`
	Selection     string `yaml:"selection"`
	RowSelected   string `yaml:"rowSelected"`
	StatusInfo    string `yaml:"statusInfo"`
	StatusSuccess string `yaml:"statusSuccess"`
	StatusWarning string `yaml:"statusWarning"`
	StatusError   string `yaml:"statusError"`
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Header:        "aqua",
		Selection:     "orange",
		RowSelected:   "darkslategray",
		StatusInfo:    "white",
		StatusSuccess: "green",
		StatusWarning: "yellow",
		StatusError:   "red",
	}
}

// ThemeLoader handles loading themes from YAML files.
type ThemeLoader struct {
	themesDir string
}

// NewThemeLoader creates a new theme loader.
func NewThemeLoader(themesDir string) *ThemeLoader {
	return &ThemeLoader{themesDir: themesDir}
}

// LoadThemeFromFile loads a theme from a YAML file, resolving relative names
// against the themes directory first.
func (tl *ThemeLoader) LoadThemeFromFile(filename string) (*Theme, error) {
	path := filepath.Join(tl.themesDir, filename)
	if !fileExists(path) {
		path = filename
		if !fileExists(path) {
			return nil, fmt.Errorf("theme file not found: %s", filename)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var wrapper struct {
		Arctui *Theme `yaml:"arctui"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if wrapper.Arctui == nil {
		return nil, fmt.Errorf("invalid theme file: missing arctui section")
	}
	return wrapper.Arctui, nil
}

// ListAvailableThemes returns the theme files in the themes directory.
func (tl *ThemeLoader) ListAvailableThemes() ([]string, error) {
	entries, err := os.ReadDir(tl.themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes dir: %w", err)
	}

	var themes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			themes = append(themes, name)
		}
	}
	return themes, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
