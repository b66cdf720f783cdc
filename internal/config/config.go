package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration for the archive console.
type Config struct {
	// Server is the base URL of the archive server, e.g. "https://archive.local:15630".
	Server string `json:"server"`

	// Token is the API bearer token used for every request.
	Token string `json:"token"`

	// PageSize is the number of envelopes fetched per page.
	PageSize int64 `json:"page_size"`

	// Theme is the YAML theme file name, resolved against the themes dir.
	Theme string `json:"theme"`

	// Keyboard shortcuts
	Keys KeyBindings `json:"keys"`

	// Logging
	LogFile string `json:"log_file"`

	// HistoryPath overrides the default location of the local history database.
	HistoryPath string `json:"history_path"`
}

// KeyBindings defines keyboard shortcuts for the TUI.
type KeyBindings struct {
	ToggleSelect   string `json:"toggle_select"`
	SelectAll      string `json:"select_all"`
	ClearSelection string `json:"clear_selection"`
	Delete         string `json:"delete"`
	Tag            string `json:"tag"`
	Restore        string `json:"restore"`
	Search         string `json:"search"`
	Refresh        string `json:"refresh"`
	NextPage       string `json:"next_page"`
	PrevPage       string `json:"prev_page"`
	SwitchView     string `json:"switch_view"`
	Quit           string `json:"quit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:   "http://localhost:15630",
		PageSize: 50,
		Theme:    "archive-dark.yaml",
		Keys: KeyBindings{
			ToggleSelect:   " ",
			SelectAll:      "a",
			ClearSelection: "c",
			Delete:         "d",
			Tag:            "t",
			Restore:        "r",
			Search:         "/",
			Refresh:        "R",
			NextPage:       "n",
			PrevPage:       "p",
			SwitchView:     "v",
			Quit:           "q",
		},
	}
}

// LoadConfig loads configuration from a JSON file, applying defaults for
// anything the file leaves unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	return cfg, nil
}

// SaveConfig writes the configuration as indented JSON.
func (c *Config) SaveConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns ~/.config/arctui/config.json.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".config", "arctui", "config.json")
}

// DefaultThemesDir returns ~/.config/arctui/themes.
func DefaultThemesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "themes"
	}
	return filepath.Join(home, ".config", "arctui", "themes")
}

// DefaultHistoryPath returns ~/.local/share/arctui/history.sqlite3.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.sqlite3"
	}
	return filepath.Join(home, ".local", "share", "arctui", "history.sqlite3")
}
