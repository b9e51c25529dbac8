// Package config loads gridfit settings: the embedded defaults, overlaid
// with an optional user file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridfit/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     Config
	embeddedConfigErr  error
)

// Config is the merged configuration.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Output OutputConfig `yaml:"output"`
	Theme  ThemeConfig  `yaml:"theme"`
}

type LayoutConfig struct {
	Mode           string `yaml:"mode"`
	Width          int    `yaml:"width"`
	ScrollbarWidth int    `yaml:"scrollbar_width"`
	VisibleRows    int    `yaml:"visible_rows"`
}

type OutputConfig struct {
	Format  string `yaml:"format"`
	NoColor bool   `yaml:"no_color"`
}

// ThemeConfig holds lipgloss color strings for the table preview.
type ThemeConfig struct {
	HeaderFG    string `yaml:"header_fg"`
	HeaderBG    string `yaml:"header_bg"`
	SeparatorFG string `yaml:"separator_fg"`
	OverflowFG  string `yaml:"overflow_fg"`
}

// DefaultYAML returns a copy of the embedded default config.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded defaults once and returns them.
func Default() (Config, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = errors.New("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
		}
	})
	return embeddedConfig, embeddedConfigErr
}

// Load returns the defaults merged with the file at path. An empty path
// returns the defaults unchanged. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects negative sizes.
func (c Config) Validate() error {
	switch {
	case c.Layout.Width < 0:
		return fmt.Errorf("layout.width must not be negative, got %d", c.Layout.Width)
	case c.Layout.ScrollbarWidth < 0:
		return fmt.Errorf("layout.scrollbar_width must not be negative, got %d", c.Layout.ScrollbarWidth)
	case c.Layout.VisibleRows < 0:
		return fmt.Errorf("layout.visible_rows must not be negative, got %d", c.Layout.VisibleRows)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ResolvePath returns explicit when set, otherwise
// $XDG_CONFIG_HOME/gridfit/config.yaml or ~/.config/gridfit/config.yaml
// if that file exists. It returns "" when no config file applies.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
