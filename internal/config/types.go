// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ThemeAuto detects the terminal color scheme automatically.
	ThemeAuto Theme = "auto"
	// ThemeDark forces the dark glamour style.
	ThemeDark Theme = "dark"
	// ThemeLight forces the light glamour style.
	ThemeLight Theme = "light"
	// ThemeNoTTY renders without ANSI styling.
	ThemeNoTTY Theme = "notty"
)

var (
	// ErrInvalidTheme is the sentinel error wrapped by InvalidThemeError.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidServeConfig is the sentinel error wrapped by InvalidServeConfigError.
	ErrInvalidServeConfig = errors.New("invalid serve config")
	// ErrInvalidSearchPath is the sentinel error wrapped by InvalidSearchPathError.
	ErrInvalidSearchPath = errors.New("invalid search path")
)

type (
	// Theme selects the glamour style used for terminal rendering.
	Theme string

	// InvalidThemeError is returned when a Theme value is not recognized.
	// It wraps ErrInvalidTheme for errors.Is() compatibility.
	InvalidThemeError struct {
		Value Theme
	}

	// InvalidServeConfigError is returned when the serve section is out of
	// range. It wraps ErrInvalidServeConfig.
	InvalidServeConfigError struct {
		Field  string
		Reason string
	}

	// InvalidSearchPathError is returned when a search path entry is blank.
	// It wraps ErrInvalidSearchPath.
	InvalidSearchPathError struct {
		Index int
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Theme selects the glamour rendering style.
		Theme Theme `mapstructure:"theme"`
		// Verbose enables verbose output.
		Verbose bool `mapstructure:"verbose"`
		// Width is the word-wrap width for rendered markdown. 0 selects the
		// renderer's default of 100 columns.
		Width int `mapstructure:"width"`
	}

	// LintConfig holds linter settings.
	LintConfig struct {
		// DisabledRules lists lint rule ids to skip.
		DisabledRules []string `mapstructure:"disabled_rules"`
		// Strict makes any finding fail the run with a non-zero exit code.
		Strict bool `mapstructure:"strict"`
	}

	// ServeConfig holds SSH browser settings.
	ServeConfig struct {
		// Host is the address to bind (default 127.0.0.1).
		Host string `mapstructure:"host"`
		// Port is the port to listen on (0 = auto-select).
		Port int `mapstructure:"port"`
	}

	// Config is the root refbook configuration.
	Config struct {
		// SearchPaths are extra directories scanned for sheet files.
		SearchPaths []string `mapstructure:"search_paths"`
		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
		// Lint holds linter settings.
		Lint LintConfig `mapstructure:"lint"`
		// Serve holds SSH browser settings.
		Serve ServeConfig `mapstructure:"serve"`
	}
)

// Error implements the error interface.
func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q (valid: auto, dark, light, notty)", e.Value)
}

// Unwrap returns ErrInvalidTheme for errors.Is() compatibility.
func (e *InvalidThemeError) Unwrap() error { return ErrInvalidTheme }

// Error implements the error interface.
func (e *InvalidServeConfigError) Error() string {
	return fmt.Sprintf("invalid serve config: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidServeConfig for errors.Is() compatibility.
func (e *InvalidServeConfigError) Unwrap() error { return ErrInvalidServeConfig }

// Error implements the error interface.
func (e *InvalidSearchPathError) Error() string {
	return fmt.Sprintf("invalid search path: entry %d is blank", e.Index)
}

// Unwrap returns ErrInvalidSearchPath for errors.Is() compatibility.
func (e *InvalidSearchPathError) Unwrap() error { return ErrInvalidSearchPath }

// IsValid reports whether the theme is one of the known values.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeAuto, ThemeDark, ThemeLight, ThemeNoTTY:
		return true
	}
	return false
}

// Validate checks the theme value, wrapping ErrInvalidTheme on failure.
func (t Theme) Validate() error {
	if !t.IsValid() {
		return &InvalidThemeError{Value: t}
	}
	return nil
}

// Validate checks constraints the CUE schema cannot express for values that
// arrive via defaults or environment overrides rather than the config file.
func (c *Config) Validate() error {
	if err := c.UI.Theme.Validate(); err != nil {
		return err
	}
	if c.UI.Width < 0 {
		return fmt.Errorf("invalid ui.width %d: must be >= 0", c.UI.Width)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return &InvalidServeConfigError{Field: "port", Reason: "must be in 0..65535"}
	}
	if strings.TrimSpace(c.Serve.Host) == "" {
		return &InvalidServeConfigError{Field: "host", Reason: "must not be blank"}
	}
	for i, p := range c.SearchPaths {
		if strings.TrimSpace(p) == "" {
			return &InvalidSearchPathError{Index: i}
		}
	}
	return nil
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme: ThemeAuto,
		},
		Serve: ServeConfig{
			Host: "127.0.0.1",
			Port: 0,
		},
	}
}
