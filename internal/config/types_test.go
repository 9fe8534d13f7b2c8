// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestThemeIsValid(t *testing.T) {
	valid := []Theme{ThemeAuto, ThemeDark, ThemeLight, ThemeNoTTY}
	for _, th := range valid {
		if !th.IsValid() {
			t.Errorf("Theme(%q).IsValid() = false, want true", th)
		}
	}

	invalid := []Theme{"", "solarized", "DARK", "Auto"}
	for _, th := range invalid {
		if th.IsValid() {
			t.Errorf("Theme(%q).IsValid() = true, want false", th)
		}
	}
}

func TestThemeValidate(t *testing.T) {
	if err := ThemeDark.Validate(); err != nil {
		t.Errorf("ThemeDark.Validate() = %v, want nil", err)
	}

	err := Theme("neon").Validate()
	if err == nil {
		t.Fatal("Theme(neon).Validate() = nil, want error")
	}
	if !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("errors.Is(err, ErrInvalidTheme) = false for %v", err)
	}
	var themeErr *InvalidThemeError
	if !errors.As(err, &themeErr) {
		t.Fatalf("errors.As(*InvalidThemeError) = false for %v", err)
	}
	if themeErr.Value != "neon" {
		t.Errorf("themeErr.Value = %q, want %q", themeErr.Value, "neon")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		if err := DefaultConfig().Validate(); err != nil {
			t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
		}
	})

	t.Run("bad theme", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.UI.Theme = "sepia"
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTheme) {
			t.Errorf("Validate() = %v, want ErrInvalidTheme", err)
		}
	})

	t.Run("negative width", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.UI.Width = -1
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error for negative width")
		}
	})

	t.Run("port out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Serve.Port = 70000
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidServeConfig) {
			t.Errorf("Validate() = %v, want ErrInvalidServeConfig", err)
		}
	})

	t.Run("blank host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Serve.Host = "   "
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidServeConfig) {
			t.Errorf("Validate() = %v, want ErrInvalidServeConfig", err)
		}
	})

	t.Run("blank search path", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SearchPaths = []string{"/srv/sheets", ""}
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidSearchPath) {
			t.Fatalf("Validate() = %v, want ErrInvalidSearchPath", err)
		}
		var pathErr *InvalidSearchPathError
		if !errors.As(err, &pathErr) {
			t.Fatalf("errors.As(*InvalidSearchPathError) = false for %v", err)
		}
		if pathErr.Index != 1 {
			t.Errorf("pathErr.Index = %d, want 1", pathErr.Index)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.UI.Theme != ThemeAuto {
		t.Errorf("default theme = %q, want %q", cfg.UI.Theme, ThemeAuto)
	}
	if cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("default serve host = %q, want 127.0.0.1", cfg.Serve.Host)
	}
	if cfg.Serve.Port != 0 {
		t.Errorf("default serve port = %d, want 0", cfg.Serve.Port)
	}
	if cfg.Lint.Strict {
		t.Error("default lint.strict = true, want false")
	}
}
