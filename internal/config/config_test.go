// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadWithOptionsDefaults(t *testing.T) {
	// Empty config dir: defaults apply and no file is resolved.
	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if cfg.UI.Theme != ThemeAuto {
		t.Errorf("theme = %q, want %q", cfg.UI.Theme, ThemeAuto)
	}
	if cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("serve.host = %q, want 127.0.0.1", cfg.Serve.Host)
	}
}

func TestLoadWithOptionsFromDir(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, `
ui: {
	theme:   "dark"
	verbose: true
}
lint: disabled_rules: ["shell-syntax"]
serve: port: 2222
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: dir,
	})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != cfgPath {
		t.Errorf("resolved path = %q, want %q", path, cfgPath)
	}
	if cfg.UI.Theme != ThemeDark {
		t.Errorf("theme = %q, want dark", cfg.UI.Theme)
	}
	if !cfg.UI.Verbose {
		t.Error("verbose = false, want true")
	}
	if len(cfg.Lint.DisabledRules) != 1 || cfg.Lint.DisabledRules[0] != "shell-syntax" {
		t.Errorf("disabled_rules = %v, want [shell-syntax]", cfg.Lint.DisabledRules)
	}
	if cfg.Serve.Port != 2222 {
		t.Errorf("serve.port = %d, want 2222", cfg.Serve.Port)
	}
	// Keys the file leaves unset keep their defaults.
	if cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("serve.host = %q, want default 127.0.0.1", cfg.Serve.Host)
	}
}

func TestLoadWithOptionsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.cue")
	if err := os.WriteFile(cfgPath, []byte(`ui: theme: "notty"`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: cfgPath,
	})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != cfgPath {
		t.Errorf("resolved path = %q, want %q", path, cfgPath)
	}
	if cfg.UI.Theme != ThemeNoTTY {
		t.Errorf("theme = %q, want notty", cfg.UI.Theme)
	}
}

func TestLoadWithOptionsExplicitFileMissing(t *testing.T) {
	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("loadWithOptions() = nil, want error for missing explicit file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want mention of not found", err)
	}
}

func TestLoadWithOptionsSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `ui: theme: "sepia"`)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: dir,
	})
	if err == nil {
		t.Fatal("loadWithOptions() = nil, want schema error for bad theme")
	}
}

func TestLoadWithOptionsInvalidCUE(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `ui: { theme: `)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: dir,
	})
	if err == nil {
		t.Fatal("loadWithOptions() = nil, want error for malformed CUE")
	}
}

func TestLoadWithOptionsPortOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `serve: port: 123456`)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: dir,
	})
	if err == nil {
		t.Fatal("loadWithOptions() = nil, want error for out-of-range port")
	}
}

func TestLoadWithOptionsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("loadWithOptions() error = %v, want context.Canceled", err)
	}
}

func TestProviderLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `ui: width: 100`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Provider.Load() error = %v", err)
	}
	if cfg.UI.Width != 100 {
		t.Errorf("ui.width = %d, want 100", cfg.UI.Width)
	}
}

func TestLoadCachesConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `ui: theme: "light"`)

	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	first, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first.UI.Theme != ThemeLight {
		t.Errorf("theme = %q, want light", first.UI.Theme)
	}

	// Mutating the file must not affect the cached config.
	writeConfigFile(t, dir, `ui: theme: "dark"`)
	second, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if second != first {
		t.Error("Load() returned a different instance, want cached pointer")
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg := Get()
	if cfg.UI.Theme != ThemeAuto {
		t.Errorf("Get() theme = %q, want default %q", cfg.UI.Theme, ThemeAuto)
	}
}

func TestConfigFilePathOverride(t *testing.T) {
	SetConfigFilePathOverride("/tmp/refbook-test.cue")
	t.Cleanup(Reset)

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() error = %v", err)
	}
	if path != "/tmp/refbook-test.cue" {
		t.Errorf("ConfigFilePath() = %q, want override", path)
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}
}
