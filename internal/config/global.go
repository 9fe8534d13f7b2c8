// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	// configDirOverride allows tests to override the config directory.
	// Necessary because os.UserHomeDir() doesn't reliably respect the HOME
	// environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string

	// configFilePathOverride is set by the --config flag.
	configFilePathOverride string

	cacheMu   sync.Mutex
	cachedCfg *Config
)

// Load returns the effective configuration, loading it on first use and
// caching it for the remainder of the process.
func Load() (*Config, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cachedCfg != nil {
		return cachedCfg, nil
	}

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	cachedCfg = cfg
	return cfg, nil
}

// Get returns the cached configuration, falling back to defaults when no
// configuration has been loaded successfully.
func Get() *Config {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cachedCfg != nil {
		return cachedCfg
	}
	return DefaultConfig()
}

// SetConfigFilePathOverride sets a custom config file path (--config flag).
func SetConfigFilePathOverride(path string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configFilePathOverride = path
	cachedCfg = nil
}

// SetConfigDirOverride sets a custom config directory path.
// Primarily intended for testing, to bypass os.UserHomeDir().
func SetConfigDirOverride(dir string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configDirOverride = dir
	cachedCfg = nil
}

// Reset clears overrides and the cached config. Call from test cleanup.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configDirOverride = ""
	configFilePathOverride = ""
	cachedCfg = nil
}
