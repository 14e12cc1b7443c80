// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Default locations for cellkit-edit files.

package config

import (
	"os"
	"path/filepath"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cellkit"), nil
}

// DefaultPath is the config file used when --config is not given.
func DefaultPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "config.yaml"), nil
}

// ResolvePluginDB returns the plugin database path: the configured one, or
// plugins.db next to the default config. Empty means in-memory.
func (c *Config) ResolvePluginDB() string {
	if c.PluginDB != "" {
		return c.PluginDB
	}
	root, err := configRoot()
	if err != nil {
		return ""
	}
	return filepath.Join(root, "plugins.db")
}
