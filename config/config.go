// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Application configuration file for cellkit-edit.
// Notes: YAML or JSON, chosen by extension. Keys missing from the file keep
// the embedded defaults.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/framegrace/cellkit/defaults"
	"gopkg.in/yaml.v3"
)

// Config is the whole configuration file.
type Config struct {
	// TickMS is the frame interval in milliseconds.
	TickMS int `yaml:"tick_ms" json:"tick_ms"`
	// LogFile receives the debug log; empty disables logging.
	LogFile string `yaml:"log_file" json:"log_file"`
	// PluginDB is the SQLite file holding plugin settings; empty keeps
	// them in memory.
	PluginDB string                  `yaml:"plugin_db" json:"plugin_db"`
	Editor   Editor                  `yaml:"editor" json:"editor"`
	Plugins  map[string]PluginConfig `yaml:"plugins" json:"plugins"`
}

type Editor struct {
	TabWidth    int    `yaml:"tab_width" json:"tab_width"`
	UseTabs     bool   `yaml:"use_tabs" json:"use_tabs"`
	Style       string `yaml:"style" json:"style"`
	LineNumbers bool   `yaml:"line_numbers" json:"line_numbers"`
	// Run maps a language name, as detected from the file, to a command
	// line. {file} is replaced with the file path.
	Run map[string]string `yaml:"run" json:"run"`
}

type PluginConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// TickInterval returns the frame interval, never below 5ms.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(max(c.TickMS, 5)) * time.Millisecond
}

// RunCommand returns the command line for running path as lang, or "" when
// no command is configured.
func (c *Config) RunCommand(lang, path string) string {
	cmd := c.Editor.Run[lang]
	if cmd == "" {
		return ""
	}
	return strings.ReplaceAll(cmd, "{file}", path)
}

// PluginEnabled reports whether a plugin should load. Unknown plugins load.
func (c *Config) PluginEnabled(name string) bool {
	p, ok := c.Plugins[name]
	return !ok || p.Enabled
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	data, err := defaults.Config()
	if err == nil {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		// the embedded file is part of the binary; failing here is a build bug
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	applyDefaults(cfg)
	return cfg
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decode(path, data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := encode(path, cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func decode(path string, data []byte, cfg *Config) error {
	if isJSON(path) {
		return json.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func encode(path string, cfg *Config) ([]byte, error) {
	if isJSON(path) {
		return json.MarshalIndent(cfg, "", "  ")
	}
	return yaml.Marshal(cfg)
}
