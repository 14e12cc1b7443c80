// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsComeFromEmbeddedFile(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 4, cfg.Editor.TabWidth)
	assert.True(t, cfg.Editor.LineNumbers)
	assert.Equal(t, "go run /tmp/x.go", cfg.RunCommand("Go", "/tmp/x.go"))
	assert.Equal(t, "", cfg.RunCommand("COBOL", "x.cob"))
	assert.True(t, cfg.PluginEnabled("stats"))
	assert.True(t, cfg.PluginEnabled("unknown"))
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.TickMS)
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tick_ms: 20
editor:
  tab_width: 2
  run:
    Lua: lua {file}
plugins:
  stats:
    enabled: false
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 2, cfg.Editor.TabWidth)
	assert.Equal(t, "monokai", cfg.Editor.Style)
	assert.Equal(t, "lua a.lua", cfg.RunCommand("Lua", "a.lua"))
	assert.Equal(t, "python3 a.py", cfg.RunCommand("Python", "a.py"))
	assert.False(t, cfg.PluginEnabled("stats"))
}

func TestLoadJSONAndRepairsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tick_ms": -1, "editor": {"tab_width": 0, "style": "dracula"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.TickMS)
	assert.Equal(t, 4, cfg.Editor.TabWidth)
	assert.Equal(t, "dracula", cfg.Editor.Style)
}

func TestLoadReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_ms: [oops"), 0644))
	cfg, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.LogFile = "/tmp/cellkit.log"
			cfg.Editor.UseTabs = true
			require.NoError(t, Save(path, cfg))

			back, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, back)
		})
	}
}

func TestResolvePluginDB(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := Default()
	assert.Equal(t, "plugins.db", filepath.Base(cfg.ResolvePluginDB()))
	cfg.PluginDB = "/var/tmp/p.db"
	assert.Equal(t, "/var/tmp/p.db", cfg.ResolvePluginDB())
}
