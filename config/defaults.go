package config

// applyDefaults repairs values a config file may have zeroed or made
// invalid.
func applyDefaults(cfg *Config) {
	if cfg.TickMS <= 0 {
		cfg.TickMS = 50
	}
	if cfg.Editor.TabWidth <= 0 {
		cfg.Editor.TabWidth = 4
	}
	if cfg.Editor.Style == "" {
		cfg.Editor.Style = "monokai"
	}
	if cfg.Editor.Run == nil {
		cfg.Editor.Run = make(map[string]string)
	}
	if cfg.Plugins == nil {
		cfg.Plugins = make(map[string]PluginConfig)
	}
}
