package plugin

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Configs hands out per-plugin configuration backed by one Store.
type Configs struct {
	store Store

	mu      sync.Mutex
	plugins map[string]*Config
}

func NewConfigs(store Store) *Configs {
	return &Configs{store: store, plugins: make(map[string]*Config)}
}

// For returns the config for plugin, loading stored values on first use.
// A load failure leaves the config empty; the error is kept in Err.
func (c *Configs) For(plugin string) *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg, ok := c.plugins[plugin]; ok {
		return cfg
	}
	cfg := &Config{plugin: plugin, store: c.store, defaults: make(map[string]any), values: make(map[string]string)}
	values, err := c.store.Load(plugin)
	if err != nil {
		cfg.err = err
	} else {
		for k, v := range values {
			cfg.values[k] = v
		}
	}
	c.plugins[plugin] = cfg
	return cfg
}

// Config is one plugin's key/value settings. Stored values win over
// registered defaults; the typed getters fall back to the default when the
// stored text does not parse.
type Config struct {
	plugin string
	store  Store
	err    error

	mu       sync.RWMutex
	defaults map[string]any
	values   map[string]string
}

// Err reports a failure loading stored values.
func (c *Config) Err() error { return c.err }

func (c *Config) Plugin() string { return c.plugin }

// RegisterDefaults sets defaults without overwriting ones already present.
func (c *Config) RegisterDefaults(defaults map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range defaults {
		if _, ok := c.defaults[k]; !ok {
			c.defaults[k] = v
		}
	}
}

func (c *Config) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = formatValue(v)
}

// Keys returns stored and defaulted keys, sorted.
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool)
	var keys []string
	for k := range c.values {
		seen[k] = true
		keys = append(keys, k)
	}
	for k := range c.defaults {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) lookup(key string) (string, any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.values[key]
	return s, c.defaults[key], ok
}

func (c *Config) String(key string) string {
	s, def, ok := c.lookup(key)
	if ok {
		return s
	}
	if def == nil {
		return ""
	}
	return formatValue(def)
}

func (c *Config) Int(key string) int {
	s, def, ok := c.lookup(key)
	if ok {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	switch v := def.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (c *Config) Float(key string) float64 {
	s, def, ok := c.lookup(key)
	if ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch v := def.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (c *Config) Bool(key string) bool {
	s, def, ok := c.lookup(key)
	if ok {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	b, _ := def.(bool)
	return b
}

func (c *Config) Duration(key string) time.Duration {
	s, def, ok := c.lookup(key)
	if ok {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	d, _ := def.(time.Duration)
	return d
}

// Save writes the stored values. Defaults are not persisted.
func (c *Config) Save() error {
	c.mu.RLock()
	values := make(map[string]string, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	c.mu.RUnlock()
	return c.store.Save(c.plugin, values)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Duration:
		return x.String()
	}
	return fmt.Sprint(v)
}
