package editor

import (
	"fmt"

	"github.com/framegrace/cellkit/plugin"
)

// Topics published on the plugin bus.
const (
	TopicChanged = "editor.changed"
	TopicOpened  = "editor.opened"
	TopicSaved   = "editor.saved"
)

// Change is the payload of TopicChanged.
type Change struct {
	Path  string
	Lines int
	Chars int
	Words int
}

// statsPlugin shows buffer counts in the status bar.
type statsPlugin struct {
	bus    *plugin.Bus
	sub    plugin.Subscription
	status Status
	cfg    *plugin.Config
}

func NewStatsPlugin() plugin.Plugin { return &statsPlugin{} }

func (p *statsPlugin) Name() string           { return "stats" }
func (p *statsPlugin) Dependencies() []string { return nil }

func (p *statsPlugin) Init(h *plugin.Host) error {
	status, err := plugin.Lookup[Status](h.Services, StatusService)
	if err != nil {
		return err
	}
	p.bus, p.status, p.cfg = h.Bus, status, h.Config
	p.cfg.RegisterDefaults(map[string]any{
		"show_words": true,
		"loads":      0,
	})
	p.cfg.Set("loads", p.cfg.Int("loads")+1)
	if err := p.cfg.Save(); err != nil {
		h.Log.Error(err, "Stats: failed to save settings")
	}
	p.sub = h.Bus.Subscribe(TopicChanged, p.changed)
	return nil
}

func (p *statsPlugin) changed(ev plugin.Event) {
	c, ok := ev.Payload.(Change)
	if !ok {
		return
	}
	text := fmt.Sprintf("%d lines, %d chars", c.Lines, c.Chars)
	if p.cfg.Bool("show_words") {
		text += fmt.Sprintf(", %d words", c.Words)
	}
	p.status.SetStatus("stats", text)
}

func (p *statsPlugin) Stop() {
	p.bus.Unsubscribe(p.sub)
	p.status.SetStatus("stats", "")
}
