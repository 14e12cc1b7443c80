package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// CheckboxConfig configures a Checkbox. Width defaults to fit the label.
type CheckboxConfig struct {
	core.Config
	Label    string
	Checked  bool
	OnChange func(checked bool)
}

// Checkbox is a toggleable widget that displays a checked or unchecked state.
// Format: [X] Label or [ ] Label
// When focused, shows a cursor: > [X] Label
type Checkbox struct {
	core.BaseWidget
	Label    string
	Checked  bool
	OnChange func(checked bool)
}

func NewCheckbox(cfg CheckboxConfig) *Checkbox {
	c := &Checkbox{Label: cfg.Label, Checked: cfg.Checked, OnChange: cfg.OnChange}
	// "> [X] " + label
	c.Init(cfg.Config, 6+core.TextWidth(cfg.Label), 1)
	c.CanFocus = true
	return c
}

// Render draws the checkbox with its current state.
func (c *Checkbox) Render(p *core.Painter) {
	fg, bg := c.Colors(Theme.Text, Theme.Surface)
	if c.IsFocused() {
		fg = Theme.Accent
	}
	r := core.Bounds(c)
	p.Fill(core.Rect{X: r.X, Y: r.Y, W: r.W, H: 1}, ' ', fg, bg)

	cursor := "  "
	if c.IsFocused() {
		cursor = "> "
	}
	check := "[ ] "
	if c.Checked {
		check = "[X] "
	}
	p.Text(r.X, r.Y, core.TruncateText(cursor+check+c.Label, r.W), fg, bg)
}

// Click toggles the checkbox.
func (c *Checkbox) Click(*core.Context, core.ClickEvent) { c.Toggle() }

// HandleKey toggles on Enter.
func (c *Checkbox) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	if k != host.KeyEnter {
		return false
	}
	c.Toggle()
	return true
}

// HandleChar toggles on Space.
func (c *Checkbox) HandleChar(_ *core.Context, r rune) bool {
	if r != ' ' {
		return false
	}
	c.Toggle()
	return true
}

// Toggle switches the checked state and triggers the OnChange callback.
func (c *Checkbox) Toggle() {
	c.Checked = !c.Checked
	if c.OnChange != nil {
		c.OnChange(c.Checked)
	}
}
