package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// DialogConfig configures a Dialog. The size fits the message and buttons
// unless set.
type DialogConfig struct {
	core.Config
	Title   string
	Message string
	// Buttons defaults to a single "OK".
	Buttons []string
	// OnResult receives the pressed button's index, or -1 on Escape.
	OnResult func(index int)
}

// Dialog is a modal message or confirmation box. While shown it receives
// all input and is drawn alone.
type Dialog struct {
	Window
	OnResult func(index int)

	message *Label
	buttons []*Button
	ctx     *core.Context
}

func NewDialog(cfg DialogConfig) *Dialog {
	labels := cfg.Buttons
	if len(labels) == 0 {
		labels = []string{"OK"}
	}
	msgW, msgH := textSize(cfg.Message)
	btnW := len(labels) - 1
	for _, l := range labels {
		btnW += core.TextWidth(l) + 4
	}
	if cfg.Width <= 0 {
		cfg.Width = max(msgW+4, btnW+4, core.TextWidth(cfg.Title)+6, 20)
	}
	if cfg.Height <= 0 {
		cfg.Height = msgH + 4
	}
	if cfg.Z == 0 {
		cfg.Z = 500
	}

	d := &Dialog{OnResult: cfg.OnResult}
	d.configure(WindowConfig{Config: cfg.Config, Title: cfg.Title, Fixed: true})
	d.message = NewLabel(LabelConfig{
		Config: core.Config{X: 3, Y: 2, Width: cfg.Width - 4, Height: msgH},
		Text:   cfg.Message,
	})
	d.Add(d.message)

	x := cfg.Width - btnW
	for i, l := range labels {
		i := i
		b := NewButton(ButtonConfig{
			Config:  core.Config{X: x, Y: cfg.Height - 1, Name: l},
			Text:    l,
			OnPress: func() { d.Close(i) },
		})
		x += b.Width + 1
		d.buttons = append(d.buttons, b)
		d.Add(b)
	}
	return d
}

func (d *Dialog) IsModal() bool { return d.Visible }

func (d *Dialog) Buttons() []*Button { return d.buttons }

// Show centres the dialog, registers it and focuses the first button.
func (d *Dialog) Show(ctx *core.Context) {
	d.ctx = ctx
	present(ctx, d)
	ctx.SetFocus(d.buttons[0])
}

// Close hides the dialog and reports result.
func (d *Dialog) Close(result int) {
	if !d.Visible {
		return
	}
	d.Visible = false
	if d.ctx != nil {
		d.ctx.Unregister(d)
	}
	if d.OnResult != nil {
		d.OnResult(result)
	}
}

func (d *Dialog) HandleKey(ctx *core.Context, k host.Key, _ host.ModMask) bool {
	switch k {
	case host.KeyEscape:
		d.Close(-1)
	case host.KeyLeft:
		ctx.CycleFocus(false)
	case host.KeyRight:
		ctx.CycleFocus(true)
	default:
		return false
	}
	return true
}
