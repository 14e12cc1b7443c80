package widgets

import (
	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
)

// Tab is one page of a TabControl.
type Tab struct {
	Title   string
	Content core.Widget
}

// TabControlConfig configures a TabControl. Default size is 40x10.
type TabControlConfig struct {
	core.Config
	Tabs     []Tab
	OnChange func(index int)
}

// TabControl shows a header row of titles and the active tab's content
// below it. Inactive contents stay attached but hidden.
type TabControl struct {
	core.BaseWidget
	OnChange func(index int)

	tabs   []Tab
	active int
	// header spans, widget-local columns [start, end)
	spans [][2]int
}

func NewTabControl(cfg TabControlConfig) *TabControl {
	tc := &TabControl{OnChange: cfg.OnChange}
	tc.Init(cfg.Config, 40, 10)
	tc.CanFocus = true
	for _, t := range cfg.Tabs {
		tc.AddTab(t.Title, t.Content)
	}
	return tc
}

func (tc *TabControl) Active() int { return tc.active }
func (tc *TabControl) Len() int    { return len(tc.tabs) }

// AddTab appends a page. content may be nil for a title-only tab.
func (tc *TabControl) AddTab(title string, content core.Widget) {
	tc.tabs = append(tc.tabs, Tab{Title: title, Content: content})
	if content != nil {
		core.AddChild(tc, content)
	}
	tc.layout()
}

// SetActive switches pages. OnChange fires when the index changes.
func (tc *TabControl) SetActive(i int) {
	if i < 0 || i >= len(tc.tabs) || i == tc.active {
		return
	}
	tc.active = i
	tc.layout()
	if tc.OnChange != nil {
		tc.OnChange(i)
	}
}

// layout sizes every content widget to the page area and shows only the
// active one.
func (tc *TabControl) layout() {
	for i, t := range tc.tabs {
		if t.Content == nil {
			continue
		}
		b := t.Content.Base()
		b.X, b.Y = 1, 2
		t.Content.Base().Resize(tc.Width, tc.Height-1)
		b.Visible = i == tc.active
	}
}

func (tc *TabControl) Render(p *core.Painter) {
	tc.layout()
	fg, bg := tc.Colors(Theme.Text, Theme.Surface)
	r := core.Bounds(tc)
	p.Fill(r, ' ', fg, bg)
	p.HLine(r.X, r.Y, r.W, ' ', Theme.Muted, Theme.Border)
	tc.spans = tc.spans[:0]
	x := 0
	for i, t := range tc.tabs {
		label := " " + t.Title + " "
		w := core.TextWidth(label)
		cf, cb := Theme.Muted, Theme.Border
		if i == tc.active {
			cf, cb = fg, bg
			if tc.IsFocused() {
				cf = Theme.Accent
			}
		}
		p.Text(r.X+x, r.Y, label, cf, cb)
		tc.spans = append(tc.spans, [2]int{x, x + w})
		x += w + 1
	}
}

// Click on the header row switches tabs.
func (tc *TabControl) Click(_ *core.Context, ev core.ClickEvent) {
	if ev.LocalY != 1 {
		return
	}
	col := ev.LocalX - 1
	for i, s := range tc.spans {
		if col >= s[0] && col < s[1] {
			tc.SetActive(i)
			return
		}
	}
}

func (tc *TabControl) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	n := len(tc.tabs)
	if n == 0 {
		return false
	}
	switch k {
	case host.KeyLeft:
		tc.SetActive((tc.active - 1 + n) % n)
	case host.KeyRight:
		tc.SetActive((tc.active + 1) % n)
	default:
		return false
	}
	return true
}
