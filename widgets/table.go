// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/table.go
// Summary: Data grid with a header row, column sorting and row selection.

package widgets

import (
	"sort"
	"strconv"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/scroll"
)

// Column describes one table column. Zero Width sizes it to its content.
type Column struct {
	Title string
	Width int
	Align Align
}

// TableConfig configures a Table. Default size is 40x10.
type TableConfig struct {
	core.Config
	Columns []Column
	Rows    [][]string
	// Sortable lets header clicks sort by that column.
	Sortable   bool
	OnSelect   func(index int, row []string)
	OnActivate func(index int, row []string)
}

type Table struct {
	core.BaseWidget
	Columns    []Column
	Sortable   bool
	OnSelect   func(index int, row []string)
	OnActivate func(index int, row []string)

	rows     [][]string
	selected int
	sortCol  int
	sortDesc bool
	scroll   scroll.State
}

func NewTable(cfg TableConfig) *Table {
	t := &Table{
		Columns:    cfg.Columns,
		Sortable:   cfg.Sortable,
		OnSelect:   cfg.OnSelect,
		OnActivate: cfg.OnActivate,
		selected:   -1,
		sortCol:    -1,
	}
	t.Init(cfg.Config, 40, 10)
	t.CanFocus = true
	t.SetRows(cfg.Rows)
	return t
}

func (t *Table) Rows() [][]string { return t.rows }
func (t *Table) Selected() int    { return t.selected }

// SortColumn returns the sort column (-1 when unsorted) and direction.
func (t *Table) SortColumn() (int, bool) { return t.sortCol, t.sortDesc }

func (t *Table) SetRows(rows [][]string) {
	t.rows = append([][]string(nil), rows...)
	t.selected = min(t.selected, len(t.rows)-1)
	if t.sortCol >= 0 {
		t.sortRows()
	}
}

func (t *Table) AddRow(row ...string) {
	t.rows = append(t.rows, row)
	if t.sortCol >= 0 {
		t.sortRows()
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// less compares numerically when both cells parse as numbers.
func less(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}

// SortBy orders rows by column col. The selection follows its row.
func (t *Table) SortBy(col int, desc bool) {
	if col < 0 || col >= len(t.Columns) {
		return
	}
	t.sortCol, t.sortDesc = col, desc
	t.sortRows()
}

func (t *Table) sortRows() {
	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	col, desc := t.sortCol, t.sortDesc
	sort.SliceStable(order, func(i, j int) bool {
		a, b := cell(t.rows[order[i]], col), cell(t.rows[order[j]], col)
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
	rows := make([][]string, len(t.rows))
	sel := -1
	for i, o := range order {
		rows[i] = t.rows[o]
		if o == t.selected {
			sel = i
		}
	}
	t.rows, t.selected = rows, sel
}

// widths resolves column widths, the last column taking what is left.
func (t *Table) widths(total int) []int {
	ws := make([]int, len(t.Columns))
	used := 0
	for i, c := range t.Columns {
		w := c.Width
		if w <= 0 {
			w = core.TextWidth(c.Title) + 2
			for _, r := range t.rows {
				w = max(w, core.TextWidth(cell(r, i)))
			}
		}
		ws[i] = w
		used += w + 1
	}
	if n := len(ws); n > 0 && used-1 < total {
		ws[n-1] += total - (used - 1)
	}
	return ws
}

func (t *Table) state() scroll.State {
	return t.scroll.WithContent(len(t.rows)).WithViewport(t.Height - 1)
}

func (t *Table) Select(i int) {
	if len(t.rows) == 0 {
		return
	}
	i = core.Clamp(i, 0, len(t.rows)-1)
	t.scroll = t.state().ScrollTo(i)
	if i == t.selected {
		return
	}
	t.selected = i
	if t.OnSelect != nil {
		t.OnSelect(i, t.rows[i])
	}
}

func (t *Table) Render(p *core.Painter) {
	fg, bg := t.Colors(Theme.Text, Theme.Surface)
	r := core.Bounds(t)
	p.Fill(r, ' ', fg, bg)
	ws := t.widths(r.W)

	p.HLine(r.X, r.Y, r.W, ' ', Theme.Text, Theme.Border)
	x := r.X
	for i, c := range t.Columns {
		title := c.Title
		if i == t.sortCol {
			if t.sortDesc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		p.Text(x, r.Y, core.TruncateText(title, ws[i]), Theme.Accent, Theme.Border)
		x += ws[i] + 1
	}

	t.scroll = t.state()
	first, last := t.scroll.VisibleRange()
	for i := first; i < last; i++ {
		y := r.Y + 1 + i - first
		cf, cb := fg, bg
		if i == t.selected {
			cf, cb = Theme.SelectionFg, Theme.SelectionBg
			if !t.IsFocused() {
				cf, cb = Theme.Text, Theme.Border
			}
		}
		p.HLine(r.X, y, r.W, ' ', cf, cb)
		x := r.X
		for j, c := range t.Columns {
			s := core.TruncateText(cell(t.rows[i], j), ws[j])
			p.Text(x+alignOffset(c.Align, core.TextWidth(s), ws[j]), y, s, cf, cb)
			x += ws[j] + 1
			if j < len(t.Columns)-1 {
				p.Cell(x-1, y, '│', Theme.Border, cb)
			}
		}
	}
	scroll.DrawIndicators(p, r.Inset(0, 1, 0, 0), t.scroll, scroll.DefaultIndicatorConfig(Theme.Muted, bg))
}

// Click on the header sorts (toggling direction on the same column); on a
// row it selects, or activates an already selected row.
func (t *Table) Click(_ *core.Context, ev core.ClickEvent) {
	if ev.LocalY == 1 {
		if !t.Sortable {
			return
		}
		ws := t.widths(t.Width)
		x := 1
		for i, w := range ws {
			if ev.LocalX >= x && ev.LocalX < x+w+1 {
				t.SortBy(i, i == t.sortCol && !t.sortDesc)
				return
			}
			x += w + 1
		}
		return
	}
	i := t.state().Offset + ev.LocalY - 2
	if i < 0 || i >= len(t.rows) {
		return
	}
	if i == t.selected {
		if t.OnActivate != nil {
			t.OnActivate(i, t.rows[i])
		}
		return
	}
	t.Select(i)
}

func (t *Table) HandleScroll(_ *core.Context, dir, _, _ int) bool {
	st := t.state()
	if !st.CanScroll() {
		return false
	}
	t.scroll = st.ScrollBy(dir)
	return true
}

func (t *Table) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	if len(t.rows) == 0 {
		return false
	}
	page := max(t.Height-2, 1)
	switch k {
	case host.KeyUp:
		t.Select(t.selected - 1)
	case host.KeyDown:
		t.Select(t.selected + 1)
	case host.KeyPageUp:
		t.Select(t.selected - page)
	case host.KeyPageDown:
		t.Select(t.selected + page)
	case host.KeyHome:
		t.Select(0)
	case host.KeyEnd:
		t.Select(len(t.rows) - 1)
	case host.KeyEnter:
		if t.selected >= 0 && t.OnActivate != nil {
			t.OnActivate(t.selected, t.rows[t.selected])
		}
	default:
		return false
	}
	return true
}
