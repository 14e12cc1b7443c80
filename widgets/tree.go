// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/tree.go
// Summary: Collapsible hierarchical list.

package widgets

import (
	"strings"

	"github.com/framegrace/cellkit/core"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/scroll"
)

// TreeNode is one entry of a TreeView.
type TreeNode struct {
	Label    string
	Children []*TreeNode
	Expanded bool
	Data     any
}

// Add appends children and returns n for chaining.
func (n *TreeNode) Add(children ...*TreeNode) *TreeNode {
	n.Children = append(n.Children, children...)
	return n
}

func (n *TreeNode) Leaf() bool { return len(n.Children) == 0 }

// TreeViewConfig configures a TreeView. Default size is 30x10.
type TreeViewConfig struct {
	core.Config
	Root *TreeNode
	// ShowRoot draws Root itself; otherwise its children are the top level.
	ShowRoot   bool
	OnSelect   func(n *TreeNode)
	OnActivate func(n *TreeNode)
}

type treeRow struct {
	node  *TreeNode
	depth int
}

type TreeView struct {
	core.BaseWidget
	Root       *TreeNode
	ShowRoot   bool
	OnSelect   func(n *TreeNode)
	OnActivate func(n *TreeNode)

	selected *TreeNode
	scroll   scroll.State
}

func NewTreeView(cfg TreeViewConfig) *TreeView {
	tv := &TreeView{Root: cfg.Root, ShowRoot: cfg.ShowRoot, OnSelect: cfg.OnSelect, OnActivate: cfg.OnActivate}
	tv.Init(cfg.Config, 30, 10)
	tv.CanFocus = true
	return tv
}

func (tv *TreeView) Selected() *TreeNode { return tv.selected }

// rows flattens the expanded part of the tree.
func (tv *TreeView) rows() []treeRow {
	var out []treeRow
	var walk func(n *TreeNode, depth int)
	walk = func(n *TreeNode, depth int) {
		out = append(out, treeRow{n, depth})
		if n.Expanded {
			for _, c := range n.Children {
				walk(c, depth+1)
			}
		}
	}
	if tv.Root == nil {
		return nil
	}
	if tv.ShowRoot {
		walk(tv.Root, 0)
	} else {
		for _, c := range tv.Root.Children {
			walk(c, 0)
		}
	}
	return out
}

func indexOf(rows []treeRow, n *TreeNode) int {
	for i, r := range rows {
		if r.node == n {
			return i
		}
	}
	return -1
}

// Select makes n the selection and scrolls it into view.
func (tv *TreeView) Select(n *TreeNode) {
	rows := tv.rows()
	i := indexOf(rows, n)
	if i < 0 {
		return
	}
	tv.scroll = tv.state(len(rows)).ScrollTo(i)
	if n == tv.selected {
		return
	}
	tv.selected = n
	if tv.OnSelect != nil {
		tv.OnSelect(n)
	}
}

func (tv *TreeView) state(n int) scroll.State {
	return tv.scroll.WithContent(n).WithViewport(tv.Height)
}

// Toggle expands or collapses n.
func (tv *TreeView) Toggle(n *TreeNode) {
	if n.Leaf() {
		return
	}
	n.Expanded = !n.Expanded
}

func (tv *TreeView) activate(n *TreeNode) {
	if !n.Leaf() {
		tv.Toggle(n)
		return
	}
	if tv.OnActivate != nil {
		tv.OnActivate(n)
	}
}

func (tv *TreeView) Render(p *core.Painter) {
	fg, bg := tv.Colors(Theme.Text, Theme.Surface)
	r := core.Bounds(tv)
	p.Fill(r, ' ', fg, bg)
	rows := tv.rows()
	tv.scroll = tv.state(len(rows))
	first, last := tv.scroll.VisibleRange()
	for i := first; i < last; i++ {
		row := rows[i]
		glyph := "  "
		if !row.node.Leaf() {
			glyph = "▸ "
			if row.node.Expanded {
				glyph = "▾ "
			}
		}
		cf, cb := fg, bg
		if row.node == tv.selected {
			cf, cb = Theme.SelectionFg, Theme.SelectionBg
			if !tv.IsFocused() {
				cf, cb = Theme.Text, Theme.Border
			}
		}
		y := r.Y + i - first
		line := strings.Repeat("  ", row.depth) + glyph + row.node.Label
		p.HLine(r.X, y, r.W, ' ', cf, cb)
		p.Text(r.X, y, core.TruncateText(line, r.W-1), cf, cb)
	}
	scroll.DrawIndicators(p, r, tv.scroll, scroll.DefaultIndicatorConfig(Theme.Muted, bg))
}

// Click selects a row; clicking the expander or an already selected row
// toggles or activates it.
func (tv *TreeView) Click(_ *core.Context, ev core.ClickEvent) {
	rows := tv.rows()
	i := tv.state(len(rows)).Offset + ev.LocalY - 1
	if i < 0 || i >= len(rows) {
		return
	}
	row := rows[i]
	exp := row.depth*2 + 1
	switch {
	case !row.node.Leaf() && (ev.LocalX == exp || ev.LocalX == exp+1):
		tv.Select(row.node)
		tv.Toggle(row.node)
	case row.node == tv.selected:
		tv.activate(row.node)
	default:
		tv.Select(row.node)
	}
}

func (tv *TreeView) HandleScroll(_ *core.Context, dir, _, _ int) bool {
	st := tv.state(len(tv.rows()))
	if !st.CanScroll() {
		return false
	}
	tv.scroll = st.ScrollBy(dir)
	return true
}

func (tv *TreeView) HandleKey(_ *core.Context, k host.Key, _ host.ModMask) bool {
	rows := tv.rows()
	if len(rows) == 0 {
		return false
	}
	i := indexOf(rows, tv.selected)
	switch k {
	case host.KeyUp:
		tv.Select(rows[max(i-1, 0)].node)
	case host.KeyDown:
		tv.Select(rows[min(i+1, len(rows)-1)].node)
	case host.KeyHome:
		tv.Select(rows[0].node)
	case host.KeyEnd:
		tv.Select(rows[len(rows)-1].node)
	case host.KeyLeft:
		if i < 0 {
			return true
		}
		n := rows[i].node
		if n.Expanded {
			n.Expanded = false
			return true
		}
		// jump to parent
		for j := i - 1; j >= 0; j-- {
			if rows[j].depth < rows[i].depth {
				tv.Select(rows[j].node)
				break
			}
		}
	case host.KeyRight:
		if i < 0 {
			return true
		}
		n := rows[i].node
		switch {
		case n.Leaf():
		case !n.Expanded:
			n.Expanded = true
		default:
			tv.Select(n.Children[0])
		}
	case host.KeyEnter:
		if i >= 0 {
			tv.activate(rows[i].node)
		}
	default:
		return false
	}
	return true
}

func (tv *TreeView) HandleChar(_ *core.Context, r rune) bool {
	if r != ' ' || tv.selected == nil {
		return false
	}
	tv.Toggle(tv.selected)
	return true
}
