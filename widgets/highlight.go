// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/highlight.go
// Summary: Chroma tokenisation mapped onto the 16-colour palette.

package widgets

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/framegrace/cellkit/host"
)

const defaultStyleName = "monokai"

// chromaStyle resolves a style name to a Chroma style, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer returns a lexer by name, then by filename, then by content
// analysis, and finally the plain-text fallback.
func getLexer(name, filename, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if filename != "" {
		if l := lexers.Match(filename); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// highlighter turns source lines into per-rune foreground colours. Runes
// in the style's base text colour map to ColorDefault so the widget colour
// shows through.
type highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	cache map[chroma.Colour]host.Color
}

func newHighlighter(lexer chroma.Lexer, style *chroma.Style) *highlighter {
	return &highlighter{lexer: chroma.Coalesce(lexer), style: style, cache: map[chroma.Colour]host.Color{}}
}

func (h *highlighter) color(c chroma.Colour) host.Color {
	if col, ok := h.cache[c]; ok {
		return col
	}
	col := host.Nearest(c.Red(), c.Green(), c.Blue())
	h.cache[c] = col
	return col
}

// colorize returns one colour slice per line, each as long as the line in
// runes. Tokenisation failures leave everything at the default colour.
func (h *highlighter) colorize(lines []string) [][]host.Color {
	out := make([][]host.Color, len(lines))
	for i, l := range lines {
		out[i] = make([]host.Color, len([]rune(l)))
	}
	if h == nil || h.lexer == nil {
		return out
	}
	text := strings.Join(lines, "\n") + "\n"
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return out
	}
	base := h.style.Get(chroma.Text).Colour
	line, col := 0, 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		entry := h.style.Get(tok.Type)
		var fg host.Color
		if entry.Colour.IsSet() && entry.Colour != base {
			fg = h.color(entry.Colour)
		}
		for _, r := range tok.Value {
			if r == '\n' {
				line++
				col = 0
				continue
			}
			if line < len(out) && col < len(out[line]) {
				out[line][col] = fg
			}
			col++
		}
	}
	return out
}
