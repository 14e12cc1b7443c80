// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: host/color.go
// Summary: The sixteen-entry terminal palette and its blit hex encoding.

package host

import "strings"

// Color is one entry of the fixed 16-colour palette. The zero value means
// "unset" and is resolved by the painter to a widget or screen default.
type Color uint8

const (
	ColorDefault Color = iota
	White
	Orange
	Magenta
	LightBlue
	Yellow
	Lime
	Pink
	Gray
	LightGray
	Cyan
	Purple
	Blue
	Brown
	Green
	Red
	Black
)

const hexDigits = "0123456789abcdef"

var colorNames = [...]string{
	ColorDefault: "default",
	White:        "white",
	Orange:       "orange",
	Magenta:      "magenta",
	LightBlue:    "lightBlue",
	Yellow:       "yellow",
	Lime:         "lime",
	Pink:         "pink",
	Gray:         "gray",
	LightGray:    "lightGray",
	Cyan:         "cyan",
	Purple:       "purple",
	Blue:         "blue",
	Brown:        "brown",
	Green:        "green",
	Red:          "red",
	Black:        "black",
}

// Palette lists the sixteen concrete colours in hex-digit order.
var Palette = [16]Color{White, Orange, Magenta, LightBlue, Yellow, Lime, Pink, Gray,
	LightGray, Cyan, Purple, Blue, Brown, Green, Red, Black}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "invalid"
}

// Valid reports whether c is one of the sixteen palette entries.
func (c Color) Valid() bool { return c >= White && c <= Black }

// Hex returns the blit digit for c. Unset or invalid colours encode as the
// digit of fallback.
func (c Color) Hex(fallback Color) byte {
	if !c.Valid() {
		c = fallback
	}
	if !c.Valid() {
		return hexDigits[0]
	}
	return hexDigits[c-White]
}

// Or returns c, or def when c is unset.
func (c Color) Or(def Color) Color {
	if c == ColorDefault {
		return def
	}
	return c
}

// ColorFromHex decodes a blit digit.
func ColorFromHex(b byte) (Color, bool) {
	i := strings.IndexByte(hexDigits, toLower(b))
	if i < 0 {
		return ColorDefault, false
	}
	return White + Color(i), true
}

// ParseColor resolves a palette name case-insensitively ("lightBlue",
// "light_blue" and "lightblue" are equivalent). Unknown names return false.
func ParseColor(name string) (Color, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(name, "_", ""), "-", ""))
	if key == "grey" {
		key = "gray"
	} else if key == "lightgrey" {
		key = "lightgray"
	}
	for i, n := range colorNames {
		if strings.ToLower(n) == key {
			return Color(i), true
		}
	}
	return ColorDefault, false
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// paletteRGB holds the display values for the sixteen palette entries.
var paletteRGB = [16]int32{
	0xF0F0F0, 0xF2B233, 0xE57FD8, 0x99B2F2, 0xDEDE6C, 0x7FCC19, 0xF2B2CC, 0x4C4C4C,
	0x999999, 0x4C99B2, 0xB266E5, 0x3366CC, 0x7F664C, 0x57A64E, 0xCC4C4C, 0x111111,
}

// RGB returns the 0xRRGGBB display value of c, or -1 when c is unset.
func (c Color) RGB() int32 {
	if !c.Valid() {
		return -1
	}
	return paletteRGB[c-White]
}

// Nearest maps an arbitrary RGB value to the closest palette entry.
func Nearest(r, g, b uint8) Color {
	best, bestDist := White, int(^uint(0)>>1)
	for i, v := range paletteRGB {
		dr := int(r) - int(v>>16&0xFF)
		dg := int(g) - int(v>>8&0xFF)
		db := int(b) - int(v&0xFF)
		if d := dr*dr*3 + dg*dg*4 + db*db*2; d < bestDist {
			best, bestDist = White+Color(i), d
		}
	}
	return best
}
