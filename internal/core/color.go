package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a foreground colour for a screen cell, stored as "#rrggbb".
// The zero value means the terminal's default colour.
type Color string

// ColorDefault leaves the cell in the terminal's default colour.
const ColorDefault Color = ""

// Colors used by the HUD and overlays.
const (
	ColorText   Color = "#d0d0d0"
	ColorMuted  Color = "#808080"
	ColorAccent Color = "#f17df1"
	ColorAlert  Color = "#ff5f5f"
	ColorGood   Color = "#87d787"
)

// ParseColor validates a "#rrggbb" or "#rgb" string and returns it in the
// long lowercase form.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		return ColorDefault, fmt.Errorf("color %q: missing leading '#'", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return ColorDefault, fmt.Errorf("color %q: want 3 or 6 hex digits", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return ColorDefault, fmt.Errorf("color %q: %w", s, err)
	}
	return Color("#" + hex), nil
}

// RGB returns the red, green and blue components.
// The default colour and malformed values decode as white.
func (c Color) RGB() (r, g, b uint8) {
	if len(c) != 7 || c[0] != '#' {
		return 0xff, 0xff, 0xff
	}
	v, err := strconv.ParseUint(string(c[1:]), 16, 32)
	if err != nil {
		return 0xff, 0xff, 0xff
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
