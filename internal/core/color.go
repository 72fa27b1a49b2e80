package core

import "fmt"

// Color is a foreground color for a screen cell, stored as 24-bit RGB.
// The zero value means the terminal's default color.
type Color uint32

const (
	ColorDefault Color = 0
	colorSet     Color = 1 << 24
)

// Colors used by the frame around the playfield.
var (
	ColorBorder = RGB(0x88, 0x88, 0x99)
	ColorHUD    = RGB(0xcc, 0xcc, 0xdd)
	ColorDim    = RGB(0x44, 0x44, 0x4c)
	ColorAlert  = RGB(0xff, 0x55, 0x55)
)

// RGB builds a true-color Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// IsDefault reports whether c leaves the terminal color untouched.
func (c Color) IsDefault() bool {
	return c&colorSet == 0
}

// Channels returns the 8-bit red, green and blue components.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if c.IsDefault() {
		return ""
	}
	r, g, b := c.Channels()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
