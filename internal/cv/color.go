package cv

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple as read from the screen
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from channel values
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Matches reports whether every channel of a and b differs by at most tolerance.
// A negative tolerance never matches.
func Matches(a, b Color, tolerance int) bool {
	return abs(int(a.R)-int(b.R)) <= tolerance &&
		abs(int(a.G)-int(b.G)) <= tolerance &&
		abs(int(a.B)-int(b.B)) <= tolerance
}

// ParseHex parses "#rrggbb" (the leading # is optional)
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// FromColor converts any image/color value, dropping alpha
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// Hex renders the color as "#rrggbb"
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns an opaque image/color value for drawing
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// fromCOLORREF unpacks a GDI 0x00BBGGRR value
func fromCOLORREF(ref uint32) Color {
	return Color{
		R: uint8(ref & 0xff),
		G: uint8((ref >> 8) & 0xff),
		B: uint8((ref >> 16) & 0xff),
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
