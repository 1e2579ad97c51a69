// Package spectra6 defines the six-color palette of Spectra 6 e-paper panels
// and the nearest-color quantizer mapping 24-bit RGB onto it.
//
// The quantizer uses a weighted squared distance, 3·ΔR² + 6·ΔG² + ΔB², which
// tracks human luminance sensitivity (green strongest, blue weakest) without
// floating point. On exact ties the entry earliest in Palette wins, so
// Nearest is a pure function.
package spectra6

import (
	"fmt"
	"image/color"

	"periph.io/x/devices/v3/gdep073e01/image7color"
)

// Color is one of the six colors a Spectra 6 panel can show.
type Color uint8

// Palette colors, in table order. The order is the tie-break priority of
// Nearest.
const (
	White Color = iota
	Black
	Yellow
	Red
	Green
	Blue
)

// NumColors is the size of the palette.
const NumColors = 6

// RGB is a 24-bit sRGB triple. It implements color.Color as an opaque color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

// Add returns c with bias added to every channel, saturating at 0 and 255.
func (c RGB) Add(bias int) RGB {
	return RGB{
		R: Clamp(int(c.R) + bias),
		G: Clamp(int(c.G) + bias),
		B: Clamp(int(c.B) + bias),
	}
}

func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d,%d,%d)", c.R, c.G, c.B)
}

// Entry associates a palette Color with its reference sRGB value.
type Entry struct {
	Color Color
	RGB   RGB
}

// Palette is the fixed reference table. It is an array so callers always
// get a copy.
var Palette = [NumColors]Entry{
	{White, RGB{255, 255, 255}},
	{Black, RGB{0, 0, 0}},
	{Yellow, RGB{255, 255, 0}},
	{Red, RGB{255, 0, 0}},
	{Green, RGB{0, 255, 0}},
	{Blue, RGB{0, 0, 255}},
}

// palette is the copy used for lookups, unaffected by writes to Palette.
var palette = Palette

var names = [NumColors]string{"White", "Black", "Yellow", "Red", "Green", "Blue"}

// native maps to the controller codes; Orange is never produced.
var native = [NumColors]image7color.Color{
	White:  image7color.White,
	Black:  image7color.Black,
	Yellow: image7color.Yellow,
	Red:    image7color.Red,
	Green:  image7color.Green,
	Blue:   image7color.Blue,
}

// RGB returns the reference sRGB value of c.
func (c Color) RGB() RGB {
	return palette[c%NumColors].RGB
}

// Native returns the controller color code for c.
func (c Color) Native() image7color.Color {
	return native[c%NumColors]
}

// RGBA implements color.Color using the reference value.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.RGB().RGBA()
}

func (c Color) String() string {
	if c >= NumColors {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return names[c]
}

// Distance returns the weighted squared distance between a and b.
// The result fits comfortably in 32 bits for any pair of 8-bit triples.
func Distance(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return 3*dr*dr + 6*dg*dg + db*db
}

// Nearest returns the palette color closest to c.
func Nearest(c RGB) Color {
	best := palette[0].Color
	bestD := Distance(c, palette[0].RGB)
	for _, e := range palette[1:] {
		if d := Distance(c, e.RGB); d < bestD {
			best, bestD = e.Color, d
		}
	}
	return best
}

// Clamp saturates v to the 8-bit range.
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// FromColor converts any color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// RGBModel converts colors to RGB.
var RGBModel = color.ModelFunc(func(c color.Color) color.Color { return FromColor(c) })

// Model converts colors to the nearest palette Color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	return Nearest(FromColor(c))
})
