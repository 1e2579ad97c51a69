// Package image7color provides the packed 4-bit frame format used by 7-color
// e-paper controllers.
//
// Pixels are stored in horizontal nibble packing where each byte contains 2
// pixels. High nibble represents the left pixel, low nibble represents the
// right pixel.
package image7color

import (
	"image"
	"image/color"
	"strconv"
)

// Color is a native 4-bit panel color code.
// Only the lower 4 bits are meaningful.
type Color uint8

// Native color codes, as expected in controller RAM.
const (
	Black  Color = 0x0
	White  Color = 0x1
	Yellow Color = 0x2
	Red    Color = 0x3
	Orange Color = 0x4
	Blue   Color = 0x5
	Green  Color = 0x6
)

// Colors lists every color the controller can show, in code order.
var Colors = [...]Color{Black, White, Yellow, Red, Orange, Blue, Green}

// reference holds the nominal sRGB value of each code.
var reference = [...]color.NRGBA{
	Black:  {0x00, 0x00, 0x00, 0xFF},
	White:  {0xFF, 0xFF, 0xFF, 0xFF},
	Yellow: {0xFF, 0xFF, 0x00, 0xFF},
	Red:    {0xFF, 0x00, 0x00, 0xFF},
	Orange: {0xFF, 0x80, 0x00, 0xFF},
	Blue:   {0x00, 0x00, 0xFF, 0xFF},
	Green:  {0x00, 0xFF, 0x00, 0xFF},
}

var names = [...]string{"Black", "White", "Yellow", "Red", "Orange", "Blue", "Green"}

// RGBA returns the nominal color of the code.
// Codes outside the known set render as white, like the controller does.
func (c Color) RGBA() (r, g, b, a uint32) {
	if !c.Valid() {
		return reference[White].RGBA()
	}
	return reference[c].RGBA()
}

// Valid reports whether c is one of the seven native codes.
func (c Color) Valid() bool {
	return int(c) < len(reference)
}

func (c Color) String() string {
	if !c.Valid() {
		return "Color(" + strconv.Itoa(int(c)) + ")"
	}
	return names[c]
}

// toColor converts any color.Color to the closest native Color.
func toColor(c color.Color) color.Color {
	if n, ok := c.(Color); ok {
		return n
	}
	r, g, b, _ := c.RGBA()
	// Scale down to 8 bits before squaring to stay well inside int range.
	r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)
	best, bestD := Black, -1
	for _, n := range Colors {
		ref := reference[n]
		dr := r8 - int(ref.R)
		dg := g8 - int(ref.G)
		db := b8 - int(ref.B)
		d := dr*dr + dg*dg + db*db
		if bestD < 0 || d < bestD {
			best, bestD = n, d
		}
	}
	return best
}

// Model converts colors to the nearest native Color.
var Model = color.ModelFunc(toColor)

// HorizontalNibble is a frame where pixels are stored in horizontal nibble packing.
// Each byte contains 2 pixels: high nibble = left pixel, low nibble = right pixel.
type HorizontalNibble struct {
	Pix    []byte          // Pixel data (2 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewHorizontalNibble creates a new HorizontalNibble image with the specified bounds.
// The width must be even (since 2 pixels per byte). The frame starts out
// black, which is code 0.
func NewHorizontalNibble(r image.Rectangle) *HorizontalNibble {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalNibble{Rect: r}
	}
	if w%2 != 0 {
		panic("image7color: width must be even")
	}

	stride := w / 2
	return &HorizontalNibble{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *HorizontalNibble) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *HorizontalNibble) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *HorizontalNibble) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt returns the native color of the pixel at (x, y).
func (p *HorizontalNibble) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	offset, shift := p.pixOffset(x, y)
	return Color((p.Pix[offset] >> shift) & 0x0F)
}

// Set sets the color of the pixel at (x, y), converting through Model.
func (p *HorizontalNibble) Set(x, y int, c color.Color) {
	p.SetColor(x, y, Model.Convert(c).(Color))
}

// SetColor sets the native color of the pixel at (x, y).
// Out of bounds writes are ignored.
func (p *HorizontalNibble) SetColor(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.pixOffset(x, y)
	p.Pix[offset] = (p.Pix[offset] &^ (0x0F << shift)) | ((byte(c) & 0x0F) << shift)
}

// Fill paints the whole image with c.
func (p *HorizontalNibble) Fill(c Color) {
	v := byte(c) & 0x0F
	packed := v<<4 | v
	for i := range p.Pix {
		p.Pix[i] = packed
	}
}

// pixOffset returns the byte offset and bit shift for the pixel at (x, y).
// Even x lives in the high nibble, odd x in the low nibble. Parity is taken
// relative to Rect.Min.X so offset rectangles pack the same way.
func (p *HorizontalNibble) pixOffset(x, y int) (offset int, shift uint) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/2
	shift = uint(4 * (1 - (dx & 1)))
	return
}
