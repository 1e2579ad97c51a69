// Package dither maps 24-bit RGB drawing onto the Spectra 6 palette at draw
// time.
//
// A Strategy decides the palette color of each pixel. Three are provided:
// Bayer4x4 ordered dithering, FloydSteinberg error diffusion and a
// black-and-white Halftone. A Drawer wraps a Sink, such as the panel driver
// or any draw.Image, and runs every incoming pixel through the strategy.
//
// Strategies are not safe for concurrent use. FloydSteinberg additionally
// requires pixels in document order: rows top to bottom, and within a row
// columns left to right. Drawer always traverses rectangles and images in
// that order.
package dither

import (
	"fmt"
	"strings"

	"periph.io/x/devices/v3/gdep073e01/spectra6"
)

// Strategy maps the color of pixel (x, y) to a palette color.
//
// Map is called once per pixel written, in the order the pixels are written.
type Strategy interface {
	Map(x, y int, c spectra6.RGB) spectra6.Color
}

// Resetter is implemented by strategies carrying state across pixels.
// Reset discards that state, as at the start of a new frame.
type Resetter interface {
	Reset()
}

// Kind identifies one of the available strategies.
type Kind int

const (
	KindBayer Kind = iota
	KindFloydSteinberg
	KindHalftone
)

var kindNames = map[Kind]string{
	KindBayer:          "bayer",
	KindFloydSteinberg: "floyd-steinberg",
	KindHalftone:       "halftone",
}

// Kinds returns every available strategy kind.
func Kinds() []Kind {
	return []Kind{KindBayer, KindFloydSteinberg, KindHalftone}
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named s. "fs" is accepted for Floyd-Steinberg.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bayer", "bayer4x4":
		return KindBayer, nil
	case "floyd-steinberg", "floydsteinberg", "fs":
		return KindFloydSteinberg, nil
	case "halftone":
		return KindHalftone, nil
	}
	return 0, fmt.Errorf("dither: unknown strategy %q", s)
}

// Opts holds construction parameters for New.
type Opts struct {
	Width int // Canvas width, required by Floyd-Steinberg
	Tile  int // Halftone tile size, clamped to 2 or 3
}

// New creates a strategy of the given kind.
func New(k Kind, opts Opts) (Strategy, error) {
	switch k {
	case KindBayer:
		return &Bayer4x4{}, nil
	case KindFloydSteinberg:
		if opts.Width <= 0 {
			return nil, fmt.Errorf("dither: floyd-steinberg needs a positive width, got %d", opts.Width)
		}
		return NewFloydSteinberg(opts.Width), nil
	case KindHalftone:
		return NewHalftone(opts.Tile), nil
	}
	return nil, fmt.Errorf("dither: unknown strategy %v", k)
}
