package dither

import "periph.io/x/devices/v3/gdep073e01/spectra6"

// Tile ranks: a cell turns white once the luminance level exceeds its rank.
var (
	halftoneRank2 = [2][2]uint8{ // [y][x]
		{0, 2},
		{3, 1},
	}
	halftoneRank3 = [3][3]uint8{
		{3, 2, 1},
		{2, 0, 2},
		{1, 2, 3},
	}
)

// Halftone renders luminance as black and white dots on a 2x2 or 3x3 tile.
// Hue is ignored.
type Halftone struct {
	tile int
}

// NewHalftone returns a halftone strategy. tile is clamped to 2 or 3.
func NewHalftone(tile int) *Halftone {
	return &Halftone{tile: min(max(tile, 2), 3)}
}

// Tile returns the tile size in use.
func (h *Halftone) Tile() int {
	return h.tile
}

// Map returns White if the luminance level of c exceeds the rank of the
// tile cell (x, y) falls in, Black otherwise.
func (h *Halftone) Map(x, y int, c spectra6.RGB) spectra6.Color {
	lvl := luminanceLevel(luminance(c))
	xi, yi := mod(x, h.tile), mod(y, h.tile)
	var rank uint8
	if h.tile == 2 {
		rank = halftoneRank2[yi][xi]
	} else {
		rank = halftoneRank3[yi][xi]
	}
	if lvl > rank {
		return spectra6.White
	}
	return spectra6.Black
}

// luminance approximates luma as (3R + 6G + B) / 10, in [0, 255].
func luminance(c spectra6.RGB) int {
	return (3*int(c.R) + 6*int(c.G) + int(c.B)) / 10
}

// luminanceLevel buckets a luminance value into 5 levels, 0 to 4.
func luminanceLevel(l int) uint8 {
	switch {
	case l < 32:
		return 0
	case l < 96:
		return 1
	case l < 160:
		return 2
	case l < 224:
		return 3
	}
	return 4
}

// mod is the non-negative remainder of a / n.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
