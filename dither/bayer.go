package dither

import "periph.io/x/devices/v3/gdep073e01/spectra6"

// bayer4 is the classic 4x4 threshold matrix, values 0-15.
var bayer4 = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Bayer4x4 is ordered dithering with a 4x4 Bayer matrix.
//
// It is stateless: the result only depends on (x, y) and the color.
type Bayer4x4 struct{}

// Map biases all channels by the threshold at (x, y), shifted into [-8, 7],
// and returns the nearest palette color.
func (*Bayer4x4) Map(x, y int, c spectra6.RGB) spectra6.Color {
	bias := bayer4[y&3][x&3] - 8
	return spectra6.Nearest(c.Add(bias))
}
