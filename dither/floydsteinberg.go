package dither

import (
	"math"

	"periph.io/x/devices/v3/gdep073e01/spectra6"
)

// Floyd-Steinberg kernel, in sixteenths.
const (
	fsRight     = 7
	fsDownLeft  = 3
	fsDown      = 5
	fsDownRight = 1
	fsScale     = 16
)

// FloydSteinberg is single-pass error diffusion over two scanlines.
//
// The quantization error of each pixel is spread to the pixel on its right
// and to the three pixels below it. Errors are kept per column and channel
// as saturating int16 accumulators: cur for the row being drawn, next for
// the row below.
//
// Pixels must be presented rows top to bottom and, within a row, columns
// left to right. A row is considered finished when Map sees a different y,
// when x goes back to 0 after having advanced, or when StartLine is called.
// Going back to an earlier row is not supported; it is treated as the start
// of a new frame and the accumulated error is discarded. Columns outside
// [0, width) are quantized without diffusion.
type FloydSteinberg struct {
	width int
	cur   []int16
	next  []int16
	x, y  int
}

// NewFloydSteinberg returns an error diffuser for a canvas width pixels wide.
func NewFloydSteinberg(width int) *FloydSteinberg {
	if width < 0 {
		width = 0
	}
	return &FloydSteinberg{
		width: width,
		cur:   make([]int16, 3*width),
		next:  make([]int16, 3*width),
	}
}

// Width returns the canvas width the buffers are sized for.
func (f *FloydSteinberg) Width() int {
	return f.width
}

// StartLine notifies f that row y is about to be drawn.
// Nothing happens if y is the current row.
func (f *FloydSteinberg) StartLine(y int) {
	switch {
	case y == f.y:
		return
	case y < f.y:
		f.Reset()
	default:
		f.rotate()
	}
	f.y = y
	f.x = 0
}

// Reset discards all accumulated error and starts over at row 0.
func (f *FloydSteinberg) Reset() {
	clear(f.cur)
	clear(f.next)
	f.x, f.y = 0, 0
}

// rotate makes the next row current and zeroes the new next row.
func (f *FloydSteinberg) rotate() {
	f.cur, f.next = f.next, f.cur
	clear(f.next)
}

// Map quantizes (x, y) after adding the error diffused into it.
func (f *FloydSteinberg) Map(x, y int, c spectra6.RGB) spectra6.Color {
	if x < 0 || x >= f.width {
		return spectra6.Nearest(c)
	}
	if y != f.y {
		f.StartLine(y)
	} else if x == 0 && f.x != 0 {
		f.rotate()
	}
	f.x = x

	i := 3 * x
	adj := spectra6.RGB{
		R: spectra6.Clamp(int(c.R) + int(f.cur[i])),
		G: spectra6.Clamp(int(c.G) + int(f.cur[i+1])),
		B: spectra6.Clamp(int(c.B) + int(f.cur[i+2])),
	}
	q := spectra6.Nearest(adj)
	ref := q.RGB()
	e := [3]int{
		int(adj.R) - int(ref.R),
		int(adj.G) - int(ref.G),
		int(adj.B) - int(ref.B),
	}

	if x+1 < f.width {
		diffuse(f.cur[i+3:i+6], e, fsRight)
		diffuse(f.next[i+3:i+6], e, fsDownRight)
	}
	if x > 0 {
		diffuse(f.next[i-3:i], e, fsDownLeft)
	}
	diffuse(f.next[i:i+3], e, fsDown)
	return q
}

// diffuse adds weight/16 of e to the three channel accumulators in dst.
// Division truncates toward zero.
func diffuse(dst []int16, e [3]int, weight int) {
	for ch := range dst {
		dst[ch] = addSat16(dst[ch], e[ch]*weight/fsScale)
	}
}

// addSat16 returns a+b saturated to the int16 range.
func addSat16(a int16, b int) int16 {
	s := int(a) + b
	if s > math.MaxInt16 {
		return math.MaxInt16
	}
	if s < math.MinInt16 {
		return math.MinInt16
	}
	return int16(s)
}
