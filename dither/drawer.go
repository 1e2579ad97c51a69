package dither

import (
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/devices/v3/gdep073e01/image7color"
	"periph.io/x/devices/v3/gdep073e01/spectra6"
)

// Sink receives quantized pixels in the panel's native colors.
//
// The panel driver implements it; ImageSink adapts any draw.Image.
type Sink interface {
	// Bounds returns the pixel area of the sink.
	Bounds() image.Rectangle
	// SetPixel writes one pixel.
	SetPixel(x, y int, c image7color.Color) error
	// Fill writes c to every pixel of r.
	Fill(r image.Rectangle, c image7color.Color) error
}

// ImageSink adapts a draw.Image to Sink. It never fails.
type ImageSink struct {
	Image draw.Image
}

// Bounds implements Sink.
func (s ImageSink) Bounds() image.Rectangle {
	return s.Image.Bounds()
}

// SetPixel implements Sink.
func (s ImageSink) SetPixel(x, y int, c image7color.Color) error {
	if p, ok := s.Image.(*image7color.HorizontalNibble); ok {
		p.SetColor(x, y, c)
		return nil
	}
	s.Image.Set(x, y, c)
	return nil
}

// Fill implements Sink.
func (s ImageSink) Fill(r image.Rectangle, c image7color.Color) error {
	if p, ok := s.Image.(*image7color.HorizontalNibble); ok && r == p.Rect {
		p.Fill(c)
		return nil
	}
	draw.Draw(s.Image, r, image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// Drawer converts RGB drawing into palette colors with a Strategy and
// forwards the result to a Sink.
//
// Coordinates outside the sink bounds are dropped silently. Errors from the
// sink are returned unchanged and abort the operation in progress; pixels
// already forwarded stay written.
//
// Drawer also implements draw.Image so it can be handed to image/draw and
// other drawing libraries. Set cannot return errors; the first one is kept
// and reported by Err.
type Drawer struct {
	sink     Sink
	strategy Strategy
	err      error
}

// NewDrawer returns a Drawer writing to sink through s.
func NewDrawer(sink Sink, s Strategy) *Drawer {
	return &Drawer{sink: sink, strategy: s}
}

// Sink returns the wrapped sink.
func (d *Drawer) Sink() Sink {
	return d.sink
}

// Strategy returns the strategy in use.
func (d *Drawer) Strategy() Strategy {
	return d.strategy
}

// Bounds returns the sink bounds, unchanged.
func (d *Drawer) Bounds() image.Rectangle {
	return d.sink.Bounds()
}

// ColorModel implements image.Image. Drawer accepts any RGB color.
func (d *Drawer) ColorModel() color.Model {
	return spectra6.RGBModel
}

// At implements image.Image. It reads back from the sink when the sink is an
// image, and returns transparent black otherwise.
func (d *Drawer) At(x, y int) color.Color {
	if img, ok := d.sink.(image.Image); ok {
		return img.At(x, y)
	}
	if s, ok := d.sink.(ImageSink); ok {
		return s.Image.At(x, y)
	}
	return color.Transparent
}

// SetPixel dithers one pixel and writes it to the sink.
func (d *Drawer) SetPixel(x, y int, c spectra6.RGB) error {
	if !(image.Point{X: x, Y: y}.In(d.sink.Bounds())) {
		return nil
	}
	return d.set(x, y, c)
}

func (d *Drawer) set(x, y int, c spectra6.RGB) error {
	return d.sink.SetPixel(x, y, d.strategy.Map(x, y, c).Native())
}

// FillRect dithers every pixel of r with c, row by row, left to right.
func (d *Drawer) FillRect(r image.Rectangle, c spectra6.RGB) error {
	r = r.Intersect(d.sink.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if err := d.set(x, y, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clear fills the whole sink with the palette color nearest to c.
//
// No dithering is applied and the sink receives a single Fill. A stateful
// strategy is reset, since a clear starts a new frame.
func (d *Drawer) Clear(c spectra6.RGB) error {
	if r, ok := d.strategy.(Resetter); ok {
		r.Reset()
	}
	return d.sink.Fill(d.sink.Bounds(), spectra6.Nearest(c).Native())
}

// Draw dithers src onto the rectangle dst, like draw.Draw with draw.Src.
// The pixel of src at sp is drawn at dst.Min.
func (d *Drawer) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	clipped := dst.Intersect(d.sink.Bounds())
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(dst.Min))
	off := sp.Sub(clipped.Min)
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			c := spectra6.FromColor(src.At(x+off.X, y+off.Y))
			if err := d.set(x, y, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Set implements draw.Image. The first sink error is retained for Err and
// further pixels are dropped.
func (d *Drawer) Set(x, y int, c color.Color) {
	if d.err != nil {
		return
	}
	d.err = d.SetPixel(x, y, spectra6.FromColor(c))
}

// Err returns the first error met by Set, if any.
func (d *Drawer) Err() error {
	return d.err
}
