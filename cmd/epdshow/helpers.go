package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zstd"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	_ "golang.org/x/image/webp"
	"periph.io/x/devices/v3/gdep073e01/image7color"
	"periph.io/x/devices/v3/gdep073e01/spectra6"
)

// adjustments are percentages as taken by the imaging package. Zero means
// unchanged.
type adjustments struct {
	brightness float64
	contrast   float64
	saturation float64
}

// loadImage decodes an image, applying EXIF orientation, and crops and scales
// it to fill w x h.
func loadImage(path string, w, h int, adj adjustments) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	img = imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)

	if adj.saturation != 0 {
		img = imaging.AdjustSaturation(img, adj.saturation)
	}
	if adj.contrast != 0 {
		img = imaging.AdjustContrast(img, adj.contrast)
	}
	if adj.brightness != 0 {
		img = imaging.AdjustBrightness(img, adj.brightness)
	}
	return img, nil
}

// parseColor accepts an RGB tuple like 25,200,150, an SVG color name, or a
// hex code with or without the leading #.
func parseColor(s string) (spectra6.RGB, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if strings.Count(s, ",") == 2 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
			return spectra6.RGB{}, fmt.Errorf("%s is not a valid RGB tuple. Example: 25,200,150", s)
		}
		return spectra6.RGB{R: r, G: g, B: b}, nil
	}

	if c, ok := colornames.Map[s]; ok {
		return spectra6.FromColor(c), nil
	}

	hex := s
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if c, err := colorful.Hex(hex); err == nil {
		r, g, b := c.RGB255()
		return spectra6.RGB{R: r, G: g, B: b}, nil
	}

	return spectra6.RGB{}, fmt.Errorf("%s not recognized as an RGB tuple, hex code, or SVG color name", s)
}

// meanDeltaE returns the mean CIEDE2000 distance between src and the frame
// over the frame bounds. Transparent source pixels are skipped.
func meanDeltaE(src image.Image, frame *image7color.HorizontalNibble) float64 {
	var sum float64
	n := 0
	b := frame.Bounds()
	off := src.Bounds().Min.Sub(b.Min)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want, ok := colorful.MakeColor(src.At(x+off.X, y+off.Y))
			if !ok {
				continue
			}
			got, _ := colorful.MakeColor(frame.ColorAt(x, y))
			sum += want.DistanceCIEDE2000(got)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func writePreview(path string, frame *image7color.HorizontalNibble) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("error writing PNG to '%s': %w", path, err)
	}
	return f.Close()
}

// writeDump stores the packed frame bytes, zstd compressed.
func writeDump(path string, frame *image7color.HorizontalNibble) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	if err := encodeDump(f, frame.Pix); err != nil {
		f.Close()
		return fmt.Errorf("error writing dump to '%s': %w", path, err)
	}
	return f.Close()
}

func encodeDump(w io.Writer, pix []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	if _, err := enc.Write(pix); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// readDump returns the packed frame bytes stored by writeDump.
func readDump(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	pix, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("error reading dump '%s': %w", path, err)
	}
	return pix, nil
}
