package main

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/devices/v3/gdep073e01/image7color"
	"periph.io/x/devices/v3/gdep073e01/spectra6"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    spectra6.RGB
		wantErr bool
	}{
		{"25,200,150", spectra6.RGB{R: 25, G: 200, B: 150}, false},
		{" 255,0,0 ", spectra6.RGB{R: 255}, false},
		{"#ff8000", spectra6.RGB{R: 255, G: 128}, false},
		{"00FF00", spectra6.RGB{G: 255}, false},
		{"#fff", spectra6.RGB{R: 255, G: 255, B: 255}, false},
		{"white", spectra6.RGB{R: 255, G: 255, B: 255}, false},
		{"Navy", spectra6.RGB{B: 128}, false},
		{"300,0,0", spectra6.RGB{}, true},
		{"1,2", spectra6.RGB{}, true},
		{"notacolor", spectra6.RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadImageFills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	src := imaging.New(40, 10, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	if err := imaging.Save(src, path); err != nil {
		t.Fatal(err)
	}

	img, err := loadImage(path, 8, 6, adjustments{})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 8, 6) {
		t.Errorf("Bounds() = %v, want 8x6", got)
	}

	dark, err := loadImage(path, 8, 6, adjustments{brightness: -100})
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := dark.At(3, 3).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("brightness -100 gave %d,%d,%d, want black", r>>8, g>>8, b>>8)
	}

	if _, err := loadImage(filepath.Join(t.TempDir(), "missing.png"), 8, 6, adjustments{}); err == nil {
		t.Error("loadImage of a missing file should fail")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	frame := image7color.NewHorizontalNibble(image.Rect(0, 0, 800, 480))
	frame.Fill(image7color.White)
	frame.SetColor(0, 0, image7color.Red)
	frame.SetColor(799, 479, image7color.Blue)

	path := filepath.Join(t.TempDir(), "frame.zst")
	if err := writeDump(path, frame); err != nil {
		t.Fatal(err)
	}
	got, err := readDump(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, frame.Pix) {
		t.Errorf("dump mismatch: %d bytes, want %d", len(got), len(frame.Pix))
	}

	if _, err := readDump(filepath.Join(t.TempDir(), "missing.zst")); err == nil {
		t.Error("readDump of a missing file should fail")
	}
}

func TestMeanDeltaE(t *testing.T) {
	frame := image7color.NewHorizontalNibble(image.Rect(0, 0, 2, 2))
	frame.SetColor(0, 0, image7color.Red)
	frame.SetColor(1, 0, image7color.Green)
	frame.SetColor(0, 1, image7color.Blue)
	frame.SetColor(1, 1, image7color.White)

	same := image.NewNRGBA(frame.Rect)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			same.Set(x, y, frame.At(x, y))
		}
	}
	if got := meanDeltaE(same, frame); got > 1e-6 {
		t.Errorf("meanDeltaE(identical) = %v, want 0", got)
	}

	// Transparent pixels are skipped.
	empty := image.NewNRGBA(frame.Rect)
	if got := meanDeltaE(empty, frame); got != 0 {
		t.Errorf("meanDeltaE(transparent) = %v, want 0", got)
	}

	gray := imaging.New(2, 2, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	if got := meanDeltaE(gray, frame); got <= 0 {
		t.Errorf("meanDeltaE(gray) = %v, want > 0", got)
	}
}

func TestPreviewColors(t *testing.T) {
	frame := image7color.NewHorizontalNibble(image.Rect(0, 0, 2, 1))
	frame.SetColor(0, 0, image7color.Yellow)
	frame.SetColor(1, 0, image7color.Orange)

	path := filepath.Join(t.TempDir(), "preview.png")
	if err := writePreview(path, frame); err != nil {
		t.Fatal(err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	got := []color.NRGBA{
		color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA),
		color.NRGBAModel.Convert(img.At(1, 0)).(color.NRGBA),
	}
	want := []color.NRGBA{{255, 255, 0, 255}, {255, 128, 0, 255}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("preview colors (-want +got):\n%s", diff)
	}
}
