package image7color

import (
	"image"
	"image/color"
	"testing"
)

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		name                string
		c                   Color
		wantR, wantG, wantB uint32
	}{
		{"black", Black, 0x0000, 0x0000, 0x0000},
		{"white", White, 0xFFFF, 0xFFFF, 0xFFFF},
		{"yellow", Yellow, 0xFFFF, 0xFFFF, 0x0000},
		{"red", Red, 0xFFFF, 0x0000, 0x0000},
		{"orange", Orange, 0xFFFF, 0x8080, 0x0000},
		{"blue", Blue, 0x0000, 0x0000, 0xFFFF},
		{"green", Green, 0x0000, 0xFFFF, 0x0000},
		{"unknown renders white", Color(0x7), 0xFFFF, 0xFFFF, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.wantR || g != tt.wantG || b != tt.wantB || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, ffff)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := Red.String(); got != "Red" {
		t.Errorf("Red.String() = %q, want %q", got, "Red")
	}
	if got := Color(9).String(); got != "Color(9)" {
		t.Errorf("Color(9).String() = %q, want %q", got, "Color(9)")
	}
}

func TestModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Color
	}{
		{"native passthrough", Orange, Orange},
		{"black", color.Black, Black},
		{"white", color.White, White},
		{"dark red", color.RGBA{0xC0, 0x10, 0x10, 0xFF}, Red},
		{"orange-ish", color.RGBA{0xF0, 0x90, 0x10, 0xFF}, Orange},
		{"navy", color.RGBA{0x10, 0x10, 0xA0, 0xFF}, Blue},
		{"lime", color.RGBA{0x20, 0xE0, 0x20, 0xFF}, Green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Model.Convert(tt.input).(Color)
			if got != tt.want {
				t.Errorf("Model.Convert(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewHorizontalNibble(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantPanic  bool
		wantStride int
		wantPixLen int
	}{
		{"800x480", image.Rect(0, 0, 800, 480), false, 400, 192000},
		{"4x2", image.Rect(0, 0, 4, 2), false, 2, 4},
		{"offset rect", image.Rect(10, 20, 14, 22), false, 2, 4},
		{"odd width panics", image.Rect(0, 0, 5, 2), true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if (r != nil) != tt.wantPanic {
					t.Errorf("panic = %v, want panic = %v", r != nil, tt.wantPanic)
				}
			}()

			img := NewHorizontalNibble(tt.rect)
			if tt.wantPanic {
				return
			}
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestHorizontalNibblePacking(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 4, 1))

	img.SetColor(0, 0, Black)
	img.SetColor(1, 0, White)
	img.SetColor(2, 0, Red)
	img.SetColor(3, 0, Blue)

	if img.Pix[0] != 0x01 {
		t.Errorf("Pix[0] = 0x%02X, want 0x01", img.Pix[0])
	}
	if img.Pix[1] != 0x35 {
		t.Errorf("Pix[1] = 0x%02X, want 0x35", img.Pix[1])
	}
}

func TestHorizontalNibbleSetGet(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 4, 2))

	rows := [][4]Color{
		{Black, White, Yellow, Red},
		{Orange, Blue, Green, White},
	}
	for y, row := range rows {
		for x, c := range row {
			img.SetColor(x, y, c)
		}
	}
	for y, row := range rows {
		for x, want := range row {
			if got := img.ColorAt(x, y); got != want {
				t.Errorf("ColorAt(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestHorizontalNibbleSetConverts(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{0xFF, 0xFF, 0xFF, 0xFF})
	img.Set(1, 0, Yellow)

	if c, ok := img.At(0, 0).(Color); !ok || c != White {
		t.Errorf("At(0, 0) = %v, want White", img.At(0, 0))
	}
	if got := img.ColorAt(1, 0); got != Yellow {
		t.Errorf("ColorAt(1, 0) = %v, want Yellow", got)
	}
}

func TestHorizontalNibbleFill(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 6, 3))
	img.SetColor(3, 1, Red)
	img.Fill(White)

	for i, b := range img.Pix {
		if b != 0x11 {
			t.Fatalf("Pix[%d] = 0x%02X, want 0x11", i, b)
		}
	}
}

func TestHorizontalNibbleOutOfBounds(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 4, 4))
	img.Fill(White)

	img.SetColor(-1, 0, Red)
	img.SetColor(0, -1, Red)
	img.SetColor(4, 0, Red)

	for i, b := range img.Pix {
		if b != 0x11 {
			t.Fatalf("out of bounds write changed Pix[%d] to 0x%02X", i, b)
		}
	}
	if got := img.ColorAt(4, 0); got != Black {
		t.Errorf("ColorAt(4, 0) = %v, want Black for out of bounds", got)
	}
}

func TestHorizontalNibbleOffsetRect(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(101, 50, 105, 52))

	img.SetColor(101, 50, Green)
	img.SetColor(102, 50, Blue)

	if img.Pix[0] != 0x65 {
		t.Errorf("Pix[0] = 0x%02X, want 0x65", img.Pix[0])
	}
	if got := img.ColorAt(102, 50); got != Blue {
		t.Errorf("ColorAt(102, 50) = %v, want Blue", got)
	}
}

func TestHorizontalNibblePixOffset(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 8, 2))

	tests := []struct {
		x, y   int
		offset int
		shift  uint
	}{
		{0, 0, 0, 4},
		{1, 0, 0, 0},
		{2, 0, 1, 4},
		{3, 0, 1, 0},
		{0, 1, 4, 4},
		{1, 1, 4, 0},
	}

	for _, tt := range tests {
		offset, shift := img.pixOffset(tt.x, tt.y)
		if offset != tt.offset || shift != tt.shift {
			t.Errorf("pixOffset(%d, %d) = (%d, %d), want (%d, %d)",
				tt.x, tt.y, offset, shift, tt.offset, tt.shift)
		}
	}
}
