// Package image7color provides the packed frame format of 7-color ACeP and
// Spectra e-paper controllers such as the one driving the GDEP073E01.
//
// Each pixel is a 4-bit native color code and pixels are stored in horizontal
// nibble packing where each byte contains 2 pixels.
//
// Memory layout example for a 4-pixel row:
//
//	Pixels: 0      1      2     3
//	Colors: Black  White  Red   Blue
//	Codes:  0      1      3     5
//	Bytes:  0x01          0x35
//	        (0x01 = high nibble: Black, low nibble: White)
//	        (0x35 = high nibble: Red, low nibble: Blue)
//
// This package provides:
//
// - Color: the native color codes understood by the controller
// - Model: a color model mapping standard Go colors to the nearest Color
// - HorizontalNibble: an image.Image laid out exactly as the controller RAM
//
// Example usage:
//
//	// Create an 800x480 frame
//	img := image7color.NewHorizontalNibble(image.Rect(0, 0, 800, 480))
//
//	// Paint the background white and a single red pixel
//	img.Fill(image7color.White)
//	img.SetColor(10, 20, image7color.Red)
//
//	// Pix can be sent to the controller as is
//	_ = img.Pix
package image7color
