// Package gdep073e01 controls a GDEP073E01 Spectra 6 e-paper panel via SPI.
//
// The GDEP073E01 is a 7.3" 800×480 reflective panel able to show six colors:
// white, black, yellow, red, green and blue. This driver implements the
// display.Drawer interface from periph.io and the dither.Sink interface, so
// arbitrary RGB drawing can be dithered down to the panel palette.
//
// # Display Characteristics
//
// - 4 bits per pixel on the wire, two pixels per byte, even column first
// - Full refresh only; a refresh takes tens of seconds
// - The image stays visible without power, so Halt puts the panel to sleep
// - A BUSY line reports when the controller is working
//
// # Hardware Connection
//
// Connect the panel to your system via SPI:
//
//	Panel Pin   → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	DIN         → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	DC          → GPIO (any available pin)
//	RST         → GPIO, optional
//	BUSY        → GPIO input, optional
//
// # Basic Usage
//
// Example of dithering an image onto the panel:
//
//	package main
//
//	import (
//		"image"
//		"log"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/gdep073e01"
//		"periph.io/x/devices/v3/gdep073e01/dither"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//		p, err := spireg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer p.Close()
//
//		dev, err := gdep073e01.NewSPI(p, gpioreg.ByName("GPIO25"), &gdep073e01.Opts{
//			RST:  gpioreg.ByName("GPIO17"),
//			Busy: gpioreg.ByName("GPIO24"),
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		d := dither.NewDrawer(dev, dither.NewFloydSteinberg(dev.Bounds().Dx()))
//		if err := d.Draw(dev.Bounds(), img, image.Point{}); err != nil {
//			log.Fatal(err)
//		}
//		if err := dev.Flush(); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Drawing Modes
//
// ## Dithered
//
// Wrap the Dev in a dither.Drawer. Pixels land in the frame buffer and are
// sent by Flush.
//
// ## Nearest Color
//
// Draw maps every pixel to the nearest native color and flushes:
//
//	dev.Draw(dev.Bounds(), myImage, image.Point{})
//
// ## Packed Frame
//
// Write replaces the frame with packed bytes and flushes:
//
//	pixels := make([]byte, 800*480/2) // 192000 bytes
//	dev.Write(pixels)
//
// # Sleep
//
// Sleep and Halt power the panel off and enter deep sleep. Every operation
// then fails with ErrHalted until Init is called again.
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
package gdep073e01
