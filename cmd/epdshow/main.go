// Command epdshow dithers images onto a GDEP073E01 Spectra 6 panel.
//
// Hardware Setup:
//
//	Panel      Raspberry Pi
//	GND        GND
//	VCC        3.3V
//	SCK        GPIO11 (SPI0 CLK)
//	DIN        GPIO10 (SPI0 MOSI)
//	CS         GPIO8 (SPI0 CE0)
//	DC         GPIO25 (configurable)
//	RST        GPIO17 (configurable)
//	BUSY       GPIO24 (configurable)
//
// Examples:
//
//	epdshow show --strategy fs photo.jpg
//	epdshow show --dry-run --preview out.png --dump out.zst photo.jpg
//	epdshow replay out.zst
//	epdshow clear --color white
//	epdshow sleep
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFlags(0)

	app := &cli.App{
		Name:  "epdshow",
		Usage: "show images on a Spectra 6 e-paper panel",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "spi",
				Usage:   "SPI port name, empty for the first one",
				EnvVars: []string{"EPD_SPI"},
			},
			&cli.StringFlag{
				Name:    "dc",
				Value:   "GPIO25",
				Usage:   "data/command pin",
				EnvVars: []string{"EPD_DC"},
			},
			&cli.StringFlag{
				Name:    "rst",
				Value:   "GPIO17",
				Usage:   "reset pin, empty if not wired",
				EnvVars: []string{"EPD_RST"},
			},
			&cli.StringFlag{
				Name:    "busy",
				Value:   "GPIO24",
				Usage:   "busy pin, empty if not wired",
				EnvVars: []string{"EPD_BUSY"},
			},
			&cli.IntFlag{
				Name:    "width",
				Aliases: []string{"x"},
				Value:   800,
				EnvVars: []string{"EPD_WIDTH"},
			},
			&cli.IntFlag{
				Name:    "height",
				Aliases: []string{"y"},
				Value:   480,
				EnvVars: []string{"EPD_HEIGHT"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   30 * time.Second,
				Usage:   "maximum wait on the busy pin",
				EnvVars: []string{"EPD_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log driver timings",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "dither an image and display it",
				ArgsUsage: "<image>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Value:   "fs",
						Usage:   "bayer, fs or halftone",
					},
					&cli.IntFlag{
						Name:  "tile",
						Value: 3,
						Usage: "halftone tile size, 2 or 3",
					},
					&cli.Float64Flag{
						Name:  "brightness",
						Usage: "brightness change in percent, -100 to 100",
					},
					&cli.Float64Flag{
						Name:  "contrast",
						Usage: "contrast change in percent, -100 to 100",
					},
					&cli.Float64Flag{
						Name:  "saturation",
						Usage: "saturation change in percent, -100 to 500",
					},
					&cli.StringFlag{
						Name:  "preview",
						Usage: "write the dithered frame as PNG",
					},
					&cli.StringFlag{
						Name:  "dump",
						Usage: "write the packed frame, zstd compressed",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "do not touch the hardware",
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "log the mean CIEDE2000 error of the dithered frame",
					},
				},
				Action: show,
			},
			{
				Name:  "clear",
				Usage: "fill the panel with one color",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "color",
						Aliases: []string{"c"},
						Value:   "white",
						Usage:   "r,g,b tuple, hex code or SVG color name",
					},
				},
				Action: clearPanel,
			},
			{
				Name:      "replay",
				Usage:     "display a frame written by show --dump",
				ArgsUsage: "<file.zst>",
				Action:    replay,
			},
			{
				Name:   "sleep",
				Usage:  "put the panel in deep sleep",
				Action: sleepPanel,
			},
		},
		Before: preProcess,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
