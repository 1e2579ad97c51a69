package main

import (
	"errors"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/gdep073e01"
	"periph.io/x/devices/v3/gdep073e01/dither"
	"periph.io/x/devices/v3/gdep073e01/image7color"
	"periph.io/x/host/v3"
)

// logger receives driver debug output. Set by preProcess.
var logger *slog.Logger

func preProcess(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if w := c.Int("width"); w <= 0 || w%2 != 0 || w > gdep073e01.MaxWidth {
		return fmt.Errorf("width must be even and between 2 and %d", gdep073e01.MaxWidth)
	}
	if h := c.Int("height"); h <= 0 || h > gdep073e01.MaxHeight {
		return fmt.Errorf("height must be between 1 and %d", gdep073e01.MaxHeight)
	}
	return nil
}

// openDev initializes the host and the panel. The returned port must be
// closed by the caller.
func openDev(c *cli.Context) (*gdep073e01.Dev, spi.PortCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize periph.io: %w", err)
	}

	dc, err := pinByName(c.String("dc"))
	if err != nil {
		return nil, nil, err
	}
	if dc == nil {
		return nil, nil, errors.New("the dc pin is required")
	}
	opts := &gdep073e01.Opts{
		W:           c.Int("width"),
		H:           c.Int("height"),
		BusyTimeout: c.Duration("timeout"),
		Logger:      logger,
	}
	rst, err := pinByName(c.String("rst"))
	if err != nil {
		return nil, nil, err
	}
	if rst != nil {
		opts.RST = rst
	}
	busy, err := pinByName(c.String("busy"))
	if err != nil {
		return nil, nil, err
	}
	if busy != nil {
		if err := busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return nil, nil, fmt.Errorf("failed to configure busy pin: %w", err)
		}
		opts.Busy = busy
	}

	p, err := spireg.Open(c.String("spi"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open SPI port: %w", err)
	}
	dev, err := gdep073e01.NewSPI(p, dc, opts)
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	log.Printf("Panel initialized: %v", dev)
	return dev, p, nil
}

// pinByName returns nil for an empty name.
func pinByName(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("GPIO pin %s not found", name)
	}
	return p, nil
}

func show(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("show: expected one image path")
	}
	path := c.Args().First()
	w, h := c.Int("width"), c.Int("height")

	kind, err := dither.ParseKind(c.String("strategy"))
	if err != nil {
		return err
	}
	s, err := dither.New(kind, dither.Opts{Width: w, Tile: c.Int("tile")})
	if err != nil {
		return err
	}

	img, err := loadImage(path, w, h, adjustments{
		brightness: c.Float64("brightness"),
		contrast:   c.Float64("contrast"),
		saturation: c.Float64("saturation"),
	})
	if err != nil {
		return fmt.Errorf("error loading '%s': %w", path, err)
	}

	// Dither straight into the panel frame, or into a detached one for a dry run.
	var (
		dev   *gdep073e01.Dev
		sink  dither.Sink
		frame *image7color.HorizontalNibble
	)
	if c.Bool("dry-run") {
		frame = image7color.NewHorizontalNibble(image.Rect(0, 0, w, h))
		sink = dither.ImageSink{Image: frame}
	} else {
		var p spi.PortCloser
		dev, p, err = openDev(c)
		if err != nil {
			return err
		}
		defer p.Close()
		frame = dev.Frame()
		sink = dev
	}

	d := dither.NewDrawer(sink, s)
	if err := d.Draw(frame.Rect, img, img.Bounds().Min); err != nil {
		return err
	}
	log.Printf("Dithered %s with %s", path, kind)

	if c.Bool("stats") {
		log.Printf("Mean CIEDE2000 error: %.2f", meanDeltaE(img, frame))
	}
	if out := c.String("preview"); out != "" {
		if err := writePreview(out, frame); err != nil {
			return err
		}
		log.Printf("Preview written to %s", out)
	}
	if out := c.String("dump"); out != "" {
		if err := writeDump(out, frame); err != nil {
			return err
		}
		log.Printf("Frame written to %s", out)
	}

	if dev == nil {
		return nil
	}
	log.Print("Refreshing panel")
	return dev.Flush()
}

func clearPanel(c *cli.Context) error {
	rgb, err := parseColor(c.String("color"))
	if err != nil {
		return fmt.Errorf("color: %w", err)
	}
	dev, p, err := openDev(c)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := dither.NewDrawer(dev, &dither.Bayer4x4{}).Clear(rgb); err != nil {
		return err
	}
	log.Printf("Clearing panel to %v", rgb)
	return dev.Flush()
}

func replay(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("replay: expected one dump file")
	}
	pix, err := readDump(c.Args().First())
	if err != nil {
		return err
	}
	dev, p, err := openDev(c)
	if err != nil {
		return err
	}
	defer p.Close()

	_, err = dev.Write(pix)
	return err
}

func sleepPanel(c *cli.Context) error {
	dev, p, err := openDev(c)
	if err != nil {
		return err
	}
	defer p.Close()
	return dev.Sleep()
}
