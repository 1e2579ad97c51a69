package gdep073e01

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/gdep073e01/dither"
	"periph.io/x/devices/v3/gdep073e01/image7color"
)

// Panel limits and defaults.
const (
	MaxWidth  = 800
	MaxHeight = 480

	DefaultBusyTimeout = 30 * time.Second
)

const (
	resetDelay = 10 * time.Millisecond
	busyPoll   = 10 * time.Millisecond
)

// Controller commands.
const (
	cmdPanelSetting   = 0x00
	cmdPowerSetting   = 0x01
	cmdPowerOff       = 0x02
	cmdPowerOffSeq    = 0x03
	cmdPowerOn        = 0x04
	cmdBoosterSoft1   = 0x05
	cmdBoosterSoft2   = 0x06
	cmdDeepSleep      = 0x07
	cmdBoosterSoft3   = 0x08
	cmdDataStart      = 0x10
	cmdDisplayRefresh = 0x12
	cmdPLL            = 0x30
	cmdVCOMInterval   = 0x50
	cmdTCON           = 0x60
	cmdResolution     = 0x61
	cmdVDCS           = 0x84
	cmdCMDH           = 0xAA
	cmdPowerSaving    = 0xE3
)

// deepSleepCheck is the magic byte the controller requires to enter deep sleep.
const deepSleepCheck = 0xA5

var (
	// ErrBusyTimeout is returned when the BUSY line stays high longer than
	// Opts.BusyTimeout.
	ErrBusyTimeout = errors.New("gdep073e01: timeout waiting for busy pin")
	// ErrHalted is returned by operations on a sleeping panel.
	ErrHalted = errors.New("gdep073e01: halted")
)

// Opts is the configuration for the panel.
type Opts struct {
	W int // Width (default: 800, must be even and ≤800)
	H int // Height (default: 480, must be ≤480)

	RST  gpio.PinOut // Reset pin (optional)
	Busy gpio.PinIn  // BUSY pin, high while the controller works (optional)

	// BusyTimeout bounds every wait on the BUSY pin (default: 30s).
	BusyTimeout time.Duration

	// Logger receives debug timings. Nil disables logging.
	Logger *slog.Logger
}

// Dev is the device handle for a GDEP073E01 Spectra 6 panel.
//
// Dev buffers a full frame in memory. SetPixel, Fill and the dither.Drawer
// adapter only touch the buffer; Flush sends it and refreshes the panel.
type Dev struct {
	c    conn.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	timeout time.Duration
	log     *slog.Logger

	rect   image.Rectangle
	frame  *image7color.HorizontalNibble
	halted bool
}

var (
	_ display.Drawer = (*Dev)(nil)
	_ dither.Sink    = (*Dev)(nil)
)

// NewSPI returns a panel connected via SPI and initialized.
//
// The SPI port is configured for 10MHz, Mode0, 8-bit transfers. dc selects
// between command (low) and data (high) bytes.
//
// opts can be nil to use defaults (800x480, no reset or busy pin).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	o := *opts
	if o.W == 0 {
		o.W = MaxWidth
	}
	if o.H == 0 {
		o.H = MaxHeight
	}
	if o.W < 0 || o.W%2 != 0 || o.W > MaxWidth {
		return nil, fmt.Errorf("gdep073e01: width must be even and between 2 and %d", MaxWidth)
	}
	if o.H < 0 || o.H > MaxHeight {
		return nil, fmt.Errorf("gdep073e01: height must be between 1 and %d", MaxHeight)
	}
	if o.BusyTimeout <= 0 {
		o.BusyTimeout = DefaultBusyTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("gdep073e01: %w", err)
	}

	d := &Dev{
		c:       c,
		dc:      dc,
		rst:     o.RST,
		busy:    o.Busy,
		timeout: o.BusyTimeout,
		log:     o.Logger,
		rect:    image.Rect(0, 0, o.W, o.H),
	}
	d.frame = image7color.NewHorizontalNibble(d.rect)
	d.frame.Fill(image7color.White)

	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init resets the controller and sends the power-up sequence.
//
// It is also the only way to wake the panel after Sleep or Halt.
func (d *Dev) Init() error {
	if err := d.reset(); err != nil {
		return err
	}
	if err := d.waitIdle("reset"); err != nil {
		return err
	}

	w, h := d.rect.Dx(), d.rect.Dy()
	seq := []struct {
		cmd  byte
		data []byte
	}{
		{cmdCMDH, []byte{0x49, 0x55, 0x20, 0x08, 0x09, 0x18}},
		{cmdPowerSetting, []byte{0x3F}},
		{cmdPanelSetting, []byte{0x5F, 0x69}},
		{cmdPowerOffSeq, []byte{0x00, 0x54, 0x00, 0x44}},
		{cmdBoosterSoft1, []byte{0x40, 0x1F, 0x1F, 0x2C}},
		{cmdBoosterSoft2, []byte{0x6F, 0x1F, 0x17, 0x49}},
		{cmdBoosterSoft3, []byte{0x6F, 0x1F, 0x1F, 0x22}},
		{cmdPLL, []byte{0x08}},
		{cmdVCOMInterval, []byte{0x3F}},
		{cmdTCON, []byte{0x02, 0x00}},
		{cmdResolution, []byte{byte(w >> 8), byte(w), byte(h >> 8), byte(h)}},
		{cmdVDCS, []byte{0x01}},
		{cmdPowerSaving, []byte{0x2F}},
	}
	for _, s := range seq {
		if err := d.commandWithData(s.cmd, s.data); err != nil {
			return err
		}
	}

	if err := d.sendCommand(cmdPowerOn); err != nil {
		return err
	}
	if err := d.waitIdle("power on"); err != nil {
		return err
	}
	d.halted = false
	return nil
}

// reset pulses the reset line high, low, high.
func (d *Dev) reset() error {
	if d.rst == nil {
		return nil
	}
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := d.rst.Out(l); err != nil {
			return fmt.Errorf("gdep073e01: failed to drive RST %s: %w", l, err)
		}
		time.Sleep(resetDelay)
	}
	return nil
}

// waitIdle polls the BUSY pin until it goes low.
func (d *Dev) waitIdle(op string) error {
	if d.busy == nil {
		return nil
	}
	start := time.Now()
	deadline := start.Add(d.timeout)
	for d.busy.Read() == gpio.High {
		if !time.Now().Before(deadline) {
			d.log.Debug("busy timeout", "op", op, "timeout", d.timeout)
			return fmt.Errorf("%w after %s (%s)", ErrBusyTimeout, op, d.timeout)
		}
		time.Sleep(busyPoll)
	}
	d.log.Debug("busy wait", "op", op, "elapsed", time.Since(start))
	return nil
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx([]byte{cmd}, nil)
}

// sendData sends data bytes, split to the connection's transfer limit.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	limit := len(data)
	if l, ok := d.c.(conn.Limits); ok && l.MaxTxSize() > 0 {
		limit = l.MaxTxSize()
	}
	for len(data) > 0 {
		n := min(limit, len(data))
		if err := d.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (d *Dev) commandWithData(cmd byte, data []byte) error {
	if err := d.sendCommand(cmd); err != nil {
		return err
	}
	return d.sendData(data)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image7color.Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Frame returns the frame buffer. Changes show up on the next Flush.
func (d *Dev) Frame() *image7color.HorizontalNibble {
	return d.frame
}

// SetPixel sets one pixel of the frame buffer. Out of range pixels are
// ignored.
func (d *Dev) SetPixel(x, y int, c image7color.Color) error {
	if d.halted {
		return ErrHalted
	}
	d.frame.SetColor(x, y, c)
	return nil
}

// Fill sets every pixel of r in the frame buffer to c.
func (d *Dev) Fill(r image.Rectangle, c image7color.Color) error {
	if d.halted {
		return ErrHalted
	}
	r = r.Intersect(d.rect)
	if r == d.rect {
		d.frame.Fill(c)
		return nil
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.frame.SetColor(x, y, c)
		}
	}
	return nil
}

// Flush sends the frame buffer and refreshes the panel. It blocks until the
// refresh completes, which takes tens of seconds on this panel.
func (d *Dev) Flush() error {
	if d.halted {
		return ErrHalted
	}
	if err := d.commandWithData(cmdDataStart, d.frame.Pix); err != nil {
		return err
	}
	if err := d.commandWithData(cmdDisplayRefresh, []byte{0x00}); err != nil {
		return err
	}
	return d.waitIdle("refresh")
}

// Write replaces the whole frame with packed pixels, two per byte with the
// even column in the high nibble, and flushes.
// The data must be exactly d.Bounds().Dx() * d.Bounds().Dy() / 2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(pixels) != len(d.frame.Pix) {
		return 0, errors.New("gdep073e01: invalid buffer size")
	}
	copy(d.frame.Pix, pixels)
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw converts src to the nearest native colors, without dithering, and
// flushes. Use a dither.Drawer over the Dev for dithered output.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	// Fast path: a packed frame of the panel size.
	if srcImg, ok := src.(*image7color.HorizontalNibble); ok {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			copy(d.frame.Pix, srcImg.Pix)
			return d.Flush()
		}
	}
	draw.Draw(d.frame, dst, src, sp, draw.Src)
	return d.Flush()
}

// Sleep powers the panel off and puts the controller in deep sleep. Only Init
// wakes it up again.
func (d *Dev) Sleep() error {
	if err := d.commandWithData(cmdPowerOff, []byte{0x00}); err != nil {
		return err
	}
	if err := d.waitIdle("power off"); err != nil {
		return err
	}
	if err := d.commandWithData(cmdDeepSleep, []byte{deepSleepCheck}); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// Halt puts the panel to sleep. The image stays visible without power.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	return d.Sleep()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("gdep073e01.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
