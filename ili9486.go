// Package ili9486 controls an ILI9486 TFT LCD display via SPI.
//
// The ILI9486 is a 320x480 RGB controller. This driver configures it in
// 18-bit pixel mode and streams 3 bytes per pixel.
//
// See the examples for how to use this package.
package ili9486

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/flavioheleno/ili9486/imagergb"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"tinygo.org/x/drivers"
)

const (
	_SLPIN    = 0x10
	_SLPOUT   = 0x11
	_INVOFF   = 0x20
	_INVON    = 0x21
	_DISPOFF  = 0x28
	_DISPON   = 0x29
	_CASET    = 0x2A
	_PASET    = 0x2B
	_RAMWR    = 0x2C
	_MADCTL   = 0x36
	_PIXFMT   = 0x3A
	_RDPIXFMT = 0x0C
	_IFMODE   = 0xB0
	_PWCTR3   = 0xC2
	_VMCTR1   = 0xC5
	_GMCTRP1  = 0xE0
	_GMCTRN1  = 0xE1
	_DGMCTR   = 0xE2
)

const (
	// DefaultWidth and DefaultHeight are the native panel resolution.
	DefaultWidth  = 320
	DefaultHeight = 480

	// DefaultChunkSize is the largest payload written in a single SPI
	// transaction unless the bus reports a smaller limit.
	DefaultChunkSize = 4096

	// Frequency is the SPI clock used for the panel.
	Frequency = 64 * physic.MegaHertz
)

// Opts is the configuration for the ILI9486 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 320)
	H int // Height (default: 480)

	// ChunkSize bounds the bytes per SPI transaction (default: 4096)
	ChunkSize int

	// Optional hardware reset pin
	RST gpio.PinOut // Reset pin (optional, nil if not used)
}

// Dev is the device handle for the ILI9486 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinOut // Reset pin (optional)

	chunkSize int

	// Display geometry
	rect image.Rectangle

	// Pixel buffer, same bounds as rect
	buffer *imagergb.Image

	// Scratch space for serialized frames
	frame []byte

	// State
	halted bool
}

// NewSPI creates a new ILI9486 device connected via SPI.
//
// The SPI port is configured for 64MHz, Mode2 (CPOL=1, CPHA=0), MSB first,
// 8-bit transfers. The dc (Data/Command) GPIO pin must be provided.
//
// The panel is not touched until Begin is called.
//
// opts can be nil to use defaults (320x480 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("ili9486: dc pin is required")
	}
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	c, err := p.Connect(Frequency, spi.Mode2, 8)
	if err != nil {
		return nil, err
	}
	return newDev(c, dc, o), nil
}

func newDev(c conn.Conn, dc gpio.PinOut, o Opts) *Dev {
	chunk := o.ChunkSize
	if l, ok := c.(conn.Limits); ok {
		if m := l.MaxTxSize(); m > 0 && m < chunk {
			chunk = m
		}
	}
	rect := image.Rect(0, 0, o.W, o.H)
	return &Dev{
		c:         c,
		dc:        dc,
		rst:       o.RST,
		chunkSize: chunk,
		rect:      rect,
		buffer:    imagergb.NewImage(rect),
	}
}

// withDefaults validates the options and fills in unset values.
func (o *Opts) withDefaults() (Opts, error) {
	r := Opts{W: DefaultWidth, H: DefaultHeight, ChunkSize: DefaultChunkSize}
	if o == nil {
		return r, nil
	}
	if o.W != 0 {
		r.W = o.W
	}
	if o.H != 0 {
		r.H = o.H
	}
	if o.ChunkSize != 0 {
		r.ChunkSize = o.ChunkSize
	}
	r.RST = o.RST

	// Size reports the dimensions as int16.
	if r.W < 1 || r.W > math.MaxInt16 {
		return r, errors.New("ili9486: width must be between 1 and 32767")
	}
	if r.H < 1 || r.H > math.MaxInt16 {
		return r, errors.New("ili9486: height must be between 1 and 32767")
	}
	if r.ChunkSize < 0 {
		return r, errors.New("ili9486: chunk size must be positive")
	}
	if r.RST == gpio.INVALID {
		r.RST = nil
	}
	return r, nil
}

// Begin resets the panel and loads the initialization program. It must be
// called once before the display shows anything, and again after Halt.
func (d *Dev) Begin() error {
	if err := d.Reset(); err != nil {
		return err
	}
	if err := d.init(); err != nil {
		return err
	}
	d.halted = false
	return nil
}

// Reset pulses the hardware reset line: high, low, high.
// It does nothing when no reset pin is configured.
func (d *Dev) Reset() error {
	if d.rst == nil {
		return nil
	}
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("ili9486: failed to pull RST high: %w", err)
	}
	time.Sleep(5 * time.Millisecond)

	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("ili9486: failed to pull RST low: %w", err)
	}
	time.Sleep(20 * time.Millisecond)

	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("ili9486: failed to pull RST high: %w", err)
	}
	time.Sleep(150 * time.Millisecond)
	return nil
}

// initStep is one register write of the initialization program.
type initStep struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// Positive gamma, then negative and digital gamma which share a curve.
var (
	gammaPositive = []byte{0x0F, 0x1F, 0x1C, 0x0C, 0x0F, 0x08, 0x48, 0x98, 0x37, 0x0A, 0x13, 0x04, 0x11, 0x0D, 0x00}
	gammaNegative = []byte{0x0F, 0x32, 0x2E, 0x0B, 0x0D, 0x05, 0x47, 0x75, 0x37, 0x06, 0x10, 0x03, 0x24, 0x20, 0x00}
)

// initProgram is panel specific and must be sent in this exact order.
var initProgram = []initStep{
	{cmd: _IFMODE, data: []byte{0x00}},
	{cmd: _SLPOUT, delay: 20 * time.Millisecond},
	{cmd: _PIXFMT, data: []byte{0x66}},   // 18 bits per pixel
	{cmd: _RDPIXFMT, data: []byte{0x66}}, // 18 bits per pixel
	{cmd: _PWCTR3, data: []byte{0x44}},
	{cmd: _VMCTR1, data: []byte{0x00, 0x00, 0x00, 0x00}},
	{cmd: _GMCTRP1, data: gammaPositive},
	{cmd: _GMCTRN1, data: gammaNegative},
	{cmd: _DGMCTR, data: gammaNegative},
	{cmd: _MADCTL, data: []byte{0x88}}, // MY | BGR
	{cmd: _SLPOUT},
	{cmd: _DISPON},
}

// init sends the initialization program to the display.
func (d *Dev) init() error {
	for _, s := range initProgram {
		if err := d.Command(s.cmd); err != nil {
			return err
		}
		if len(s.data) != 0 {
			if err := d.Data(s.data...); err != nil {
				return err
			}
		}
		if s.delay != 0 {
			time.Sleep(s.delay)
		}
	}
	return nil
}

// Command sends bytes with the D/C line low.
func (d *Dev) Command(cmds ...byte) error {
	return d.send(cmds, false)
}

// Data sends bytes with the D/C line high.
func (d *Dev) Data(data ...byte) error {
	return d.send(data, true)
}

// send drives the D/C line then writes b in transactions of at most
// chunkSize bytes.
func (d *Dev) send(b []byte, isData bool) error {
	if err := d.dc.Out(gpio.Level(isData)); err != nil {
		return err
	}
	for len(b) != 0 {
		n := len(b)
		if d.chunkSize > 0 && n > d.chunkSize {
			n = d.chunkSize
		}
		if err := d.c.Tx(b[:n], nil); err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// SetWindow defines the inclusive pixel rectangle filled by subsequent Data
// writes and arms the memory write. Coordinates are not validated.
func (d *Dev) SetWindow(x0, y0, x1, y1 uint16) error {
	if err := d.Command(_CASET); err != nil {
		return err
	}
	if err := d.Data(byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.Command(_PASET); err != nil {
		return err
	}
	if err := d.Data(byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	return d.Command(_RAMWR)
}

// SetFullWindow sets the addressing window to the whole panel.
func (d *Dev) SetFullWindow() error {
	return d.SetWindow(0, 0, uint16(d.rect.Dx()-1), uint16(d.rect.Dy()-1))
}

// Display writes the internal buffer to the whole panel.
func (d *Dev) Display() error {
	return d.DisplayImage(d.buffer)
}

// DisplayImage writes img to the whole panel. img should have the panel's
// dimensions; it is read from img.Bounds().Min and pixels outside img are
// sent as black.
func (d *Dev) DisplayImage(img image.Image) error {
	if d.halted {
		return errors.New("ili9486: halted")
	}
	if err := d.SetFullWindow(); err != nil {
		return err
	}
	r := d.rect.Add(img.Bounds().Min)
	d.frame = appendFrame(d.frame[:0], img, r)
	return d.Data(d.frame...)
}

// Clear fills the internal buffer with c. The zero value is black.
func (d *Dev) Clear(c imagergb.RGB) {
	d.buffer.Fill(c)
}

// Buffer returns the internal frame buffer. Drawing into it has no visible
// effect until Display is called.
func (d *Dev) Buffer() *imagergb.Image {
	return d.buffer
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return imagergb.RGBModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw draws src into the internal buffer and sends only the dst rectangle
// to the panel.
// It implements display.Drawer.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("ili9486: halted")
	}

	// draw.Draw clips dst itself and moves sp along with it.
	r := dst.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	draw.Draw(d.buffer, dst, src, sp, draw.Src)

	if err := d.SetWindow(uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Max.X-1), uint16(r.Max.Y-1)); err != nil {
		return err
	}
	d.frame = appendFrame(d.frame[:0], d.buffer, r)
	return d.Data(d.frame...)
}

// Size returns the display size in pixels.
// Together with SetPixel and Display it implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel sets a pixel of the internal buffer. Alpha is ignored.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	d.buffer.SetRGB(int(x), int(y), imagergb.RGB{R: c.R, G: c.G, B: c.B})
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errors.New("ili9486: halted")
	}
	mode := byte(_INVOFF)
	if invert {
		mode = _INVON
	}
	return d.Command(mode)
}

// Halt turns the display off and puts the controller to sleep.
// After calling Halt, drawing fails until Begin is called again.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.Command(_DISPOFF); err != nil {
		return err
	}
	return d.Command(_SLPIN)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ili9486.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

var (
	_ display.Drawer    = &Dev{}
	_ drivers.Displayer = &Dev{}
)
