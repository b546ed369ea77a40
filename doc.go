// Package ili9486 controls an ILI9486 TFT LCD display via SPI.
//
// The ILI9486 is a 320×480 RGB LCD controller. This driver implements the
// display.Drawer interface from periph.io and the drivers.Displayer interface
// from TinyGo.
//
// # Display Characteristics
//
// - 18-bit color (6 bits per channel), sent as 3 bytes per pixel
// - Native resolution 320×480 (portrait)
// - Rectangular addressing window for full or partial updates
// - Display inversion
//
// # Hardware Connection
//
// Connect the ILI9486 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V (or 5V depending on the module)
//	SCLK        → SPI Clock (SCLK)
//	MOSI        → SPI Data (MOSI)
//	DC / RS     → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RST         → Optional: GPIO for hardware reset
//
// The bus runs at 64MHz in SPI mode 2, most significant bit first.
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"github.com/flavioheleno/ili9486"
//		"github.com/flavioheleno/ili9486/imagergb"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Get Data/Command and reset GPIO pins
//		dcPin := gpioreg.ByName("GPIO24")
//		rstPin := gpioreg.ByName("GPIO25")
//
//		// Create device
//		dev, _ := ili9486.NewSPI(spiBus, dcPin, &ili9486.Opts{RST: rstPin})
//		defer dev.Halt()
//
//		// Reset and initialize the panel
//		dev.Begin()
//
//		// Fill the frame buffer and send it
//		dev.Clear(imagergb.RGB{R: 255})
//		dev.Display()
//	}
//
// # Hardware Reset
//
// When RST is provided the driver pulses it during Begin: high for 5ms, low
// for 20ms, then high followed by a 150ms wait. Without RST the panel must be
// reset by other means, such as power-on.
//
// # Drawing Modes
//
// ## Full-Frame Update
//
// Display sends the internal buffer, DisplayImage sends any image.Image of
// the panel's size. Both rewrite the whole panel:
//
//	draw.Draw(dev.Buffer(), dev.Bounds(), img, image.Point{}, draw.Src)
//	dev.Display()
//
// ## Partial Update
//
// Draw updates the internal buffer and only transfers the destination
// rectangle:
//
//	dev.Draw(image.Rect(10, 10, 50, 50), image.NewUniform(color.White), image.Point{})
//
// SetWindow followed by Data can be used to stream raw pixels into any
// rectangle.
//
// # Colors
//
// The buffer keeps 8 bits per channel (imagergb.RGB). When sent, every channel
// is masked with 0xFC since the panel only uses the 6 most significant bits.
//
// # Concurrency
//
// A Dev is not safe for concurrent use. The D/C line and the addressing window
// are shared state, so callers must serialize all calls.
package ili9486
