package imagergb

import (
	"image"
	"image/color"
)

// RGB represents an opaque 24-bit color, 8 bits per channel.
type RGB struct {
	R, G, B uint8
}

// RGBA converts the RGB color to standard RGBA.
// Each 8-bit channel is scaled to 16-bit (0-65535).
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

// toRGB converts any color.Color to RGB. Alpha is dropped without
// premultiplying, so translucent colors keep their straight channel values.
func toRGB(c color.Color) color.Color {
	if v, ok := c.(RGB); ok {
		return v
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// RGBModel converts colors to RGB.
var RGBModel = color.ModelFunc(toRGB)

// Image is an RGB image where each pixel is stored as 3 consecutive bytes.
type Image struct {
	Pix    []byte          // Pixel data (R, G, B per pixel)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a new black Image with the specified bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	return &Image{
		Pix:    make([]byte, 3*w*h),
		Stride: 3 * w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return RGBModel
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGBAt(x, y)
}

// RGBAt returns the RGB color of the pixel at (x, y).
func (p *Image) RGBAt(x, y int) RGB {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return RGB{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return RGB{R: s[0], G: s[1], B: s[2]}
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB(x, y, RGBModel.Convert(c).(RGB))
}

// SetRGB sets the RGB color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB(x, y int, c RGB) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = c.R, c.G, c.B
}

// Fill sets every pixel of the image to c.
func (p *Image) Fill(c RGB) {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	row := p.Pix[:3*w]
	row[0], row[1], row[2] = c.R, c.G, c.B
	// Double the filled prefix until the row is covered.
	for n := 3; n < len(row); n *= 2 {
		copy(row[n:], row[:n])
	}
	for y := 1; y < h; y++ {
		copy(p.Pix[y*p.Stride:y*p.Stride+3*w], row)
	}
}

// SubImage returns an image representing the portion of the image p visible
// through r. The returned value shares pixels with the original image.
func (p *Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &Image{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Image{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}
