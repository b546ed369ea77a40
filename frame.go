package ili9486

import (
	"image"
	"image/color"

	"github.com/flavioheleno/ili9486/imagergb"
)

// mask666 keeps the 6 most significant bits of a channel. In 18-bit mode
// the panel ignores the two low bits of every byte.
const mask666 = 0xFC

// appendFrame appends the pixels of img inside r to dst in the panel's wire
// format: rows top to bottom, columns left to right, one masked byte per
// channel in R, G, B order. Alpha is dropped without premultiplying.
// Exactly 3*r.Dx()*r.Dy() bytes are appended.
func appendFrame(dst []byte, img image.Image, r image.Rectangle) []byte {
	n := 3 * r.Dx() * r.Dy()
	if n <= 0 {
		return dst
	}
	dst = grow(dst, n)
	out := dst[len(dst)-n:]

	if src, ok := img.(*imagergb.Image); ok && r.In(src.Rect) {
		w := 3 * r.Dx()
		for y := r.Min.Y; y < r.Max.Y; y++ {
			i := src.PixOffset(r.Min.X, y)
			row := src.Pix[i : i+w]
			for j, b := range row {
				out[j] = b & mask666
			}
			out = out[w:]
		}
		return dst
	}

	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out[i] = c.R & mask666
			out[i+1] = c.G & mask666
			out[i+2] = c.B & mask666
			i += 3
		}
	}
	return dst
}

// grow extends b by n bytes, reallocating only when the capacity is short.
func grow(b []byte, n int) []byte {
	l := len(b) + n
	if l <= cap(b) {
		return b[:l]
	}
	nb := make([]byte, l)
	copy(nb, b)
	return nb
}
