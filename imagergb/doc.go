// Package imagergb provides the 8-bit RGB image format used as the ILI9486
// frame buffer.
//
// Pixels are stored row-major as packed R, G, B byte triples, three bytes per
// pixel. The driver keeps the full 8 bits per channel in memory and drops the
// two least significant bits of every channel when the frame is sent to the
// panel in its 18-bit pixel mode.
//
// Memory layout example for a 2-pixel row:
//
//	Pixels: 0              1
//	Colors: (255, 0, 16)   (1, 2, 3)
//	Bytes:  FF 00 10       01 02 03
//
// This package provides:
//
// - RGB: A color type holding one 8-bit value per channel
// - RGBModel: A color model for converting standard Go colors to RGB
// - Image: A draw.Image implementation backed by packed RGB triples
//
// Example usage:
//
//	// Create a 320x480 image
//	img := imagergb.NewImage(image.Rect(0, 0, 320, 480))
//
//	// Set a pixel to orange
//	img.SetRGB(10, 20, imagergb.RGB{R: 255, G: 128})
//
//	// Fill everything with blue
//	img.Fill(imagergb.RGB{B: 255})
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package imagergb
