package kinectlite

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// BytesPerPixel is the number of bytes for each pixel in a PixelBuffer
const BytesPerPixel = 3

// ErrShapeMismatch is returned when a buffer length does not agree with
// its declared width and height
var ErrShapeMismatch = errors.New("buffer size does not match width x height")

// PixelBuffer is a row-major RGB image, 3 bytes per pixel
type PixelBuffer struct {
	Width  int
	Height int
	// Pix holds the pixel data as R, G, B triples
	Pix []byte
}

// NewPixelBuffer allocates a black PixelBuffer of the given dimensions
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width < 0 || height < 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "invalid dimensions %dx%d", width, height)
	}

	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}, nil
}

// Offset returns the index of the first byte of the pixel at (x, y)
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.Width + x) * BytesPerPixel
}

// SetRGB writes the color for pixel index i
func (b *PixelBuffer) SetRGB(i int, c color.RGBA) {
	idx := i * BytesPerPixel
	b.Pix[idx+0] = c.R
	b.Pix[idx+1] = c.G
	b.Pix[idx+2] = c.B
}

// RGBAt returns the color of the pixel at (x, y)
func (b *PixelBuffer) RGBAt(x, y int) color.RGBA {
	idx := b.Offset(x, y)
	return color.RGBA{R: b.Pix[idx], G: b.Pix[idx+1], B: b.Pix[idx+2], A: 255}
}

// ColorModel implements image.Image
func (b *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image
func (b *PixelBuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(b.Bounds()) {
		return color.RGBA{}
	}
	return b.RGBAt(x, y)
}
