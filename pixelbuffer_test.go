package kinectlite

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPixelBuffer(t *testing.T) {
	buf, err := NewPixelBuffer(4, 3)
	require.NoError(t, err)

	assert.Len(t, buf.Pix, 4*3*BytesPerPixel)
	assert.Equal(t, image.Rect(0, 0, 4, 3), buf.Bounds())

	_, err = NewPixelBuffer(-1, 3)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestPixelBufferSetAndRead(t *testing.T) {
	buf, err := NewPixelBuffer(3, 2)
	require.NoError(t, err)

	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	buf.SetRGB(4, c)

	assert.Equal(t, 4*BytesPerPixel, buf.Offset(1, 1))
	assert.Equal(t, c, buf.RGBAt(1, 1))
	assert.Equal(t, c, buf.At(1, 1))

	// outside the bounds reads as transparent black
	assert.Equal(t, color.RGBA{}, buf.At(3, 0))
}
