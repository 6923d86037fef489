package kinectlite

import (
	"sync"

	"github.com/pkg/errors"
)

// ColorBytesPerPixel is the number of bytes per pixel of a ColorFrame (BGRA32)
const ColorBytesPerPixel = 4

// StreamType selects one of the sensor's image streams
type StreamType int

const (
	DepthStream StreamType = iota
	ColorStream
)

func (s StreamType) String() string {
	if s == ColorStream {
		return "color"
	}
	return "depth"
}

// ColorFrame is a color image as delivered by the sensor in BGRA32 layout
type ColorFrame struct {
	Width  int
	Height int
	Pixels []byte
}

// ToPixelBuffer converts the BGRA32 color frame into an RGB PixelBuffer
func (f *ColorFrame) ToPixelBuffer() (*PixelBuffer, error) {

	if f.Width < 0 || f.Height < 0 || len(f.Pixels) != f.Width*f.Height*ColorBytesPerPixel {
		return nil, errors.Wrapf(ErrShapeMismatch, "color frame %dx%d has %d bytes",
			f.Width, f.Height, len(f.Pixels))
	}

	buf, err := NewPixelBuffer(f.Width, f.Height)

	if err != nil {
		return nil, err
	}

	total := f.Width * f.Height

	for i := 0; i < total; i++ {
		src := i * ColorBytesPerPixel
		dst := i * BytesPerPixel

		buf.Pix[dst+0] = f.Pixels[src+2]
		buf.Pix[dst+1] = f.Pixels[src+1]
		buf.Pix[dst+2] = f.Pixels[src+0]
	}

	return buf, nil
}

// DepthFrame is a depth image as delivered by the sensor
type DepthFrame struct {
	Width  int
	Height int
	Pixels []DepthPixel
	// Range holds the sentinel values the stream reported for this frame
	Range DepthRange
}

// FrameSet is the tuple of frames delivered for a single sensor tick.  Any
// of the frames may be nil if the sensor did not deliver it in time.
type FrameSet struct {
	Color    *ColorFrame
	Depth    *DepthFrame
	Skeleton *SkeletonFrame

	release func()
	once    sync.Once
}

// NewFrameSet returns a FrameSet that calls release once when closed, release
// may be nil
func NewFrameSet(color *ColorFrame, depth *DepthFrame, skeleton *SkeletonFrame,
	release func()) *FrameSet {

	return &FrameSet{
		Color:    color,
		Depth:    depth,
		Skeleton: skeleton,
		release:  release,
	}
}

// AllUpdated returns true if all three frames are present
func (f *FrameSet) AllUpdated() bool {
	return f.Color != nil && f.Depth != nil && f.Skeleton != nil
}

// Close hands the frames back to the frame source.  It is safe to call more
// than once, the frames must not be used afterwards.
func (f *FrameSet) Close() error {
	f.once.Do(func() {
		if f.release != nil {
			f.release()
		}
		f.Color = nil
		f.Depth = nil
		f.Skeleton = nil
	})
	return nil
}
