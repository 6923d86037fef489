package projection

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
)

var (
	// ErrDegenerateFrame is returned when a source or destination frame has
	// a zero or negative dimension
	ErrDegenerateFrame = errors.New("frame width and height must be greater than zero")
)

// Point is a 2D coordinate in pixels
type Point struct {
	X, Y float64
}

// Frame is the size of a 2D coordinate space, either a sensor stream's
// native resolution or the destination canvas
type Frame struct {
	Width  float64
	Height float64
}

// NewFrame returns a Frame for integer pixel dimensions
func NewFrame(width, height int) Frame {
	return Frame{Width: float64(width), Height: float64(height)}
}

// Valid returns true if both dimensions are greater than zero
func (f Frame) Valid() bool {
	return f.Width > 0 && f.Height > 0
}

// CoordinateMapper maps a point in sensor space to pixel coordinates in the
// native resolution of the given stream.  It is supplied by the sensor as it
// depends on the device calibration.
type CoordinateMapper interface {
	MapSkeletonPoint(p r3.Vector, stream kinectlite.StreamType) (Point, error)
}

// Scale maps value from the range [0, source] onto [0, dest]
func Scale(value, source, dest float64) float64 {
	return (value * dest) / source
}

// ScalePoint rescales each axis of p from the src frame to the dst frame
func ScalePoint(p Point, src, dst Frame) Point {
	return Point{
		X: Scale(p.X, src.Width, dst.Width),
		Y: Scale(p.Y, src.Height, dst.Height),
	}
}

// IsWithin returns true if the point lies on the frame, the upper bounds are
// exclusive
func IsWithin(p Point, dst Frame) bool {
	inX := 0 <= p.X && p.X < dst.Width
	inY := 0 <= p.Y && p.Y < dst.Height

	return inX && inY
}

// Projector converts skeleton points into destination canvas coordinates
type Projector struct {
	// Mapper converts sensor space into stream pixel space
	Mapper CoordinateMapper
	// Stream is the image stream skeleton points are mapped onto, its
	// resolution is the source frame passed to Project
	Stream kinectlite.StreamType
}

// NewProjector returns a Projector mapping points through the given stream
func NewProjector(mapper CoordinateMapper, stream kinectlite.StreamType) *Projector {
	return &Projector{
		Mapper: mapper,
		Stream: stream,
	}
}

// Project maps the 3D point onto the stream given by the src frame
// resolution, then rescales it onto the dst frame
func (p *Projector) Project(point r3.Vector, src, dst Frame) (Point, error) {

	if err := CheckFrames(src, dst); err != nil {
		return Point{}, err
	}

	mapped, err := p.Mapper.MapSkeletonPoint(point, p.Stream)

	if err != nil {
		return Point{}, errors.Wrapf(err, "mapping point to %s stream", p.Stream)
	}

	return ScalePoint(mapped, src, dst), nil
}

// CheckFrames returns ErrDegenerateFrame if either frame is not valid
func CheckFrames(src, dst Frame) error {
	if !src.Valid() {
		return errors.Wrapf(ErrDegenerateFrame, "source frame %gx%g", src.Width, src.Height)
	}

	if !dst.Valid() {
		return errors.Wrapf(ErrDegenerateFrame, "destination frame %gx%g", dst.Width, dst.Height)
	}

	return nil
}
