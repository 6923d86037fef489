package projection

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
)

// ErrBehindSensor is returned when a point can not be projected because it
// is not in front of the sensor
var ErrBehindSensor = errors.New("point is not in front of the sensor")

// Intrinsics are the pinhole camera parameters of one stream
type Intrinsics struct {
	// Width and Height of the stream resolution the parameters apply to
	Width  int
	Height int
	// FocalLength in pixels
	FocalLength float64
}

// DefaultDepthIntrinsics returns the nominal depth camera parameters at
// 640x480
func DefaultDepthIntrinsics() Intrinsics {
	return Intrinsics{
		Width:       640,
		Height:      480,
		FocalLength: 571.26,
	}
}

// DefaultColorIntrinsics returns the nominal color camera parameters at
// 640x480
func DefaultColorIntrinsics() Intrinsics {
	return Intrinsics{
		Width:       640,
		Height:      480,
		FocalLength: 531.15,
	}
}

// Resize returns the parameters for the stream running at another
// resolution, the field of view is unchanged
func (in Intrinsics) Resize(width, height int) Intrinsics {
	return Intrinsics{
		Width:       width,
		Height:      height,
		FocalLength: in.FocalLength * float64(width) / float64(in.Width),
	}
}

// PinholeMapper is a CoordinateMapper using an ideal pinhole camera model
// with the principal point at the image center.  Real devices supply their
// own calibrated mapper.
type PinholeMapper struct {
	Depth Intrinsics
	Color Intrinsics
}

// NewPinholeMapper returns a PinholeMapper using the nominal sensor
// parameters
func NewPinholeMapper() *PinholeMapper {
	return &PinholeMapper{
		Depth: DefaultDepthIntrinsics(),
		Color: DefaultColorIntrinsics(),
	}
}

// MapSkeletonPoint implements CoordinateMapper.  Sensor space has Y pointing
// up while image space has Y pointing down.
func (m *PinholeMapper) MapSkeletonPoint(p r3.Vector, stream kinectlite.StreamType) (Point, error) {

	if p.Z <= 0 {
		return Point{}, errors.Wrapf(ErrBehindSensor, "z=%.3f", p.Z)
	}

	in := m.Depth
	if stream == kinectlite.ColorStream {
		in = m.Color
	}

	cx := float64(in.Width) / 2
	cy := float64(in.Height) / 2

	return Point{
		X: cx + in.FocalLength*p.X/p.Z,
		Y: cy - in.FocalLength*p.Y/p.Z,
	}, nil
}

// Unproject maps a pixel of the depth stream with a distance in millimeters
// back into sensor space.  It is the inverse of MapSkeletonPoint for the
// depth stream.
func (m *PinholeMapper) Unproject(x, y float64, distanceMM int) r3.Vector {
	z := float64(distanceMM) / 1000
	cx := float64(m.Depth.Width) / 2
	cy := float64(m.Depth.Height) / 2

	return r3.Vector{
		X: (x - cx) * z / m.Depth.FocalLength,
		Y: (cy - y) * z / m.Depth.FocalLength,
		Z: z,
	}
}
