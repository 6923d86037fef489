// Package sensor provides frame sources delivering the color, depth and
// skeleton streams of a Kinect style depth sensor.
package sensor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
)

// MaxChosenSkeletons is the number of skeletons the sensor can be asked to
// fully track at once
const MaxChosenSkeletons = 2

var (
	// ErrClosed is returned by a Source that has been closed
	ErrClosed = errors.New("sensor is closed")
	// ErrTooManyChosen is returned when more than MaxChosenSkeletons are
	// chosen for tracking
	ErrTooManyChosen = errors.New("too many skeletons chosen")
)

// Source delivers the frames of successive sensor ticks.  Every FrameSet
// returned must be closed by the caller once it has finished with the frames.
type Source interface {
	NextFrame(ctx context.Context) (*kinectlite.FrameSet, error)
}
