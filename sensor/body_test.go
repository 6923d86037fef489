package sensor

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/swdee/go-kinectlite"
)

func TestBodyWalksAroundCenter(t *testing.T) {
	b := Body{
		TrackingID: 1,
		State:      kinectlite.SkeletonTracked,
		Center:     r3.Vector{Z: 2},
		Amplitude:  0.5,
		Period:     4,
	}

	assert.InDelta(t, 0.0, b.PositionAt(0).X, 1e-9)
	assert.InDelta(t, 0.5, b.PositionAt(1).X, 1e-9)
	assert.InDelta(t, -0.5, b.PositionAt(3).X, 1e-9)
	assert.InDelta(t, 0.0, b.PositionAt(4).X, 1e-9)
	assert.Equal(t, 2.0, b.PositionAt(1).Z)
}

func TestBodyStandingStill(t *testing.T) {
	b := Body{Center: r3.Vector{X: 1, Z: 2}, Amplitude: 1}
	assert.Equal(t, r3.Vector{X: 1, Z: 2}, b.PositionAt(17))
}

func TestBodySkeletonJoints(t *testing.T) {
	b := Body{
		TrackingID: 5,
		State:      kinectlite.SkeletonTracked,
		Center:     r3.Vector{Z: 2},
	}

	s := b.SkeletonAt(0)
	assert.Equal(t, 5, s.TrackingID)
	assert.Equal(t, r3.Vector{Z: 2}, s.Joint(kinectlite.HipCenter).Position)

	head := s.Joint(kinectlite.Head).Position
	foot := s.Joint(kinectlite.FootLeft).Position
	assert.Greater(t, head.Y, foot.Y)
	assert.Len(t, s.TrackedJoints(), kinectlite.JointCount)
}

func TestBodyPositionOnlyHasNoJoints(t *testing.T) {
	b := Body{TrackingID: 2, State: kinectlite.SkeletonPositionOnly, Center: r3.Vector{Z: 3}}

	s := b.SkeletonAt(10)
	assert.Equal(t, r3.Vector{Z: 3}, s.Position)
	assert.Empty(t, s.TrackedOrInferredJoints())
}
