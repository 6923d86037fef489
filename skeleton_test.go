package kinectlite

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJointTypeNames(t *testing.T) {
	assert.Equal(t, "HipCenter", HipCenter.String())
	assert.Equal(t, "FootRight", FootRight.String())
	assert.Equal(t, "JointType(20)", JointType(JointCount).String())

	j, err := ParseJointType("handleft")
	require.NoError(t, err)
	assert.Equal(t, HandLeft, j)

	_, err = ParseJointType("Tail")
	assert.Error(t, err)
}

func TestJointStates(t *testing.T) {
	tracked := Joint{Type: Head, TrackingState: JointTracked}
	inferred := Joint{Type: FootLeft, TrackingState: JointInferred}
	missing := Joint{Type: Spine}

	assert.True(t, tracked.IsTracked())
	assert.True(t, inferred.IsTrackedOrInferred())
	assert.False(t, inferred.IsTracked())
	assert.False(t, missing.IsTrackedOrInferred())

	assert.True(t, tracked.IsNearModeJoint())
	assert.False(t, inferred.IsNearModeJoint())
}

func TestJointDistance(t *testing.T) {
	a := Joint{Position: r3.Vector{X: 1, Y: 2, Z: 2}}
	b := Joint{}
	assert.InDelta(t, 3.0, a.Distance(b), 1e-12)
}

func TestNewSkeletonLabelsJoints(t *testing.T) {
	s := NewSkeleton(7, SkeletonTracked, r3.Vector{Z: 2})

	for i, j := range s.Joints {
		assert.Equal(t, JointType(i), j.Type)
		assert.Equal(t, JointNotTracked, j.TrackingState)
	}
	assert.Equal(t, Head, s.Joint(Head).Type)
	assert.Empty(t, s.TrackedJoints())
	assert.Len(t, s.NearModeJoints(), 10)
}

func TestSkeletonJointFilters(t *testing.T) {
	s := NewSkeleton(1, SkeletonTracked, r3.Vector{})
	s.Joints[Head].TrackingState = JointTracked
	s.Joints[HandLeft].TrackingState = JointInferred

	assert.Len(t, s.TrackedJoints(), 1)
	assert.Len(t, s.TrackedOrInferredJoints(), 2)
}

func TestSkeletonFrameFilters(t *testing.T) {
	frame := &SkeletonFrame{Skeletons: []Skeleton{
		NewSkeleton(1, SkeletonNotTracked, r3.Vector{}),
		NewSkeleton(2, SkeletonPositionOnly, r3.Vector{}),
		NewSkeleton(3, SkeletonTracked, r3.Vector{}),
		NewSkeleton(4, SkeletonTracked, r3.Vector{}),
	}}

	assert.Len(t, frame.TrackedSkeletons(), 2)
	assert.Len(t, frame.PositionOnlySkeletons(), 1)
	assert.Len(t, frame.TrackedOrPositionOnlySkeletons(), 3)

	first, ok := frame.FirstTrackedSkeleton()
	require.True(t, ok)
	assert.Equal(t, 3, first.TrackingID)
	assert.True(t, frame.HasTrackedSkeleton())

	empty := &SkeletonFrame{}
	assert.False(t, empty.HasTrackedSkeleton())
}
