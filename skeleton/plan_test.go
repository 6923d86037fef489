package skeleton

import (
	"errors"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-kinectlite"
	"github.com/swdee/go-kinectlite/projection"
)

var errUnmappable = errors.New("unmappable")

// pixelMapper treats the X and Y of a skeleton point as pixel coordinates,
// points with a negative Z can not be mapped
type pixelMapper struct{}

func (pixelMapper) MapSkeletonPoint(p r3.Vector, _ kinectlite.StreamType) (projection.Point, error) {
	if p.Z < 0 {
		return projection.Point{}, errUnmappable
	}
	return projection.Point{X: p.X, Y: p.Y}, nil
}

var frame640 = projection.NewFrame(640, 480)

func newTestPlanner() *Planner {
	return NewPlanner(projection.NewProjector(pixelMapper{}, kinectlite.DepthStream))
}

// trackedSkeleton returns a fully tracked skeleton with every joint on the
// canvas at a distinct position
func trackedSkeleton(id int) kinectlite.Skeleton {
	s := kinectlite.NewSkeleton(id, kinectlite.SkeletonTracked, r3.Vector{X: 300, Y: 200, Z: 2})

	for i := range s.Joints {
		s.Joints[i].Position = r3.Vector{X: float64(10 + i*20), Y: float64(20 + i*10), Z: 2}
		s.Joints[i].TrackingState = kinectlite.JointTracked
	}

	return s
}

func TestPlanFullyTracked(t *testing.T) {
	plan, err := newTestPlanner().Plan(trackedSkeleton(7), frame640, frame640)
	require.NoError(t, err)

	assert.Equal(t, 7, plan.TrackingID)
	assert.Len(t, plan.Markers, kinectlite.JointCount)
	assert.Len(t, plan.Segments, kinectlite.JointCount-1)

	// segment endpoints are the joint positions
	seg := plan.Segments[0]
	assert.Equal(t, kinectlite.Spine, seg.Bone.Child)
	assert.Equal(t, projection.Point{X: 10, Y: 20}, seg.From)
	assert.Equal(t, projection.Point{X: 30, Y: 30}, seg.To)
}

func TestPlanScalesToCanvas(t *testing.T) {
	s := trackedSkeleton(1)
	plan, err := newTestPlanner().Plan(s, frame640, projection.NewFrame(1280, 960))
	require.NoError(t, err)

	assert.Equal(t, projection.Point{X: 20, Y: 40}, plan.Markers[0])
}

func TestPlanNotTrackedJointDropsBones(t *testing.T) {
	s := trackedSkeleton(1)
	s.Joints[kinectlite.ElbowLeft].TrackingState = kinectlite.JointNotTracked
	s.Joints[kinectlite.KneeRight].TrackingState = kinectlite.JointInferred

	plan, err := newTestPlanner().Plan(s, frame640, frame640)
	require.NoError(t, err)

	// inferred joints are still drawn, the not tracked one is not
	assert.Len(t, plan.Markers, kinectlite.JointCount-1)

	// ShoulderLeft-ElbowLeft and ElbowLeft-WristLeft are dropped
	assert.Len(t, plan.Segments, kinectlite.JointCount-3)

	for _, seg := range plan.Segments {
		assert.NotEqual(t, kinectlite.ElbowLeft, seg.Bone.Parent)
		assert.NotEqual(t, kinectlite.ElbowLeft, seg.Bone.Child)
	}
}

func TestPlanNeverDrawsNotTrackedEndpoints(t *testing.T) {
	planner := newTestPlanner()

	// knock out every second joint in turn
	for offset := 0; offset < 2; offset++ {
		s := trackedSkeleton(1)
		for i := offset; i < kinectlite.JointCount; i += 2 {
			s.Joints[i].TrackingState = kinectlite.JointNotTracked
		}

		plan, err := planner.Plan(s, frame640, frame640)
		require.NoError(t, err)

		for _, seg := range plan.Segments {
			assert.NotEqual(t, kinectlite.JointNotTracked, s.Joints[seg.Bone.Parent].TrackingState)
			assert.NotEqual(t, kinectlite.JointNotTracked, s.Joints[seg.Bone.Child].TrackingState)
		}
	}
}

func TestPlanOffCanvasEndpointDropsSegment(t *testing.T) {
	s := trackedSkeleton(1)
	// hand beyond the right edge, wrist exactly on the exclusive bound
	s.Joints[kinectlite.HandLeft].Position = r3.Vector{X: 700, Y: 100, Z: 2}
	s.Joints[kinectlite.WristRight].Position = r3.Vector{X: 640, Y: 100, Z: 2}

	plan, err := newTestPlanner().Plan(s, frame640, frame640)
	require.NoError(t, err)

	assert.Len(t, plan.Markers, kinectlite.JointCount-2)

	// WristLeft-HandLeft, ElbowRight-WristRight and WristRight-HandRight
	assert.Len(t, plan.Segments, kinectlite.JointCount-1-3)
}

func TestPlanUnmappableJointIsUndrawable(t *testing.T) {
	s := trackedSkeleton(1)
	s.Joints[kinectlite.Head].Position.Z = -1

	plan, err := newTestPlanner().Plan(s, frame640, frame640)
	require.NoError(t, err)

	assert.Len(t, plan.Markers, kinectlite.JointCount-1)
	assert.Len(t, plan.Segments, kinectlite.JointCount-2)
}

func TestPlanPositionOnly(t *testing.T) {
	s := kinectlite.NewSkeleton(3, kinectlite.SkeletonPositionOnly, r3.Vector{X: 100, Y: 50, Z: 2})

	plan, err := newTestPlanner().Plan(s, frame640, frame640)
	require.NoError(t, err)

	assert.Equal(t, []projection.Point{{X: 100, Y: 50}}, plan.Markers)
	assert.Empty(t, plan.Segments)
	assert.True(t, plan.PositionOnly)
}

func TestPlanTrackedWithSingleJointIsNotPositionOnly(t *testing.T) {
	s := trackedSkeleton(4)

	for i := range s.Joints {
		if kinectlite.JointType(i) != kinectlite.Head {
			s.Joints[i].TrackingState = kinectlite.JointNotTracked
		}
	}

	plan, err := newTestPlanner().Plan(s, frame640, frame640)
	require.NoError(t, err)

	assert.Len(t, plan.Markers, 1)
	assert.Empty(t, plan.Segments)
	assert.False(t, plan.PositionOnly)
}

func TestPlanPositionOnlyOffCanvas(t *testing.T) {
	s := kinectlite.NewSkeleton(3, kinectlite.SkeletonPositionOnly, r3.Vector{X: -5, Y: 50, Z: 2})

	plan, err := newTestPlanner().Plan(s, frame640, frame640)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
}

func TestPlanNotTracked(t *testing.T) {
	s := trackedSkeleton(1)
	s.TrackingState = kinectlite.SkeletonNotTracked

	plan, err := newTestPlanner().Plan(s, frame640, frame640)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
}

func TestPlanDegenerateFrame(t *testing.T) {
	_, err := newTestPlanner().Plan(trackedSkeleton(1), projection.NewFrame(0, 480), frame640)
	assert.True(t, errors.Is(err, projection.ErrDegenerateFrame))

	_, err = newTestPlanner().Plan(trackedSkeleton(1), frame640, projection.NewFrame(640, 0))
	assert.True(t, errors.Is(err, projection.ErrDegenerateFrame))
}

func TestPlanFrame(t *testing.T) {
	frame := &kinectlite.SkeletonFrame{
		Skeletons: []kinectlite.Skeleton{
			kinectlite.NewSkeleton(0, kinectlite.SkeletonNotTracked, r3.Vector{}),
			trackedSkeleton(11),
			kinectlite.NewSkeleton(12, kinectlite.SkeletonPositionOnly, r3.Vector{X: 5, Y: 5, Z: 1}),
		},
	}

	plans, err := newTestPlanner().PlanFrame(frame, frame640, frame640)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, 11, plans[0].TrackingID)
	assert.Equal(t, 12, plans[1].TrackingID)
	assert.Len(t, plans[1].Markers, 1)
}
