package sensor

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/swdee/go-kinectlite"
)

// standingPose holds the offset of every joint from the HipCenter of a
// person standing upright facing the sensor, in meters
var standingPose = [kinectlite.JointCount]r3.Vector{
	kinectlite.HipCenter:      {X: 0, Y: 0, Z: 0},
	kinectlite.Spine:          {X: 0, Y: 0.10, Z: 0},
	kinectlite.ShoulderCenter: {X: 0, Y: 0.45, Z: 0},
	kinectlite.Head:           {X: 0, Y: 0.65, Z: 0},
	kinectlite.ShoulderLeft:   {X: -0.18, Y: 0.42, Z: 0},
	kinectlite.ElbowLeft:      {X: -0.28, Y: 0.18, Z: 0},
	kinectlite.WristLeft:      {X: -0.33, Y: -0.04, Z: 0},
	kinectlite.HandLeft:       {X: -0.35, Y: -0.12, Z: 0},
	kinectlite.ShoulderRight:  {X: 0.18, Y: 0.42, Z: 0},
	kinectlite.ElbowRight:     {X: 0.28, Y: 0.18, Z: 0},
	kinectlite.WristRight:     {X: 0.33, Y: -0.04, Z: 0},
	kinectlite.HandRight:      {X: 0.35, Y: -0.12, Z: 0},
	kinectlite.HipLeft:        {X: -0.10, Y: -0.05, Z: 0},
	kinectlite.KneeLeft:       {X: -0.11, Y: -0.45, Z: 0},
	kinectlite.AnkleLeft:      {X: -0.12, Y: -0.85, Z: 0},
	kinectlite.FootLeft:       {X: -0.12, Y: -0.90, Z: -0.08},
	kinectlite.HipRight:       {X: 0.10, Y: -0.05, Z: 0},
	kinectlite.KneeRight:      {X: 0.11, Y: -0.45, Z: 0},
	kinectlite.AnkleRight:     {X: 0.12, Y: -0.85, Z: 0},
	kinectlite.FootRight:      {X: 0.12, Y: -0.90, Z: -0.08},
}

// swingingJoints are moved forward and back as the body walks, the sign
// sets which way each joint swings
var swingingJoints = map[kinectlite.JointType]float64{
	kinectlite.WristLeft:  1,
	kinectlite.HandLeft:   1,
	kinectlite.WristRight: -1,
	kinectlite.HandRight:  -1,
	kinectlite.AnkleLeft:  -1,
	kinectlite.FootLeft:   -1,
	kinectlite.AnkleRight: 1,
	kinectlite.FootRight:  1,
}

const (
	// swingDistance is how far hands and feet swing in meters
	swingDistance = 0.15
	// inferredDepth is the distance in meters beyond which the feet of a
	// body are reported as inferred
	inferredDepth = 2.8
)

// Body is a simulated person walking side to side in front of the sensor
type Body struct {
	// TrackingID reported for the body
	TrackingID int
	// State the body is reported in
	State kinectlite.SkeletonTrackingState
	// Center is the HipCenter position the body walks around
	Center r3.Vector
	// Amplitude of the side to side walk along the X axis in meters
	Amplitude float64
	// Period is the number of frames for one walk cycle, values below 1
	// keep the body standing still
	Period int
}

// phase returns the walk cycle angle at the given frame
func (b Body) phase(frameNum int) float64 {
	if b.Period < 1 {
		return 0
	}
	return 2 * math.Pi * float64(frameNum%b.Period) / float64(b.Period)
}

// PositionAt returns the HipCenter position of the body at the given frame
func (b Body) PositionAt(frameNum int) r3.Vector {
	pos := b.Center
	pos.X += b.Amplitude * math.Sin(b.phase(frameNum))
	return pos
}

// SkeletonAt returns the skeleton reported for the body at the given frame
func (b Body) SkeletonAt(frameNum int) kinectlite.Skeleton {

	pos := b.PositionAt(frameNum)
	s := kinectlite.NewSkeleton(b.TrackingID, b.State, pos)

	if b.State != kinectlite.SkeletonTracked {
		return s
	}

	swing := swingDistance * math.Sin(2*b.phase(frameNum))

	for i, offset := range standingPose {
		jt := kinectlite.JointType(i)

		if dir, ok := swingingJoints[jt]; ok {
			offset.Z += dir * swing
		}

		s.Joints[i].Position = pos.Add(offset)
		s.Joints[i].TrackingState = kinectlite.JointTracked
	}

	if pos.Z > inferredDepth {
		s.Joints[kinectlite.FootLeft].TrackingState = kinectlite.JointInferred
		s.Joints[kinectlite.FootRight].TrackingState = kinectlite.JointInferred
	}

	return s
}

// DefaultBodies returns two walking tracked bodies and one position only body
func DefaultBodies() []Body {
	return []Body{
		{
			TrackingID: 1,
			State:      kinectlite.SkeletonTracked,
			Center:     r3.Vector{X: 0, Y: 0, Z: 2.2},
			Amplitude:  0.6,
			Period:     150,
		},
		{
			TrackingID: 2,
			State:      kinectlite.SkeletonTracked,
			Center:     r3.Vector{X: 0.9, Y: 0, Z: 3.0},
			Amplitude:  0.3,
			Period:     90,
		},
		{
			TrackingID: 3,
			State:      kinectlite.SkeletonPositionOnly,
			Center:     r3.Vector{X: -1.2, Y: 0, Z: 3.4},
			Amplitude:  0.2,
			Period:     120,
		},
	}
}
