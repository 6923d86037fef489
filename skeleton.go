package kinectlite

import (
	"github.com/golang/geo/r3"
)

// SkeletonCount is the number of skeleton slots the sensor reports per frame
const SkeletonCount = 6

// SkeletonTrackingState is how much of a body the sensor is tracking
type SkeletonTrackingState int

const (
	SkeletonNotTracked SkeletonTrackingState = iota
	// SkeletonPositionOnly means only the body centroid is known
	SkeletonPositionOnly
	// SkeletonTracked means all joints have been reported
	SkeletonTracked
)

func (s SkeletonTrackingState) String() string {
	switch s {
	case SkeletonPositionOnly:
		return "PositionOnly"
	case SkeletonTracked:
		return "Tracked"
	default:
		return "NotTracked"
	}
}

// Skeleton is one body reported by the sensor for a single frame
type Skeleton struct {
	// TrackingID stays the same across frames while the body is tracked
	TrackingID int
	// TrackingState of the body
	TrackingState SkeletonTrackingState
	// Position is the centroid of the body and is always valid
	Position r3.Vector
	// Joints indexed by JointType, only populated when TrackingState is
	// SkeletonTracked
	Joints [JointCount]Joint
}

// Joint returns the joint of the given type
func (s *Skeleton) Joint(t JointType) Joint {
	return s.Joints[t]
}

// TrackedJoints returns the joints the sensor tracked directly
func (s *Skeleton) TrackedJoints() []Joint {
	return s.filterJoints(Joint.IsTracked)
}

// TrackedOrInferredJoints returns the joints that have a usable position
func (s *Skeleton) TrackedOrInferredJoints() []Joint {
	return s.filterJoints(Joint.IsTrackedOrInferred)
}

// NearModeJoints returns the upper body joints reported in near mode
func (s *Skeleton) NearModeJoints() []Joint {
	return s.filterJoints(Joint.IsNearModeJoint)
}

func (s *Skeleton) filterJoints(keep func(Joint) bool) []Joint {
	joints := make([]Joint, 0, JointCount)

	for _, j := range s.Joints {
		if keep(j) {
			joints = append(joints, j)
		}
	}

	return joints
}

// SkeletonFrame holds the skeleton slots reported for a single frame, some
// of which may be not tracked
type SkeletonFrame struct {
	Skeletons []Skeleton
}

// TrackedSkeletons returns the fully tracked skeletons
func (f *SkeletonFrame) TrackedSkeletons() []Skeleton {
	return f.filter(func(s Skeleton) bool {
		return s.TrackingState == SkeletonTracked
	})
}

// PositionOnlySkeletons returns the skeletons with only a position
func (f *SkeletonFrame) PositionOnlySkeletons() []Skeleton {
	return f.filter(func(s Skeleton) bool {
		return s.TrackingState == SkeletonPositionOnly
	})
}

// TrackedOrPositionOnlySkeletons returns every skeleton that is not in the
// not tracked state, in slot order
func (f *SkeletonFrame) TrackedOrPositionOnlySkeletons() []Skeleton {
	return f.filter(func(s Skeleton) bool {
		return s.TrackingState != SkeletonNotTracked
	})
}

// FirstTrackedSkeleton returns the first fully tracked skeleton, the bool is
// false when there is none
func (f *SkeletonFrame) FirstTrackedSkeleton() (Skeleton, bool) {
	for _, s := range f.Skeletons {
		if s.TrackingState == SkeletonTracked {
			return s, true
		}
	}
	return Skeleton{}, false
}

// HasTrackedSkeleton returns true if any skeleton is fully tracked
func (f *SkeletonFrame) HasTrackedSkeleton() bool {
	_, ok := f.FirstTrackedSkeleton()
	return ok
}

func (f *SkeletonFrame) filter(keep func(Skeleton) bool) []Skeleton {
	out := make([]Skeleton, 0, len(f.Skeletons))

	for _, s := range f.Skeletons {
		if keep(s) {
			out = append(out, s)
		}
	}

	return out
}

// NewSkeleton returns a skeleton with every joint slot labelled with its
// JointType and in the not tracked state
func NewSkeleton(trackingID int, state SkeletonTrackingState, position r3.Vector) Skeleton {
	s := Skeleton{
		TrackingID:    trackingID,
		TrackingState: state,
		Position:      position,
	}

	for i := range s.Joints {
		s.Joints[i].Type = JointType(i)
	}

	return s
}
