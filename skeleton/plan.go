package skeleton

import (
	"github.com/golang/geo/r3"
	"github.com/swdee/go-kinectlite"
	"github.com/swdee/go-kinectlite/projection"
)

// Segment is a bone line to draw, in destination canvas coordinates
type Segment struct {
	From projection.Point
	To   projection.Point
	Bone BoneEdge
}

// RenderPlan is everything to draw for a single skeleton, in destination
// canvas coordinates
type RenderPlan struct {
	// TrackingID of the skeleton the plan was built for
	TrackingID int
	// Markers are the joint circles to draw, for a position only skeleton
	// this is the body position
	Markers []projection.Point
	// Segments are the bone lines to draw
	Segments []Segment
	// PositionOnly is set when the skeleton only reported its position
	PositionOnly bool
}

// Empty returns true if there is nothing to draw
func (p RenderPlan) Empty() bool {
	return len(p.Markers) == 0 && len(p.Segments) == 0
}

// Planner builds render plans for skeletons
type Planner struct {
	projector *projection.Projector
}

// NewPlanner returns a Planner projecting joints with the given projector
func NewPlanner(projector *projection.Projector) *Planner {
	return &Planner{
		projector: projector,
	}
}

// Plan returns the markers and bone segments to draw for the skeleton.  The
// src frame is the resolution of the projector's stream and dst the canvas
// the plan is drawn on.
func (p *Planner) Plan(s kinectlite.Skeleton, src, dst projection.Frame) (RenderPlan, error) {

	if err := projection.CheckFrames(src, dst); err != nil {
		return RenderPlan{}, err
	}

	plan := RenderPlan{TrackingID: s.TrackingID}

	switch s.TrackingState {
	case kinectlite.SkeletonTracked:
		p.planJoints(&plan, &s, src, dst)
		p.planBones(&plan, &s, src, dst)

	case kinectlite.SkeletonPositionOnly:
		plan.PositionOnly = true

		if pt, ok := p.drawable(s.Position, src, dst); ok {
			plan.Markers = append(plan.Markers, pt)
		}
	}

	return plan, nil
}

// PlanFrame builds a render plan for every tracked or position only skeleton
// in the frame, in slot order
func (p *Planner) PlanFrame(frame *kinectlite.SkeletonFrame, src, dst projection.Frame) ([]RenderPlan, error) {

	if err := projection.CheckFrames(src, dst); err != nil {
		return nil, err
	}

	skeletons := frame.TrackedOrPositionOnlySkeletons()
	plans := make([]RenderPlan, 0, len(skeletons))

	for _, s := range skeletons {
		plan, err := p.Plan(s, src, dst)

		if err != nil {
			return nil, err
		}

		plans = append(plans, plan)
	}

	return plans, nil
}

// planJoints adds a marker for every tracked or inferred joint on the canvas
func (p *Planner) planJoints(plan *RenderPlan, s *kinectlite.Skeleton, src, dst projection.Frame) {
	for _, j := range s.Joints {
		if !j.IsTrackedOrInferred() {
			continue
		}

		if pt, ok := p.drawable(j.Position, src, dst); ok {
			plan.Markers = append(plan.Markers, pt)
		}
	}
}

// planBones adds a segment for every bone with both joints tracked or
// inferred and both ends on the canvas.  Bones failing either check are
// dropped, never clipped.
func (p *Planner) planBones(plan *RenderPlan, s *kinectlite.Skeleton, src, dst projection.Frame) {
	for _, b := range bones {
		start := s.Joints[b.Parent]
		end := s.Joints[b.Child]

		if start.TrackingState == kinectlite.JointNotTracked ||
			end.TrackingState == kinectlite.JointNotTracked {
			continue
		}

		from, ok := p.drawable(start.Position, src, dst)
		if !ok {
			continue
		}

		to, ok := p.drawable(end.Position, src, dst)
		if !ok {
			continue
		}

		plan.Segments = append(plan.Segments, Segment{From: from, To: to, Bone: b})
	}
}

// drawable projects the point and reports whether it landed on the canvas.
// A point the mapper can not project is treated as off canvas.
func (p *Planner) drawable(pos r3.Vector, src, dst projection.Frame) (projection.Point, bool) {
	pt, err := p.projector.Project(pos, src, dst)

	if err != nil {
		return projection.Point{}, false
	}

	return pt, projection.IsWithin(pt, dst)
}
