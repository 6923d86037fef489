package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/swdee/go-kinectlite/projection"
	"github.com/swdee/go-kinectlite/skeleton"
	"gocv.io/x/gocv"
)

// SkeletonStyle defines the parameters used for rendering skeletons
type SkeletonStyle struct {
	LineThickness int
	// JointRadius is the radius of the circle drawn for each joint marker
	JointRadius int
	JointColor  color.RGBA
	// PositionRadius is the radius of the marker of a position only
	// skeleton
	PositionRadius int
	// Labels enables tracking ID labels above each skeleton
	Labels bool
	Font   Font
	// ActiveColor is the label color of the active player
	ActiveColor color.RGBA
}

// DefaultSkeletonStyle returns default skeleton style settings
func DefaultSkeletonStyle() SkeletonStyle {
	return SkeletonStyle{
		LineThickness:  2,
		JointRadius:    5,
		JointColor:     Red,
		PositionRadius: 8,
		Labels:         true,
		Font:           DefaultFont(),
		ActiveColor:    Pink,
	}
}

// Skeletons renders the bones and joint markers of every render plan and
// labels each with its tracking ID
func Skeletons(img *gocv.Mat, plans []skeleton.RenderPlan, activeID int,
	hasActive bool, style SkeletonStyle) {

	// keep a record of all labels so they are drawn as the top most layer
	labels := make([]label, 0, len(plans))

	for _, plan := range plans {

		if plan.Empty() {
			continue
		}

		// draw bone lines first so joint markers sit on top
		for _, seg := range plan.Segments {
			gocv.Line(img, toImagePt(seg.From), toImagePt(seg.To),
				LimbColor(seg.Bone), style.LineThickness)
		}

		if plan.PositionOnly {
			gocv.Circle(img, toImagePt(plan.Markers[0]), style.PositionRadius,
				TrackColor(plan.TrackingID), style.LineThickness)
		} else {
			for _, m := range plan.Markers {
				gocv.Circle(img, toImagePt(m), style.JointRadius, style.JointColor, -1)
			}
		}

		if !style.Labels {
			continue
		}

		clr := TrackColor(plan.TrackingID)
		text := fmt.Sprintf("ID %d", plan.TrackingID)

		if hasActive && plan.TrackingID == activeID {
			clr = style.ActiveColor
			text += " active"
		}

		top := findTopPoint(plan.Markers)
		top.Y -= style.JointRadius

		labels = append(labels, style.Font.newLabel(text, toImagePt(top), clr))
	}

	for _, l := range labels {
		style.Font.draw(img, l)
	}
}

// findTopPoint finds the highest marker (Y axis) of the plan
func findTopPoint(markers []projection.Point) projection.Point {
	top := projection.Point{X: 0, Y: math.Inf(1)}

	for _, m := range markers {
		if m.Y < top.Y {
			top = m
		}
	}

	return top
}

// toImagePt converts a canvas point to whole pixel coordinates
func toImagePt(p projection.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}
