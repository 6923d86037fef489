package render

import (
	"image/color"

	"github.com/swdee/go-kinectlite/projection"
	"gocv.io/x/gocv"
)

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	// LineSame defines if the color of the trail line should be the
	// same color as that of the tracking ID.  If set to false then use
	// the color specified at LineColor
	LineSame      bool
	LineColor     color.RGBA
	LineThickness int
	// CircleSame defines if the color of the current position circle should
	// be the same color as that of the tracking ID.  If set to false then use
	// the color specified at CircleColor
	CircleSame   bool
	CircleColor  color.RGBA
	CircleRadius int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:      false,
		LineColor:     Yellow,
		LineThickness: 1,
		CircleSame:    true,
		CircleColor:   Pink,
		CircleRadius:  3,
	}
}

// Trail draws the position history of a player on the image, oldest point
// first
func Trail(img *gocv.Mat, trackingID int, points []projection.Point, style TrailStyle) {

	if len(points) < 2 {
		return
	}

	objClr := TrackColor(trackingID)

	// determine style colors to use
	lineClr := objClr
	circleClr := objClr

	if !style.LineSame {
		lineClr = style.LineColor
	}

	if !style.CircleSame {
		circleClr = style.CircleColor
	}

	for i := 1; i < len(points); i++ {
		// draw line segment of trail
		gocv.Line(img, toImagePt(points[i-1]), toImagePt(points[i]),
			lineClr, style.LineThickness)
	}

	// draw circle on the current position
	gocv.Circle(img, toImagePt(points[len(points)-1]),
		style.CircleRadius, circleClr, -1)
}
