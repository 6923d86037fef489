package render

import (
	"image/color"

	"github.com/swdee/go-kinectlite"
	"github.com/swdee/go-kinectlite/skeleton"
)

var (
	// trackColors is a list of colors used to paint each tracking ID
	trackColors = []color.RGBA{
		{R: 255, G: 56, B: 56, A: 255},   // #FF3838
		{R: 255, G: 112, B: 31, A: 255},  // #FF701F
		{R: 255, G: 178, B: 29, A: 255},  // #FFB21D
		{R: 207, G: 210, B: 49, A: 255},  // #CFD231
		{R: 72, G: 249, B: 10, A: 255},   // #48F90A
		{R: 26, G: 147, B: 52, A: 255},   // #1A9334
		{R: 0, G: 212, B: 187, A: 255},   // #00D4BB
		{R: 0, G: 194, B: 255, A: 255},   // #00C2FF
		{R: 52, G: 69, B: 147, A: 255},   // #344593
		{R: 100, G: 115, B: 255, A: 255}, // #6473FF
		{R: 0, G: 24, B: 236, A: 255},    // #0018EC
		{R: 132, G: 56, B: 255, A: 255},  // #8438FF
		{R: 82, G: 0, B: 133, A: 255},    // #520085
		{R: 255, G: 149, B: 200, A: 255}, // #FF95C8
		{R: 255, G: 55, B: 199, A: 255},  // #FF37C7
		{R: 255, G: 157, B: 151, A: 255}, // #FF9D97
		{R: 44, G: 153, B: 168, A: 255},  // #2C99A8
		{R: 61, G: 219, B: 134, A: 255},  // #3DDB86
		{R: 203, G: 56, B: 255, A: 255},  // #CB38FF
		{R: 146, G: 204, B: 23, A: 255},  // #92CC17
	}

	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}
	Pink   = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}

	// posePalette are the colors used for the skeleton limbs
	posePalette = []color.RGBA{
		{R: 255, G: 128, B: 0, A: 255},
		{R: 255, G: 153, B: 255, A: 255},
		{R: 51, G: 153, B: 255, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 255, G: 51, B: 51, A: 255},
	}

	// limbColors maps the child joint of each bone to the color of its limb
	limbColors = [kinectlite.JointCount]color.RGBA{
		kinectlite.Spine:          posePalette[0],
		kinectlite.ShoulderCenter: posePalette[0],
		kinectlite.Head:           posePalette[0],
		kinectlite.ShoulderLeft:   posePalette[1],
		kinectlite.ElbowLeft:      posePalette[1],
		kinectlite.WristLeft:      posePalette[1],
		kinectlite.HandLeft:       posePalette[1],
		kinectlite.ShoulderRight:  posePalette[2],
		kinectlite.ElbowRight:     posePalette[2],
		kinectlite.WristRight:     posePalette[2],
		kinectlite.HandRight:      posePalette[2],
		kinectlite.HipLeft:        posePalette[3],
		kinectlite.KneeLeft:       posePalette[3],
		kinectlite.AnkleLeft:      posePalette[3],
		kinectlite.FootLeft:       posePalette[3],
		kinectlite.HipRight:       posePalette[4],
		kinectlite.KneeRight:      posePalette[4],
		kinectlite.AnkleRight:     posePalette[4],
		kinectlite.FootRight:      posePalette[4],
	}
)

// TrackColor returns the color used to paint the given tracking ID
func TrackColor(trackingID int) color.RGBA {
	if trackingID < 0 {
		trackingID = -trackingID
	}
	return trackColors[trackingID%len(trackColors)]
}

// LimbColor returns the color a bone is drawn with
func LimbColor(bone skeleton.BoneEdge) color.RGBA {
	if !bone.Child.Valid() {
		return White
	}
	return limbColors[bone.Child]
}
