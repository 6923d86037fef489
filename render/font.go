package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

type Alignment int

const (
	Left   Alignment = 1
	Center Alignment = 2
	Right  Alignment = 3
)

// Font defines the parameters for rendering text on an image using GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
	// Alignment of the label relative to the point it annotates
	Alignment Alignment
}

// DefaultFont returns default font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
		Alignment: Center,
	}
}

// label defines where a text label is rendered on the image
type label struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// newLabel lays out text sitting above the anchor point on a filled box
func (f Font) newLabel(text string, anchor image.Point, clr color.RGBA) label {

	textSize := gocv.GetTextSize(text, f.Face, f.Scale, f.Thickness)

	var centerX int

	switch f.Alignment {
	case Left:
		centerX = anchor.X - textSize.X/2 - f.RightPad
	case Right:
		centerX = anchor.X + textSize.X/2 + f.LeftPad
	case Center:
		fallthrough
	default:
		centerX = anchor.X
	}

	return label{
		rect: image.Rect(centerX-textSize.X/2-f.LeftPad,
			anchor.Y-textSize.Y-f.TopPad-f.BottomPad,
			centerX+textSize.X/2+f.RightPad, anchor.Y),
		clr:     clr,
		text:    text,
		textPos: image.Pt(centerX-textSize.X/2, anchor.Y-f.BottomPad),
	}
}

// draw renders the label box and its text
func (f Font) draw(img *gocv.Mat, l label) {
	gocv.Rectangle(img, l.rect, l.clr, -1)
	gocv.PutTextWithParams(img, l.text, l.textPos, f.Face, f.Scale, f.Color,
		f.Thickness, f.LineType, false)
}
