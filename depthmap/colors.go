package depthmap

import "image/color"

var (
	// PlayerColors are the colors used to paint segmented players, indexed
	// by player index
	PlayerColors = []color.RGBA{
		{R: 0xC0, G: 0xC0, B: 0xC0, A: 255}, // Silver
		{R: 0xFF, G: 0x00, B: 0x00, A: 255}, // Red
		{R: 0x00, G: 0x80, B: 0x00, A: 255}, // Green
		{R: 0x00, G: 0x00, B: 0xFF, A: 255}, // Blue
		{R: 0xFF, G: 0xFF, B: 0x00, A: 255}, // Yellow
		{R: 0xFF, G: 0xC0, B: 0xCB, A: 255}, // Pink
		{R: 0xA5, G: 0x2A, B: 0x2A, A: 255}, // Brown
	}

	// UnknownDepthColor is DarkGoldenrod
	UnknownDepthColor = color.RGBA{R: 0xB8, G: 0x86, B: 0x0B, A: 255}
	// TooNearColor is White
	TooNearColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 255}
	// TooFarColor is Purple
	TooFarColor = color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 255}
	// ValidDepthColor is DarkCyan
	ValidDepthColor = color.RGBA{R: 0x00, G: 0x8B, B: 0x8B, A: 255}
)
