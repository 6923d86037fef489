package depthmap

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
)

// Mode selects how depth samples are colored
type Mode int

const (
	// Grayscale renders the distance as a gray level, nearer is brighter
	Grayscale Mode = iota
	// PlayerSegmented colors pixels belonging to a player with the player's
	// color and the remaining pixels by distance band
	PlayerSegmented
)

func (m Mode) String() string {
	if m == PlayerSegmented {
		return "player"
	}
	return "grayscale"
}

// ParseMode returns the Mode for its string form
func ParseMode(s string) (Mode, error) {
	switch s {
	case "grayscale", "":
		return Grayscale, nil
	case "player":
		return PlayerSegmented, nil
	}
	return Grayscale, errors.Errorf("unknown depth mode %q", s)
}

// Overflow is the policy used when a player index has no palette entry
type Overflow int

const (
	// OverflowWrap cycles through the palette
	OverflowWrap Overflow = iota
	// OverflowClamp uses the last palette entry
	OverflowClamp
	// OverflowError fails the conversion with ErrPlayerIndex
	OverflowError
)

// ParseOverflow returns the Overflow policy for its string form
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "wrap", "":
		return OverflowWrap, nil
	case "clamp":
		return OverflowClamp, nil
	case "error":
		return OverflowError, nil
	}
	return OverflowWrap, errors.Errorf("unknown player overflow policy %q", s)
}

const (
	// MaxDistance is the largest distance mapped onto the gray scale
	MaxDistance = 0x0FFF
	// MaxIntensity is the brightest gray level
	MaxIntensity = 0xFF
)

// ErrPlayerIndex is returned under the OverflowError policy when a sample
// carries a player index outside of the palette
var ErrPlayerIndex = errors.New("player index has no palette color")

// Params defines the depth map conversion parameters
type Params struct {
	// Mode selects grayscale or player segmented coloring
	Mode Mode
	// Range holds the sentinel values of the depth stream, used by the
	// player segmented mode
	Range kinectlite.DepthRange
	// PlayerOverflow is the policy for player indexes beyond the palette
	PlayerOverflow Overflow
	// Palette are the player colors indexed by player index, index 0 is
	// never used as it means no player
	Palette []color.RGBA
}

// DefaultParams returns grayscale conversion with the default depth range
func DefaultParams() Params {
	return Params{
		Mode:           Grayscale,
		Range:          kinectlite.DefaultDepthRange(),
		PlayerOverflow: OverflowWrap,
		Palette:        PlayerColors,
	}
}

// PlayerParams returns player segmented conversion with the default depth
// range
func PlayerParams() Params {
	p := DefaultParams()
	p.Mode = PlayerSegmented
	return p
}

// Converter turns depth samples into an RGB image
type Converter struct {
	// Params are the conversion parameters
	Params Params
}

// NewConverter returns an instance of the depth map converter
func NewConverter(p Params) *Converter {
	if len(p.Palette) == 0 {
		p.Palette = PlayerColors
	}

	return &Converter{
		Params: p,
	}
}

// ConvertFrame converts a depth frame using the sentinel values the frame
// was delivered with
func (c *Converter) ConvertFrame(frame *kinectlite.DepthFrame) (*kinectlite.PixelBuffer, error) {
	conv := *c
	conv.Params.Range = frame.Range
	return conv.Convert(frame.Pixels, frame.Width, frame.Height)
}

// Convert converts width x height depth samples into a PixelBuffer.  On
// error no buffer is returned.
func (c *Converter) Convert(samples []kinectlite.DepthPixel, width, height int) (*kinectlite.PixelBuffer, error) {

	if width < 0 || height < 0 || len(samples) != width*height {
		return nil, errors.Wrapf(kinectlite.ErrShapeMismatch,
			"got %d depth samples for %dx%d", len(samples), width, height)
	}

	buf, err := kinectlite.NewPixelBuffer(width, height)

	if err != nil {
		return nil, err
	}

	for i, sample := range samples {

		var clr color.RGBA

		if c.Params.Mode == PlayerSegmented {
			clr, err = c.playerColor(sample)

			if err != nil {
				return nil, errors.Wrapf(err, "sample %d", i)
			}

		} else {
			clr = grayColor(sample.Distance())
		}

		buf.SetRGB(i, clr)
	}

	return buf, nil
}

// Scale maps value from the range [0, sourceMax] onto [0, destMax]
func Scale(value, sourceMax, destMax int) int {
	return value * destMax / sourceMax
}

// GrayLevel returns the inverted gray level for a distance so nearer points
// are brighter.  Distances outside of [0, MaxDistance] are clamped.
func GrayLevel(distance int) uint8 {
	if distance < 0 {
		distance = 0
	}
	if distance > MaxDistance {
		distance = MaxDistance
	}

	return uint8(MaxIntensity - Scale(distance, MaxDistance, MaxIntensity))
}

func grayColor(distance int) color.RGBA {
	g := GrayLevel(distance)
	return color.RGBA{R: g, G: g, B: g, A: 255}
}

// playerColor returns the color of a sample in player segmented mode
func (c *Converter) playerColor(sample kinectlite.DepthPixel) (color.RGBA, error) {

	// pixel belongs to a player
	if player := sample.PlayerIndex(); player != 0 {
		return c.paletteColor(player)
	}

	// sentinel checks are exact matches against the stream values
	switch sample.Distance() {
	case c.Params.Range.UnknownDepth:
		return UnknownDepthColor, nil
	case c.Params.Range.TooNearDepth:
		return TooNearColor, nil
	case c.Params.Range.TooFarDepth:
		return TooFarColor, nil
	default:
		return ValidDepthColor, nil
	}
}

func (c *Converter) paletteColor(player int) (color.RGBA, error) {
	palette := c.Params.Palette

	if len(palette) == 0 {
		palette = PlayerColors
	}

	if player < len(palette) {
		return palette[player], nil
	}

	switch c.Params.PlayerOverflow {
	case OverflowClamp:
		return palette[len(palette)-1], nil
	case OverflowError:
		return color.RGBA{}, errors.Wrapf(ErrPlayerIndex, "player %d, palette size %d",
			player, len(palette))
	default:
		return palette[player%len(palette)], nil
	}
}
