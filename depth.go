package kinectlite

const (
	// PlayerIndexBitmaskWidth is the number of low order bits of a depth
	// sample holding the player index
	PlayerIndexBitmaskWidth = 3
	// PlayerIndexBitmask masks the player index out of a depth sample
	PlayerIndexBitmask = 1<<PlayerIndexBitmaskWidth - 1
	// MaxPlayerIndex is the largest player index a depth sample can carry
	MaxPlayerIndex = PlayerIndexBitmask
	// MaxPackedDistance is the largest distance that fits in a DepthPixel
	MaxPackedDistance = 1<<(15-PlayerIndexBitmaskWidth) - 1
	// MinPackedDistance is the smallest distance that fits in a DepthPixel
	MinPackedDistance = -1 << (15 - PlayerIndexBitmaskWidth)
)

// DepthPixel is a raw depth sample as delivered by the sensor.  The upper
// bits hold the distance in millimeters and the lower PlayerIndexBitmaskWidth
// bits hold the segmented player index, 0 meaning no player.
type DepthPixel int16

// NewDepthPixel packs a distance and player index into a DepthPixel.
// Distances outside [MinPackedDistance, MaxPackedDistance] are clamped.
func NewDepthPixel(distance, player int) DepthPixel {
	if distance > MaxPackedDistance {
		distance = MaxPackedDistance
	}
	if distance < MinPackedDistance {
		distance = MinPackedDistance
	}

	return DepthPixel(distance<<PlayerIndexBitmaskWidth | (player & PlayerIndexBitmask))
}

// Distance returns the distance in millimeters.  The shift is arithmetic so
// a raw value of -1 yields the -1 unknown depth sentinel.
func (p DepthPixel) Distance() int {
	return int(p) >> PlayerIndexBitmaskWidth
}

// PlayerIndex returns the player the pixel was segmented to, 0 if none
func (p DepthPixel) PlayerIndex() int {
	return int(p) & PlayerIndexBitmask
}

// DepthRange holds the sentinel distances reported by the depth stream.
// A sample equal to one of these values is not a real measurement.
type DepthRange struct {
	// UnknownDepth is reported where no depth could be determined
	UnknownDepth int
	// TooNearDepth is reported for objects closer than the sensor minimum
	TooNearDepth int
	// TooFarDepth is reported for objects beyond the sensor maximum
	TooFarDepth int
	// MinDepth and MaxDepth are the bounds of reliable measurements for the
	// current range mode, in millimeters
	MinDepth int
	MaxDepth int
}

// DefaultDepthRange returns the sentinel values of the depth stream running
// in default range mode
func DefaultDepthRange() DepthRange {
	return DepthRange{
		UnknownDepth: -1,
		TooNearDepth: 0,
		TooFarDepth:  4095,
		MinDepth:     800,
		MaxDepth:     4000,
	}
}

// NearDepthRange returns the sentinel values of the depth stream running in
// near range mode
func NearDepthRange() DepthRange {
	r := DefaultDepthRange()
	r.MinDepth = 400
	r.MaxDepth = 3000
	return r
}
