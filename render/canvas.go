package render

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
	"github.com/swdee/go-kinectlite/projection"
	"github.com/swdee/go-kinectlite/skeleton"
	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// CanvasParams defines the layout and styles of a Canvas
type CanvasParams struct {
	// Width and Height of each of the color and depth panels
	Width  int
	Height int
	// ShowDepth places the depth map to the right of the color image
	ShowDepth bool
	Skeleton  SkeletonStyle
	Trail     TrailStyle
}

// DefaultCanvasParams returns 640x480 color and depth panels
func DefaultCanvasParams() CanvasParams {
	return CanvasParams{
		Width:     640,
		Height:    480,
		ShowDepth: true,
		Skeleton:  DefaultSkeletonStyle(),
		Trail:     DefaultTrailStyle(),
	}
}

// Canvas renders processed frames into JPEG images.  It keeps the latest
// image for readers such as an MJPEG stream.
type Canvas struct {
	params CanvasParams

	activeID  int
	hasActive bool
	trail     []projection.Point

	jpeg    []byte
	seq     uint64
	updated chan struct{}
	mu      sync.Mutex
}

// NewCanvas returns a Canvas with the given layout
func NewCanvas(p CanvasParams) (*Canvas, error) {

	if p.Width <= 0 || p.Height <= 0 {
		return nil, errors.Errorf("invalid canvas size %dx%d", p.Width, p.Height)
	}

	return &Canvas{
		params:  p,
		updated: make(chan struct{}),
	}, nil
}

// Frame returns the size of a single panel, which is the coordinate space
// render plans must be projected onto
func (c *Canvas) Frame() projection.Frame {
	return projection.NewFrame(c.params.Width, c.params.Height)
}

// MarkActive records the active player to highlight in the next Render
func (c *Canvas) MarkActive(trackingID int, trail []projection.Point, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeID = trackingID
	c.hasActive = ok
	c.trail = trail
}

// Render draws the skeleton plans over the color image and depth map and
// encodes the result as the latest JPEG image
func (c *Canvas) Render(color, depth *kinectlite.PixelBuffer, plans []skeleton.RenderPlan) error {

	c.mu.Lock()
	activeID, hasActive, trail := c.activeID, c.hasActive, c.trail
	c.mu.Unlock()

	colorMat, err := c.panel(color, draw.ApproxBiLinear)

	if err != nil {
		return errors.Wrap(err, "error preparing color panel")
	}

	defer colorMat.Close()

	c.annotate(&colorMat, plans, activeID, hasActive, trail)

	out := colorMat

	if c.params.ShowDepth {
		// nearest neighbour keeps the player colors crisp
		depthMat, err := c.panel(depth, draw.NearestNeighbor)

		if err != nil {
			return errors.Wrap(err, "error preparing depth panel")
		}

		defer depthMat.Close()

		c.annotate(&depthMat, plans, activeID, hasActive, trail)

		out = gocv.NewMat()
		defer out.Close()

		gocv.Hconcat(colorMat, depthMat, &out)
	}

	buf, err := gocv.IMEncode(".jpg", out)

	if err != nil {
		return errors.Wrap(err, "error encoding JPEG")
	}

	defer buf.Close()

	jpeg := append([]byte(nil), buf.GetBytes()...)

	c.mu.Lock()
	c.jpeg = jpeg
	c.seq++
	close(c.updated)
	c.updated = make(chan struct{})
	c.mu.Unlock()

	return nil
}

// panel scales a pixel buffer to the panel size and converts it to a Mat
func (c *Canvas) panel(buf *kinectlite.PixelBuffer, scaler draw.Scaler) (gocv.Mat, error) {

	scaled, err := ScaleToCanvas(buf, c.params.Width, c.params.Height, scaler)

	if err != nil {
		return gocv.NewMat(), err
	}

	return ToMat(scaled)
}

// annotate draws the active player's trail and the skeletons on a panel
func (c *Canvas) annotate(img *gocv.Mat, plans []skeleton.RenderPlan,
	activeID int, hasActive bool, trail []projection.Point) {

	if hasActive {
		Trail(img, activeID, trail, c.params.Trail)
	}

	Skeletons(img, plans, activeID, hasActive, c.params.Skeleton)
}

// Latest returns the most recent JPEG image and its sequence number, the
// image is nil until the first Render
func (c *Canvas) Latest() ([]byte, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.jpeg, c.seq
}

// Updated returns a channel that is closed when the next image is rendered
func (c *Canvas) Updated() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.updated
}
