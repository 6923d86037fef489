// Package pipeline drives one frame set at a time through depth
// visualization, skeleton planning and active player selection.
package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
	"github.com/swdee/go-kinectlite/depthmap"
	"github.com/swdee/go-kinectlite/internal/log"
	"github.com/swdee/go-kinectlite/projection"
	"github.com/swdee/go-kinectlite/sensor"
	"github.com/swdee/go-kinectlite/skeleton"
	"github.com/swdee/go-kinectlite/tracker"
)

// ErrIncompleteFrame is returned by Process when the frame set is missing
// one of the color, depth or skeleton frames
var ErrIncompleteFrame = errors.New("frame set is incomplete")

// Renderer draws the processed frame onto a surface
type Renderer interface {
	Render(color, depth *kinectlite.PixelBuffer, plans []skeleton.RenderPlan) error
}

// ActiveMarker is implemented by Renderers that highlight the active player.
// It is called before Render with the player's trail on the canvas, ok is
// false when there is no active player.
type ActiveMarker interface {
	MarkActive(trackingID int, trail []projection.Point, ok bool)
}

// TrackingControl asks the sensor to fully track only the given skeletons,
// no IDs returns the sensor to tracking everybody
type TrackingControl interface {
	ChooseSkeletons(ids ...int) error
}

// Params configures a Processor
type Params struct {
	// Stream the skeleton points are mapped into
	Stream kinectlite.StreamType
	// Source is the native resolution of Stream
	Source projection.Frame
	// Canvas is the resolution plans are scaled onto
	Canvas projection.Frame
	// Depth holds the depth map conversion parameters
	Depth depthmap.Params
	// Smooth enables joint smoothing with SmoothParams
	Smooth       bool
	SmoothParams tracker.SmoothParams
	// SelectThreshold is the floor distance in meters from Center a skeleton
	// must be within to become the active player
	SelectThreshold float64
	// Center is the reference point used when there is no active player
	Center r3.Vector
	// TrailSize is the number of active player positions remembered
	TrailSize int
}

// DefaultParams returns parameters for 640x480 depth stream projection
// onto a 640x480 canvas
func DefaultParams() Params {
	return Params{
		Stream:          kinectlite.DepthStream,
		Source:          projection.NewFrame(640, 480),
		Canvas:          projection.NewFrame(640, 480),
		Depth:           depthmap.PlayerParams(),
		Smooth:          true,
		SmoothParams:    tracker.DefaultSmoothParams(),
		SelectThreshold: tracker.DefaultSelectThreshold,
		TrailSize:       30,
	}
}

// Deps are the collaborators of a Processor.  Renderer and Control are
// optional.
type Deps struct {
	Mapper   projection.CoordinateMapper
	Renderer Renderer
	Control  TrackingControl
}

// Result holds the outcome of processing one frame set.  The buffers are
// owned by the Result and stay valid after the frame set is closed.
type Result struct {
	Color     *kinectlite.PixelBuffer
	Depth     *kinectlite.PixelBuffer
	Plans     []skeleton.RenderPlan
	ActiveID  int
	HasActive bool
}

// Stats counts the frame sets handled by Run
type Stats struct {
	Processed int64
	Skipped   int64
	Failed    int64
}

// Processor runs the per frame processing steps
type Processor struct {
	params    Params
	deps      Deps
	projector *projection.Projector
	converter *depthmap.Converter
	planner   *skeleton.Planner
	selector  *tracker.Selector
	smoother  *tracker.JointSmoother

	// chosenID is the tracking ID last handed to the TrackingControl, only
	// meaningful when chosen is set
	chosenID int
	chosen   bool

	processed int64
	skipped   int64
	failed    int64
}

// NewProcessor returns a Processor for the given parameters
func NewProcessor(p Params, deps Deps) (*Processor, error) {

	if deps.Mapper == nil {
		return nil, errors.New("a coordinate mapper is required")
	}

	if err := projection.CheckFrames(p.Source, p.Canvas); err != nil {
		return nil, err
	}

	if p.TrailSize < 1 {
		return nil, errors.Errorf("trail size must be at least 1, got %d", p.TrailSize)
	}

	proc := &Processor{
		params:    p,
		deps:      deps,
		projector: projection.NewProjector(deps.Mapper, p.Stream),
		converter: depthmap.NewConverter(p.Depth),
		selector:  tracker.NewSelector(p.SelectThreshold, p.Center, p.TrailSize),
	}

	proc.planner = skeleton.NewPlanner(proc.projector)

	if p.Smooth {
		proc.smoother = tracker.NewJointSmoother(p.SmoothParams)
	}

	return proc, nil
}

// Process converts the frame set's streams, plans every skeleton onto the
// canvas, selects the active player and hands the result to the Renderer.
// A frame set missing a stream returns ErrIncompleteFrame.  The
// TrackingControl is only told about a new active player once the frame
// rendered, but the selection and trail still advance when Render fails.
func (p *Processor) Process(fs *kinectlite.FrameSet) (*Result, error) {

	if !fs.AllUpdated() {
		return nil, ErrIncompleteFrame
	}

	colorBuf, err := fs.Color.ToPixelBuffer()

	if err != nil {
		return nil, errors.Wrap(err, "converting color frame")
	}

	depthBuf, err := p.converter.ConvertFrame(fs.Depth)

	if err != nil {
		return nil, errors.Wrap(err, "converting depth frame")
	}

	skeletons := fs.Skeleton

	if p.smoother != nil {
		skeletons = p.smoother.SmoothFrame(skeletons)
	}

	plans, err := p.planner.PlanFrame(skeletons, p.params.Source, p.params.Canvas)

	if err != nil {
		return nil, errors.Wrap(err, "planning skeletons")
	}

	res := &Result{
		Color: colorBuf,
		Depth: depthBuf,
		Plans: plans,
	}

	res.ActiveID, res.HasActive = p.selector.Select(skeletons)

	if p.deps.Renderer != nil {

		if marker, ok := p.deps.Renderer.(ActiveMarker); ok {
			marker.MarkActive(res.ActiveID, p.activeTrail(), res.HasActive)
		}

		if err := p.deps.Renderer.Render(colorBuf, depthBuf, plans); err != nil {
			return nil, errors.Wrap(err, "rendering frame")
		}
	}

	if err := p.updateTracking(res.ActiveID, res.HasActive); err != nil {
		return nil, err
	}

	return res, nil
}

// updateTracking tells the TrackingControl when the active player changes
func (p *Processor) updateTracking(id int, ok bool) error {

	if p.deps.Control == nil {
		return nil
	}

	if ok == p.chosen && (!ok || id == p.chosenID) {
		return nil
	}

	var err error

	if !ok {
		log.Debug("Active player lost, tracking all skeletons")
		err = p.deps.Control.ChooseSkeletons()
	} else {
		log.Debug("Active player is now %d", id)
		err = p.deps.Control.ChooseSkeletons(id)
	}

	if err != nil {
		return errors.Wrap(err, "choosing skeletons")
	}

	p.chosenID, p.chosen = id, ok

	return nil
}

// activeTrail projects the active player's position history onto the
// canvas, positions that can not be drawn are skipped
func (p *Processor) activeTrail() []projection.Point {

	positions := p.selector.Trail()
	points := make([]projection.Point, 0, len(positions))

	for _, pos := range positions {
		pt, err := p.projector.Project(pos, p.params.Source, p.params.Canvas)

		if err != nil || !projection.IsWithin(pt, p.params.Canvas) {
			continue
		}

		points = append(points, pt)
	}

	return points
}

// Reset clears the smoothing, selection and trail state
func (p *Processor) Reset() {
	p.selector.Reset()

	if p.smoother != nil {
		p.smoother.Reset()
	}
}

// Stats returns the counts of frame sets handled by Run
func (p *Processor) Stats() Stats {
	return Stats{
		Processed: atomic.LoadInt64(&p.processed),
		Skipped:   atomic.LoadInt64(&p.skipped),
		Failed:    atomic.LoadInt64(&p.failed),
	}
}

// Run processes frame sets from the source until the context is done or the
// source fails.  Every frame set is closed once processed.  Incomplete frame
// sets are skipped and processing errors are logged without stopping.
func (p *Processor) Run(ctx context.Context, source sensor.Source) error {

	for {
		fs, err := source.NextFrame(ctx)

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "reading next frame")
		}

		p.handle(fs)
	}
}

// handle processes a single frame set and releases it
func (p *Processor) handle(fs *kinectlite.FrameSet) {
	defer fs.Close()

	_, err := p.Process(fs)

	switch {
	case errors.Is(err, ErrIncompleteFrame):
		atomic.AddInt64(&p.skipped, 1)
		log.Debug("Skipping incomplete frame set")

	case err != nil:
		atomic.AddInt64(&p.failed, 1)
		log.Error("Error processing frame set: %v", err)

	default:
		atomic.AddInt64(&p.processed, 1)
	}
}
