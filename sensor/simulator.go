package sensor

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
	"github.com/swdee/go-kinectlite/internal/log"
	"github.com/swdee/go-kinectlite/projection"
)

// SimulatorParams configures the simulated sensor
type SimulatorParams struct {
	ColorWidth  int
	ColorHeight int
	DepthWidth  int
	DepthHeight int
	// FPS paces NextFrame, 0 delivers frames as fast as they are requested
	FPS int
	// Range holds the sentinel values written into the depth stream
	Range kinectlite.DepthRange
	// Bodies walking in front of the sensor, at most SkeletonCount
	Bodies []Body
	// DropEvery leaves the depth frame out of every Nth frame set, 0
	// delivers every frame
	DropEvery int
}

// DefaultSimulatorParams returns 640x480 streams at 30 FPS with the
// default bodies
func DefaultSimulatorParams() SimulatorParams {
	return SimulatorParams{
		ColorWidth:  640,
		ColorHeight: 480,
		DepthWidth:  640,
		DepthHeight: 480,
		FPS:         30,
		Range:       kinectlite.DefaultDepthRange(),
		Bodies:      DefaultBodies(),
	}
}

const (
	// wallDistance is the distance to the back wall of the room in mm
	wallDistance = 3800
	// floorNearDistance is the distance of the floor at the bottom edge of
	// the depth image in mm
	floorNearDistance = 1200
	// horizon is the fraction of the image height the floor starts at
	horizon = 0.6
)

var (
	// silhouetteTopLeft and silhouetteBottomRight bound the depth silhouette
	// of a body relative to its HipCenter, in meters
	silhouetteTopLeft     = r3.Vector{X: -0.3, Y: 0.8, Z: 0}
	silhouetteBottomRight = r3.Vector{X: 0.3, Y: -0.95, Z: 0}
)

// Simulator is a Source producing synthetic frames of bodies walking in a
// room.  Frames are deterministic for a given frame number.
type Simulator struct {
	params SimulatorParams
	mapper *projection.PinholeMapper
	uuid   string

	frameNum int
	chosen   map[int]bool
	mu       sync.Mutex

	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once

	colorPool   sync.Pool
	depthPool   sync.Pool
	outstanding int64
}

// NewSimulator returns a simulated sensor, it must be closed to stop its
// frame clock
func NewSimulator(p SimulatorParams) (*Simulator, error) {

	if p.ColorWidth <= 0 || p.ColorHeight <= 0 || p.DepthWidth <= 0 || p.DepthHeight <= 0 {
		return nil, errors.Errorf("invalid stream resolution, color %dx%d depth %dx%d",
			p.ColorWidth, p.ColorHeight, p.DepthWidth, p.DepthHeight)
	}

	if len(p.Bodies) > kinectlite.SkeletonCount {
		return nil, errors.Errorf("at most %d bodies can be simulated, got %d",
			kinectlite.SkeletonCount, len(p.Bodies))
	}

	s := &Simulator{
		params: p,
		mapper: &projection.PinholeMapper{
			Depth: projection.DefaultDepthIntrinsics().Resize(p.DepthWidth, p.DepthHeight),
			Color: projection.DefaultColorIntrinsics().Resize(p.ColorWidth, p.ColorHeight),
		},
		uuid: uuid.NewString(),
		done: make(chan struct{}),
	}

	s.colorPool.New = func() interface{} {
		buf := make([]byte, p.ColorWidth*p.ColorHeight*kinectlite.ColorBytesPerPixel)
		return &buf
	}

	s.depthPool.New = func() interface{} {
		buf := make([]kinectlite.DepthPixel, p.DepthWidth*p.DepthHeight)
		return &buf
	}

	if p.FPS > 0 {
		s.ticker = time.NewTicker(time.Duration(float64(time.Second) / float64(p.FPS)))
	}

	log.Info("Simulated sensor [%s] started, color %dx%d, depth %dx%d, %d bodies",
		s.uuid, p.ColorWidth, p.ColorHeight, p.DepthWidth, p.DepthHeight, len(p.Bodies))

	return s, nil
}

// UUID returns the session id of the simulated sensor
func (s *Simulator) UUID() string {
	return s.uuid
}

// Mapper returns the coordinate mapper matching the simulated streams
func (s *Simulator) Mapper() *projection.PinholeMapper {
	return s.mapper
}

// Outstanding returns the number of frame sets handed out and not yet closed
func (s *Simulator) Outstanding() int {
	return int(atomic.LoadInt64(&s.outstanding))
}

// Close stops the simulator, further calls to NextFrame return ErrClosed
func (s *Simulator) Close() error {
	s.once.Do(func() {
		close(s.done)
		if s.ticker != nil {
			s.ticker.Stop()
		}
		log.Info("Simulated sensor [%s] closed", s.uuid)
	})
	return nil
}

// NextFrame implements Source.  It blocks until the next frame is due, the
// context is done or the simulator is closed.
func (s *Simulator) NextFrame(ctx context.Context) (*kinectlite.FrameSet, error) {

	if s.ticker != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.done:
			return nil, ErrClosed
		case <-s.ticker.C:
		}
	} else {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.done:
			return nil, ErrClosed
		default:
		}
	}

	s.mu.Lock()
	frameNum := s.frameNum
	s.frameNum++
	s.mu.Unlock()

	return s.frameSet(frameNum), nil
}

// ChooseSkeletons restricts full tracking to the bodies with the given
// tracking IDs, other bodies are reported position only.  Calling it with no
// IDs tracks every body again.
func (s *Simulator) ChooseSkeletons(ids ...int) error {

	if len(ids) > MaxChosenSkeletons {
		return errors.Wrapf(ErrTooManyChosen, "got %d", len(ids))
	}

	chosen := make(map[int]bool, len(ids))
	for _, id := range ids {
		chosen[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.chosen = chosen

	log.Debug("Simulated sensor [%s] choosing skeletons %v", s.uuid, ids)

	return nil
}

// Frame returns the frame set for the given frame number without waiting
func (s *Simulator) Frame(frameNum int) *kinectlite.FrameSet {
	return s.frameSet(frameNum)
}

func (s *Simulator) frameSet(frameNum int) *kinectlite.FrameSet {

	skeletons := s.skeletonFrame(frameNum)

	colorBuf := s.colorPool.Get().(*[]byte)
	colorFrame := s.colorFrame(frameNum, *colorBuf)

	var depthBuf *[]kinectlite.DepthPixel
	var depthFrame *kinectlite.DepthFrame

	if s.params.DropEvery <= 0 || (frameNum+1)%s.params.DropEvery != 0 {
		depthBuf = s.depthPool.Get().(*[]kinectlite.DepthPixel)
		depthFrame = s.depthFrame(skeletons, *depthBuf)
	} else {
		log.Debug("Simulated sensor [%s] dropping depth frame %d", s.uuid, frameNum)
	}

	atomic.AddInt64(&s.outstanding, 1)

	release := func() {
		s.colorPool.Put(colorBuf)
		if depthBuf != nil {
			s.depthPool.Put(depthBuf)
		}
		atomic.AddInt64(&s.outstanding, -1)
	}

	return kinectlite.NewFrameSet(colorFrame, depthFrame, skeletons, release)
}

// skeletonFrame fills the skeleton slots with the bodies, unused slots are
// not tracked
func (s *Simulator) skeletonFrame(frameNum int) *kinectlite.SkeletonFrame {

	frame := &kinectlite.SkeletonFrame{
		Skeletons: make([]kinectlite.Skeleton, kinectlite.SkeletonCount),
	}

	s.mu.Lock()
	chosen := s.chosen
	s.mu.Unlock()

	for i := range frame.Skeletons {
		if i < len(s.params.Bodies) {
			body := s.params.Bodies[i]

			if len(chosen) > 0 && body.State == kinectlite.SkeletonTracked && !chosen[body.TrackingID] {
				body.State = kinectlite.SkeletonPositionOnly
			}

			frame.Skeletons[i] = body.SkeletonAt(frameNum)
			continue
		}
		frame.Skeletons[i] = kinectlite.NewSkeleton(0, kinectlite.SkeletonNotTracked, r3.Vector{})
	}

	return frame
}

// depthFrame renders the room with a box silhouette for every body, the
// silhouette pixels carry the player index of the body's skeleton slot
func (s *Simulator) depthFrame(skeletons *kinectlite.SkeletonFrame, pixels []kinectlite.DepthPixel) *kinectlite.DepthFrame {

	w, h := s.params.DepthWidth, s.params.DepthHeight
	rng := s.params.Range

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pixels[y*w+x] = kinectlite.NewDepthPixel(s.backgroundDistance(y), 0)
		}
	}

	// draw far bodies first so nearer bodies occlude them
	slots := make([]int, 0, len(skeletons.Skeletons))

	for i, sk := range skeletons.Skeletons {
		if sk.TrackingState != kinectlite.SkeletonNotTracked {
			slots = append(slots, i)
		}
	}

	sort.SliceStable(slots, func(a, b int) bool {
		return skeletons.Skeletons[slots[a]].Position.Z > skeletons.Skeletons[slots[b]].Position.Z
	})

	for _, slot := range slots {
		s.drawSilhouette(pixels, skeletons.Skeletons[slot].Position, slot+1)
	}

	// sentinel regions
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x < w/40:
				pixels[y*w+x] = kinectlite.NewDepthPixel(rng.UnknownDepth, 0)
			case y < h/12 && x >= w*3/4:
				pixels[y*w+x] = kinectlite.NewDepthPixel(rng.TooFarDepth, 0)
			case y >= h*11/12 && x < w/8:
				pixels[y*w+x] = kinectlite.NewDepthPixel(rng.TooNearDepth, 0)
			}
		}
	}

	return &kinectlite.DepthFrame{
		Width:  w,
		Height: h,
		Pixels: pixels,
		Range:  rng,
	}
}

// backgroundDistance returns the distance of the wall or floor seen on the
// given depth image row
func (s *Simulator) backgroundDistance(y int) int {
	h := float64(s.params.DepthHeight)
	start := horizon * h

	if float64(y) < start {
		return wallDistance
	}

	t := (float64(y) - start) / (h - start)

	return wallDistance - int(t*float64(wallDistance-floorNearDistance))
}

// drawSilhouette fills the projected bounding box of a body at pos
func (s *Simulator) drawSilhouette(pixels []kinectlite.DepthPixel, pos r3.Vector, player int) {

	tl, err := s.mapper.MapSkeletonPoint(pos.Add(silhouetteTopLeft), kinectlite.DepthStream)
	if err != nil {
		return
	}

	br, err := s.mapper.MapSkeletonPoint(pos.Add(silhouetteBottomRight), kinectlite.DepthStream)
	if err != nil {
		return
	}

	w, h := s.params.DepthWidth, s.params.DepthHeight

	x0 := clamp(int(math.Floor(tl.X)), 0, w)
	y0 := clamp(int(math.Floor(tl.Y)), 0, h)
	x1 := clamp(int(math.Ceil(br.X)), 0, w)
	y1 := clamp(int(math.Ceil(br.Y)), 0, h)

	sample := kinectlite.NewDepthPixel(int(pos.Z*1000), player)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			pixels[y*w+x] = sample
		}
	}
}

// colorFrame renders three overlapping red, green and blue discs slowly
// rotating around the image center, in BGRA layout
func (s *Simulator) colorFrame(frameNum int, pixels []byte) *kinectlite.ColorFrame {

	w, h := s.params.ColorWidth, s.params.ColorHeight
	hw, hh := float64(w)/2, float64(h)/2
	r := math.Min(hw, hh) / 3
	rot := float64(frameNum) * math.Pi / 180
	third := 2 * math.Pi / 3

	discs := [3]disc{
		{hw - r*math.Sin(rot), hh - r*math.Cos(rot), r * 1.5},
		{hw - r*math.Sin(rot+third), hh - r*math.Cos(rot+third), r * 1.5},
		{hw - r*math.Sin(rot-third), hh - r*math.Cos(rot-third), r * 1.5},
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * kinectlite.ColorBytesPerPixel
			fx, fy := float64(x), float64(y)

			pixels[i+0] = discs[2].brightness(fx, fy)
			pixels[i+1] = discs[1].brightness(fx, fy)
			pixels[i+2] = discs[0].brightness(fx, fy)
			pixels[i+3] = 255
		}
	}

	return &kinectlite.ColorFrame{
		Width:  w,
		Height: h,
		Pixels: pixels,
	}
}

type disc struct {
	X, Y, R float64
}

func (d disc) brightness(x, y float64) uint8 {
	dx, dy := d.X-x, d.Y-y

	if math.Sqrt(dx*dx+dy*dy) > d.R {
		return 0
	}
	return 255
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
