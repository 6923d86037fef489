package tracker

import (
	"sync"

	"github.com/golang/geo/r3"
	"github.com/swdee/go-kinectlite"
	"gonum.org/v1/gonum/floats"
)

// DefaultSelectThreshold is the distance a skeleton must be closer than to
// the reference point to become the active player
const DefaultSelectThreshold = 100

// PlanarDistance returns the distance between two points on the floor plane,
// the Y (height) axis is ignored
func PlanarDistance(a, b r3.Vector) float64 {
	return floats.Distance([]float64{a.X, a.Z}, []float64{b.X, b.Z}, 2)
}

// SelectActive returns the tracking ID of the skeleton closest to ref on the
// floor plane.  Only skeletons closer than threshold qualify and on a tie the
// first skeleton wins.  The bool is false when no skeleton qualified.
func SelectActive(skeletons []kinectlite.Skeleton, ref r3.Vector, threshold float64) (int, bool) {

	best := threshold
	id := 0
	found := false

	for _, s := range skeletons {
		if s.TrackingState == kinectlite.SkeletonNotTracked {
			continue
		}

		d := PlanarDistance(ref, s.Position)

		if d < best {
			best = d
			id = s.TrackingID
			found = true
		}
	}

	return id, found
}

// Selector picks the active player frame over frame.  When no explicit
// reference point is given it uses the last known position of the currently
// active player.
type Selector struct {
	// Threshold is the selection cut off distance
	Threshold float64
	// Center is the reference point used when there is no active player
	Center r3.Vector

	trail    *Trail
	activeID int
	active   bool
	mu       sync.Mutex
}

// NewSelector returns a Selector keeping historySize positions of the active
// player
func NewSelector(threshold float64, center r3.Vector, historySize int) *Selector {
	return &Selector{
		Threshold: threshold,
		Center:    center,
		trail:     NewTrail(historySize),
	}
}

// Reference returns the point the next selection is measured from
func (s *Selector) Reference() r3.Vector {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reference()
}

func (s *Selector) reference() r3.Vector {
	if s.active {
		if pos, ok := s.trail.Last(s.activeID); ok {
			return pos
		}
	}
	return s.Center
}

// Select chooses the active player for the frame and records its position
func (s *Selector) Select(frame *kinectlite.SkeletonFrame) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := SelectActive(frame.Skeletons, s.reference(), s.Threshold)

	s.activeID = id
	s.active = ok

	if !ok {
		s.trail.Reset()
		return 0, false
	}

	for _, sk := range frame.Skeletons {
		if sk.TrackingID == id && sk.TrackingState != kinectlite.SkeletonNotTracked {
			s.trail.Add(id, sk.Position)
			break
		}
	}

	s.trail.Forget(map[int]bool{id: true})

	return id, true
}

// Active returns the currently active tracking ID
func (s *Selector) Active() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeID, s.active
}

// Trail returns the position history of the active player
func (s *Selector) Trail() []r3.Vector {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}
	return s.trail.Points(s.activeID)
}

// Reset forgets the active player
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
	s.activeID = 0
	s.trail.Reset()
}
