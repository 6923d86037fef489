package tracker

import (
	"sync"

	"github.com/golang/geo/r3"
)

// Track represents the position history of one skeleton
type Track struct {
	points []r3.Vector
}

// Trail is the struct to keep a history of skeleton positions keyed by
// tracking ID, used as the reference point for active player selection and
// for drawing a trail
type Trail struct {
	// size is the maximum number of most recent points to keep in history
	size int
	// history of tracked points
	history map[int]*Track
	sync.Mutex
}

// NewTrail returns a new trail history instance.  Size is the number of most
// recent positions to keep per skeleton
func NewTrail(size int) *Trail {
	if size < 1 {
		size = 1
	}

	return &Trail{
		size:    size,
		history: make(map[int]*Track),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.Lock()
	defer t.Unlock()

	t.history = make(map[int]*Track)
}

// Add records a position for the given tracking ID
func (t *Trail) Add(trackingID int, pos r3.Vector) {
	t.Lock()
	defer t.Unlock()

	// init map if no history exists yet for tracking id
	track, exists := t.history[trackingID]

	if !exists {
		track = &Track{}
		t.history[trackingID] = track
	}

	track.points = append(track.points, pos)

	// check if history is exceeded and drop oldest point
	if len(track.points) > t.size {
		track.points = track.points[1:]
	}
}

// Points returns a copy of the position history for a tracking ID, oldest
// first
func (t *Trail) Points(trackingID int) []r3.Vector {
	t.Lock()
	defer t.Unlock()

	track, exists := t.history[trackingID]

	if !exists {
		// no history yet
		return nil
	}

	out := make([]r3.Vector, len(track.points))
	copy(out, track.points)

	return out
}

// Last returns the most recent position for a tracking ID
func (t *Trail) Last(trackingID int) (r3.Vector, bool) {
	t.Lock()
	defer t.Unlock()

	track, exists := t.history[trackingID]

	if !exists || len(track.points) == 0 {
		return r3.Vector{}, false
	}

	return track.points[len(track.points)-1], true
}

// Forget drops the history of every tracking ID not in keep
func (t *Trail) Forget(keep map[int]bool) {
	t.Lock()
	defer t.Unlock()

	for id := range t.history {
		if !keep[id] {
			delete(t.history, id)
		}
	}
}
