package tracker

import (
	"sync"

	"github.com/golang/geo/r3"
	"github.com/swdee/go-kinectlite"
)

// SmoothParams are the parameters of the double exponential joint filter
type SmoothParams struct {
	// Smoothing in [0, 1), higher values smooth more but add latency
	Smoothing float64
	// Correction in [0, 1], how fast the trend follows the raw data
	Correction float64
	// Prediction is the number of frames to predict into the future
	Prediction float64
	// JitterRadius in meters, movements below this are damped
	JitterRadius float64
	// MaxDeviationRadius in meters, how far the filtered position may
	// deviate from the raw position
	MaxDeviationRadius float64
}

// DefaultSmoothParams returns the smoothing the sensor wrapper enabled the
// skeleton stream with
func DefaultSmoothParams() SmoothParams {
	return SmoothParams{
		Smoothing:          0.7,
		Correction:         0.3,
		Prediction:         0.4,
		JitterRadius:       0.10,
		MaxDeviationRadius: 0.5,
	}
}

// jointHistory is the filter state of a single joint
type jointHistory struct {
	raw        r3.Vector
	filtered   r3.Vector
	trend      r3.Vector
	frameCount int
}

// JointSmoother applies a Holt double exponential filter to skeleton joint
// positions, keeping state per tracking ID
type JointSmoother struct {
	// Params are the filter parameters
	Params SmoothParams

	history map[int]*[kinectlite.JointCount]jointHistory
	mu      sync.Mutex
}

// NewJointSmoother returns a new joint smoother
func NewJointSmoother(p SmoothParams) *JointSmoother {
	return &JointSmoother{
		Params:  p,
		history: make(map[int]*[kinectlite.JointCount]jointHistory),
	}
}

// Reset clears the filter state of all skeletons
func (js *JointSmoother) Reset() {
	js.mu.Lock()
	defer js.mu.Unlock()

	js.history = make(map[int]*[kinectlite.JointCount]jointHistory)
}

// SmoothFrame returns a copy of the frame with every tracked skeleton
// smoothed.  Filter state for skeletons no longer tracked is dropped.
func (js *JointSmoother) SmoothFrame(frame *kinectlite.SkeletonFrame) *kinectlite.SkeletonFrame {
	out := &kinectlite.SkeletonFrame{
		Skeletons: make([]kinectlite.Skeleton, len(frame.Skeletons)),
	}

	seen := make(map[int]bool)

	for i, s := range frame.Skeletons {
		if s.TrackingState == kinectlite.SkeletonTracked {
			seen[s.TrackingID] = true
		}
		out.Skeletons[i] = js.Smooth(s)
	}

	js.mu.Lock()
	for id := range js.history {
		if !seen[id] {
			delete(js.history, id)
		}
	}
	js.mu.Unlock()

	return out
}

// Smooth returns a copy of the skeleton with filtered joint positions.  Only
// fully tracked skeletons are filtered, others are returned unchanged.
func (js *JointSmoother) Smooth(s kinectlite.Skeleton) kinectlite.Skeleton {

	if s.TrackingState != kinectlite.SkeletonTracked {
		return s
	}

	js.mu.Lock()
	defer js.mu.Unlock()

	hist, exists := js.history[s.TrackingID]

	if !exists {
		hist = &[kinectlite.JointCount]jointHistory{}
		js.history[s.TrackingID] = hist
	}

	for i := range s.Joints {
		s.Joints[i].Position = js.filterJoint(&hist[i], s.Joints[i])
	}

	return s
}

// filterJoint runs one step of the filter for a joint and returns the
// position to report
func (js *JointSmoother) filterJoint(h *jointHistory, j kinectlite.Joint) r3.Vector {

	p := js.Params

	// inferred joints are noisier so loosen the filter
	if j.TrackingState == kinectlite.JointInferred {
		p.JitterRadius *= 2
		p.MaxDeviationRadius *= 2
	}

	raw := j.Position

	if j.TrackingState == kinectlite.JointNotTracked {
		*h = jointHistory{}
		return raw
	}

	var filtered, trend r3.Vector

	switch h.frameCount {
	case 0:
		filtered = raw

	case 1:
		filtered = raw.Add(h.raw).Mul(0.5)
		trend = filtered.Sub(h.filtered).Mul(p.Correction).Add(h.trend.Mul(1 - p.Correction))

	default:
		// damp movement within the jitter radius
		input := raw
		if dist := raw.Sub(h.filtered).Norm(); p.JitterRadius > 0 && dist <= p.JitterRadius {
			ratio := dist / p.JitterRadius
			input = raw.Mul(ratio).Add(h.filtered.Mul(1 - ratio))
		}

		filtered = input.Mul(1 - p.Smoothing).Add(h.filtered.Add(h.trend).Mul(p.Smoothing))
		trend = filtered.Sub(h.filtered).Mul(p.Correction).Add(h.trend.Mul(1 - p.Correction))
	}

	predicted := filtered.Add(trend.Mul(p.Prediction))

	// keep the prediction within the maximum deviation of the raw position
	if dev := predicted.Sub(raw).Norm(); p.MaxDeviationRadius > 0 && dev > p.MaxDeviationRadius {
		ratio := p.MaxDeviationRadius / dev
		predicted = predicted.Mul(ratio).Add(raw.Mul(1 - ratio))
	}

	h.raw = raw
	h.filtered = filtered
	h.trend = trend
	h.frameCount++

	return predicted
}
