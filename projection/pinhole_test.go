package projection

import (
	"errors"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-kinectlite"
)

func TestPinholeMapperCenter(t *testing.T) {
	m := NewPinholeMapper()

	for _, stream := range []kinectlite.StreamType{kinectlite.DepthStream, kinectlite.ColorStream} {
		p, err := m.MapSkeletonPoint(r3.Vector{X: 0, Y: 0, Z: 2}, stream)
		require.NoError(t, err)
		assert.Equal(t, Point{X: 320, Y: 240}, p)
	}
}

func TestPinholeMapperFlipsY(t *testing.T) {
	m := NewPinholeMapper()

	up, err := m.MapSkeletonPoint(r3.Vector{X: 0.5, Y: 0.5, Z: 2}, kinectlite.DepthStream)
	require.NoError(t, err)

	assert.Greater(t, up.X, 320.0)
	assert.Less(t, up.Y, 240.0)
}

func TestPinholeMapperBehindSensor(t *testing.T) {
	m := NewPinholeMapper()

	_, err := m.MapSkeletonPoint(r3.Vector{X: 0, Y: 0, Z: 0}, kinectlite.DepthStream)
	assert.True(t, errors.Is(err, ErrBehindSensor))
}

func TestPinholeUnprojectRoundTrip(t *testing.T) {
	m := NewPinholeMapper()

	v := m.Unproject(100, 400, 2500)
	assert.InDelta(t, 2.5, v.Z, 1e-9)

	p, err := m.MapSkeletonPoint(v, kinectlite.DepthStream)
	require.NoError(t, err)
	assert.InDelta(t, 100, p.X, 1e-9)
	assert.InDelta(t, 400, p.Y, 1e-9)
}

func TestIntrinsicsResize(t *testing.T) {
	in := DefaultDepthIntrinsics().Resize(320, 240)

	assert.Equal(t, 320, in.Width)
	assert.Equal(t, 240, in.Height)
	assert.InDelta(t, 571.26/2, in.FocalLength, 1e-9)

	m := &PinholeMapper{Depth: in, Color: DefaultColorIntrinsics()}
	p, err := m.MapSkeletonPoint(r3.Vector{X: 0.5, Y: 0, Z: 2}, kinectlite.DepthStream)
	require.NoError(t, err)

	full, err := NewPinholeMapper().MapSkeletonPoint(r3.Vector{X: 0.5, Y: 0, Z: 2}, kinectlite.DepthStream)
	require.NoError(t, err)
	assert.InDelta(t, full.X/2, p.X, 1e-9)
}
