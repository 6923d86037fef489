package tracker

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestTrailKeepsMostRecent(t *testing.T) {
	trail := NewTrail(3)

	for i := 0; i < 5; i++ {
		trail.Add(9, r3.Vector{X: float64(i)})
	}

	assert.Equal(t, []r3.Vector{{X: 2}, {X: 3}, {X: 4}}, trail.Points(9))

	last, ok := trail.Last(9)
	assert.True(t, ok)
	assert.Equal(t, r3.Vector{X: 4}, last)

	assert.Nil(t, trail.Points(1))
	_, ok = trail.Last(1)
	assert.False(t, ok)
}

func TestTrailPointsIsCopy(t *testing.T) {
	trail := NewTrail(2)
	trail.Add(1, r3.Vector{X: 1})

	pts := trail.Points(1)
	pts[0].X = 99

	assert.Equal(t, r3.Vector{X: 1}, trail.Points(1)[0])
}

func TestTrailForgetAndReset(t *testing.T) {
	trail := NewTrail(2)
	trail.Add(1, r3.Vector{X: 1})
	trail.Add(2, r3.Vector{X: 2})

	trail.Forget(map[int]bool{2: true})
	assert.Nil(t, trail.Points(1))
	assert.Len(t, trail.Points(2), 1)

	trail.Reset()
	assert.Nil(t, trail.Points(2))
}
