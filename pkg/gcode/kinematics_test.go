package gcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinematics_InverseForwardRoundTrip(t *testing.T) {
	k := NewKinematics(6, 6)

	points := []Point{
		{6, 6},
		{12, 0},
		{0, 12},
		{3, 4},
		{-5, 5},
		{8, -2},
	}

	for _, p := range points {
		for _, elbowUp := range []bool{true, false} {
			t1, t2, err := k.Inverse(p, elbowUp)
			require.NoError(t, err, "Inverse(%v, elbowUp=%v)", p, elbowUp)

			back := k.Forward(t1, t2)
			assert.InDelta(t, p.X, back.X, 1e-9, "X round-trip for %v", p)
			assert.InDelta(t, p.Y, back.Y, 1e-9, "Y round-trip for %v", p)
		}
	}
}

func TestKinematics_Inverse_KnownAngles(t *testing.T) {
	k := NewKinematics(6, 6)

	// Fully extended along X: both joints at zero.
	t1, t2, err := k.Inverse(Point{12, 0}, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, t1, 1e-9)
	assert.InDelta(t, 0, t2, 1e-9)

	// Right angle at the elbow.
	t1, t2, err = k.Inverse(Point{6, 6}, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, t1, 1e-9)
	assert.InDelta(t, 90, t2, 1e-9)
}

func TestKinematics_Inverse_Unreachable(t *testing.T) {
	k := NewKinematics(6, 6)

	_, _, err := k.Inverse(Point{20, 20}, true)
	assert.ErrorContains(t, err, "out of reach")

	// Asymmetric arm has a dead zone around the base.
	asym := NewKinematics(8, 4)
	_, _, err = asym.Inverse(Point{1, 0}, true)
	assert.ErrorContains(t, err, "too close")
}

func TestKinematics_Reachable(t *testing.T) {
	k := NewKinematics(8, 4)

	assert.True(t, k.Reachable(Point{8, 0}))
	assert.True(t, k.Reachable(Point{12, 0}))
	assert.True(t, k.Reachable(Point{4, 0}))
	assert.False(t, k.Reachable(Point{13, 0}))
	assert.False(t, k.Reachable(Point{1, 0}))
}

func TestInterpolateLine(t *testing.T) {
	points := InterpolateLine(Point{0, 0}, Point{2, 0}, 10)

	require.Len(t, points, 21)
	assert.Equal(t, Point{0, 0}, points[0])
	assert.Equal(t, Point{2, 0}, points[len(points)-1])

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].X, points[i-1].X)
	}
}

func TestInterpolateLine_ZeroLength(t *testing.T) {
	points := InterpolateLine(Point{3, 3}, Point{3, 3}, 10)
	require.NotEmpty(t, points)
	for _, p := range points {
		assert.Equal(t, Point{3, 3}, p)
	}
}

func TestInterpolateArc_QuarterCircle(t *testing.T) {
	from := Point{1, 0}
	to := Point{0, 1}

	points := InterpolateArc(from, to, Point{0, 0}, false, 10)

	require.GreaterOrEqual(t, len(points), 5)
	assert.InDelta(t, from.X, points[0].X, 1e-9)
	assert.InDelta(t, to.Y, points[len(points)-1].Y, 1e-9)

	// Every waypoint stays on the circle.
	for _, p := range points {
		assert.InDelta(t, 1.0, math.Hypot(p.X, p.Y), 1e-9)
	}
}

func TestInterpolateArc_Clockwise(t *testing.T) {
	// Clockwise from (0,1) to (1,0) is the short way round.
	points := InterpolateArc(Point{0, 1}, Point{1, 0}, Point{0, 0}, true, 10)

	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].X, points[i-1].X)
	}
}
