package gcode

import (
	"fmt"
	"math"
)

// Point is a position in the workspace plane, in inches.
type Point struct {
	X float64
	Y float64
}

// Arm segment lengths in inches for the stock two-link arm.
const (
	DefaultL1 = 6.0
	DefaultL2 = 6.0
)

// Kinematics solves the two-link planar arm: L1 from shoulder to elbow,
// L2 from elbow to pen.
type Kinematics struct {
	L1 float64
	L2 float64
}

// NewKinematics returns a solver for the given segment lengths.
func NewKinematics(l1, l2 float64) Kinematics {
	return Kinematics{L1: l1, L2: l2}
}

// MaxReach is the fully extended radius.
func (k Kinematics) MaxReach() float64 {
	return k.L1 + k.L2
}

// MinReach is the fully folded radius.
func (k Kinematics) MinReach() float64 {
	return math.Abs(k.L1 - k.L2)
}

// Reachable reports whether p lies inside the arm's annular workspace.
func (k Kinematics) Reachable(p Point) bool {
	r := math.Hypot(p.X, p.Y)
	return r >= k.MinReach() && r <= k.MaxReach()
}

// Inverse calculates the joint angles, in degrees, that put the pen at p.
// elbowUp selects which of the two mirror solutions to use. Returns an error
// when p lies outside the workspace.
func (k Kinematics) Inverse(p Point, elbowUp bool) (theta1, theta2 float64, err error) {
	r := math.Hypot(p.X, p.Y)

	if r > k.MaxReach() {
		return 0, 0, fmt.Errorf("position (%.2f, %.2f) out of reach: distance %.2f > max reach %.2f",
			p.X, p.Y, r, k.MaxReach())
	}
	if r < k.MinReach() {
		return 0, 0, fmt.Errorf("position (%.2f, %.2f) too close: distance %.2f < min reach %.2f",
			p.X, p.Y, r, k.MinReach())
	}
	if r < 0.001 {
		return 0, 0, nil
	}

	// Law of cosines for the elbow angle; clamp against rounding drift.
	cosT2 := (p.X*p.X + p.Y*p.Y - k.L1*k.L1 - k.L2*k.L2) / (2 * k.L1 * k.L2)
	cosT2 = math.Max(-1, math.Min(1, cosT2))

	t2 := math.Acos(cosT2)
	if !elbowUp {
		t2 = -t2
	}

	k1 := k.L1 + k.L2*math.Cos(t2)
	k2 := k.L2 * math.Sin(t2)
	t1 := math.Atan2(p.Y, p.X) - math.Atan2(k2, k1)

	return t1 * 180 / math.Pi, t2 * 180 / math.Pi, nil
}

// Forward calculates the pen position from joint angles in degrees.
func (k Kinematics) Forward(theta1, theta2 float64) Point {
	t1 := theta1 * math.Pi / 180
	t2 := theta2 * math.Pi / 180

	elbowX := k.L1 * math.Cos(t1)
	elbowY := k.L1 * math.Sin(t1)

	return Point{
		X: elbowX + k.L2*math.Cos(t1+t2),
		Y: elbowY + k.L2*math.Sin(t1+t2),
	}
}

// InterpolateLine generates waypoints along a straight segment, including
// both endpoints. Resolution is segments per inch of path length.
func InterpolateLine(from, to Point, segmentsPerInch float64) []Point {
	length := math.Hypot(to.X-from.X, to.Y-from.Y)
	n := int(length * segmentsPerInch)
	if n < 1 {
		n = 1
	}

	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		points = append(points, Point{
			X: from.X + t*(to.X-from.X),
			Y: from.Y + t*(to.Y-from.Y),
		})
	}
	return points
}

// InterpolateArc generates waypoints along a circular arc about center,
// including both endpoints. clockwise selects the G2 direction, otherwise G3.
func InterpolateArc(from, to, center Point, clockwise bool, segmentsPerInch float64) []Point {
	startAngle := math.Atan2(from.Y-center.Y, from.X-center.X)
	endAngle := math.Atan2(to.Y-center.Y, to.X-center.X)
	radius := math.Hypot(from.X-center.X, from.Y-center.Y)

	sweep := endAngle - startAngle
	if clockwise {
		if sweep > 0 {
			sweep -= 2 * math.Pi
		}
	} else {
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
	}

	arcLength := math.Abs(radius * sweep)
	n := int(arcLength * segmentsPerInch)
	if n < 4 {
		n = 4
	}

	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		angle := startAngle + t*sweep
		points = append(points, Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return points
}
