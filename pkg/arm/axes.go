// Package arm provides the hardware binding for the two-axis SCARA arm.
package arm

// AxisName identifies an axis of the arm.
type AxisName string

// Axis names for the two-joint SCARA arm.
const (
	Shoulder AxisName = "shoulder"
	Elbow    AxisName = "elbow"
)

// AllAxes returns the axis names in order (matching servo IDs 1-2).
func AllAxes() []AxisName {
	return []AxisName{Shoulder, Elbow}
}

// Servo angle limits and startup angles, in degrees.
const (
	AngleMin = 0
	AngleMax = 180

	ShoulderHome = 75
	ElbowHome    = 120
)
