package arm

// AxisCalibration holds calibration data for a single axis.
type AxisCalibration struct {
	ID        int `json:"id"`
	OffsetDeg int `json:"offset_deg"`
	RawMin    int `json:"raw_min"`
	RawMax    int `json:"raw_max"`
}

// Calibration holds calibration data for both axes, keyed by axis name.
type Calibration map[AxisName]AxisCalibration

// DefaultCalibration returns the stock calibration for an uncalibrated arm:
// servo IDs 1 and 2, no offset, full 12-bit position range.
func DefaultCalibration() Calibration {
	return Calibration{
		Shoulder: AxisCalibration{ID: 1, RawMin: 0, RawMax: 4095},
		Elbow:    AxisCalibration{ID: 2, RawMin: 0, RawMax: 4095},
	}
}

// Clamp applies the calibration offset and saturates the result to the valid
// angle range. This is the same boundary behavior a hobby servo shows when
// commanded past its end stops.
func (c AxisCalibration) Clamp(deg int) int {
	deg += c.OffsetDeg
	if deg < AngleMin {
		return AngleMin
	}
	if deg > AngleMax {
		return AngleMax
	}
	return deg
}

// RawFromDegrees converts a clamped angle in degrees to a raw servo position.
func (c AxisCalibration) RawFromDegrees(deg int) int {
	deg = c.Clamp(deg)
	span := c.RawMax - c.RawMin
	return c.RawMin + deg*span/(AngleMax-AngleMin)
}

// DegreesFromRaw converts a raw servo position back to degrees, rounding to
// the nearest degree. Truncating here instead would undo the truncation in
// RawFromDegrees and read back one degree low.
func (c AxisCalibration) DegreesFromRaw(raw int) int {
	span := c.RawMax - c.RawMin
	if span == 0 {
		return 0
	}
	return ((raw-c.RawMin)*(AngleMax-AngleMin) + span/2) / span
}

// ServoIDs returns the servo IDs for both axes in axis order.
func (c Calibration) ServoIDs() []int {
	ids := make([]int, 0, len(c))
	// Use AllAxes() to ensure consistent ordering
	for _, name := range AllAxes() {
		if ac, ok := c[name]; ok {
			ids = append(ids, ac.ID)
		}
	}
	return ids
}

// ByID returns the axis name and calibration for a given servo ID.
func (c Calibration) ByID(id int) (AxisName, AxisCalibration, bool) {
	for name, ac := range c {
		if ac.ID == id {
			return name, ac, true
		}
	}
	return "", AxisCalibration{}, false
}
