package arm

import (
	"context"
	"fmt"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Arm represents the physical two-axis arm on a feetech servo bus.
// Its WriteAngles method satisfies the motion engine's Actuator interface.
type Arm struct {
	bus         *feetech.Bus
	group       *feetech.ServoGroup
	calibration Calibration
}

// NewArm creates and initializes an arm connection.
func NewArm(port string, cal Calibration) (*Arm, error) {
	// Open serial bus
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	// Create servo group from calibration IDs
	ids := cal.ServoIDs()
	group := feetech.NewServoGroupByIDs(bus, ids...)

	return &Arm{
		bus:         bus,
		group:       group,
		calibration: cal,
	}, nil
}

// Close closes the arm's bus connection.
func (a *Arm) Close() error {
	return a.bus.Close()
}

// Enable enables torque on both servos.
func (a *Arm) Enable(ctx context.Context) error {
	return a.group.EnableAll(ctx)
}

// Disable disables torque on both servos.
func (a *Arm) Disable(ctx context.Context) error {
	return a.group.DisableAll(ctx)
}

// WriteAngles writes both axis angles to the servos in one sync write.
// Angles are clamped to the valid range and converted to raw positions
// using the per-axis calibration.
func (a *Arm) WriteAngles(ctx context.Context, angle1, angle2 int) error {
	angles := map[AxisName]int{
		Shoulder: angle1,
		Elbow:    angle2,
	}

	raw := make(feetech.PositionMap, len(angles))
	for name, deg := range angles {
		cal, ok := a.calibration[name]
		if !ok {
			continue
		}
		raw[cal.ID] = cal.RawFromDegrees(deg)
	}

	if err := a.group.SetPositions(ctx, raw); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}

	return nil
}

// ReadAngles reads the current axis angles back from the servos.
func (a *Arm) ReadAngles(ctx context.Context) (angle1, angle2 int, err error) {
	raw, err := a.group.Positions(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("read positions: %w", err)
	}

	for id, pos := range raw {
		name, cal, ok := a.calibration.ByID(id)
		if !ok {
			continue
		}
		switch name {
		case Shoulder:
			angle1 = cal.DegreesFromRaw(pos)
		case Elbow:
			angle2 = cal.DegreesFromRaw(pos)
		}
	}

	return angle1, angle2, nil
}
