// Package motion implements the interpolated motion engine for a two-axis arm.
package motion

import (
	"context"
	"fmt"
	"time"
)

// Actuator receives the freshly computed axis angles, once per tick.
type Actuator interface {
	WriteAngles(ctx context.Context, angle1, angle2 int) error
}

// AxisState is the per-axis motion state.
type AxisState int

const (
	// Holding means the axis is at its commanded target.
	Holding AxisState = iota
	// Moving means the axis is still converging on its target.
	Moving
)

func (s AxisState) String() string {
	if s == Moving {
		return "moving"
	}
	return "holding"
}

// Engine owns the two axis position registers and drives them to commanded
// targets with unit-step interpolation. Both axes advance together, one
// degree each per tick, so the axis with the shorter distance arrives early
// and holds while the other catches up.
//
// Engine is not safe for concurrent use; a move blocks its caller until both
// axes arrive.
type Engine struct {
	actuator Actuator
	clock    Clock

	pos1, pos2       int
	target1, target2 int
}

// NewEngine creates an engine with both axes at the given start angles.
// The start angles double as the initial targets, so a fresh engine holds.
func NewEngine(actuator Actuator, clock Clock, start1, start2 int) *Engine {
	return &Engine{
		actuator: actuator,
		clock:    clock,
		pos1:     start1,
		pos2:     start2,
		target1:  start1,
		target2:  start2,
	}
}

// Positions returns the current axis angles.
func (e *Engine) Positions() (angle1, angle2 int) {
	return e.pos1, e.pos2
}

// States returns the per-axis motion state.
func (e *Engine) States() (axis1, axis2 AxisState) {
	if e.pos1 != e.target1 {
		axis1 = Moving
	}
	if e.pos2 != e.target2 {
		axis2 = Moving
	}
	return axis1, axis2
}

// MoveTo drives both axes to the given targets, blocking until both arrive.
// Each tick moves each axis at most one degree toward its target, writes the
// updated angles to the actuator, and waits stepDelay on the clock. A call
// with both axes already at target performs zero ticks and zero writes.
//
// Targets are taken as-is; range enforcement happens at the actuator, which
// clamps like the hardware would. Cancelling ctx aborts between ticks,
// leaving the registers at the last written angles.
func (e *Engine) MoveTo(ctx context.Context, target1, target2 int, stepDelay time.Duration) error {
	e.target1, e.target2 = target1, target2

	for e.pos1 != target1 || e.pos2 != target2 {
		if e.pos1 < target1 {
			e.pos1++
		} else if e.pos1 > target1 {
			e.pos1--
		}

		if e.pos2 < target2 {
			e.pos2++
		} else if e.pos2 > target2 {
			e.pos2--
		}

		if err := e.actuator.WriteAngles(ctx, e.pos1, e.pos2); err != nil {
			return fmt.Errorf("write angles: %w", err)
		}

		if err := e.clock.Tick(ctx, stepDelay); err != nil {
			return err
		}
	}

	return nil
}

// Run executes one command at the given pacing. Thin wrapper over MoveTo for
// callers that already hold a parsed Command.
func (e *Engine) Run(ctx context.Context, cmd Command, stepDelay time.Duration) error {
	return e.MoveTo(ctx, cmd.Target1, cmd.Target2, stepDelay)
}
