// Package drive plays back a moves file on the motion engine.
package drive

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mkohler/scarabot/pkg/arm"
	"github.com/mkohler/scarabot/pkg/motion"
)

// Phase is the controller lifecycle state. Halted is terminal: once the moves
// file is drained the controller stays halted until a new controller is made,
// mirroring the firmware's halt-until-reset behavior.
type Phase int

const (
	Idle Phase = iota
	Running
	Halted
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return "idle"
	}
}

// State is a snapshot emitted after every interpolation tick and on every
// phase change.
type State struct {
	Phase     Phase
	Angle1    int
	Angle2    int
	Timestamp time.Time
	Err       error
}

// Start holds explicit startup angles for both axes.
type Start struct {
	Angle1 int
	Angle2 int
}

// Config holds configuration for the controller.
type Config struct {
	MovesPath string
	StepDelay time.Duration
	Start     *Start // startup angles; nil means the axis homes (75, 120)
	Clock     motion.Clock
}

// Controller owns the outer read-and-drive loop: it reads the moves file one
// line at a time, hands each command to the motion engine, and halts when the
// file is exhausted.
type Controller struct {
	engine    *motion.Engine
	movesPath string
	stepDelay time.Duration

	mu      sync.RWMutex
	phase   Phase
	stateCh chan State
	logCh   chan string
}

// NewController creates a controller driving the given actuator.
func NewController(actuator motion.Actuator, cfg Config) *Controller {
	if cfg.StepDelay <= 0 {
		cfg.StepDelay = 100 * time.Millisecond
	}
	if cfg.Clock == nil {
		cfg.Clock = motion.WallClock{}
	}
	if cfg.Start == nil {
		cfg.Start = &Start{Angle1: arm.ShoulderHome, Angle2: arm.ElbowHome}
	}

	c := &Controller{
		movesPath: cfg.MovesPath,
		stepDelay: cfg.StepDelay,
		stateCh:   make(chan State, 1),
		logCh:     make(chan string, 10),
	}
	c.engine = motion.NewEngine(tickObserver{c, actuator}, cfg.Clock, cfg.Start.Angle1, cfg.Start.Angle2)
	return c
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// Positions returns the current axis angles.
func (c *Controller) Positions() (int, int) {
	return c.engine.Positions()
}

func (c *Controller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()

	a1, a2 := c.engine.Positions()
	c.sendState(State{Phase: p, Angle1: a1, Angle2: a2, Timestamp: time.Now()})
}

// Run opens the moves file and drives every command to completion, in file
// order, then transitions to Halted and returns. A missing or unreadable
// moves file is fatal: the controller halts and Run returns the error before
// any motion occurs.
//
// Cancelling ctx aborts mid-move; the controller still transitions to Halted.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != Idle {
		c.mu.Unlock()
		return fmt.Errorf("controller already %s", c.phase)
	}
	c.mu.Unlock()

	f, err := os.Open(c.movesPath)
	if err != nil {
		// Init failure is as terminal as a drained file: no retry.
		c.setPhase(Halted)
		return fmt.Errorf("open moves file: %w", err)
	}
	defer f.Close()

	c.setPhase(Running)
	c.log("Playing %s (step delay %s)", c.movesPath, c.stepDelay)

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		cmd := motion.ParseCommand(scanner.Text())
		n++
		c.log("Move %d: (%d, %d)", n, cmd.Target1, cmd.Target2)

		if err := c.engine.Run(ctx, cmd, c.stepDelay); err != nil {
			c.setPhase(Halted)
			return fmt.Errorf("move %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		c.setPhase(Halted)
		return fmt.Errorf("read moves file: %w", err)
	}

	c.setPhase(Halted)
	c.log("Moves file exhausted after %d command(s), halting", n)
	return nil
}

// tickObserver forwards each engine write to the real actuator and mirrors
// it onto the state channel for observers.
type tickObserver struct {
	c    *Controller
	next motion.Actuator
}

func (t tickObserver) WriteAngles(ctx context.Context, angle1, angle2 int) error {
	if err := t.next.WriteAngles(ctx, angle1, angle2); err != nil {
		t.c.log("Write error: %v", err)
		t.c.sendState(State{Phase: Running, Err: err, Timestamp: time.Now()})
		return err
	}
	t.c.sendState(State{
		Phase:     Running,
		Angle1:    angle1,
		Angle2:    angle2,
		Timestamp: time.Now(),
	})
	return nil
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}
