package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/mkohler/scarabot/pkg/arm"
	"github.com/mkohler/scarabot/pkg/motion"
)

type SweepCommand struct {
	Delay int  `long:"delay" default:"5" description:"Step delay in milliseconds"`
	Once  bool `long:"once" description:"Sweep a single cycle instead of looping"`
}

// Execute slowly sweeps each axis through its full range, one axis at a
// time, and back. Useful to verify wiring and end stops before mounting
// the pen.
func (c *SweepCommand) Execute(args []string) error {
	cfg, err := arm.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No configuration found. Run 'scarabot setup' first.")
		os.Exit(1)
	}
	if cfg.Port == "" {
		fmt.Fprintln(os.Stderr, "Arm not configured. Run 'scarabot setup' first.")
		os.Exit(1)
	}

	a, err := arm.NewArm(cfg.Port, cfg.Calibration)
	if err != nil {
		log.Fatalf("Failed to open arm: %v", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.Enable(ctx); err != nil {
		log.Fatalf("Failed to enable torque: %v", err)
	}
	defer a.Disable(context.Background())

	delay := time.Duration(c.Delay) * time.Millisecond
	engine := motion.NewEngine(a, motion.WallClock{}, arm.AngleMin, arm.AngleMin)

	fmt.Println("Sweeping. Press Ctrl-C to stop.")

	for {
		// Each leg moves one axis while the other holds.
		legs := [][2]int{
			{arm.AngleMax, arm.AngleMin},
			{arm.AngleMax, arm.AngleMax},
			{arm.AngleMin, arm.AngleMax},
			{arm.AngleMin, arm.AngleMin},
		}
		for _, leg := range legs {
			if err := engine.MoveTo(ctx, leg[0], leg[1], delay); err != nil {
				if ctx.Err() != nil {
					fmt.Println("\nSweep stopped.")
					return nil
				}
				return err
			}
		}

		if c.Once {
			return nil
		}

		select {
		case <-ctx.Done():
			fmt.Println("\nSweep stopped.")
			return nil
		case <-time.After(time.Second):
		}
	}
}
