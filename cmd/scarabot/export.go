package main

import (
	"fmt"
	"os"

	"github.com/mkohler/scarabot/pkg/gcode"
)

type ExportCommand struct {
	Output    string  `long:"output" short:"o" default:"moves.txt" description:"Moves file to write"`
	L1        float64 `long:"l1" default:"6.0" description:"First segment length in inches"`
	L2        float64 `long:"l2" default:"6.0" description:"Second segment length in inches"`
	Offset1   int     `long:"offset1" description:"Shoulder calibration offset in degrees"`
	Offset2   int     `long:"offset2" description:"Elbow calibration offset in degrees"`
	ElbowDown bool    `long:"elbow-down" description:"Use the elbow-down kinematic solution"`

	Args struct {
		GCodeFile string `positional-arg-name:"gcode-file" required:"yes"`
	} `positional-args:"yes"`
}

func (c *ExportCommand) Execute(args []string) error {
	in, err := os.Open(c.Args.GCodeFile)
	if err != nil {
		return fmt.Errorf("open G-code file: %w", err)
	}
	defer in.Close()

	opts := gcode.ExportOptions{
		Kinematics: gcode.NewKinematics(c.L1, c.L2),
		Offset1:    c.Offset1,
		Offset2:    c.Offset2,
		ElbowUp:    !c.ElbowDown,
	}

	moves, errs := gcode.Export(in, opts)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "skipped: %v\n", e)
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create moves file: %w", err)
	}
	defer out.Close()

	if err := gcode.WriteMoves(out, moves); err != nil {
		return fmt.Errorf("write moves file: %w", err)
	}

	fmt.Println(successStyle.Render("Export complete!"))
	fmt.Printf("%d move(s) written to %s", len(moves), c.Output)
	if len(errs) > 0 {
		fmt.Printf(" (%d line(s) skipped)", len(errs))
	}
	fmt.Println()
	fmt.Println("Play it back with: " + headerStyle.Render("scarabot run"))

	return nil
}
