package gcode

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/mkohler/scarabot/pkg/arm"
	"github.com/mkohler/scarabot/pkg/motion"
)

// ExportOptions configures G-code to moves conversion.
type ExportOptions struct {
	Kinematics Kinematics
	// Calibration offsets added to the solved joint angles, in degrees.
	Offset1 int
	Offset2 int
	// ElbowUp selects the inverse kinematics solution.
	ElbowUp bool
}

// DefaultExportOptions returns options for the stock arm geometry.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Kinematics: NewKinematics(DefaultL1, DefaultL2),
		ElbowUp:    true,
	}
}

// Export converts a G-code program into the servo move list the playback
// controller consumes. The list always starts with the home angles. Lines
// that fail (unreachable positions, unsupported commands) are skipped and
// reported in errs; the rest of the program still converts, matching the
// forgiving behavior of the drawing toolchain.
func Export(r io.Reader, opts ExportOptions) (moves []motion.Command, errs []error) {
	interp := NewInterpreter()
	moves = append(moves, motion.Command{Target1: arm.ShoulderHome, Target2: arm.ElbowHome})

	lineNum := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		line, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}

		result, err := interp.Execute(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d (%s): %w", lineNum, line.Raw, err))
			continue
		}
		if result.Done {
			break
		}
		// Dwells have no representation in the moves format.

		for _, p := range result.Waypoints {
			cmd, err := opts.angles(p)
			if err != nil {
				errs = append(errs, fmt.Errorf("line %d (%s): %w", lineNum, line.Raw, err))
				continue
			}
			// Skip consecutive duplicates; they would be zero-tick moves.
			if n := len(moves); n > 0 && moves[n-1] == cmd {
				continue
			}
			moves = append(moves, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("read: %w", err))
	}

	return moves, errs
}

// angles solves the joint angles for p and maps them to clamped servo angles.
func (o ExportOptions) angles(p Point) (motion.Command, error) {
	t1, t2, err := o.Kinematics.Inverse(p, o.ElbowUp)
	if err != nil {
		return motion.Command{}, err
	}

	a1 := clampAngle(int(math.Round(t1)) + o.Offset1)
	a2 := clampAngle(int(math.Round(t2)) + o.Offset2)
	return motion.Command{Target1: a1, Target2: a2}, nil
}

func clampAngle(deg int) int {
	if deg < arm.AngleMin {
		return arm.AngleMin
	}
	if deg > arm.AngleMax {
		return arm.AngleMax
	}
	return deg
}

// WriteMoves writes the move list in the playback file format: one
// "angle1,angle2" command per line.
func WriteMoves(w io.Writer, moves []motion.Command) error {
	bw := bufio.NewWriter(w)
	for _, m := range moves {
		if _, err := fmt.Fprintf(bw, "%d,%d\n", m.Target1, m.Target2); err != nil {
			return err
		}
	}
	return bw.Flush()
}
