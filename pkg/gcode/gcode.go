// Package gcode interprets the subset of G-code the drawing toolchain emits
// and converts it into servo moves for the arm.
package gcode

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Units for incoming coordinates. Inches are native; millimeters are
// converted on the way in.
type Units int

const (
	Inches Units = iota
	Millimeters
)

const mmPerInch = 25.4

// Home position of the pen in workspace inches.
const (
	HomeX = 6.0
	HomeY = 6.0
)

// SegmentsPerInch is the interpolation resolution for lines and arcs.
const SegmentsPerInch = 10.0

// Line is one parsed G-code line: a command word plus parameter letters.
type Line struct {
	Command string
	Params  map[byte]float64
	Raw     string
}

// Param returns the value of a parameter letter and whether it was present.
func (l Line) Param(letter byte) (float64, bool) {
	v, ok := l.Params[letter]
	return v, ok
}

// ParseLine parses one line of G-code. Comments start with ';' and run to end
// of line. Returns ok=false for blank lines and pure comments. Parameters
// that fail to parse as numbers are ignored.
func ParseLine(raw string) (Line, bool) {
	text, _, _ := strings.Cut(raw, ";")
	text = strings.TrimSpace(text)
	if text == "" {
		return Line{}, false
	}

	parts := strings.Fields(strings.ToUpper(text))
	line := Line{
		Command: parts[0],
		Params:  make(map[byte]float64),
		Raw:     text,
	}

	for _, part := range parts[1:] {
		if len(part) < 2 {
			continue
		}
		value, err := strconv.ParseFloat(part[1:], 64)
		if err != nil {
			continue
		}
		line.Params[part[0]] = value
	}

	return line, true
}

// Result is the outcome of executing one command.
type Result struct {
	// Waypoints the pen should pass through, in workspace inches.
	// Empty for modal commands.
	Waypoints []Point
	// Dwell is a requested pause (G4).
	Dwell time.Duration
	// Done is set by M2: program end.
	Done bool
}

// Interpreter executes parsed G-code lines, tracking modal state
// (units, positioning mode, coordinate offset) and the current pen position.
type Interpreter struct {
	absolute bool
	units    Units
	pos      Point
	offset   Point
	home     Point
}

// NewInterpreter returns an interpreter positioned at home, in absolute
// inch mode.
func NewInterpreter() *Interpreter {
	home := Point{X: HomeX, Y: HomeY}
	return &Interpreter{
		absolute: true,
		units:    Inches,
		pos:      home,
		home:     home,
	}
}

// Position returns the current pen position in workspace inches.
func (it *Interpreter) Position() Point {
	return it.pos
}

// Execute runs one parsed line and returns its result.
// Unsupported commands are an error; the caller decides whether to skip them.
func (it *Interpreter) Execute(line Line) (Result, error) {
	switch line.Command {
	case "G0", "G00", "G1", "G01":
		return it.linearMove(line)
	case "G2", "G02":
		return it.arcMove(line, true)
	case "G3", "G03":
		return it.arcMove(line, false)
	case "G4", "G04":
		p, _ := line.Param('P')
		return Result{Dwell: time.Duration(p * float64(time.Second))}, nil
	case "G20":
		it.units = Inches
		return Result{}, nil
	case "G21":
		it.units = Millimeters
		return Result{}, nil
	case "G28":
		waypoints := InterpolateLine(it.pos, it.home, SegmentsPerInch)
		it.pos = it.home
		return Result{Waypoints: waypoints}, nil
	case "G90":
		it.absolute = true
		return Result{}, nil
	case "G91":
		it.absolute = false
		return Result{}, nil
	case "G92":
		it.setPosition(line)
		return Result{}, nil
	case "M2", "M02":
		return Result{Done: true}, nil
	case "M6", "M06":
		// Tool change: nothing to do on a single-pen arm.
		return Result{}, nil
	default:
		return Result{}, fmt.Errorf("unsupported command %q", line.Command)
	}
}

// toInches converts an incoming coordinate value to inches.
func (it *Interpreter) toInches(v float64) float64 {
	if it.units == Millimeters {
		return v / mmPerInch
	}
	return v
}

// target resolves the X/Y parameters of a move against the current position,
// honoring absolute vs incremental mode and the G92 offset. Missing letters
// keep their current value.
func (it *Interpreter) target(line Line) Point {
	t := it.pos
	if x, ok := line.Param('X'); ok {
		if it.absolute {
			t.X = it.toInches(x) + it.offset.X
		} else {
			t.X = it.pos.X + it.toInches(x)
		}
	}
	if y, ok := line.Param('Y'); ok {
		if it.absolute {
			t.Y = it.toInches(y) + it.offset.Y
		} else {
			t.Y = it.pos.Y + it.toInches(y)
		}
	}
	return t
}

func (it *Interpreter) linearMove(line Line) (Result, error) {
	to := it.target(line)
	waypoints := InterpolateLine(it.pos, to, SegmentsPerInch)
	it.pos = to
	return Result{Waypoints: waypoints}, nil
}

func (it *Interpreter) arcMove(line Line, clockwise bool) (Result, error) {
	to := it.target(line)

	// I and J are the arc center, relative to the start point.
	i, iok := line.Param('I')
	j, jok := line.Param('J')
	if !iok && !jok {
		return Result{}, fmt.Errorf("arc %s without I or J center offset", line.Command)
	}
	center := Point{
		X: it.pos.X + it.toInches(i),
		Y: it.pos.Y + it.toInches(j),
	}

	waypoints := InterpolateArc(it.pos, to, center, clockwise, SegmentsPerInch)
	it.pos = to
	return Result{Waypoints: waypoints}, nil
}

// setPosition implements G92: shift the coordinate system so the current
// position reads as the given values.
func (it *Interpreter) setPosition(line Line) {
	if x, ok := line.Param('X'); ok {
		it.offset.X = it.pos.X - it.toInches(x)
	}
	if y, ok := line.Param('Y'); ok {
		it.offset.Y = it.pos.Y - it.toInches(y)
	}
}
