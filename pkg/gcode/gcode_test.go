package gcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	line, ok := ParseLine("G1 X2.5 Y3 F2.0")
	require.True(t, ok)
	assert.Equal(t, "G1", line.Command)
	assert.Equal(t, map[byte]float64{'X': 2.5, 'Y': 3, 'F': 2}, line.Params)

	// Lowercase input is uppercased.
	line, ok = ParseLine("g1 x1 y2")
	require.True(t, ok)
	assert.Equal(t, "G1", line.Command)
	assert.Equal(t, map[byte]float64{'X': 1, 'Y': 2}, line.Params)

	// Comments and blanks are skipped.
	_, ok = ParseLine("; just a comment")
	assert.False(t, ok)
	_, ok = ParseLine("   ")
	assert.False(t, ok)

	// Inline comment is stripped; bad params are ignored.
	line, ok = ParseLine("G1 X1 Yoops ; draw")
	require.True(t, ok)
	assert.Equal(t, map[byte]float64{'X': 1}, line.Params)
}

func mustExecute(t *testing.T, it *Interpreter, raw string) Result {
	t.Helper()
	line, ok := ParseLine(raw)
	require.True(t, ok, "parse %q", raw)
	result, err := it.Execute(line)
	require.NoError(t, err, "execute %q", raw)
	return result
}

func TestInterpreter_LinearMove(t *testing.T) {
	it := NewInterpreter()
	assert.Equal(t, Point{HomeX, HomeY}, it.Position())

	result := mustExecute(t, it, "G1 X7 Y6")
	assert.Equal(t, Point{7, 6}, it.Position())

	require.NotEmpty(t, result.Waypoints)
	assert.Equal(t, Point{HomeX, HomeY}, result.Waypoints[0])
	assert.Equal(t, Point{7, 6}, result.Waypoints[len(result.Waypoints)-1])
}

func TestInterpreter_MissingLetterKeepsValue(t *testing.T) {
	it := NewInterpreter()
	mustExecute(t, it, "G1 X8")
	assert.Equal(t, Point{8, HomeY}, it.Position())
}

func TestInterpreter_IncrementalMode(t *testing.T) {
	it := NewInterpreter()
	mustExecute(t, it, "G91")
	mustExecute(t, it, "G1 X1 Y-2")
	mustExecute(t, it, "G1 X1")
	assert.Equal(t, Point{HomeX + 2, HomeY - 2}, it.Position())

	mustExecute(t, it, "G90")
	mustExecute(t, it, "G1 X6 Y6")
	assert.Equal(t, Point{6, 6}, it.Position())
}

func TestInterpreter_Millimeters(t *testing.T) {
	it := NewInterpreter()
	mustExecute(t, it, "G21")
	mustExecute(t, it, "G91")
	mustExecute(t, it, "G1 X25.4")
	assert.InDelta(t, HomeX+1, it.Position().X, 1e-9)
}

func TestInterpreter_SetPosition(t *testing.T) {
	it := NewInterpreter()

	// Declare the current spot to be (0,0); absolute moves now shift with it.
	mustExecute(t, it, "G92 X0 Y0")
	mustExecute(t, it, "G1 X1 Y1")
	assert.Equal(t, Point{HomeX + 1, HomeY + 1}, it.Position())
}

func TestInterpreter_Home(t *testing.T) {
	it := NewInterpreter()
	mustExecute(t, it, "G1 X9 Y3")

	result := mustExecute(t, it, "G28")
	assert.Equal(t, Point{HomeX, HomeY}, it.Position())
	assert.Equal(t, Point{HomeX, HomeY}, result.Waypoints[len(result.Waypoints)-1])
}

func TestInterpreter_Dwell(t *testing.T) {
	it := NewInterpreter()
	result := mustExecute(t, it, "G4 P1.5")
	assert.Equal(t, 1500*time.Millisecond, result.Dwell)
	assert.Empty(t, result.Waypoints)
}

func TestInterpreter_ProgramEnd(t *testing.T) {
	it := NewInterpreter()
	result := mustExecute(t, it, "M2")
	assert.True(t, result.Done)
}

func TestInterpreter_ArcNeedsCenter(t *testing.T) {
	it := NewInterpreter()
	line, ok := ParseLine("G2 X7 Y7")
	require.True(t, ok)
	_, err := it.Execute(line)
	assert.ErrorContains(t, err, "without I or J")
}

func TestInterpreter_Arc(t *testing.T) {
	it := NewInterpreter()
	mustExecute(t, it, "G92 X0 Y0")

	// Quarter circle of radius 1 about (1,0) relative to start.
	result := mustExecute(t, it, "G3 X1 Y1 I1 J0")
	require.NotEmpty(t, result.Waypoints)
	assert.InDelta(t, HomeX+1, it.Position().X, 1e-9)
	assert.InDelta(t, HomeY+1, it.Position().Y, 1e-9)
}

func TestInterpreter_Unsupported(t *testing.T) {
	it := NewInterpreter()
	line, ok := ParseLine("G33 X1")
	require.True(t, ok)
	_, err := it.Execute(line)
	assert.ErrorContains(t, err, "unsupported")
}
