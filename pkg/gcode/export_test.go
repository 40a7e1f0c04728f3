package gcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkohler/scarabot/pkg/arm"
	"github.com/mkohler/scarabot/pkg/motion"
)

func TestExport_StartsAtHome(t *testing.T) {
	moves, errs := Export(strings.NewReader(""), DefaultExportOptions())
	assert.Empty(t, errs)
	require.Len(t, moves, 1)
	assert.Equal(t, motion.Command{Target1: arm.ShoulderHome, Target2: arm.ElbowHome}, moves[0])
}

func TestExport_SimpleMove(t *testing.T) {
	// Pen stays at (6,6): the arm pose for that spot is joints (0, 90).
	program := "G90\nG1 X6 Y6\n"
	moves, errs := Export(strings.NewReader(program), DefaultExportOptions())

	assert.Empty(t, errs)
	require.Len(t, moves, 2)
	assert.Equal(t, motion.Command{Target1: arm.ShoulderHome, Target2: arm.ElbowHome}, moves[0])
	assert.Equal(t, motion.Command{Target1: 0, Target2: 90}, moves[1])
}

func TestExport_DedupesAndClamps(t *testing.T) {
	opts := DefaultExportOptions()
	opts.Offset1 = 10

	program := "G1 X6 Y6\nG1 X6 Y6\n"
	moves, errs := Export(strings.NewReader(program), opts)

	assert.Empty(t, errs)
	require.Len(t, moves, 2)
	assert.Equal(t, motion.Command{Target1: 10, Target2: 90}, moves[1])

	for _, m := range moves {
		assert.GreaterOrEqual(t, m.Target1, arm.AngleMin)
		assert.LessOrEqual(t, m.Target1, arm.AngleMax)
		assert.GreaterOrEqual(t, m.Target2, arm.AngleMin)
		assert.LessOrEqual(t, m.Target2, arm.AngleMax)
	}
}

func TestExport_SkipsUnreachable(t *testing.T) {
	// A target outside the 12" reach: every waypoint past the rim fails,
	// but export still returns the moves that worked.
	program := "G1 X20 Y20\n"
	moves, errs := Export(strings.NewReader(program), DefaultExportOptions())

	assert.NotEmpty(t, errs)
	assert.NotEmpty(t, moves)
	for _, err := range errs {
		assert.ErrorContains(t, err, "out of reach")
	}
}

func TestExport_StopsAtProgramEnd(t *testing.T) {
	program := "M2\nG999 X1\n"
	_, errs := Export(strings.NewReader(program), DefaultExportOptions())

	// The bogus command after M2 is never reached.
	assert.Empty(t, errs)
}

func TestExport_ReportsUnsupported(t *testing.T) {
	program := "G999 X1\nG1 X6 Y6\n"
	moves, errs := Export(strings.NewReader(program), DefaultExportOptions())

	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "line 1")
	// The good line after the bad one still converts.
	assert.Equal(t, motion.Command{Target1: 0, Target2: 90}, moves[len(moves)-1])
}

func TestWriteMoves(t *testing.T) {
	var sb strings.Builder
	moves := []motion.Command{{Target1: 75, Target2: 120}, {Target1: 30, Target2: 150}}

	require.NoError(t, WriteMoves(&sb, moves))
	assert.Equal(t, "75,120\n30,150\n", sb.String())
}
