// Package scarabot drives a two-axis SCARA drawing arm from a file of
// prerecorded servo moves.
//
// The arm has two rotational axes (shoulder and elbow). Motion commands are
// plain text lines of the form "angle1,angle2", one command per line, played
// back in order with unit-step linear interpolation between positions.
//
// # Installation
//
//	go install github.com/mkohler/scarabot/cmd/scarabot@latest
//
// # Usage
//
// First, run setup to detect the servo bus and write a config file:
//
//	scarabot setup
//
// Convert a G-code drawing into a moves file:
//
//	scarabot export drawing.gcode
//
// Then play it back on the arm:
//
//	scarabot run
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/scarabot: CLI with setup, run, export and sweep commands
//   - pkg/motion: motion engine and command parsing
//   - pkg/drive: playback controller for moves files
//   - pkg/arm: servo bus binding, calibration, and configuration
//   - pkg/gcode: G-code parsing, SCARA kinematics, and moves export
package scarabot
