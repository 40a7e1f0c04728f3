package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Setup  SetupCommand  `command:"setup" description:"Scan for the arm and write a config file"`
	Run    RunCommand    `command:"run" description:"Play back a moves file on the arm"`
	Export ExportCommand `command:"export" description:"Convert a G-code file into a moves file"`
	Sweep  SweepCommand  `command:"sweep" description:"Sweep both axes through their full range (hardware check)"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Scarabot - playback controller for a two-axis SCARA drawing arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
