package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"

	"github.com/mkohler/scarabot/pkg/arm"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Scarabot Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Println()

	port := scanForArm()

	cfg := arm.DefaultConfig()
	cfg.Port = port

	// Offsets for axis calibration
	if err := promptOffsets(cfg); err != nil {
		fmt.Println()
		os.Exit(0)
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", arm.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Play a moves file with: " + headerStyle.Render("scarabot run"))

	return nil
}

func scanForArm() string {
	fmt.Println("Scanning for the arm...")
	fmt.Println()

	ports := findArmPorts()

	if len(ports) == 0 {
		fmt.Println("No two-axis arm found.")
		fmt.Println("Make sure the arm is connected and powered on.")
		os.Exit(1)
	}

	if len(ports) == 1 {
		fmt.Println(successStyle.Render("Arm found:"))
		fmt.Printf("  Port: %s\n", ports[0])
		return ports[0]
	}

	// More than one candidate bus: ask which one to use.
	var options []huh.Option[string]
	for _, p := range ports {
		options = append(options, huh.NewOption(p, p))
	}

	var port string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which port is the arm on?").
				Options(options...).
				Value(&port),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}

	return port
}

// findArmPorts returns serial ports that answer with both axis servos.
func findArmPorts() []string {
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Printf("Error listing ports: %v\n", err)
		return nil
	}

	var found []string

	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)

		bus, err := feetech.NewBus(feetech.BusConfig{
			Port:     port,
			BaudRate: 1_000_000,
			Protocol: feetech.ProtocolSTS,
			Timeout:  100 * time.Millisecond,
		})
		if err != nil {
			cancel()
			continue
		}

		// Scan for the two axis servos
		servos, err := bus.Scan(ctx, 1, 2)
		cancel()
		bus.Close()

		if err != nil {
			continue
		}

		if isTwoAxisArm(servos) {
			fmt.Printf("  Found two-axis arm on %s\n", port)
			found = append(found, port)
		}
	}

	return found
}

func isTwoAxisArm(servos []feetech.FoundServo) bool {
	if len(servos) != 2 {
		return false
	}

	ids := make(map[int]bool)
	for _, s := range servos {
		ids[s.ID] = true
	}

	return ids[1] && ids[2]
}

// promptOffsets asks for per-axis calibration offsets in degrees.
func promptOffsets(cfg *arm.Config) error {
	var skip bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use default calibration (no offsets)?").
				Affirmative("Yes").
				Negative("No, enter offsets").
				Value(&skip),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if skip {
		return nil
	}

	offsets := make(map[arm.AxisName]int, len(arm.AllAxes()))
	for _, name := range arm.AllAxes() {
		var raw string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Offset for %s (degrees, may be negative)", name)).
					Placeholder("0").
					Value(&raw),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}

		var deg int
		fmt.Sscanf(strings.TrimSpace(raw), "%d", &deg)
		offsets[name] = deg
	}

	for name, deg := range offsets {
		cal := cfg.Calibration[name]
		cal.OffsetDeg = deg
		cfg.Calibration[name] = cal
	}
	return nil
}
