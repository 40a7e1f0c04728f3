package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/mkohler/scarabot/pkg/arm"
	"github.com/mkohler/scarabot/pkg/drive"
	"github.com/mkohler/scarabot/pkg/motion"
)

type RunCommand struct {
	Moves string `long:"moves" description:"Moves file to play (overrides config)"`
	Delay int    `long:"delay" description:"Step delay in milliseconds (overrides config)"`
	NoTUI bool   `long:"no-tui" description:"Plain log output instead of the live chart"`
	Dry   bool   `long:"dry-run" description:"Interpret the moves file without hardware"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Axis colors for the chart and legend.
var axisColors = map[arm.AxisName]string{
	arm.Shoulder: "208", // orange
	arm.Elbow:    "51",  // cyan
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// nullActuator discards writes; used by --dry-run.
type nullActuator struct{}

func (nullActuator) WriteAngles(context.Context, int, int) error { return nil }

func (c *RunCommand) Execute(args []string) error {
	cfg, err := arm.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No configuration found. Run 'scarabot setup' first.")
		os.Exit(1)
	}

	movesPath := cfg.MovesFile
	if c.Moves != "" {
		movesPath = c.Moves
	}
	stepDelay := time.Duration(cfg.StepDelayMs) * time.Millisecond
	if c.Delay > 0 {
		stepDelay = time.Duration(c.Delay) * time.Millisecond
	}

	var actuator motion.Actuator = nullActuator{}
	if !c.Dry {
		if cfg.Port == "" {
			fmt.Fprintln(os.Stderr, "Arm not configured. Run 'scarabot setup' first.")
			os.Exit(1)
		}
		a, err := arm.NewArm(cfg.Port, cfg.Calibration)
		if err != nil {
			log.Fatalf("Failed to open arm: %v", err)
		}
		defer a.Close()

		ctx := context.Background()
		if err := a.Enable(ctx); err != nil {
			log.Fatalf("Failed to enable torque: %v", err)
		}
		defer a.Disable(context.Background())

		actuator = a
	}

	ctrl := drive.NewController(actuator, drive.Config{
		MovesPath: movesPath,
		StepDelay: stepDelay,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- ctrl.Run(ctx)
	}()

	if c.NoTUI {
		return runPlain(ctrl, errCh)
	}

	p := tea.NewProgram(initialRunModel(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
	cancel()

	if err := <-errCh; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// runPlain drains logs to stdout until the controller halts.
func runPlain(ctrl *drive.Controller, errCh <-chan error) error {
	for {
		select {
		case msg := <-ctrl.Logs():
			fmt.Println(msg)
		case err := <-errCh:
			for {
				select {
				case msg := <-ctrl.Logs():
					fmt.Println(msg)
				default:
					return err
				}
			}
		}
	}
}

type runModel struct {
	ctrl     *drive.Controller
	chart    *streamlinechart.Model
	width    int      // terminal width
	height   int      // terminal height
	logs     []string // last N log messages
	halted   bool
	quitting bool
}

func (m *runModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg drive.State
type logMsg string

func waitForState(ctrl *drive.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *drive.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *runModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *runModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialRunModel(ctrl *drive.Controller) runModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(arm.AngleMin, arm.AngleMax),
	)

	// Set up data set styles for each axis
	for _, name := range arm.AllAxes() {
		color := axisColors[name]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(string(name), runes.ThinLineStyle, style)
	}

	return runModel{
		ctrl:  ctrl,
		chart: &chart,
	}
}

func (m runModel) Init() tea.Cmd {
	// Start listening for state and log updates
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		state := drive.State(msg)
		if state.Err == nil {
			m.chart.PushDataSet(string(arm.Shoulder), float64(state.Angle1))
			m.chart.PushDataSet(string(arm.Elbow), float64(state.Angle2))
			m.chart.DrawAll()
		}
		if state.Phase == drive.Halted {
			m.halted = true
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m runModel) View() string {
	if m.quitting {
		return "Playback stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Scarabot Run"))
	a1, a2 := m.ctrl.Positions()
	sb.WriteString(fmt.Sprintf(" - shoulder %d°, elbow %d°", a1, a2))
	if m.halted {
		sb.WriteString(statusStyle.Render("  [halted]"))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, name := range arm.AllAxes() {
		color := axisColors[name]
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		item := colorStyle.Render("━━") + " " + string(name)
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}
