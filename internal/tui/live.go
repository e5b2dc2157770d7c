// Package tui is the interactive terminal frontend: pick a plant preset,
// then watch the root system grow day by day.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/timokoch/CRootBox/internal/config"
	"github.com/timokoch/CRootBox/internal/rootbox"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const (
	canvasWidth  = 64
	canvasHeight = 22
)

// orderRunes index into root order; deeper laterals get lighter glyphs.
var orderRunes = []rune{'#', '+', '.', '·'}

type state int

const (
	stateMenu state = iota
	stateSim
)

type model struct {
	state   state
	cursor  int
	presets []string

	cfg *config.Config
	rs  *rootbox.RootSystem
	err error

	running bool
	paused  bool
	speed   float64
	history []float64

	width  int
	height int
}

func NewApp() *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		speed:   1.0,
		history: make([]float64, 0, 64),
		width:   80,
		height:  24,
	}
}

// Run blocks until the user quits.
func Run() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim || !m.running {
			return m, nil
		}
		if !m.paused && m.err == nil {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.start()
		m.state = stateSim
		return m, tea.Batch(tea.ClearScreen, tick())
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.running = false
		m.state = stateMenu
		return m, tea.ClearScreen
	case "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "r":
		m.start()
		return m, tea.ClearScreen
	case "+", "=":
		m.speed = math.Min(m.speed*2, 8)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.25)
	case "0":
		m.speed = 1.0
	}
	return m, nil
}

func (m *model) start() {
	m.rs = rootbox.New()
	m.err = m.cfg.Apply(m.rs)
	if m.err == nil {
		m.err = m.rs.Initialize(m.cfg.Plant.BasalRoots, m.cfg.Plant.ShootborneRoots)
	}
	m.history = m.history[:0]
	m.running = m.err == nil
	m.paused = false
	m.speed = 1.0
}

func (m *model) step() {
	if m.rs.SimTime() >= m.cfg.Plant.SimTime {
		m.paused = true
		return
	}
	dt := m.cfg.Plant.Dt * m.speed
	dt = math.Min(dt, m.cfg.Plant.SimTime-m.rs.SimTime())
	if err := m.rs.Simulate(dt); err != nil {
		m.err = err
		m.running = false
		return
	}
	total := 0.0
	for _, l := range m.rs.Scalar(rootbox.ScalarLength) {
		total += l
	}
	m.history = append(m.history, total)
	if len(m.history) > 64 {
		m.history = m.history[1:]
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("c r o o t b o x") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		cfg := config.GetPreset(name)
		desc := fmt.Sprintf("%d root types, %.0f days", len(cfg.RootTypes), cfg.Plant.SimTime)
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter grow   q quit") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	var b strings.Builder

	status := green.Render("growing")
	switch {
	case m.err != nil:
		status = magenta.Render("error: " + m.err.Error())
	case m.rs.SimTime() >= m.cfg.Plant.SimTime:
		status = yellow.Render("done")
	case m.paused:
		status = yellow.Render("paused")
	}
	b.WriteString("\n  " + cyan.Render(m.cfg.Name) +
		dim.Render(fmt.Sprintf("  day %.1f / %.0f  speed %gx  ", m.rs.SimTime(), m.cfg.Plant.SimTime, m.speed)) +
		status + "\n")
	b.WriteString(dimmer.Render("  "+strings.Repeat("─", canvasWidth)) + "\n")

	for _, row := range m.drawCanvas() {
		b.WriteString("  " + dim.Render(string(row)) + "\n")
	}
	b.WriteString(dimmer.Render("  "+strings.Repeat("─", canvasWidth)) + "\n")

	total := 0.0
	for _, l := range m.rs.Scalar(rootbox.ScalarLength) {
		total += l
	}
	b.WriteString("  " + white.Render(fmt.Sprintf("roots %d   nodes %d   segments %d   length %.1f cm",
		m.rs.NumberOfRoots(false), m.rs.NumberOfNodes(), m.rs.NumberOfSegments(), total)) + "\n")

	if len(m.history) > 2 {
		plot := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth-8),
			asciigraph.Caption("total length"))
		b.WriteString("\n" + indent(plot, "  ") + "\n")
	}

	b.WriteString("\n" + dim.Render("  space pause   +/- speed   r restart   q back") + "\n")
	return b.String()
}

// drawCanvas projects the root system onto the x/z plane.
func (m model) drawCanvas() [][]rune {
	canvas := make([][]rune, canvasHeight)
	for i := range canvas {
		canvas[i] = make([]rune, canvasWidth)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	polylines := m.rs.Polylines()
	roots := m.rs.Roots()
	if len(polylines) == 0 {
		return canvas
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, line := range polylines {
		for _, p := range line {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minZ = math.Min(minZ, p.Z)
			maxZ = math.Max(maxZ, p.Z)
		}
	}
	spanX := math.Max(maxX-minX, 1)
	spanZ := math.Max(maxZ-minZ, 1)

	toCol := func(x float64) int { return int((x - minX) / spanX * float64(canvasWidth-1)) }
	toRow := func(z float64) int { return int((maxZ - z) / spanZ * float64(canvasHeight-1)) }

	for i, line := range polylines {
		order := roots[i].Order()
		if order >= len(orderRunes) {
			order = len(orderRunes) - 1
		}
		c := orderRunes[order]
		for j := 1; j < len(line); j++ {
			drawLine(canvas,
				toCol(line[j-1].X), toRow(line[j-1].Z),
				toCol(line[j].X), toRow(line[j].Z), c)
		}
	}
	return canvas
}

func drawLine(canvas [][]rune, x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		if y1 >= 0 && y1 < len(canvas) && x1 >= 0 && x1 < len(canvas[y1]) {
			canvas[y1][x1] = c
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
