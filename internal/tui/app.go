// Package tui hosts the simulation canvas in the terminal. The scene
// rasterizes onto a braille dot grid at one simulation pixel per dot,
// pointer gestures come from terminal mouse events, and the tool keys
// toggle instead of being held because terminals never report key-up.
package tui

import (
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"doodlebox/internal/audio"
	"doodlebox/internal/canvas"
	"doodlebox/internal/engine"
	"doodlebox/internal/input"
	"doodlebox/internal/metrics"
	"doodlebox/internal/param"
	"doodlebox/internal/scene"
)

const (
	defaultCells = 80
	defaultRows  = 24
	statsColumns = 44
	chartSamples = 40
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type Model struct {
	ctrl   *canvas.Controller
	binder *param.Binder
	steps  *metrics.StepTime
	drive  *audio.Drive

	level    string
	canvas   *Canvas
	cells    int
	rows     int
	selected int

	paused    bool
	mouseDown bool
	showHelp  bool
	recording bool
	frames    []*image.Paletted

	flagCount int
	sawFlags  bool
	cleared   bool
}

func NewModel(ctrl *canvas.Controller, binder *param.Binder, steps *metrics.StepTime, drive *audio.Drive, level string) Model {
	m := Model{
		ctrl:   ctrl,
		binder: binder,
		steps:  steps,
		drive:  drive,
		level:  level,
		cells:  defaultCells,
		rows:   defaultRows,
	}
	m.canvas = NewCanvas(m.cells, m.rows)
	ctrl.Resize(dotRect(m.cells, m.rows), 1)
	return m
}

func dotRect(cells, rows int) canvas.Rect {
	return canvas.Rect{Right: float64(cells * 2), Bottom: float64(rows * 4)}
}

// DefaultDotSize is the simulation extent the terminal host assumes until
// the first window size arrives. Levels are scaled to it at creation.
func DefaultDotSize() (w, h int) { return defaultCells * 2, defaultRows * 4 }

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		cells := clampInt(msg.Width-statsColumns, 20, 120)
		rows := clampInt(msg.Height-2, 10, 45)
		if cells != m.cells || rows != m.rows {
			m.cells, m.rows = cells, rows
			m.canvas = NewCanvas(cells, rows)
			m.ctrl.Resize(dotRect(cells, rows), 1)
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case TickMsg:
		if m.drive != nil {
			m.drive.Pump()
		}
		var snap engine.Snapshot
		if m.paused {
			snap = m.ctrl.Snapshot()
		} else {
			var ok bool
			snap, ok = m.ctrl.Tick(time.Time(msg))
			if !ok {
				return m, tea.Quit
			}
		}
		m.trackFlags(snap)
		m.render(snap)
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	now := time.Now()
	x := float64(msg.X * 2)
	y := float64(msg.Y * 4)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.X < m.cells && msg.Y < m.rows {
			m.mouseDown = true
			m.ctrl.PointerDown(x, y, now)
		}
	case tea.MouseActionMotion:
		if m.mouseDown {
			m.ctrl.PointerMove(x, y, now)
		}
	case tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.ctrl.PointerUp(x, y, now)
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
		if !m.paused {
			m.ctrl.ResetClock()
		}
	case "tab":
		m.selected = (m.selected + 1) % len(m.binder.Specs())
	case "up", "k":
		m.binder.Adjust(m.binder.Specs()[m.selected].Name, 1)
	case "down", "j":
		m.binder.Adjust(m.binder.Specs()[m.selected].Name, -1)
	case "e":
		m.toggleTool(input.ToolEraser)
	case "r":
		m.toggleTool(input.ToolRigid)
	case "h":
		m.toggleTool(input.ToolHinge)
	case "g":
		if m.recording {
			m.saveGIF()
			m.recording = false
			m.frames = nil
		} else {
			m.recording = true
			m.frames = make([]*image.Paletted, 0)
		}
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// toggleTool synthesizes the key-down/key-up pair a held modifier would
// produce in a GUI.
func (m *Model) toggleTool(t input.Tool) {
	if m.ctrl.ActiveTool() == t {
		m.ctrl.KeyUp(t)
	} else {
		m.ctrl.KeyDown(t)
	}
}

// trackFlags watches for the level's flags being collected: once flags
// have been seen, an empty flag list means the course is clear.
func (m *Model) trackFlags(snap engine.Snapshot) {
	m.flagCount = len(snap.Flags)
	if m.flagCount > 0 {
		m.sawFlags = true
	} else if m.sawFlags {
		m.cleared = true
	}
}

func (m *Model) render(snap engine.Snapshot) {
	m.canvas.Clear()
	for _, op := range scene.Build(snap, m.ctrl.Preview(time.Now())) {
		m.drawOp(op)
	}
}

func (m *Model) drawOp(op scene.Op) {
	switch op.Kind {
	case scene.OpPolygon:
		xs := make([]int, len(op.Vertices))
		ys := make([]int, len(op.Vertices))
		for i, v := range op.Vertices {
			xs[i] = int(math.Round(v.X))
			ys[i] = int(math.Round(v.Y))
		}
		if op.Fill {
			m.canvas.FillPolygon(xs, ys, op.Color)
			m.canvas.StrokePath(xs, ys, true, op.Color)
		} else {
			m.canvas.StrokePath(xs, ys, false, op.Color)
		}
	case scene.OpCircle:
		x := int(math.Round(op.Center.X))
		y := int(math.Round(op.Center.Y))
		r := int(math.Round(op.Radius))
		if op.Fill {
			m.canvas.FillCircle(x, y, r, op.Color)
		} else {
			m.canvas.DrawCircle(x, y, r, op.Color)
		}
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(m.stats())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return m.helpOverlay() + "\n" + main
	}
	return main
}

func (m Model) stats() string {
	var s strings.Builder

	s.WriteString(headerStyle().Render("d o o d l e b o x") + "\n")
	s.WriteString(labelStyle().Render("level") + valueStyle().Render(m.level) + "\n")
	s.WriteString(labelStyle().Render("status") + valueStyle().Render(m.status()) + "\n")
	if m.flagCount > 0 {
		s.WriteString(labelStyle().Render("flags") + valueStyle().Render(fmt.Sprintf("%d", m.flagCount)) + "\n")
	}

	tool := m.ctrl.ActiveTool()
	toolLine := tool.String()
	if tool == input.ToolNone {
		toolLine = "draw"
	}
	s.WriteString(labelStyle().Render("tool") + activeStyle().Render(toolLine) + "\n")

	if series := m.steps.Series(chartSamples); len(series) > 1 {
		chart := asciigraph.Plot(series, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("step ms"))
		s.WriteString("\n" + graphStyle().Render(chart) + "\n")
	}

	s.WriteString("\n" + headerStyle().Render("PARAMETERS") + "\n")
	for i, spec := range m.binder.Specs() {
		s.WriteString(m.paramLine(i, spec) + "\n")
	}

	if m.drive != nil && m.drive.Active() {
		bar := meter(m.drive.Level(), 10)
		s.WriteString("\n" + labelStyle().Render("audio") + valueStyle().Render(bar) + "\n")
	}

	s.WriteString(helpStyle.Render("tab:select ↑↓:tune e/r/h:tools\nspace:pause g:record t:theme ?:help q:quit"))
	return s.String()
}

func (m Model) status() string {
	switch {
	case m.cleared:
		return alertStyle().Render("COURSE CLEAR")
	case m.recording:
		return alertStyle().Render("● REC")
	case m.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

func (m Model) paramLine(i int, spec param.Spec) string {
	var body string
	if spec.Kind == param.KindToggle {
		mark := "[ ]"
		if m.binder.On(spec.Name) {
			mark = "[x]"
		}
		body = fmt.Sprintf("%-18s %s", spec.Label, mark)
	} else {
		val := m.binder.Value(spec.Name)
		norm := (val - spec.Min) / (spec.Max - spec.Min)
		body = fmt.Sprintf("%-12s %s %6.2f", spec.Label, meter(norm, 10), val)
	}
	if i == m.selected {
		return activeStyle().Render("▸ " + body)
	}
	return "  " + labelStyle().Render(body)
}

func meter(norm float64, width int) string {
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	filled := int(norm * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func (m Model) helpOverlay() string {
	return `
  mouse     press and hold to grow a circle, drag to trace a polygon
  e         eraser tool (click erases at the pointer)
  r         rigid anchor tool
  h         hinge tool
  tab ↑ ↓   select and tune parameters
  space     pause and resume
  g         toggle GIF recording
  t         cycle themes
  q         quit`
}

// Run drives the canvas in the terminal until the user quits, then frees
// the engine.
func Run(ctrl *canvas.Controller, binder *param.Binder, steps *metrics.StepTime, drive *audio.Drive, level string) error {
	m := NewModel(ctrl, binder, steps, drive, level)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	if drive != nil {
		drive.Stop()
	}
	ctrl.Close()
	return err
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
