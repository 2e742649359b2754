package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-expanse/internal/loop"
)

// OrbitModel renders the orbital map and routes map input to the render loop.
// The canvas, panel and HUD are shared by pointer with the loop, so value
// copies of the model all see the same scene.
type OrbitModel struct {
	loop   *loop.Loop
	canvas *Canvas
	panel  *Panel
	hud    *HUD

	width  int
	height int

	focusIdx int // Index into the registry bodies; -1 = nothing focused
}

// NewOrbitModel creates the map view over an existing loop and its collaborators.
func NewOrbitModel(l *loop.Loop, canvas *Canvas, panel *Panel, hud *HUD) OrbitModel {
	return OrbitModel{
		loop:     l,
		canvas:   canvas,
		panel:    panel,
		hud:      hud,
		focusIdx: -1,
	}
}

// SetSize updates the viewport size and resizes the canvas to the space left
// by the panel.
func (m OrbitModel) SetSize(width, height int) OrbitModel {
	m.width = width
	m.height = height
	m.fit()
	return m
}

func (m OrbitModel) canvasCols() int {
	cols := m.width
	if m.panel.Open() {
		cols -= PanelWidth
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// fit resizes the canvas when the grid it should cover has changed. The
// next frame redraws it.
func (m OrbitModel) fit() {
	cols, rows := m.canvasCols(), m.height
	if rows < 1 {
		rows = 1
	}
	if c, r := m.canvas.Grid(); c != cols || r != rows {
		m.canvas.Resize(cols, rows)
	}
}

// Update handles input messages. Mouse coordinates must already be relative
// to the top-left corner of the map.
func (m OrbitModel) Update(msg tea.Msg) (OrbitModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "1":
			m.loop.SetSpeed(1)
		case "2":
			m.loop.SetSpeed(2)
		case "3":
			m.loop.SetSpeed(3)
		case " ", "space", "p":
			m.loop.TogglePause()
		case "+", "=":
			m.loop.ZoomIn()
		case "-", "_":
			m.loop.ZoomOut()
		case "i":
			m.loop.ShowProjectInfo()
		case "esc":
			m.loop.CloseInfo()
			m.loop.CloseProjectInfo()
			m.focusIdx = -1
		case "j", "[":
			m.focusPrev()
		case "k", "]":
			m.focusNext()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}
	}

	m.fit()
	return m, nil
}

func (m *OrbitModel) click(col, row int) {
	cols, rows := m.canvas.Grid()
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return
	}
	x, y := m.canvas.CellToPixel(col, row)
	m.loop.Click(x, y)
}

func (m *OrbitModel) focusNext() {
	bodies := m.loop.Registry().Bodies()
	m.focusIdx = (m.focusIdx + 1) % len(bodies)
	m.loop.ShowInfo(bodies[m.focusIdx].Info().Key)
}

func (m *OrbitModel) focusPrev() {
	bodies := m.loop.Registry().Bodies()
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(bodies) - 1
	}
	m.loop.ShowInfo(bodies[m.focusIdx].Info().Key)
}

// FocusedKey returns the key of the body focused from the keyboard.
func (m OrbitModel) FocusedKey() string {
	bodies := m.loop.Registry().Bodies()
	if m.focusIdx < 0 || m.focusIdx >= len(bodies) {
		return ""
	}
	return bodies[m.focusIdx].Info().Key
}

// View renders the map, with the panel on the right when open.
func (m OrbitModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	canvas := m.canvas.Render()
	if !m.panel.Open() {
		return canvas
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.panel.View(m.height))
}

// renderHUD renders the control bar and the most recent intent.
func (m OrbitModel) renderHUD() string {
	s := m.loop.Session()
	hud := m.hud.View(s.Zoom(), s.Rotation())

	events := s.Events()
	if len(events) == 0 {
		return hud
	}
	last := events[len(events)-1]
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	return hud + "  " + dimStyle.Render(fmt.Sprintf("%s %s %g", last.Timestamp.Format("15:04:05"), last.Type, last.Value))
}
