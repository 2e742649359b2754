// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-expanse/internal/logging"
	"github.com/litescript/ls-expanse/internal/loop"
	"github.com/litescript/ls-expanse/internal/orbit"
	"github.com/litescript/ls-expanse/internal/state"
	"github.com/litescript/ls-expanse/internal/version"
)

// DefaultFrameInterval paces the render loop at roughly 30 frames a second.
const DefaultFrameInterval = 33 * time.Millisecond

// Rows taken by the header and the footer around the map.
const (
	headerHeight = 3
	footerHeight = 2
)

// FrameMsg fires the next scheduled frame of the render loop.
type FrameMsg time.Time

// Config wires the terminal front end.
type Config struct {
	Registry *orbit.Registry
	Links    orbit.Links
	Session  *state.Session
	Logger   *logging.Logger

	FrameInterval time.Duration
	CellWidth     float64 // Virtual pixels per cell, horizontally
	CellHeight    float64

	// Initial terminal size; a tea.WindowSizeMsg replaces it.
	Width  int
	Height int
}

// Model is the root Bubble Tea model.
type Model struct {
	loop     *loop.Loop
	sched    *loop.ManualScheduler
	canvas   *Canvas
	log      *logging.Logger
	interval time.Duration

	orbitView OrbitModel

	width  int
	height int
	ready  bool
}

// New creates the root model and starts its render loop. Frames run when
// FrameMsg arrives, so nothing is drawn until the program starts ticking or
// Advance is called.
func New(cfg Config) (Model, error) {
	if cfg.Session == nil {
		return Model{}, errors.New("ui: session is required")
	}
	if cfg.Registry == nil {
		cfg.Registry = orbit.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}

	canvas := NewCanvas(cfg.Width, cfg.Height-headerHeight-footerHeight, cfg.CellWidth, cfg.CellHeight)
	sched := &loop.ManualScheduler{}
	panel := &Panel{}
	hud := &HUD{}

	l, err := loop.New(loop.Options{
		Registry:  cfg.Registry,
		Links:     cfg.Links,
		Session:   cfg.Session,
		Surface:   canvas,
		Scheduler: sched,
		Panel:     panel,
		Controls:  hud,
		Logger:    cfg.Logger.Named("loop"),
	})
	if err != nil {
		return Model{}, err
	}
	if err := l.Start(); err != nil {
		return Model{}, err
	}

	m := Model{
		loop:      l,
		sched:     sched,
		canvas:    canvas,
		log:       cfg.Logger.Named("ui"),
		interval:  cfg.FrameInterval,
		orbitView: NewOrbitModel(l, canvas, panel, hud),
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		m = m.resize(cfg.Width, cfg.Height)
	}
	return m, nil
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.ready = true
	m.orbitView = m.orbitView.SetSize(width, height-headerHeight-footerHeight)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.log.Info("quit after %d frames", m.loop.Frames())
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.orbitView, cmd = m.orbitView.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		// Translate to map coordinates below the header.
		msg.Y -= headerHeight
		var cmd tea.Cmd
		m.orbitView, cmd = m.orbitView.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.log.Debug("window %dx%d", msg.Width, msg.Height)
		m = m.resize(msg.Width, msg.Height)

	case FrameMsg:
		m.sched.Fire()
		cmds = append(cmds, m.frameCmd())
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.orbitView.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := "✦ EXPANSE"
	runes := []rune(title)

	var b strings.Builder
	b.WriteString("  ")
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, 0, len(runes), 1))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Menéame y sus lunas · v%s", version.Version)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	help := dimStyle.Render("  1/2/3: speed | space: pause | +/-: zoom | j/k: bodies | click: info | i: project | esc: close | q: quit")
	return m.orbitView.renderHUD() + "\n" + help
}

// gradientColor returns a hex color for a position in the title gradient:
// blue, purple, magenta, pink from left to right, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	f := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*f), clampByte(g*f), clampByte(b*f))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Advance runs n frames without a program, for headless rendering.
func (m Model) Advance(n int) {
	for i := 0; i < n; i++ {
		if !m.sched.Fire() {
			return
		}
	}
}

// Loop returns the render loop.
func (m Model) Loop() *loop.Loop { return m.loop }

// Canvas returns the map canvas.
func (m Model) Canvas() *Canvas { return m.canvas }

// OrbitView returns the map sub-model.
func (m Model) OrbitView() OrbitModel { return m.orbitView }
