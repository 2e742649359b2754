package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-expanse/internal/orbit"
	"github.com/litescript/ls-expanse/internal/state"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := New(Config{
		Links:   orbit.DefaultLinks("https://www.meneame.net"),
		Session: state.NewSession(state.DefaultConfig(), 960),
		Width:   120,
		Height:  40,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewRequiresSession(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error without a session")
	}
}

func TestModelStartsLoop(t *testing.T) {
	m := newTestModel(t)

	if !m.Loop().Started() {
		t.Error("loop not started")
	}
	if m.Loop().Frames() != 0 {
		t.Errorf("frames before any tick = %d", m.Loop().Frames())
	}
	if cols, rows := m.Canvas().Grid(); cols != 120 || rows != 35 {
		t.Errorf("canvas grid = %dx%d, want 120x35", cols, rows)
	}
	if m.Init() == nil {
		t.Error("Init should schedule a frame")
	}
}

func TestModelFrameMsgTicks(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, FrameMsg(time.Now()))
	if m.Loop().Frames() != 1 {
		t.Errorf("frames = %d, want 1", m.Loop().Frames())
	}
	if cmd == nil {
		t.Error("FrameMsg should schedule the next frame")
	}

	m.Advance(4)
	if m.Loop().Frames() != 5 {
		t.Errorf("frames after Advance = %d, want 5", m.Loop().Frames())
	}
	if !strings.Contains(m.Canvas().Plain(), "Menéame") {
		t.Error("central label missing from canvas")
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)
	s := m.Loop().Session()

	m, _ = update(t, m, key('3'))
	if s.Speed() != 3 {
		t.Errorf("speed = %v, want 3", s.Speed())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !s.Paused() {
		t.Error("space should pause")
	}
	m, _ = update(t, m, key('p'))
	if s.Paused() {
		t.Error("p should resume")
	}

	zoom := s.Zoom()
	m, _ = update(t, m, key('+'))
	m, _ = update(t, m, key('+'))
	m, _ = update(t, m, key('-'))
	if got := s.Zoom(); got <= zoom || got > zoom+0.11 {
		t.Errorf("zoom = %v, want one step above %v", got, zoom)
	}

	frames := m.Loop().Frames()
	if frames != 0 {
		t.Errorf("intents drew %d frames", frames)
	}
}

func TestModelProjectPanel(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, key('i'))
	if !m.orbitView.panel.Open() {
		t.Fatal("i should open the project panel")
	}
	if cols, _ := m.Canvas().Grid(); cols != 120-PanelWidth {
		t.Errorf("canvas cols with panel = %d, want %d", cols, 120-PanelWidth)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.orbitView.panel.Open() {
		t.Error("esc should close the panel")
	}
	if cols, _ := m.Canvas().Grid(); cols != 120 {
		t.Errorf("canvas cols after close = %d, want 120", cols)
	}
}

func TestModelFocusCycling(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, key('k'))
	if m.orbitView.FocusedKey() != "meneame" {
		t.Errorf("first focus = %q, want meneame", m.orbitView.FocusedKey())
	}
	m, _ = update(t, m, key('k'))
	info, open := m.orbitView.panel.Info()
	if !open || info.Key != "renegados" {
		t.Errorf("panel = %+v open=%v, want renegados", info, open)
	}
	if info.URL != "https://www.meneame.net/rrss/rss/Renegados" {
		t.Errorf("url = %q", info.URL)
	}

	m, _ = update(t, m, key('j'))
	m, _ = update(t, m, key('j'))
	if m.orbitView.FocusedKey() != "tardigram" {
		t.Errorf("wrapped focus = %q, want tardigram", m.orbitView.FocusedKey())
	}
}

func TestModelMouseClickOpensPanel(t *testing.T) {
	m := newTestModel(t)

	// Center of the map, shifted down by the header.
	m, _ = update(t, m, tea.MouseMsg{
		X:      60,
		Y:      17 + headerHeight,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})

	info, open := m.orbitView.panel.Info()
	if !open || info.Key != "meneame" {
		t.Errorf("panel = %+v open=%v, want meneame", info, open)
	}

	// Clicks in the header are ignored.
	m.orbitView.panel.Close()
	m, _ = update(t, m, tea.MouseMsg{X: 60, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if _, open := m.orbitView.panel.Info(); open {
		t.Error("header click should not open the panel")
	}
}

func TestModelWindowResize(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
	if cols, rows := m.Canvas().Grid(); cols != 80 || rows != 20 {
		t.Errorf("canvas grid = %dx%d, want 80x20", cols, rows)
	}

	m.Advance(1)
	w, h := m.Canvas().Size()
	if w != 640 || h != 320 {
		t.Errorf("surface size = %v x %v", w, h)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := update(t, m, key('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m.Advance(1)

	view := m.View()
	for _, want := range []string{"sus lunas", "Zoom:", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	var empty Model
	if empty.View() != "Initializing..." {
		t.Errorf("unsized view = %q", empty.View())
	}
}
