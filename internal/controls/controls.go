// Package controls lays out the named map controls for pixel front ends and
// tracks the visual state the render loop reflects onto them.
package controls

import (
	"github.com/litescript/ls-expanse/internal/loop"
)

// Intent is a discrete user intent raised by a control.
type Intent int

const (
	IntentNone Intent = iota
	IntentSpeed1
	IntentSpeed2
	IntentSpeed3
	IntentTogglePause
	IntentZoomIn
	IntentZoomOut
	IntentProjectInfo
	IntentCloseInfo
	IntentCloseProject
)

func (i Intent) String() string {
	switch i {
	case IntentSpeed1:
		return "speed1"
	case IntentSpeed2:
		return "speed2"
	case IntentSpeed3:
		return "speed3"
	case IntentTogglePause:
		return "pause"
	case IntentZoomIn:
		return "zoom-in"
	case IntentZoomOut:
		return "zoom-out"
	case IntentProjectInfo:
		return "project-info"
	case IntentCloseInfo:
		return "close"
	case IntentCloseProject:
		return "close-project"
	default:
		return "none"
	}
}

// Rect is an axis-aligned button rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Button is one laid-out control.
type Button struct {
	Intent Intent
	Label  string
	Rect   Rect
	Active bool
}

// Layout holds the toolbar geometry.
type Layout struct {
	X, Y   float64 // Top-left corner of the bar
	Size   float64 // Button side length
	Gap    float64
	Margin float64 // Distance from the bottom edge
}

// DefaultLayout returns the bar geometry used by the desktop front end.
func DefaultLayout() Layout {
	return Layout{X: 20, Size: 40, Gap: 8, Margin: 20}
}

// Toolbar is the set of map controls. It implements loop.Controls so the
// loop can mark the active speed and swap the pause glyph.
type Toolbar struct {
	layout  Layout
	buttons []Button
	speed   float64
	paused  bool
	height  float64
}

// NewToolbar creates a toolbar for a viewport height.
func NewToolbar(layout Layout, viewportHeight float64) *Toolbar {
	t := &Toolbar{
		layout: layout,
		speed:  1,
		buttons: []Button{
			{Intent: IntentSpeed1, Label: "1x"},
			{Intent: IntentSpeed2, Label: "2x"},
			{Intent: IntentSpeed3, Label: "3x"},
			{Intent: IntentTogglePause, Label: loop.PauseGlyph(false)},
			{Intent: IntentZoomIn, Label: "+"},
			{Intent: IntentZoomOut, Label: "-"},
			{Intent: IntentProjectInfo, Label: "i"},
		},
	}
	t.Resize(viewportHeight)
	t.sync()
	return t
}

// Resize re-anchors the bar to the bottom edge of a new viewport height.
func (t *Toolbar) Resize(viewportHeight float64) {
	if viewportHeight == t.height && t.buttons[0].Rect.W != 0 {
		return
	}
	t.height = viewportHeight
	l := t.layout
	y := viewportHeight - l.Margin - l.Size
	if l.Y > 0 {
		y = l.Y
	}
	for i := range t.buttons {
		t.buttons[i].Rect = Rect{
			X: l.X + float64(i)*(l.Size+l.Gap),
			Y: y,
			W: l.Size,
			H: l.Size,
		}
	}
}

// SetActiveSpeed marks exactly one speed button active.
func (t *Toolbar) SetActiveSpeed(m float64) {
	t.speed = m
	t.sync()
}

// SetPaused swaps the pause glyph.
func (t *Toolbar) SetPaused(paused bool) {
	t.paused = paused
	t.sync()
}

func (t *Toolbar) sync() {
	for i := range t.buttons {
		b := &t.buttons[i]
		switch b.Intent {
		case IntentSpeed1, IntentSpeed2, IntentSpeed3:
			b.Active = SpeedOf(b.Intent) == t.speed
		case IntentTogglePause:
			b.Label = loop.PauseGlyph(t.paused)
			b.Active = t.paused
		}
	}
}

// Buttons returns the laid-out buttons.
func (t *Toolbar) Buttons() []Button {
	out := make([]Button, len(t.buttons))
	copy(out, t.buttons)
	return out
}

// HitTest returns the intent of the button under (x, y).
func (t *Toolbar) HitTest(x, y float64) Intent {
	for _, b := range t.buttons {
		if b.Rect.Contains(x, y) {
			return b.Intent
		}
	}
	return IntentNone
}

// ActiveSpeed returns the selected speed.
func (t *Toolbar) ActiveSpeed() float64 { return t.speed }

// Paused returns the pause state shown by the bar.
func (t *Toolbar) Paused() bool { return t.paused }

// SpeedOf returns the multiplier of a speed intent, or 0.
func SpeedOf(i Intent) float64 {
	switch i {
	case IntentSpeed1:
		return 1
	case IntentSpeed2:
		return 2
	case IntentSpeed3:
		return 3
	default:
		return 0
	}
}

// Dispatch applies an intent to the loop. It reports false for IntentNone.
func Dispatch(l *loop.Loop, i Intent) bool {
	switch i {
	case IntentSpeed1, IntentSpeed2, IntentSpeed3:
		l.SetSpeed(SpeedOf(i))
	case IntentTogglePause:
		l.TogglePause()
	case IntentZoomIn:
		l.ZoomIn()
	case IntentZoomOut:
		l.ZoomOut()
	case IntentProjectInfo:
		l.ShowProjectInfo()
	case IntentCloseInfo:
		l.CloseInfo()
	case IntentCloseProject:
		l.CloseProjectInfo()
	default:
		return false
	}
	return true
}
