// Package loop implements the render loop of the orbital map: the per-frame
// tick that advances simulated time and redraws the scene, click hit testing,
// and the user-intent handlers that mutate the session.
package loop

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-expanse/internal/logging"
	"github.com/litescript/ls-expanse/internal/orbit"
	"github.com/litescript/ls-expanse/internal/scene"
	"github.com/litescript/ls-expanse/internal/state"
)

// DefaultHitSlop enlarges click targets beyond the visual radius.
const DefaultHitSlop = 1.2

// ErrStarted is returned by Start on a loop that is already running.
var ErrStarted = errors.New("render loop already started")

// Options wires a Loop to its collaborators. Registry, Session, Surface and
// Scheduler are required.
type Options struct {
	Registry  *orbit.Registry
	Links     orbit.Links
	Session   *state.Session
	Surface   scene.Surface
	Scheduler Scheduler
	Panel     InfoPanel
	Controls  Controls
	Logger    *logging.Logger
	HitSlop   float64
}

// Point is a surface-space position.
type Point struct {
	X, Y float64
}

// Hit is a body that satisfied the click predicate.
type Hit struct {
	Key      string
	Distance float64
}

// Loop is the render loop. It is driven from a single thread: ticks and
// intent handlers must not run concurrently.
type Loop struct {
	reg      *orbit.Registry
	links    orbit.Links
	session  *state.Session
	surface  scene.Surface
	sched    Scheduler
	panel    InfoPanel
	controls Controls
	log      *logging.Logger
	hitSlop  float64

	centralColor scene.Color
	satColors    []scene.Color

	// Last drawn satellite positions, parallel to reg.Satellites().
	positions []Point
	drawn     bool

	started bool
	frames  uint64
}

// New creates a loop. It fails when a required collaborator is missing or a
// body colour cannot be parsed.
func New(opts Options) (*Loop, error) {
	switch {
	case opts.Registry == nil:
		return nil, errors.New("loop: registry is required")
	case opts.Session == nil:
		return nil, errors.New("loop: session is required")
	case opts.Surface == nil:
		return nil, errors.New("loop: surface is required")
	case opts.Scheduler == nil:
		return nil, errors.New("loop: scheduler is required")
	}

	l := &Loop{
		reg:      opts.Registry,
		links:    opts.Links,
		session:  opts.Session,
		surface:  opts.Surface,
		sched:    opts.Scheduler,
		panel:    opts.Panel,
		controls: opts.Controls,
		log:      opts.Logger,
		hitSlop:  opts.HitSlop,
	}
	if l.panel == nil {
		l.panel = nopPanel{}
	}
	if l.controls == nil {
		l.controls = nopControls{}
	}
	if l.log == nil {
		l.log = logging.Discard()
	}
	if l.hitSlop <= 0 {
		l.hitSlop = DefaultHitSlop
	}

	var err error
	central := l.reg.Central()
	if l.centralColor, err = scene.ParseHex(central.Style().Color); err != nil {
		return nil, fmt.Errorf("body %s: %w", central.Info().Key, err)
	}
	sats := l.reg.Satellites()
	l.satColors = make([]scene.Color, len(sats))
	for i, s := range sats {
		if l.satColors[i], err = scene.ParseHex(s.Style().Color); err != nil {
			return nil, fmt.Errorf("body %s: %w", s.Info().Key, err)
		}
	}
	l.positions = make([]Point, len(sats))

	return l, nil
}

// Start schedules the first frame. Each frame ticks and schedules the next,
// so the loop runs until the scheduler stops firing. A loop cannot be
// restarted.
func (l *Loop) Start() error {
	if l.started {
		return ErrStarted
	}
	l.started = true
	l.controls.SetActiveSpeed(l.session.Speed())
	l.controls.SetPaused(l.session.Paused())
	l.log.Debug("render loop started: %d bodies, zoom %.2f", l.reg.Len(), l.session.Zoom())
	l.sched.Schedule(l.frame)
	return nil
}

func (l *Loop) frame() {
	l.Tick()
	l.sched.Schedule(l.frame)
}

// Tick advances simulated time unless paused and redraws the whole scene.
func (l *Loop) Tick() {
	l.session.Advance()

	s := l.surface
	s.Clear()

	// The surface may have been resized since the last frame.
	w, h := s.Size()
	cx, cy := w/2, h/2

	zoom := l.session.Zoom()
	rotation := l.session.Rotation()
	speed := l.session.Speed()
	sats := l.reg.Satellites()

	// Orbits go under every body.
	for _, sat := range sats {
		scene.DrawOrbit(s, cx, cy, orbit.OrbitRadius(sat, zoom))
	}

	central := l.reg.Central()
	size := orbit.ScaledSize(central, zoom)
	scene.DrawBody(s, cx, cy, size, l.centralColor, scene.OrnamentRing)
	scene.DrawLabel(s, cx, cy, central.Info().Name, scene.LabelWhite, scene.LabelOffset(size))

	for i, sat := range sats {
		dx, dy := orbit.PositionOf(sat, rotation, speed, zoom)
		x, y := cx+dx, cy+dy
		l.positions[i] = Point{X: x, Y: y}

		size := orbit.ScaledSize(sat, zoom)
		scene.DrawBody(s, x, y, size, l.satColors[i], satelliteOrnament(size))
		scene.DrawLabel(s, x, y, sat.Info().Name, l.satColors[i], scene.LabelOffset(size))
	}
	l.drawn = true
	l.frames++
}

// satelliteOrnament gives small satellites craters; the ring belongs to the
// central body alone.
func satelliteOrnament(size float64) scene.Ornament {
	if size < scene.CraterMaxSize {
		return scene.OrnamentCraters
	}
	return scene.OrnamentNone
}

// Click hit-tests a surface-space point against every body at its last drawn
// position. Every body whose hit zone covers the point opens its info; no
// single nearest match is chosen.
func (l *Loop) Click(x, y float64) []Hit {
	zoom := l.session.Zoom()
	w, h := l.surface.Size()

	var hits []Hit
	test := func(b orbit.Body, bx, by float64) {
		d := math.Hypot(x-bx, y-by)
		if d < orbit.ScaledSize(b, zoom)*l.hitSlop {
			hits = append(hits, Hit{Key: b.Info().Key, Distance: d})
			l.ShowInfo(b.Info().Key)
		}
	}

	test(l.reg.Central(), w/2, h/2)
	if l.drawn {
		for i, sat := range l.reg.Satellites() {
			test(sat, l.positions[i].X, l.positions[i].Y)
		}
	}

	if len(hits) > 0 {
		l.log.Debug("click (%.0f, %.0f): %d hit(s)", x, y, len(hits))
	}
	return hits
}

// SetSpeed selects a speed multiplier and marks its control active.
func (l *Loop) SetSpeed(m float64) {
	if !l.session.SetSpeed(m) {
		l.log.Warn("ignoring unknown speed multiplier %v", m)
		return
	}
	l.controls.SetActiveSpeed(m)
	l.log.Debug("speed x%g", m)
}

// TogglePause freezes or resumes simulated time.
func (l *Loop) TogglePause() {
	paused := l.session.TogglePause()
	l.controls.SetPaused(paused)
	l.log.Debug("paused=%v at rotation %.1f", paused, l.session.Rotation())
}

// ZoomIn steps the zoom level up; ignored at the maximum.
func (l *Loop) ZoomIn() {
	if l.session.ZoomIn() {
		l.log.Debug("zoom %.2f", l.session.Zoom())
	}
}

// ZoomOut steps the zoom level down; ignored at the minimum.
func (l *Loop) ZoomOut() {
	if l.session.ZoomOut() {
		l.log.Debug("zoom %.2f", l.session.Zoom())
	}
}

// ShowInfo opens the info panel for a body. It reports false for an unknown key.
func (l *Loop) ShowInfo(key string) bool {
	b, ok := l.reg.Lookup(key)
	if !ok {
		return false
	}
	l.panel.Show(l.InfoFor(b))
	return true
}

// InfoFor builds the panel contents of a body.
func (l *Loop) InfoFor(b orbit.Body) Info {
	bi := b.Info()
	return Info{
		Key:         bi.Key,
		Name:        bi.Name,
		Category:    bi.Category,
		Description: bi.Description,
		URL:         l.links.For(bi.Key),
		LinkText:    "Noticias " + bi.Name,
	}
}

// CloseInfo hides the info panel.
func (l *Loop) CloseInfo() { l.panel.Close() }

// ShowProjectInfo opens the project panel.
func (l *Loop) ShowProjectInfo() { l.panel.ShowProject() }

// CloseProjectInfo hides the project panel.
func (l *Loop) CloseProjectInfo() { l.panel.CloseProject() }

// Session returns the loop's session.
func (l *Loop) Session() *state.Session { return l.session }

// Registry returns the body registry.
func (l *Loop) Registry() *orbit.Registry { return l.reg }

// Frames returns the number of ticks run.
func (l *Loop) Frames() uint64 { return l.frames }

// Positions returns the satellite positions of the last drawn frame,
// parallel to Registry().Satellites(). It is nil before the first frame.
func (l *Loop) Positions() []Point {
	if !l.drawn {
		return nil
	}
	out := make([]Point, len(l.positions))
	copy(out, l.positions)
	return out
}

// Started reports whether Start has been called.
func (l *Loop) Started() bool { return l.started }

// BodyState is a body with its last drawn geometry.
type BodyState struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	URL      string  `json:"url"`
}

// Bodies returns every body at its last drawn position, central first.
// Satellites that have never been drawn report the system center.
func (l *Loop) Bodies() []BodyState {
	zoom := l.session.Zoom()
	w, h := l.surface.Size()
	cx, cy := w/2, h/2

	bodyState := func(b orbit.Body, x, y float64) BodyState {
		bi := b.Info()
		return BodyState{
			Key:      bi.Key,
			Name:     bi.Name,
			Category: bi.Category,
			Kind:     b.Kind().String(),
			X:        x,
			Y:        y,
			Radius:   orbit.ScaledSize(b, zoom),
			URL:      l.links.For(bi.Key),
		}
	}

	out := []BodyState{bodyState(l.reg.Central(), cx, cy)}
	for i, sat := range l.reg.Satellites() {
		p := Point{X: cx, Y: cy}
		if l.drawn {
			p = l.positions[i]
		}
		out = append(out, bodyState(sat, p.X, p.Y))
	}
	return out
}
