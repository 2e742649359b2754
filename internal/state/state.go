// Package state holds the mutable session state of the orbital map: simulated
// rotation, pause flag, speed multiplier and zoom level.
//
// A Session is owned by a single render loop and is not safe for concurrent
// use; every mutation happens on the loop's thread between ticks.
package state

import (
	"math"
	"time"
)

// EventType identifies a user intent applied to the session.
type EventType string

const (
	EventSpeed   EventType = "SPEED"
	EventPause   EventType = "PAUSE"
	EventResume  EventType = "RESUME"
	EventZoomIn  EventType = "ZOOM_IN"
	EventZoomOut EventType = "ZOOM_OUT"
)

// Event records an applied intent.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"` // Speed or zoom after the change
}

// Config holds the tunables of a session.
type Config struct {
	BaseIncrement float64   // Rotation added per tick at speed 1
	ZoomStep      float64
	MinZoom       float64
	MaxZoom       float64
	DefaultZoom   float64
	NarrowZoom    float64   // Initial zoom for narrow viewports
	NarrowWidth   float64   // Viewports at or below this width are narrow
	Speeds        []float64 // Accepted speed multipliers
	MaxEvents     int
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		BaseIncrement: 0.1,
		ZoomStep:      0.1,
		MinZoom:       0.3,
		MaxZoom:       3.0,
		DefaultZoom:   1.0,
		NarrowZoom:    0.7,
		NarrowWidth:   768,
		Speeds:        []float64{1, 2, 3},
		MaxEvents:     20,
	}
}

// InitialZoom returns the starting zoom for a viewport width.
func (c Config) InitialZoom(viewportWidth float64) float64 {
	if viewportWidth <= c.NarrowWidth {
		return c.NarrowZoom
	}
	return c.DefaultZoom
}

// Session is the mutable state of one map session.
type Session struct {
	cfg Config

	rotation float64
	paused   bool
	speed    float64
	zoom     float64

	// Intent log (ring buffer)
	events       []Event
	eventWriteAt int
}

// NewSession creates a session whose zoom is chosen from the viewport width.
// The choice is made once; later resizes do not change it.
func NewSession(cfg Config, viewportWidth float64) *Session {
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 20
	}
	if len(cfg.Speeds) == 0 {
		cfg.Speeds = []float64{1}
	}
	return &Session{
		cfg:    cfg,
		speed:  cfg.Speeds[0],
		zoom:   clamp(cfg.InitialZoom(viewportWidth), cfg.MinZoom, cfg.MaxZoom),
		events: make([]Event, 0, cfg.MaxEvents),
	}
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Advance moves simulated rotation forward by one tick unless paused.
func (s *Session) Advance() {
	if s.paused {
		return
	}
	s.rotation += s.cfg.BaseIncrement * s.speed
}

// Rotation returns the simulated rotation in degrees.
func (s *Session) Rotation() float64 { return s.rotation }

// Paused reports whether rotation is frozen.
func (s *Session) Paused() bool { return s.paused }

// Speed returns the speed multiplier.
func (s *Session) Speed() float64 { return s.speed }

// Zoom returns the zoom level.
func (s *Session) Zoom() float64 { return s.zoom }

// SetSpeed selects a speed multiplier. Values outside Config.Speeds are
// ignored and false is returned.
func (s *Session) SetSpeed(m float64) bool {
	for _, v := range s.cfg.Speeds {
		if v == m {
			s.speed = m
			s.addEvent(EventSpeed, m)
			return true
		}
	}
	return false
}

// TogglePause flips the pause flag and returns the new value.
func (s *Session) TogglePause() bool {
	s.paused = !s.paused
	if s.paused {
		s.addEvent(EventPause, s.rotation)
	} else {
		s.addEvent(EventResume, s.rotation)
	}
	return s.paused
}

// ZoomIn steps the zoom up. It is a no-op at MaxZoom and reports whether the
// level changed.
func (s *Session) ZoomIn() bool {
	if s.zoom >= s.cfg.MaxZoom {
		return false
	}
	s.zoom = clamp(s.snap(s.zoom+s.cfg.ZoomStep), s.cfg.MinZoom, s.cfg.MaxZoom)
	s.addEvent(EventZoomIn, s.zoom)
	return true
}

// ZoomOut steps the zoom down. It is a no-op at MinZoom.
func (s *Session) ZoomOut() bool {
	if s.zoom <= s.cfg.MinZoom {
		return false
	}
	s.zoom = clamp(s.snap(s.zoom-s.cfg.ZoomStep), s.cfg.MinZoom, s.cfg.MaxZoom)
	s.addEvent(EventZoomOut, s.zoom)
	return true
}

// snap rounds v to the zoom step grid so repeated steps do not drift.
func (s *Session) snap(v float64) float64 {
	if s.cfg.ZoomStep <= 0 {
		return v
	}
	steps := math.Round(v / s.cfg.ZoomStep)
	return math.Round(steps*s.cfg.ZoomStep*1e9) / 1e9
}

func (s *Session) addEvent(t EventType, v float64) {
	e := Event{Type: t, Timestamp: time.Now(), Value: v}
	if len(s.events) < s.cfg.MaxEvents {
		s.events = append(s.events, e)
		return
	}
	s.events[s.eventWriteAt] = e
	s.eventWriteAt = (s.eventWriteAt + 1) % s.cfg.MaxEvents
}

// Events returns the intent log in chronological order.
func (s *Session) Events() []Event {
	if len(s.events) < s.cfg.MaxEvents {
		out := make([]Event, len(s.events))
		copy(out, s.events)
		return out
	}
	out := make([]Event, s.cfg.MaxEvents)
	for i := range out {
		out[i] = s.events[(s.eventWriteAt+i)%s.cfg.MaxEvents]
	}
	return out
}

// Snapshot is a value copy of the session.
type Snapshot struct {
	Rotation float64 `json:"rotation"`
	Paused   bool    `json:"paused"`
	Speed    float64 `json:"speed"`
	Zoom     float64 `json:"zoom"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Rotation: s.rotation,
		Paused:   s.paused,
		Speed:    s.speed,
		Zoom:     s.zoom,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
