// Package orbit holds the static body registry of the Expanse map and the
// orbital position model.
package orbit

// Kind distinguishes the central body from its satellites.
type Kind int

const (
	KindCentral Kind = iota
	KindSatellite
)

func (k Kind) String() string {
	switch k {
	case KindCentral:
		return "central"
	case KindSatellite:
		return "satellite"
	default:
		return "unknown"
	}
}

// Info carries the display strings of a body.
type Info struct {
	Key         string // Unique id, also the link table key
	Name        string
	Category    string
	Description string
}

// Style carries the render attributes of a body at zoom 1.
type Style struct {
	BaseSize float64
	Color    string // Hex, e.g. "#f97316"
}

// Body is either a *Central or a *Satellite.
type Body interface {
	Kind() Kind
	Info() Info
	Style() Style
}

// Central is the one non-orbiting body, always drawn at the viewport center.
type Central struct {
	info  Info
	style Style
}

// NewCentral creates the central body.
func NewCentral(info Info, style Style) *Central {
	return &Central{info: info, style: style}
}

func (c *Central) Kind() Kind   { return KindCentral }
func (c *Central) Info() Info   { return c.info }
func (c *Central) Style() Style { return c.style }

// Satellite is a body on a circular orbit around the central body.
type Satellite struct {
	info  Info
	style Style

	Distance    float64 // Orbit radius at zoom 1
	SpeedFactor float64 // Relative angular speed
}

// NewSatellite creates an orbiting body.
func NewSatellite(info Info, style Style, distance, speedFactor float64) *Satellite {
	return &Satellite{
		info:        info,
		style:       style,
		Distance:    distance,
		SpeedFactor: speedFactor,
	}
}

func (s *Satellite) Kind() Kind   { return KindSatellite }
func (s *Satellite) Info() Info   { return s.info }
func (s *Satellite) Style() Style { return s.style }
