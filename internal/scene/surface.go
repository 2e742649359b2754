// Package scene defines the immediate-mode drawing surface the render loop
// paints on, and the painter routines for orbits, bodies and labels.
package scene

import "math"

// Surface is a 2D immediate-mode drawing target.
//
// Coordinates passed to drawing calls are user-space and go through the
// current transform. Size reports the device size and may change between
// frames.
type Surface interface {
	Size() (width, height float64)
	Clear()

	FillCircle(x, y, r float64, paint Paint)
	StrokeCircle(x, y, r float64, stroke Stroke)
	FillText(x, y float64, text string, style TextStyle)

	Save()
	Restore()
	Translate(dx, dy float64)
	Scale(sx, sy float64)
}

// RadialGradient blends From at the inner circle to To at the outer circle.
type RadialGradient struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	From, To   Color
}

// At evaluates the gradient at a point.
func (g RadialGradient) At(x, y float64) Color {
	span := g.R1 - g.R0
	if span <= 0 {
		return g.To
	}
	d := math.Hypot(x-g.X0, y-g.Y0)
	return g.From.Lerp(g.To, (d-g.R0)/span)
}

// Paint is a solid fill or a radial gradient.
type Paint struct {
	Color    Color
	Gradient *RadialGradient
}

// Solid returns a single-colour paint.
func Solid(c Color) Paint {
	return Paint{Color: c}
}

// Gradient returns a gradient paint.
func Gradient(g RadialGradient) Paint {
	return Paint{Color: g.To, Gradient: &g}
}

// At returns the paint colour at a point.
func (p Paint) At(x, y float64) Color {
	if p.Gradient != nil {
		return p.Gradient.At(x, y)
	}
	return p.Color
}

// Stroke describes an outline. Glow is the blur radius of a halo drawn in
// GlowColor behind the line; zero disables it.
type Stroke struct {
	Color     Color
	Width     float64
	Glow      float64
	GlowColor Color
}

// Align is horizontal text alignment relative to the anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes a text run.
type TextStyle struct {
	Color Color
	Size  float64 // Pixels
	Bold  bool
	Align Align
	Glow  float64
}
