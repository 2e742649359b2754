// Package gfx is the desktop front end: an ebiten window hosting the render
// loop, with the toolbar drawn over the map.
package gfx

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/litescript/ls-expanse/internal/scene"
)

// Glyph size of the ebiten debug font.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Number of discs used to approximate a radial gradient.
const gradientSteps = 12

// Surface is a scene.Surface over an ebiten image. The target is swapped in
// at the start of every Draw.
type Surface struct {
	scene.TransformStack

	target        *ebiten.Image
	width, height float64
	background    scene.Color
}

// NewSurface creates a surface of the given logical size.
func NewSurface(width, height float64) *Surface {
	return &Surface{width: width, height: height, background: scene.Background}
}

// SetTarget sets the image subsequent calls draw on.
func (s *Surface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// Resize changes the reported size.
func (s *Surface) Resize(width, height float64) {
	s.width, s.height = width, height
}

func (s *Surface) Size() (float64, float64) {
	return s.width, s.height
}

func (s *Surface) Clear() {
	s.ResetTransform()
	if s.target != nil {
		s.target.Fill(s.background)
	}
}

func (s *Surface) FillCircle(x, y, r float64, paint scene.Paint) {
	if s.target == nil {
		return
	}
	t := s.Current()
	dx, dy := t.Apply(x, y)
	dr := r * math.Abs(t.SX)

	if paint.Gradient == nil {
		vector.DrawFilledCircle(s.target, float32(dx), float32(dy), float32(dr), paint.Color, true)
		return
	}

	// Concentric discs from the outer edge toward the gradient focus, each
	// painted with the gradient colour at its rim.
	g := paint.Gradient
	fx, fy := t.Apply(g.X0, g.Y0)
	for i := gradientSteps; i >= 1; i-- {
		f := float64(i) / gradientSteps
		cx := fx + (dx-fx)*f
		cy := fy + (dy-fy)*f
		rr := dr * f
		ux, uy := t.Invert(cx+rr, cy)
		vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(rr), g.At(ux, uy), true)
	}
}

func (s *Surface) StrokeCircle(x, y, r float64, stroke scene.Stroke) {
	if s.target == nil {
		return
	}
	t := s.Current()
	dx, dy := t.Apply(x, y)
	rx, ry := r*math.Abs(t.SX), r*math.Abs(t.SY)

	if stroke.Glow > 0 {
		halo := stroke.GlowColor
		if halo == (scene.Color{}) {
			halo = stroke.Color
		}
		for k := 3; k >= 1; k-- {
			w := stroke.Width + stroke.Glow*float64(k)/3
			s.ellipse(dx, dy, rx, ry, w, halo.WithAlpha(uint8(40/k)))
		}
	}
	s.ellipse(dx, dy, rx, ry, stroke.Width, stroke.Color)
}

// ellipse strokes an axis-aligned ellipse in device space.
func (s *Surface) ellipse(cx, cy, rx, ry, width float64, c scene.Color) {
	if rx == ry {
		vector.StrokeCircle(s.target, float32(cx), float32(cy), float32(rx), float32(width), c, true)
		return
	}

	steps := int(math.Max(rx, ry) / 2)
	if steps < 32 {
		steps = 32
	}
	px, py := cx+rx, cy
	for i := 1; i <= steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		nx, ny := cx+rx*math.Cos(theta), cy+ry*math.Sin(theta)
		vector.StrokeLine(s.target, float32(px), float32(py), float32(nx), float32(ny), float32(width), c, true)
		px, py = nx, ny
	}
}

// FillText draws with the debug font, which has a single size and weight.
// Glow becomes a dark offset copy behind the text.
func (s *Surface) FillText(x, y float64, text string, style scene.TextStyle) {
	if s.target == nil {
		return
	}
	dx, dy := s.Current().Apply(x, y)
	w := float64(len([]rune(text)) * glyphWidth)
	switch style.Align {
	case scene.AlignCenter:
		dx -= w / 2
	case scene.AlignRight:
		dx -= w
	}
	tx, ty := int(dx), int(dy)-glyphHeight/2

	if style.Glow > 0 {
		ebitenutil.DebugPrintAt(s.target, text, tx+1, ty+1)
	}
	ebitenutil.DebugPrintAt(s.target, text, tx, ty)
}

// fillRect draws a toolbar button background.
func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func strokeRect(dst *ebiten.Image, x, y, w, h, width float64, c color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), float32(width), c, false)
}
