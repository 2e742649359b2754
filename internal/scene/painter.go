package scene

// Ornament is the decoration drawn on top of a body.
type Ornament int

const (
	OrnamentNone Ornament = iota
	OrnamentRing
	OrnamentCraters
)

// Fixed styling of the map.
var (
	OrbitColor  = RGBA(107, 114, 128, 0.3)
	ShadowColor = RGBA(0, 0, 0, 0.3)
	CraterColor = RGBA(0, 0, 0, 0.2)
	RingColor   = MustHex("#fb923c")
	LabelWhite  = MustHex("#ffffff")
	Background  = MustHex("#000000")
)

const (
	OrbitWidth = 0.9

	BodyStrokeWidth = 1.8
	BodyGlow        = 25
	GradientAlpha   = 0xdd // Highlight alpha of the body gradient

	RingFlatten      = 0.25
	RingRadiusFactor = 1.215
	RingWidth        = 5.4
	RingGlow         = 18

	// CraterMaxSize is the rendered radius below which satellites get craters.
	CraterMaxSize = 48.6

	LabelGap        = 16.2
	LabelGlow       = 7
	LabelSize       = 13
	LabelSizeNarrow = 11

	// NarrowWidth is the viewport width below which labels use the small font.
	NarrowWidth = 768
)

// DrawOrbit strokes an orbit circle around the system center.
func DrawOrbit(s Surface, cx, cy, r float64) {
	s.StrokeCircle(cx, cy, r, Stroke{Color: OrbitColor, Width: OrbitWidth})
}

// DrawBody paints a body of rendered radius size at (x, y): gradient disc,
// offset shadow, glowing outline, then its ornament.
func DrawBody(s Surface, x, y, size float64, c Color, ornament Ornament) {
	s.FillCircle(x, y, size, Gradient(RadialGradient{
		X0: x - size*0.3, Y0: y - size*0.3, R0: size * 0.1,
		X1: x, Y1: y, R1: size,
		From: c.WithAlpha(GradientAlpha),
		To:   c,
	}))

	s.FillCircle(x+size*0.3, y+size*0.3, size*0.4, Solid(ShadowColor))

	s.StrokeCircle(x, y, size, Stroke{
		Color:     c,
		Width:     BodyStrokeWidth,
		Glow:      BodyGlow,
		GlowColor: c,
	})

	switch ornament {
	case OrnamentRing:
		drawRing(s, x, y, size)
	case OrnamentCraters:
		drawCraters(s, x, y, size)
	}
}

func drawRing(s Surface, x, y, size float64) {
	s.Save()
	s.Translate(x, y)
	s.Scale(1, RingFlatten)
	s.StrokeCircle(0, 0, size*RingRadiusFactor, Stroke{
		Color:     RingColor,
		Width:     RingWidth,
		Glow:      RingGlow,
		GlowColor: RingColor,
	})
	s.Restore()
}

func drawCraters(s Surface, x, y, size float64) {
	s.FillCircle(x+size*0.2, y-size*0.3, size*0.15, Solid(CraterColor))
	s.FillCircle(x-size*0.3, y+size*0.1, size*0.12, Solid(CraterColor))
}

// DrawLabel writes centred text offsetY pixels below (x, y).
func DrawLabel(s Surface, x, y float64, text string, c Color, offsetY float64) {
	w, _ := s.Size()
	s.FillText(x, y+offsetY, text, TextStyle{
		Color: c,
		Size:  LabelFontSize(w),
		Bold:  true,
		Align: AlignCenter,
		Glow:  LabelGlow,
	})
}

// LabelFontSize picks the label font for a viewport width.
func LabelFontSize(viewportWidth float64) float64 {
	if viewportWidth < NarrowWidth {
		return LabelSizeNarrow
	}
	return LabelSize
}

// LabelOffset returns the distance from a body's center to its label.
func LabelOffset(size float64) float64 {
	return size + LabelGap
}
