package gfx

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/litescript/ls-expanse/internal/controls"
	"github.com/litescript/ls-expanse/internal/logging"
	"github.com/litescript/ls-expanse/internal/loop"
	"github.com/litescript/ls-expanse/internal/orbit"
	"github.com/litescript/ls-expanse/internal/state"
)

// Window defaults.
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
	WindowTitle   = "Expanse"
)

// Config wires the desktop front end.
type Config struct {
	Registry *orbit.Registry
	Links    orbit.Links
	Session  *state.Session
	Panel    loop.InfoPanel
	Logger   *logging.Logger
	Width    int
	Height   int
}

// Game implements ebiten.Game. Ebiten calls Update and Draw on one
// goroutine, so the loop runs single-threaded.
type Game struct {
	loop    *loop.Loop
	sched   *loop.ManualScheduler
	surface *Surface
	toolbar *controls.Toolbar
	log     *logging.Logger

	width, height int
}

// NewGame creates the game and starts its render loop.
func NewGame(cfg Config) (*Game, error) {
	if cfg.Session == nil {
		return nil, errors.New("gfx: session is required")
	}
	if cfg.Registry == nil {
		cfg.Registry = orbit.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}

	surface := NewSurface(float64(cfg.Width), float64(cfg.Height))
	toolbar := controls.NewToolbar(controls.DefaultLayout(), float64(cfg.Height))
	sched := &loop.ManualScheduler{}

	l, err := loop.New(loop.Options{
		Registry:  cfg.Registry,
		Links:     cfg.Links,
		Session:   cfg.Session,
		Surface:   surface,
		Scheduler: sched,
		Panel:     cfg.Panel,
		Controls:  toolbar,
		Logger:    cfg.Logger.Named("loop"),
	})
	if err != nil {
		return nil, err
	}
	if err := l.Start(); err != nil {
		return nil, err
	}

	return &Game{
		loop:    l,
		sched:   sched,
		surface: surface,
		toolbar: toolbar,
		log:     cfg.Logger.Named("gfx"),
		width:   cfg.Width,
		height:  cfg.Height,
	}, nil
}

// Update handles input. Toolbar buttons take clicks before the map does.
func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		x, y := float64(mx), float64(my)
		if intent := g.toolbar.HitTest(x, y); intent != controls.IntentNone {
			g.log.Debug("button %s", intent)
			controls.Dispatch(g.loop, intent)
		} else if hits := g.loop.Click(x, y); len(hits) > 0 {
			g.log.Debug("click (%d, %d) hit %d bodies", mx, my, len(hits))
		}
	}

	for k, intent := range keyIntents {
		if inpututil.IsKeyJustPressed(k) {
			controls.Dispatch(g.loop, intent)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.loop.CloseInfo()
		g.loop.CloseProjectInfo()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

var keyIntents = map[ebiten.Key]controls.Intent{
	ebiten.Key1:          controls.IntentSpeed1,
	ebiten.Key2:          controls.IntentSpeed2,
	ebiten.Key3:          controls.IntentSpeed3,
	ebiten.KeySpace:      controls.IntentTogglePause,
	ebiten.KeyEqual:      controls.IntentZoomIn,
	ebiten.KeyKPAdd:      controls.IntentZoomIn,
	ebiten.KeyMinus:      controls.IntentZoomOut,
	ebiten.KeyKPSubtract: controls.IntentZoomOut,
	ebiten.KeyI:          controls.IntentProjectInfo,
}

// Draw runs the pending frame of the render loop onto screen, then draws
// the toolbar and status line over it.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.sched.Fire()
	g.drawToolbar(screen)

	s := g.loop.Session()
	status := fmt.Sprintf("Zoom %.1fx  Rot %.0f°  %.0f FPS", s.Zoom(), s.Rotation(), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawToolbar(screen *ebiten.Image) {
	for _, b := range g.toolbar.Buttons() {
		r := b.Rect
		bg := color.RGBA{R: 20, G: 25, B: 35, A: 200}
		border := color.RGBA{R: 70, G: 80, B: 100, A: 255}
		if b.Active {
			bg = color.RGBA{R: 249, G: 115, B: 22, A: 220}
			border = color.RGBA{R: 251, G: 146, B: 60, A: 255}
		}
		fillRect(screen, r.X, r.Y, r.W, r.H, bg)
		strokeRect(screen, r.X, r.Y, r.W, r.H, 2, border)

		label := debugLabel(b.Label)
		tw := len([]rune(label)) * glyphWidth
		ebitenutil.DebugPrintAt(screen, label, int(r.X)+(int(r.W)-tw)/2, int(r.Y)+(int(r.H)-glyphHeight)/2)
	}
}

// debugLabel maps the pause glyphs onto the ASCII-only debug font.
func debugLabel(label string) string {
	switch label {
	case loop.PauseGlyph(false):
		return "||"
	case loop.PauseGlyph(true):
		return ">"
	}
	return label
}

// Layout tracks the window size so the map and toolbar follow resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.surface.Resize(float64(outsideWidth), float64(outsideHeight))
		g.toolbar.Resize(float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Loop returns the render loop.
func (g *Game) Loop() *loop.Loop { return g.loop }

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
