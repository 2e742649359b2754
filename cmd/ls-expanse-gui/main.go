// Command ls-expanse-gui opens the orbital map in a desktop window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/litescript/ls-expanse/internal/dialog"
	"github.com/litescript/ls-expanse/internal/gfx"
	"github.com/litescript/ls-expanse/internal/logging"
	"github.com/litescript/ls-expanse/internal/orbit"
	"github.com/litescript/ls-expanse/internal/state"
	"github.com/litescript/ls-expanse/internal/version"
)

const (
	minSide = 320
	maxSide = 4096
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	width := flag.Int("width", gfx.DefaultWidth, "Window width in pixels")
	height := flag.Int("height", gfx.DefaultHeight, "Window height in pixels")
	baseURL := flag.String("base-url", "https://www.meneame.net", "Base URL for the sites' news feeds")
	flag.Parse()

	*width = clampSide(*width)
	*height = clampSide(*height)

	logger := logging.New(logging.ParseLevel(*logLevel))
	logger.Info("Starting ls-expanse-gui v%s (%dx%d)", version.Version, *width, *height)

	panel := dialog.NewPanel(nil, logger.Named("dialog"))
	game, err := gfx.NewGame(gfx.Config{
		Registry: orbit.Default(),
		Links:    orbit.DefaultLinks(*baseURL),
		Session:  state.NewSession(state.DefaultConfig(), float64(*width)),
		Panel:    panel,
		Logger:   logger,
		Width:    *width,
		Height:   *height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := gfx.Run(game); err != nil {
		fmt.Fprintf(os.Stderr, "Error running window: %v\n", err)
		os.Exit(1)
	}

	// Dismiss any dialogs left on screen.
	panel.Close()
	panel.CloseProject()
	logger.Debug("Window closed after %d frames", game.Loop().Frames())
}

func clampSide(v int) int {
	if v < minSide {
		return minSide
	}
	if v > maxSide {
		return maxSide
	}
	return v
}
