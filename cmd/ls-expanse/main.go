// Command ls-expanse is a terminal orbital map of Menéame and its sister sites.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-expanse/internal/export"
	"github.com/litescript/ls-expanse/internal/logging"
	"github.com/litescript/ls-expanse/internal/loop"
	"github.com/litescript/ls-expanse/internal/orbit"
	"github.com/litescript/ls-expanse/internal/state"
	"github.com/litescript/ls-expanse/internal/ui"
	"github.com/litescript/ls-expanse/internal/version"
)

// CLI flags for headless mode
var (
	frames        int
	snapshotPath  string
	summaryMode   bool
	miniMode      bool
	watchInterval time.Duration
)

const (
	defaultBaseURL = "https://www.meneame.net"
	defaultFPS     = 30
	minFPS         = 1
	maxFPS         = 120

	// Grid used when stdout is not a terminal.
	fallbackCols = 80
	fallbackRows = 24
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to file (the TUI discards them otherwise)")
	speed := flag.Float64("speed", 1, "Initial speed multiplier (1, 2 or 3)")
	zoom := flag.Float64("zoom", 0, "Initial zoom, overriding the width-based default")
	paused := flag.Bool("paused", false, "Start paused")
	baseURL := flag.String("base-url", defaultBaseURL, "Base URL for the sites' news feeds")
	fps := flag.Int("fps", defaultFPS, "Frames per second")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.IntVar(&frames, "frames", 0, "Headless: run N frames and print the result")
	flag.StringVar(&snapshotPath, "snapshot", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.BoolVar(&miniMode, "mini", false, "Print one rendered frame of the map")
	flag.DurationVar(&watchInterval, "watch", 0, "Headless: repeat output at interval (e.g., 2s)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-expanse v%s\n", version.Version)
		return
	}

	// Validate frame rate
	if *fps < minFPS {
		*fps = minFPS
	} else if *fps > maxFPS {
		*fps = maxFPS
	}
	frameInterval := time.Second / time.Duration(*fps)

	headless := frames > 0 || snapshotPath != "" || summaryMode || miniMode || watchInterval > 0

	// Set up logging. The TUI owns the screen, so logs go to a file or nowhere.
	logger := logging.New(logging.ParseLevel(*logLevel))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else if !headless {
		logger.SetOutput(io.Discard)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	cols, rows := fallbackCols, fallbackRows
	if isTTY {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
			cols, rows = w, h
		}
	}

	// Initialize components
	stateCfg := state.DefaultConfig()
	if *zoom > 0 {
		z := clampZoom(*zoom, stateCfg)
		stateCfg.DefaultZoom, stateCfg.NarrowZoom = z, z
	}
	session := state.NewSession(stateCfg, float64(cols*ui.DefaultCellWidth))
	if *speed != 1 && !session.SetSpeed(*speed) {
		logger.Warn("Ignoring unsupported speed %g", *speed)
	}
	if *paused {
		session.TogglePause()
	}

	reg := orbit.Default()
	links := orbit.DefaultLinks(*baseURL)

	if headless {
		if err := runHeadless(ctx, reg, links, session, cols, rows, frameInterval, isTTY, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create TUI model
	model, err := ui.New(ui.Config{
		Registry:      reg,
		Links:         links,
		Session:       session,
		Logger:        logger,
		FrameInterval: frameInterval,
		Width:         cols,
		Height:        rows,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating TUI: %v\n", err)
		os.Exit(1)
	}

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	logger.Info("Starting ls-expanse v%s (%dx%d)", version.Version, cols, rows)

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func clampZoom(z float64, cfg state.Config) float64 {
	if z < cfg.MinZoom {
		return cfg.MinZoom
	}
	if z > cfg.MaxZoom {
		return cfg.MaxZoom
	}
	return z
}

// runHeadless drives the render loop without a TUI and prints the results.
func runHeadless(ctx context.Context, reg *orbit.Registry, links orbit.Links, session *state.Session,
	cols, rows int, frameInterval time.Duration, isTTY bool, logger *logging.Logger) error {

	canvas := ui.NewCanvas(cols, rows, ui.DefaultCellWidth, ui.DefaultCellHeight)
	sched := &loop.ManualScheduler{}

	l, err := loop.New(loop.Options{
		Registry:  reg,
		Links:     links,
		Session:   session,
		Surface:   canvas,
		Scheduler: sched,
		Logger:    logger.Named("loop"),
	})
	if err != nil {
		return fmt.Errorf("create render loop: %w", err)
	}
	if err := l.Start(); err != nil {
		return fmt.Errorf("start render loop: %w", err)
	}

	run := func(n int) {
		for i := 0; i < n; i++ {
			sched.Fire()
		}
	}

	outputOnce := func() error {
		snap := export.Capture(l, time.Now())

		// Export JSON if requested
		if snapshotPath != "" {
			if snapshotPath == "-" {
				if err := snap.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := snap.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		// Print summary table if requested
		if summaryMode {
			export.WriteSummary(os.Stdout, snap)
		}

		// Mini map
		if miniMode {
			fmt.Println()
			if err := export.WriteFrame(os.Stdout, canvas, isTTY); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
		return nil
	}

	// At least one frame so positions are drawn.
	n := frames
	if n < 1 {
		n = 1
	}
	run(n)
	logger.Debug("Ran %d frames, rotation %.2f", l.Frames(), session.Rotation())

	// Plain -frames with no output selected prints the summary.
	if snapshotPath == "" && !summaryMode && !miniMode {
		summaryMode = true
	}

	// Single run
	if watchInterval == 0 {
		return outputOnce()
	}

	// Watch mode: keep ticking at the frame rate, output at interval
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	frameTicker := time.NewTicker(frameInterval)
	defer frameTicker.Stop()
	outTicker := time.NewTicker(watchInterval)
	defer outTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Headless loop shutting down")
			return nil
		case <-frameTicker.C:
			run(1)
		case <-outTicker.C:
			fmt.Println() // Blank line between outputs
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
