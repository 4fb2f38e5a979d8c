// Command statsreplay draws a recorded frame-timing sample through the stats
// overlay, either into an interactive terminal or as plain text on stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/pthm-cable/framestats/overlay"
	"github.com/pthm-cable/framestats/renderer/terminal"
	"github.com/pthm-cable/framestats/telemetry"
)

const (
	defaultCols = 160
	defaultRows = 16
)

func main() {
	samplesPath := flag.String("samples", "", "Path to recorded samples CSV (required)")
	width := flag.Int("width", 0, "Terminal width in cells (0 = detect)")
	printMode := flag.Bool("print", false, "Print the overlay as text instead of opening the terminal")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *samplesPath == "" {
		fmt.Fprintln(os.Stderr, "usage: statsreplay -samples <file.csv> [-width N] [-print]")
		os.Exit(2)
	}

	timers, workload, err := telemetry.LoadSamples(*samplesPath)
	if err != nil {
		slog.Error("failed to load samples", "path", *samplesPath, "error", err)
		os.Exit(1)
	}

	stats := overlay.New(timers, overlay.DefaultLayout(), overlay.DefaultTheme())
	if workload != nil {
		stats.SetWorld(workload)
	}

	fd := int(os.Stdout.Fd())
	interactive := !*printMode && term.IsTerminal(fd)

	cols := *width
	if cols <= 0 {
		cols = defaultCols
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			cols = w
		}
	}

	if !interactive {
		if err := printOverlay(os.Stdout, stats, cols); err != nil {
			slog.Error("failed to render", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(stats); err != nil {
		slog.Error("terminal session failed", "error", err)
		os.Exit(1)
	}
}

// renderLines draws the overlay onto an off-screen terminal of the given width.
func renderLines(stats *overlay.StatsOverlay, cols int) ([]string, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing simulation screen: %w", err)
	}
	defer screen.Fini()
	screen.SetSize(cols, defaultRows)

	surface := terminal.NewSurface(screen, terminal.DefaultCellWidth, terminal.DefaultCellHeight)
	surface.BeginFrame()
	stats.Draw(surface)
	surface.Present()
	return surface.Lines(), nil
}

func printOverlay(w io.Writer, stats *overlay.StatsOverlay, cols int) error {
	lines, err := renderLines(stats, cols)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// runInteractive shows the overlay until a key is pressed, redrawing on resize.
func runInteractive(stats *overlay.StatsOverlay) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	surface := terminal.NewSurface(screen, terminal.DefaultCellWidth, terminal.DefaultCellHeight)
	draw := func() {
		surface.BeginFrame()
		stats.Draw(surface)
		surface.Present()
	}
	draw()

	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			draw()
		case *tcell.EventKey:
			return nil
		case nil:
			return nil
		}
	}
}
