package terminal

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/framestats/overlay"
	"github.com/pthm-cable/framestats/telemetry"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	return screen
}

func TestSurface_Projection(t *testing.T) {
	screen := newSimScreen(t, 40, 5)
	surface := NewSurface(screen, 8, 20)

	if got := surface.ViewportWidth(); got != 320 {
		t.Fatalf("expected viewport 320px, got %f", got)
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	surface.Submit([]overlay.DrawCommand{
		{Text: "left", X: 16, Y: 20, Color: white},
		{Text: "right", X: 160, Y: 20, Align: overlay.AlignRight, Color: white},
		{Text: "a\nb", X: 0, Y: 40, Color: white},
		{Text: "clipped", X: 300, Y: 400, Color: white},
	})
	surface.Present()

	lines := surface.Lines()
	if !strings.HasPrefix(lines[1], "  left") {
		t.Errorf("expected left text at column 2, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "right") || len(lines[1]) != 20 {
		t.Errorf("expected right text ending at column 20, got %q", lines[1])
	}
	if lines[2] != "a" || lines[3] != "b" {
		t.Errorf("expected multi-line text on rows 2 and 3, got %q %q", lines[2], lines[3])
	}

	r, _, style, _ := screen.GetContent(2, 1)
	if r != 'l' {
		t.Errorf("expected 'l' at (2,1), got %q", r)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("expected white foreground, got %v", fg)
	}
}

func TestSurface_Counters(t *testing.T) {
	screen := newSimScreen(t, 20, 2)
	surface := NewSurface(screen, 0, 0)

	surface.Submit([]overlay.DrawCommand{{Text: "x"}, {Text: "y"}})
	if surface.PrevDrawCalls() != 0 {
		t.Error("expected counters to lag one frame")
	}

	surface.BeginFrame()
	if surface.PrevDrawCalls() != 2 {
		t.Errorf("expected 2 draw calls from last frame, got %d", surface.PrevDrawCalls())
	}
	if lines := surface.Lines(); lines[0] != "" {
		t.Errorf("expected BeginFrame to clear the screen, got %q", lines[0])
	}
}

func TestSurface_DrawsOverlay(t *testing.T) {
	screen := newSimScreen(t, 160, 12)
	surface := NewSurface(screen, DefaultCellWidth, DefaultCellHeight)

	timers := &telemetry.StaticTimers{}
	timers.Nanos[telemetry.PurposeEngine] = [telemetry.NumTimelines]int64{2_000_000, 1_000_000, 1_000_000}
	stats := overlay.New(timers, overlay.DefaultLayout(), overlay.DefaultTheme())

	surface.BeginFrame()
	stats.Draw(surface)

	lines := surface.Lines()
	if !strings.HasPrefix(lines[1], "  Total elapsed: 4.000 ms [250 FPS maximum].") {
		t.Errorf("unexpected header line %q", lines[1])
	}
	if !strings.Contains(lines[2], "0 draw calls, 0 triangles, 0 vertices.") {
		t.Errorf("unexpected counters line %q", lines[2])
	}
	if !strings.Contains(lines[3], "Fixed:") || !strings.Contains(lines[3], "Variable:") || !strings.Contains(lines[3], "Render:") {
		t.Errorf("expected column titles on row 3, got %q", lines[3])
	}
	if !strings.Contains(lines[4], "[application]") {
		t.Errorf("expected first bucket row on row 4, got %q", lines[4])
	}
}
