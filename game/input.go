package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyF3) {
		g.showOverlay = !g.showOverlay
	}

	if rl.IsKeyPressed(rl.KeyF4) {
		g.setWorldAttached(!g.worldAttached)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.requestRebuild()
	}
}

// requestRebuild swaps in a fresh world, keeping the old one on failure.
func (g *Game) requestRebuild() {
	if err := g.rebuildWorld(); err != nil {
		slog.Error("rebuild failed", "error", err)
	}
}
