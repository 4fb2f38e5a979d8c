package game

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	controlWidth   = 150
	controlHeight  = 28
	controlSpacing = 10
)

// drawControls renders the overlay control buttons along the bottom edge.
func (g *Game) drawControls() {
	x := float32(controlSpacing)
	y := float32(rl.GetScreenHeight()) - controlHeight - controlSpacing

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: controlWidth, Height: controlHeight}, toggleText(g.showOverlay, "Hide stats (F3)", "Show stats (F3)")) {
		g.showOverlay = !g.showOverlay
	}
	x += controlWidth + controlSpacing

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: controlWidth, Height: controlHeight}, toggleText(g.worldAttached, "Detach world (F4)", "Attach world (F4)")) {
		g.setWorldAttached(!g.worldAttached)
	}
	x += controlWidth + controlSpacing

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: controlWidth, Height: controlHeight}, "Rebuild world (R)") {
		g.requestRebuild()
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
