// Package renderer provides paint surfaces for the stats overlay.
package renderer

import (
	"fmt"
	"image/color"
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/framestats/overlay"
)

// circleSegments matches raylib's tessellation of DrawCircle.
const circleSegments = 36

// counters tallies what was drawn during one frame.
type counters struct {
	drawCalls int
	triangles int
	vertices  int
}

func (c *counters) add(drawCalls, triangles, vertices int) {
	c.drawCalls += drawCalls
	c.triangles += triangles
	c.vertices += vertices
}

// addText counts one draw call and a quad per visible glyph.
func (c *counters) addText(text string) {
	glyphs := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			glyphs++
		}
	}
	c.add(1, 2*glyphs, 4*glyphs)
}

// Surface draws overlay text with raylib and tracks per-frame draw counters.
// raylib does not expose its batch statistics, so the counters cover what is
// submitted through the surface.
type Surface struct {
	font     rl.Font
	ownsFont bool
	spacing  float32
	shadow   color.RGBA

	current counters
	prev    counters
}

// NewSurface creates a surface using the font at fontPath, or raylib's default
// font when fontPath is empty. Must be called after the window is created.
func NewSurface(fontPath string, fontSize int32, shadow color.RGBA) (*Surface, error) {
	s := &Surface{shadow: shadow, spacing: 1}
	if fontPath == "" {
		s.font = rl.GetFontDefault()
		return s, nil
	}

	s.font = rl.LoadFontEx(fontPath, fontSize, nil)
	if s.font.Texture.ID == 0 {
		return nil, fmt.Errorf("loading font %q", fontPath)
	}
	s.ownsFont = true
	return s, nil
}

// BeginFrame publishes the previous frame's counters and starts a new tally.
func (s *Surface) BeginFrame() {
	s.prev = s.current
	s.current = counters{}
}

// Count records geometry drawn outside the surface.
func (s *Surface) Count(drawCalls, triangles, vertices int) {
	s.current.add(drawCalls, triangles, vertices)
}

// CountCircles records n circles drawn with rl.DrawCircle.
func (s *Surface) CountCircles(n int) {
	s.current.add(n, n*circleSegments, n*circleSegments*3)
}

// ViewportWidth returns the render width in pixels.
func (s *Surface) ViewportWidth() float32 {
	return float32(rl.GetRenderWidth())
}

func (s *Surface) PrevDrawCalls() int { return s.prev.drawCalls }
func (s *Surface) PrevTriangles() int { return s.prev.triangles }
func (s *Surface) PrevVertices() int  { return s.prev.vertices }

// Submit draws a batch of text commands with a one pixel drop shadow.
func (s *Surface) Submit(cmds []overlay.DrawCommand) {
	shadow := rl.NewColor(s.shadow.R, s.shadow.G, s.shadow.B, s.shadow.A)
	for _, cmd := range cmds {
		pos := rl.Vector2{X: cmd.X, Y: cmd.Y}
		if cmd.Align == overlay.AlignRight {
			size := rl.MeasureTextEx(s.font, cmd.Text, cmd.Size, s.spacing)
			pos.X -= size.X
		}

		rl.DrawTextEx(s.font, cmd.Text, rl.Vector2{X: pos.X + 1, Y: pos.Y + 1}, cmd.Size, s.spacing, shadow)
		rl.DrawTextEx(s.font, cmd.Text, pos, cmd.Size, s.spacing,
			rl.NewColor(cmd.Color.R, cmd.Color.G, cmd.Color.B, cmd.Color.A))

		s.current.addText(cmd.Text)
		s.current.addText(cmd.Text)
	}
}

// Unload frees the font if the surface loaded it.
func (s *Surface) Unload() {
	if s.ownsFont {
		rl.UnloadFont(s.font)
		s.ownsFont = false
	}
}
