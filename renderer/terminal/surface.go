// Package terminal draws the stats overlay into a character terminal.
package terminal

import (
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/framestats/overlay"
)

// Default pixel size of a terminal cell.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 20
)

// Surface draws overlay text into a terminal screen by projecting
// pixel positions onto character cells.
type Surface struct {
	screen       tcell.Screen
	cellW, cellH float32

	drawCalls     int
	prevDrawCalls int
}

// NewSurface creates a surface over screen. Non-positive cell sizes use the defaults.
func NewSurface(screen tcell.Screen, cellW, cellH float32) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &Surface{screen: screen, cellW: cellW, cellH: cellH}
}

// BeginFrame clears the screen and publishes the previous frame's counters.
func (t *Surface) BeginFrame() {
	t.screen.Clear()
	t.prevDrawCalls = t.drawCalls
	t.drawCalls = 0
}

// ViewportWidth returns the screen width in pixels.
func (t *Surface) ViewportWidth() float32 {
	w, _ := t.screen.Size()
	return float32(w) * t.cellW
}

// PrevDrawCalls returns the number of commands submitted last frame.
func (t *Surface) PrevDrawCalls() int { return t.prevDrawCalls }

// PrevTriangles is always 0; a terminal draws no geometry.
func (t *Surface) PrevTriangles() int { return 0 }

// PrevVertices is always 0; a terminal draws no geometry.
func (t *Surface) PrevVertices() int { return 0 }

// Submit writes a batch of text commands. Text outside the screen is clipped.
func (t *Surface) Submit(cmds []overlay.DrawCommand) {
	w, h := t.screen.Size()
	for _, cmd := range cmds {
		style := tcell.StyleDefault.Foreground(termColor(cmd.Color))
		row := int(cmd.Y / t.cellH)
		for i, line := range strings.Split(cmd.Text, "\n") {
			runes := []rune(line)
			col := int(cmd.X / t.cellW)
			if cmd.Align == overlay.AlignRight {
				col -= len(runes)
			}
			y := row + i
			if y < 0 || y >= h {
				continue
			}
			for j, r := range runes {
				x := col + j
				if x < 0 || x >= w {
					continue
				}
				t.screen.SetContent(x, y, r, nil, style)
			}
		}
		t.drawCalls++
	}
}

// Present flushes the drawn frame to the terminal.
func (t *Surface) Present() {
	t.screen.Show()
}

// Lines returns the screen contents as text, one string per row,
// with trailing blanks trimmed.
func (t *Surface) Lines() []string {
	w, h := t.screen.Size()
	lines := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; x++ {
			r, _, _, _ := t.screen.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

func termColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
