// Package overlay renders a per-frame timing breakdown of the main loop:
// one column per timeline listing each scheduled system, the time left
// unaccounted for, and a header with the total and the frame rate it allows.
package overlay

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Align is the horizontal anchor of a text command.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// DrawCommand is a single positioned piece of text.
type DrawCommand struct {
	Text  string
	X, Y  float32
	Align Align
	Color color.RGBA
	Size  float32
}

// Surface is where the overlay is drawn.
// The counters describe what the surface drew during the previous frame.
// Submit must not retain cmds; the overlay reuses the slice next frame.
type Surface interface {
	ViewportWidth() float32
	PrevDrawCalls() int
	PrevTriangles() int
	PrevVertices() int
	Submit(cmds []DrawCommand)
}

// Theme holds overlay colors and text size.
type Theme struct {
	Header   color.RGBA // total elapsed line
	Timeline color.RGBA // column titles
	System   color.RGBA // per-system rows
	Bucket   color.RGBA // derived rows between systems and total
	Total    color.RGBA
	FontSize float32
}

// DefaultTheme returns the stock overlay colors.
func DefaultTheme() Theme {
	return Theme{
		Header:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Timeline: color.RGBA{R: 51, G: 255, B: 77, A: 255},
		System:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Bucket:   color.RGBA{R: 204, G: 204, B: 204, A: 255},
		Total:    color.RGBA{R: 204, G: 255, B: 204, A: 255},
		FontSize: 16,
	}
}

func (t Theme) rowColor(kind RowKind) color.RGBA {
	switch kind {
	case RowSystem:
		return t.System
	case RowTotal:
		return t.Total
	default:
		return t.Bucket
	}
}

// StatsOverlay draws the timing report. It is meant to be driven from the
// render loop and is not safe for concurrent use.
type StatsOverlay struct {
	timers Timers
	world  Workload
	layout Layout
	theme  Theme

	report Report
	cmds   []DrawCommand
}

// New creates an overlay reading from timers.
func New(timers Timers, layout Layout, theme Theme) *StatsOverlay {
	return &StatsOverlay{
		timers: timers,
		layout: layout,
		theme:  theme,
	}
}

// SetWorld attaches the workload registry, or detaches it when w is nil.
// The reference is not owned; a workload with a Closed method is re-checked
// every frame and dropped once closed.
func (o *StatsOverlay) SetWorld(w Workload) {
	w = live(w)
	switch {
	case w == nil && o.world != nil:
		slog.Debug("stats overlay world detached")
	case w != nil:
		slog.Debug("stats overlay world attached", "entities", w.NumEntities())
	}
	o.world = w
}

// World returns the attached workload registry, or nil.
func (o *StatsOverlay) World() Workload {
	return o.world
}

// Report returns a copy of the breakdown computed by the last Draw.
func (o *StatsOverlay) Report() Report {
	return o.report.clone()
}

// Draw aggregates the current timings and submits them to s in one batch.
func (o *StatsOverlay) Draw(s Surface) {
	world := live(o.world)
	if world == nil && o.world != nil {
		slog.Debug("stats overlay dropping closed world")
		o.world = nil
	}

	o.report.build(o.timers, world)
	o.cmds = o.appendCommands(o.cmds[:0], s.ViewportWidth(), s.PrevDrawCalls(), s.PrevTriangles(), s.PrevVertices())
	s.Submit(o.cmds)
}

// appendCommands lays out the current report.
func (o *StatsOverlay) appendCommands(cmds []DrawCommand, viewport float32, drawCalls, triangles, vertices int) []DrawCommand {
	l := o.layout
	size := o.theme.FontSize

	for i, col := range o.report.Columns {
		c := l.column(viewport, i)
		cmds = append(cmds, DrawCommand{
			Text:  col.Timeline.String() + ": ",
			X:     c.x,
			Y:     c.y,
			Color: o.theme.Timeline,
			Size:  size,
		})
		c.advance(l)

		for _, row := range col.Rows {
			rowColor := o.theme.rowColor(row.Kind)
			cmds = append(cmds, DrawCommand{Text: row.Label, X: c.labelX(l), Y: c.y, Align: AlignLeft, Color: rowColor, Size: size})
			if row.Count > 0 {
				cmds = append(cmds, DrawCommand{Text: strconv.Itoa(row.Count), X: c.countX(l), Y: c.y, Align: AlignRight, Color: rowColor, Size: size})
			}
			cmds = append(cmds, DrawCommand{Text: FormatTime(row.Nanos), X: c.timeX(l), Y: c.y, Align: AlignRight, Color: rowColor, Size: size})
			c.advance(l)
		}
	}

	cmds = append(cmds, DrawCommand{
		Text:  headerText(o.report.GrandTotal, drawCalls, triangles, vertices),
		X:     l.HeaderX,
		Y:     l.HeaderY,
		Color: o.theme.Header,
		Size:  size,
	})
	return cmds
}

func headerText(grandTotal int64, drawCalls, triangles, vertices int) string {
	return fmt.Sprintf("Total elapsed: %s ms [%s FPS maximum].\n%s draw calls, %s triangles, %s vertices.",
		FormatTime(grandTotal), FormatFPS(grandTotal),
		humanize.Comma(int64(drawCalls)), humanize.Comma(int64(triangles)), humanize.Comma(int64(vertices)))
}
