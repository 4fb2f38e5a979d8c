package overlay

import "github.com/pthm-cable/framestats/telemetry"

// NumColumns is the number of report columns, one per timeline.
const NumColumns = telemetry.NumTimelines

// Layout positions the report on screen. All values are in pixels.
type Layout struct {
	Margin      float32 // horizontal margin; the columns share viewport - 2*Margin
	Left        float32 // x of the first column
	Top         float32 // y of the column headers
	RowHeight   float32
	LabelInset  float32 // label offset from the column's left edge
	CountOffset float32 // right edge of the count field, back from the column's right edge
	TimeOffset  float32 // right edge of the time field, back from the column's right edge
	HeaderX     float32
	HeaderY     float32
}

// DefaultLayout returns the stock overlay layout.
func DefaultLayout() Layout {
	return Layout{
		Margin:      20,
		Left:        20,
		Top:         60,
		RowHeight:   20,
		LabelInset:  10,
		CountOffset: 120,
		TimeOffset:  50,
		HeaderX:     20,
		HeaderY:     20,
	}
}

// ColumnWidth returns the width of every column for the given viewport.
// Narrow viewports yield zero or negative widths; rows then overlap.
func (l Layout) ColumnWidth(viewport float32) float32 {
	return (viewport - 2*l.Margin) / NumColumns
}

// ColumnX returns the left edge of column i.
func (l Layout) ColumnX(viewport float32, i int) float32 {
	return l.Left + float32(i)*l.ColumnWidth(viewport)
}

// cursor walks down one column as rows are emitted.
type cursor struct {
	x, y  float32
	width float32
}

func (l Layout) column(viewport float32, i int) cursor {
	return cursor{
		x:     l.ColumnX(viewport, i),
		y:     l.Top,
		width: l.ColumnWidth(viewport),
	}
}

func (c *cursor) advance(l Layout) {
	c.y += l.RowHeight
}

func (c cursor) labelX(l Layout) float32 { return c.x + l.LabelInset }
func (c cursor) countX(l Layout) float32 { return c.x + c.width - l.CountOffset }
func (c cursor) timeX(l Layout) float32  { return c.x + c.width - l.TimeOffset }
