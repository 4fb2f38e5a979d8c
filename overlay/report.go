package overlay

import (
	"log/slog"

	"github.com/pthm-cable/framestats/telemetry"
)

// Row labels for derived time buckets.
const (
	LabelUnallocated = "[unallocated-workload]"
	LabelApplication = "[application]"
	LabelVsync       = "[vsync]"
	LabelEngine      = "[engine-overhead]"
	LabelTotal       = "Total"
)

// Timers is the source of averaged engine, application and vsync times.
type Timers interface {
	AverageTime(p telemetry.Purpose, tl telemetry.Timeline, mode telemetry.Averaging) int64
}

// Workload is the optional registry of scheduled systems (the "world").
type Workload interface {
	AverageTime(tl telemetry.Timeline) int64
	Systems(tl telemetry.Timeline) []telemetry.SystemStat
	NumEntities() int
}

// liveness is implemented by workloads that can be invalidated by their owner.
type liveness interface {
	Closed() bool
}

// live returns w, or nil if w is absent or has been closed.
func live(w Workload) Workload {
	if w == nil {
		return nil
	}
	if l, ok := w.(liveness); ok && l.Closed() {
		return nil
	}
	return w
}

// RowKind groups rows for coloring.
type RowKind int

const (
	RowSystem RowKind = iota
	RowUnallocated
	RowApplication
	RowVsync
	RowEngine
	RowTotal
)

// Row is one line of a column. A zero Count is not displayed.
type Row struct {
	Label string
	Count int
	Nanos int64
	Kind  RowKind
}

// Column is the breakdown of one timeline.
type Column struct {
	Timeline    telemetry.Timeline
	Rows        []Row
	EngineTotal int64
}

// Report is the aggregated breakdown of all timelines for one frame.
type Report struct {
	Columns    []Column
	GrandTotal int64
}

// Aggregate builds a report from the timers and the optional workload.
// Derived buckets are computed by subtraction and are never clamped, so a
// negative bucket means the sources disagree.
func Aggregate(timers Timers, world Workload) Report {
	var r Report
	r.build(timers, live(world))
	return r
}

// build fills r in place, reusing its backing arrays.
func (r *Report) build(timers Timers, world Workload) {
	timelines := telemetry.Timelines()
	if cap(r.Columns) < len(timelines) {
		r.Columns = make([]Column, len(timelines))
	}
	r.Columns = r.Columns[:len(timelines)]
	r.GrandTotal = 0

	for i, tl := range timelines {
		col := &r.Columns[i]
		col.Timeline = tl
		col.Rows = col.Rows[:0]

		engineTotal := timers.AverageTime(telemetry.PurposeEngine, tl, telemetry.AveragingAverage)
		appTotal := timers.AverageTime(telemetry.PurposeApplication, tl, telemetry.AveragingAverage)

		var worldTotal int64
		if world != nil {
			worldTotal = world.AverageTime(tl)
			var sysTotal int64
			for _, sys := range world.Systems(tl) {
				sysTotal += sys.Nanos
				col.Rows = append(col.Rows, Row{Label: sys.Name, Count: sys.Entities, Nanos: sys.Nanos, Kind: RowSystem})
			}
			col.Rows = append(col.Rows, Row{Label: LabelUnallocated, Nanos: worldTotal - sysTotal, Kind: RowUnallocated})
		}

		col.Rows = append(col.Rows, Row{Label: LabelApplication, Nanos: appTotal - worldTotal, Kind: RowApplication})

		var vsyncTotal int64
		if tl == telemetry.TimelineRender {
			vsyncTotal = timers.AverageTime(telemetry.PurposeVsync, tl, telemetry.AveragingAverage)
			col.Rows = append(col.Rows, Row{Label: LabelVsync, Nanos: vsyncTotal, Kind: RowVsync})
		}

		col.Rows = append(col.Rows, Row{Label: LabelEngine, Nanos: engineTotal - appTotal - vsyncTotal, Kind: RowEngine})

		total := Row{Label: LabelTotal, Nanos: engineTotal, Kind: RowTotal}
		if world != nil {
			total.Count = world.NumEntities()
		}
		col.Rows = append(col.Rows, total)

		col.EngineTotal = engineTotal
		r.GrandTotal += engineTotal
	}
}

// clone returns a deep copy that shares no backing arrays with r.
func (r Report) clone() Report {
	out := Report{GrandTotal: r.GrandTotal}
	if r.Columns == nil {
		return out
	}
	out.Columns = make([]Column, len(r.Columns))
	for i, col := range r.Columns {
		col.Rows = append([]Row(nil), col.Rows...)
		out.Columns[i] = col
	}
	return out
}

// Column returns the column for tl, if present.
func (r Report) Column(tl telemetry.Timeline) (Column, bool) {
	for _, col := range r.Columns {
		if col.Timeline == tl {
			return col, true
		}
	}
	return Column{}, false
}

// Row returns the first row with the given label.
func (c Column) Row(label string) (Row, bool) {
	for _, row := range c.Rows {
		if row.Label == label {
			return row, true
		}
	}
	return Row{}, false
}

// LogValue implements slog.LogValuer for structured logging.
func (r Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("total_ms", FormatTime(r.GrandTotal)),
		slog.String("max_fps", FormatFPS(r.GrandTotal)),
	}
	for _, col := range r.Columns {
		group := make([]any, 0, len(col.Rows))
		for _, row := range col.Rows {
			group = append(group, slog.String(row.Label, FormatTime(row.Nanos)))
		}
		attrs = append(attrs, slog.Group(col.Timeline.String(), group...))
	}
	return slog.GroupValue(attrs...)
}
