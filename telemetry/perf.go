package telemetry

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is the number of samples a stopwatch averages over when
// no explicit window is configured.
const DefaultWindow = 30

// Stopwatch measures repeated intervals and summarizes them over a rolling window.
type Stopwatch struct {
	windowSize  int
	samples     []float64 // nanoseconds
	writeIndex  int
	sampleCount int
	latest      float64

	started time.Time
	running bool
}

// NewStopwatch creates a stopwatch averaging over the last windowSize samples.
func NewStopwatch(windowSize int) *Stopwatch {
	if windowSize < 1 {
		windowSize = DefaultWindow
	}
	return &Stopwatch{
		windowSize: windowSize,
		samples:    make([]float64, windowSize),
	}
}

// Start begins an interval. Starting a running stopwatch restarts it.
func (s *Stopwatch) Start() {
	s.started = time.Now()
	s.running = true
}

// Stop ends the current interval and records it. No-op if not running.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.Record(time.Since(s.started))
}

// Record adds an externally measured interval.
func (s *Stopwatch) Record(d time.Duration) {
	ns := float64(d.Nanoseconds())
	s.samples[s.writeIndex] = ns
	s.writeIndex = (s.writeIndex + 1) % s.windowSize
	if s.sampleCount < s.windowSize {
		s.sampleCount++
	}
	s.latest = ns
}

// Count returns the number of samples currently in the window.
func (s *Stopwatch) Count() int {
	return s.sampleCount
}

// Elapsed summarizes the window in nanoseconds. An empty stopwatch reports 0.
func (s *Stopwatch) Elapsed(mode Averaging) int64 {
	if s.sampleCount == 0 {
		return 0
	}
	window := s.samples[:s.sampleCount]
	switch mode {
	case AveragingLatest:
		return int64(s.latest)
	case AveragingMax:
		return int64(floats.Max(window))
	default:
		return int64(math.Round(stat.Mean(window, nil)))
	}
}

// Reset discards all samples.
func (s *Stopwatch) Reset() {
	s.writeIndex = 0
	s.sampleCount = 0
	s.latest = 0
	s.running = false
}

// Timers holds one stopwatch per (purpose, timeline) pair.
type Timers struct {
	watches [NumPurposes][NumTimelines]*Stopwatch
}

// NewTimers creates a timer registry whose stopwatches average over windowSize samples.
func NewTimers(windowSize int) *Timers {
	t := &Timers{}
	for p := range t.watches {
		for tl := range t.watches[p] {
			t.watches[p][tl] = NewStopwatch(windowSize)
		}
	}
	return t
}

// Stopwatch returns the stopwatch for the pair, or nil if either key is unknown.
func (t *Timers) Stopwatch(p Purpose, tl Timeline) *Stopwatch {
	if !p.Valid() || !tl.Valid() {
		return nil
	}
	return t.watches[p][tl]
}

// Start begins timing the pair.
func (t *Timers) Start(p Purpose, tl Timeline) {
	if sw := t.Stopwatch(p, tl); sw != nil {
		sw.Start()
	}
}

// Stop ends timing the pair and records the interval.
func (t *Timers) Stop(p Purpose, tl Timeline) {
	if sw := t.Stopwatch(p, tl); sw != nil {
		sw.Stop()
	}
}

// Record adds an externally measured interval for the pair.
func (t *Timers) Record(p Purpose, tl Timeline, d time.Duration) {
	if sw := t.Stopwatch(p, tl); sw != nil {
		sw.Record(d)
	}
}

// Track starts timing the pair and returns the function that stops it.
// Usage: defer timers.Track(telemetry.PurposeApplication, tl)()
func (t *Timers) Track(p Purpose, tl Timeline) func() {
	sw := t.Stopwatch(p, tl)
	if sw == nil {
		return func() {}
	}
	sw.Start()
	return sw.Stop
}

// AverageTime returns the pair's summarized elapsed time in nanoseconds.
func (t *Timers) AverageTime(p Purpose, tl Timeline, mode Averaging) int64 {
	sw := t.Stopwatch(p, tl)
	if sw == nil {
		return 0
	}
	return sw.Elapsed(mode)
}

// LogValue implements slog.LogValuer for structured logging.
func (t *Timers) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, NumTimelines)
	for _, tl := range Timelines() {
		attrs = append(attrs, slog.Group(tl.String(),
			slog.Int64("engine_us", t.AverageTime(PurposeEngine, tl, AveragingAverage)/1000),
			slog.Int64("application_us", t.AverageTime(PurposeApplication, tl, AveragingAverage)/1000),
			slog.Int64("vsync_us", t.AverageTime(PurposeVsync, tl, AveragingAverage)/1000),
		))
	}
	return slog.GroupValue(attrs...)
}
