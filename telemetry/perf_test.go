package telemetry

import (
	"testing"
	"time"
)

func TestStopwatch_Averaging(t *testing.T) {
	sw := NewStopwatch(10)
	sw.Record(1 * time.Millisecond)
	sw.Record(3 * time.Millisecond)
	sw.Record(2 * time.Millisecond)

	tests := []struct {
		mode Averaging
		want int64
	}{
		{AveragingLatest, 2_000_000},
		{AveragingAverage, 2_000_000},
		{AveragingMax, 3_000_000},
	}
	for _, tt := range tests {
		if got := sw.Elapsed(tt.mode); got != tt.want {
			t.Errorf("mode %d: expected %d, got %d", tt.mode, tt.want, got)
		}
	}
}

func TestStopwatch_RollingWindow(t *testing.T) {
	sw := NewStopwatch(2) // Small window

	sw.Record(1 * time.Millisecond)
	sw.Record(2 * time.Millisecond)
	sw.Record(3 * time.Millisecond)

	if sw.Count() != 2 {
		t.Fatalf("expected 2 samples in window, got %d", sw.Count())
	}
	if got := sw.Elapsed(AveragingAverage); got != 2_500_000 {
		t.Errorf("expected oldest sample to be evicted (avg 2.5ms), got %d", got)
	}
	if got := sw.Elapsed(AveragingMax); got != 3_000_000 {
		t.Errorf("expected max 3ms, got %d", got)
	}
}

func TestStopwatch_Empty(t *testing.T) {
	sw := NewStopwatch(0)

	// Empty stopwatch should report zero in every mode without panicking
	for _, mode := range []Averaging{AveragingLatest, AveragingAverage, AveragingMax} {
		if got := sw.Elapsed(mode); got != 0 {
			t.Errorf("mode %d: expected 0, got %d", mode, got)
		}
	}

	sw.Record(time.Millisecond)
	sw.Reset()
	if sw.Count() != 0 || sw.Elapsed(AveragingAverage) != 0 {
		t.Error("expected reset stopwatch to be empty")
	}
}

func TestStopwatch_StartStop(t *testing.T) {
	sw := NewStopwatch(5)

	// Stop without start is ignored
	sw.Stop()
	if sw.Count() != 0 {
		t.Fatal("expected Stop without Start to record nothing")
	}

	sw.Start()
	time.Sleep(2 * time.Millisecond)
	sw.Stop()

	if got := sw.Elapsed(AveragingLatest); got < int64(2*time.Millisecond) {
		t.Errorf("expected at least 2ms, got %d ns", got)
	}
}

func TestTimers_Keys(t *testing.T) {
	timers := NewTimers(4)
	timers.Record(PurposeEngine, TimelineRender, 5*time.Millisecond)
	timers.Record(PurposeVsync, TimelineRender, 3*time.Millisecond)

	if got := timers.AverageTime(PurposeEngine, TimelineRender, AveragingAverage); got != 5_000_000 {
		t.Errorf("expected 5ms engine render time, got %d", got)
	}
	if got := timers.AverageTime(PurposeEngine, TimelineFixed, AveragingAverage); got != 0 {
		t.Errorf("expected untouched pair to be 0, got %d", got)
	}

	// Unknown keys are ignored
	timers.Record(Purpose(7), TimelineFixed, time.Second)
	if got := timers.AverageTime(Purpose(7), TimelineFixed, AveragingAverage); got != 0 {
		t.Errorf("expected unknown purpose to report 0, got %d", got)
	}
	if got := timers.AverageTime(PurposeEngine, Timeline(-1), AveragingAverage); got != 0 {
		t.Errorf("expected unknown timeline to report 0, got %d", got)
	}
}

func TestTimers_Track(t *testing.T) {
	timers := NewTimers(4)

	stop := timers.Track(PurposeApplication, TimelineVariable)
	time.Sleep(time.Millisecond)
	stop()

	if timers.Stopwatch(PurposeApplication, TimelineVariable).Count() != 1 {
		t.Fatal("expected one sample after Track")
	}
	if timers.AverageTime(PurposeApplication, TimelineVariable, AveragingLatest) <= 0 {
		t.Error("expected positive tracked time")
	}

	// Unknown pair returns a usable no-op
	timers.Track(Purpose(-1), TimelineFixed)()
}

func TestTimelineLabels(t *testing.T) {
	want := []string{"Fixed", "Variable", "Render"}
	for i, tl := range Timelines() {
		if tl.String() != want[i] {
			t.Errorf("timeline %d: expected %q, got %q", i, want[i], tl.String())
		}
		parsed, ok := ParseTimeline(want[i])
		if !ok || parsed != tl {
			t.Errorf("expected ParseTimeline(%q) = %v, got %v (ok=%v)", want[i], tl, parsed, ok)
		}
	}
	if got := Timeline(9).String(); got != "Timeline(9)" {
		t.Errorf("expected fallback label, got %q", got)
	}
}
