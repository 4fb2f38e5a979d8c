package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pthm-cable/framestats/overlay"
	"github.com/pthm-cable/framestats/telemetry"
)

func loadSample(t *testing.T) *overlay.StatsOverlay {
	t.Helper()
	timers, workload, err := telemetry.LoadSamples("testdata/sample.csv")
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if workload == nil {
		t.Fatal("sample should carry a workload")
	}
	stats := overlay.New(timers, overlay.DefaultLayout(), overlay.DefaultTheme())
	stats.SetWorld(workload)
	return stats
}

func TestPrintOverlay(t *testing.T) {
	stats := loadSample(t)

	var buf bytes.Buffer
	if err := printOverlay(&buf, stats, defaultCols); err != nil {
		t.Fatalf("printOverlay: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total elapsed: 4.000 ms [250 FPS maximum].",
		"Fixed:",
		"Variable:",
		"Render:",
		"Movement",
		"Sprites",
		"[vsync]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestPrintOverlay_Report(t *testing.T) {
	stats := loadSample(t)
	if _, err := renderLines(stats, defaultCols); err != nil {
		t.Fatalf("renderLines: %v", err)
	}

	render, ok := stats.Report().Column(telemetry.TimelineRender)
	if !ok {
		t.Fatal("missing render column")
	}
	tests := []struct {
		label string
		nanos int64
	}{
		{"Sprites", 480000},
		{overlay.LabelUnallocated, 20000},
		{overlay.LabelApplication, 100000},
		{overlay.LabelVsync, 1000000},
		{overlay.LabelEngine, 400000},
		{overlay.LabelTotal, 2000000},
	}
	for _, tt := range tests {
		row, ok := render.Row(tt.label)
		if !ok {
			t.Errorf("missing row %q", tt.label)
			continue
		}
		if row.Nanos != tt.nanos {
			t.Errorf("%s = %d ns, want %d", tt.label, row.Nanos, tt.nanos)
		}
	}
}

func TestRenderLines_NarrowTerminal(t *testing.T) {
	stats := loadSample(t)
	lines, err := renderLines(stats, 20)
	if err != nil {
		t.Fatalf("renderLines: %v", err)
	}
	for i, line := range lines {
		if n := len([]rune(line)); n > 20 {
			t.Errorf("line %d has %d cells, want <= 20", i, n)
		}
	}
}
