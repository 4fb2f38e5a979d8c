package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// TimerSource is the read side of a timer registry.
type TimerSource interface {
	AverageTime(p Purpose, tl Timeline, mode Averaging) int64
}

// WorkloadSource is the read side of a workload registry.
type WorkloadSource interface {
	AverageTime(tl Timeline) int64
	Systems(tl Timeline) []SystemStat
	NumEntities() int
}

// FrameRecord is one row of frames.csv: averaged timings of one timeline.
type FrameRecord struct {
	Frame         int    `csv:"frame"`
	Timeline      string `csv:"timeline"`
	EngineNs      int64  `csv:"engine_ns"`
	ApplicationNs int64  `csv:"application_ns"`
	VsyncNs       int64  `csv:"vsync_ns"`
	WorldNs       int64  `csv:"world_ns"`
	Entities      int    `csv:"entities"`
}

// Capture records the current averaged timings as sample records that
// BuildSnapshot can read back. world may be nil.
func Capture(timers TimerSource, world WorkloadSource) []SampleRecord {
	var records []SampleRecord
	for _, tl := range Timelines() {
		for p := Purpose(0); p < NumPurposes; p++ {
			if p == PurposeVsync && tl != TimelineRender {
				continue
			}
			records = append(records, SampleRecord{
				Kind:     SampleTimer,
				Timeline: tl.String(),
				Name:     p.String(),
				Nanos:    timers.AverageTime(p, tl, AveragingAverage),
			})
		}
		if world == nil {
			continue
		}
		records = append(records, SampleRecord{
			Kind:     SampleWorld,
			Timeline: tl.String(),
			Entities: world.NumEntities(),
			Nanos:    world.AverageTime(tl),
		})
		for _, sys := range world.Systems(tl) {
			records = append(records, SampleRecord{
				Kind:     SampleSystem,
				Timeline: tl.String(),
				Name:     sys.Name,
				Entities: sys.Entities,
				Nanos:    sys.Nanos,
			})
		}
	}
	return records
}

// OutputManager writes frame timing logs and replayable sample snapshots.
type OutputManager struct {
	dir        string
	framesFile *os.File

	framesHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}

	return &OutputManager{dir: dir, framesFile: f}, nil
}

// WriteFrame appends one row per timeline to frames.csv.
func (om *OutputManager) WriteFrame(frame int, timers TimerSource, world WorkloadSource) error {
	if om == nil {
		return nil
	}

	records := make([]FrameRecord, 0, NumTimelines)
	for _, tl := range Timelines() {
		rec := FrameRecord{
			Frame:         frame,
			Timeline:      tl.String(),
			EngineNs:      timers.AverageTime(PurposeEngine, tl, AveragingAverage),
			ApplicationNs: timers.AverageTime(PurposeApplication, tl, AveragingAverage),
			VsyncNs:       timers.AverageTime(PurposeVsync, tl, AveragingAverage),
		}
		if world != nil {
			rec.WorldNs = world.AverageTime(tl)
			rec.Entities = world.NumEntities()
		}
		records = append(records, rec)
	}

	if !om.framesHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		om.framesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
	}
	return nil
}

// WriteSamples saves a replayable snapshot as samples_<frame>.csv and
// returns its path.
func (om *OutputManager) WriteSamples(frame int, records []SampleRecord) (string, error) {
	if om == nil {
		return "", nil
	}

	path := filepath.Join(om.dir, fmt.Sprintf("samples_%06d.csv", frame))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return "", fmt.Errorf("writing samples: %w", err)
	}
	return path, nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.framesFile == nil {
		return nil
	}
	return om.framesFile.Close()
}
