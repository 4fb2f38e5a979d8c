package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// Sample kinds recognised in a recorded sample file.
const (
	SampleTimer  = "timer"
	SampleWorld  = "world"
	SampleSystem = "system"
)

// SampleRecord is one row of a recorded sample file.
//
//	kind,timeline,name,entities,nanos
//	timer,Fixed,engine,0,1200000
//	world,Fixed,,120,700000
//	system,Fixed,Movement,120,300000
type SampleRecord struct {
	Kind     string `csv:"kind"`
	Timeline string `csv:"timeline"`
	Name     string `csv:"name"`
	Entities int    `csv:"entities"`
	Nanos    int64  `csv:"nanos"`
}

// StaticTimers is a frozen set of averaged timer values.
type StaticTimers struct {
	Nanos [NumPurposes][NumTimelines]int64
}

// AverageTime returns the recorded value; the averaging mode is ignored.
func (s *StaticTimers) AverageTime(p Purpose, tl Timeline, _ Averaging) int64 {
	if !p.Valid() || !tl.Valid() {
		return 0
	}
	return s.Nanos[p][tl]
}

// StaticWorkload is a frozen workload snapshot.
type StaticWorkload struct {
	Totals   [NumTimelines]int64
	Stats    [NumTimelines][]SystemStat
	Entities int
}

// AverageTime returns the recorded aggregate time of a timeline.
func (s *StaticWorkload) AverageTime(tl Timeline) int64 {
	if !tl.Valid() {
		return 0
	}
	return s.Totals[tl]
}

// Systems returns the recorded systems of a timeline in file order.
func (s *StaticWorkload) Systems(tl Timeline) []SystemStat {
	if !tl.Valid() {
		return nil
	}
	return s.Stats[tl]
}

// NumEntities returns the recorded entity count.
func (s *StaticWorkload) NumEntities() int {
	return s.Entities
}

// ReadSamples decodes sample records from CSV.
func ReadSamples(r io.Reader) ([]SampleRecord, error) {
	var records []SampleRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("decoding samples: %w", err)
	}
	return records, nil
}

// LoadSamples reads a sample file and builds the snapshots it describes.
// The workload is nil when the file has no world or system rows.
func LoadSamples(path string) (*StaticTimers, *StaticWorkload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening samples: %w", err)
	}
	defer f.Close()

	records, err := ReadSamples(f)
	if err != nil {
		return nil, nil, err
	}
	return BuildSnapshot(records)
}

// BuildSnapshot converts sample records into static timers and workload.
func BuildSnapshot(records []SampleRecord) (*StaticTimers, *StaticWorkload, error) {
	timers := &StaticTimers{}
	var workload *StaticWorkload

	for i, rec := range records {
		tl, ok := ParseTimeline(rec.Timeline)
		if !ok {
			return nil, nil, fmt.Errorf("sample %d: unknown timeline %q", i+1, rec.Timeline)
		}
		switch rec.Kind {
		case SampleTimer:
			p, ok := ParsePurpose(rec.Name)
			if !ok {
				return nil, nil, fmt.Errorf("sample %d: unknown timer %q", i+1, rec.Name)
			}
			timers.Nanos[p][tl] = rec.Nanos
		case SampleWorld:
			if workload == nil {
				workload = &StaticWorkload{}
			}
			workload.Totals[tl] = rec.Nanos
			if rec.Entities > workload.Entities {
				workload.Entities = rec.Entities
			}
		case SampleSystem:
			if workload == nil {
				workload = &StaticWorkload{}
			}
			workload.Stats[tl] = append(workload.Stats[tl], SystemStat{
				Name:     rec.Name,
				Entities: rec.Entities,
				Nanos:    rec.Nanos,
			})
		default:
			return nil, nil, fmt.Errorf("sample %d: unknown kind %q", i+1, rec.Kind)
		}
	}

	return timers, workload, nil
}
