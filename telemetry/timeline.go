package telemetry

import "strconv"

// Timeline identifies a scheduling phase of the frame.
type Timeline int

const (
	TimelineFixed Timeline = iota
	TimelineVariable
	TimelineRender

	NumTimelines = 3
)

var timelineLabels = map[Timeline]string{
	TimelineFixed:    "Fixed",
	TimelineVariable: "Variable",
	TimelineRender:   "Render",
}

// Timelines returns all timelines in display order.
func Timelines() []Timeline {
	return []Timeline{TimelineFixed, TimelineVariable, TimelineRender}
}

// Valid reports whether t is one of the known timelines.
func (t Timeline) Valid() bool {
	return t >= 0 && t < NumTimelines
}

func (t Timeline) String() string {
	if label, ok := timelineLabels[t]; ok {
		return label
	}
	return "Timeline(" + strconv.Itoa(int(t)) + ")"
}

// ParseTimeline looks up a timeline by its label (case-sensitive).
func ParseTimeline(s string) (Timeline, bool) {
	for t, label := range timelineLabels {
		if label == s {
			return t, true
		}
	}
	return 0, false
}

// Purpose names what a timer measures within a timeline.
type Purpose int

const (
	PurposeEngine      Purpose = iota // whole timeline step, engine included
	PurposeApplication                // application logic only
	PurposeVsync                      // waiting on buffer swap

	NumPurposes = 3
)

var purposeLabels = map[Purpose]string{
	PurposeEngine:      "engine",
	PurposeApplication: "application",
	PurposeVsync:       "vsync",
}

// Valid reports whether p is one of the known purposes.
func (p Purpose) Valid() bool {
	return p >= 0 && p < NumPurposes
}

func (p Purpose) String() string {
	if label, ok := purposeLabels[p]; ok {
		return label
	}
	return "Purpose(" + strconv.Itoa(int(p)) + ")"
}

// ParsePurpose looks up a purpose by its label.
func ParsePurpose(s string) (Purpose, bool) {
	for p, label := range purposeLabels {
		if label == s {
			return p, true
		}
	}
	return 0, false
}

// Averaging selects how a stopwatch summarizes its window.
type Averaging int

const (
	AveragingLatest  Averaging = iota // most recent sample
	AveragingAverage                  // running mean over the window
	AveragingMax                      // worst sample in the window
)

// SystemStat is the per-frame report of a single scheduled system.
type SystemStat struct {
	Name     string
	Entities int
	Nanos    int64
}
