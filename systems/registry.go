package systems

import "github.com/pthm-cable/framestats/telemetry"

// SystemInfo describes a scheduled system for display.
type SystemInfo struct {
	ID          string             // Internal identifier (used for scheduling and timing)
	Name        string             // Display name
	Description string             // What this system does
	Timeline    telemetry.Timeline // Where the system is scheduled
}

// Registry holds metadata about systems.
// This centralizes system naming so the overlay and the scheduler stay in sync.
type Registry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]SystemInfo),
	}
}

// Register adds a system to the registry. Re-registering an ID replaces its metadata.
func (r *Registry) Register(info SystemInfo) {
	if _, ok := r.byID[info.ID]; ok {
		for i := range r.systems {
			if r.systems[i].ID == info.ID {
				r.systems[i] = info
			}
		}
	} else {
		r.systems = append(r.systems, info)
	}
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *Registry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found or unnamed.
func (r *Registry) GetName(id string) string {
	if r == nil {
		return id
	}
	if info, ok := r.byID[id]; ok && info.Name != "" {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *Registry) All() []SystemInfo {
	return r.systems
}

// ByTimeline returns systems filtered by timeline.
func (r *Registry) ByTimeline(tl telemetry.Timeline) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Timeline == tl {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
