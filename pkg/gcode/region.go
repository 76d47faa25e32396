package gcode

import "strings"

// RegionState is the compensation gate: extrusion rewriting only happens
// while the tracker is Compensating.
type RegionState int

const (
	// Idle means the stream is outside any compensable region.
	Idle RegionState = iota
	// Compensating means a region-start marker has been seen and no generic
	// region change has ended it yet.
	Compensating
)

func (s RegionState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Compensating:
		return "Compensating"
	default:
		return "Unknown"
	}
}

// startMarkers are the slicer comments that open a compensable
// infill/surface region. Matched exactly against the trimmed line, in two
// dialects: PrusaSlicer/Slic3r and Cura.
var startMarkers = map[string]struct{}{
	";TYPE:Solid infill":        {},
	";TYPE:Top solid infill":    {},
	";TYPE:Bottom solid infill": {},
	";TYPE:Internal infill":     {},
	";TYPE:SKIN":                {},
	";TYPE:FILL":                {},
}

// changeMarkers are the generic "feature changed" prefixes of the two
// dialects. Matched as substrings: any feature change that is not itself a
// start marker closes the region.
var changeMarkers = []string{
	";TYPE:",
	";MESH:",
}

// RegionTracker is the two-state machine toggling the compensation gate.
// The zero value starts Idle.
type RegionTracker struct {
	state RegionState
}

// Observe feeds one line to the tracker and returns the state after it.
func (t *RegionTracker) Observe(line string) RegionState {
	trimmed := strings.TrimSpace(line)

	if _, ok := startMarkers[trimmed]; ok {
		t.state = Compensating
		return t.state
	}

	for _, marker := range changeMarkers {
		if strings.Contains(line, marker) {
			t.state = Idle
			return t.state
		}
	}

	return t.state
}

// Active reports whether extrusion rewriting is currently enabled.
func (t *RegionTracker) Active() bool {
	return t.state == Compensating
}

// State returns the current state.
func (t *RegionTracker) State() RegionState {
	return t.state
}
