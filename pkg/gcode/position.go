package gcode

import (
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Position is the tool's last known XY location. Axes a line does not
// mention are carried forward, so a Position is always fully defined; runs
// start at the origin.
type Position struct {
	X float64
	Y float64
}

// axisValue is the per-line scan result for one axis: either a coordinate
// found on the line or nothing. Explicit so that no real coordinate can be
// mistaken for "absent".
type axisValue struct {
	value float64
	found bool
}

// SegmentLength returns the Euclidean XY distance between two positions.
func SegmentLength(from, to Position) float64 {
	return math.Hypot(to.X-from.X, to.Y-from.Y)
}

// UpdatedPosition scans one gcode line for X/Y coordinates and returns the
// tool position after the line, carrying axes the line omits forward from
// prev. Scanning stops at the first comment token; a token whose number
// fails to parse is logged and skipped without aborting the line.
func UpdatedPosition(line string, prev Position) Position {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return prev
	}

	var x, y axisValue
	for _, tok := range strings.Fields(trimmed) {
		if strings.HasPrefix(tok, ";") {
			// Everything after a comment marker is not gcode.
			break
		}
		switch tok[0] {
		case 'X', 'x':
			x = parseAxisToken(tok, x)
		case 'Y', 'y':
			y = parseAxisToken(tok, y)
		}
	}

	next := prev
	if x.found {
		next.X = x.value
	}
	if y.found {
		next.Y = y.value
	}
	return next
}

func parseAxisToken(tok string, current axisValue) axisValue {
	v, err := strconv.ParseFloat(tok[1:], 64)
	if err != nil {
		logrus.Errorf("cannot parse coordinate token %q, ignoring it", tok)
		return current
	}
	return axisValue{value: v, found: true}
}
