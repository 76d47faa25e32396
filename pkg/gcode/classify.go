package gcode

import "regexp"

var (
	// An axis letter immediately followed by an unsigned decimal number.
	// Cheap filter applied to the whole line before any per-token work.
	reLineOfInterest = regexp.MustCompile(`[XYE][0-9]*\.?[0-9]+`)

	// A whole token that is an extrusion move: E followed by a non-negative
	// decimal in the forms ddd, ddd.ddd or .ddd. No sign, no exponent, so
	// retractions (E-...) never match.
	reExtrusionToken = regexp.MustCompile(`^E([0-9]+(\.[0-9]+)?|\.[0-9]+)$`)
)

// LineOfInterest reports whether the line carries at least one X/Y/E token
// worth inspecting.
func LineOfInterest(line string) bool {
	return reLineOfInterest.MatchString(line)
}

// IsExtrusionToken reports whether a single token is a forward extrusion
// amount eligible for rewriting.
func IsExtrusionToken(tok string) bool {
	return reExtrusionToken.MatchString(tok)
}
