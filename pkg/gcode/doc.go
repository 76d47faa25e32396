// Package gcode contains the streaming side of flowcomp: tool-position
// tracking, token classification, the infill/surface region state machine,
// and the single-pass line processor that rewrites extrusion amounts.
//
// The package is deliberately not a gcode interpreter. It understands just
// enough of the format to find X/Y coordinates, E extrusion tokens and
// slicer comment markers; everything else passes through byte-for-byte.
package gcode
