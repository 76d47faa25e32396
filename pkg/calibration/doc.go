// Package calibration loads and validates the flow-compensation table: an
// ordered sequence of (extrusion length, flow multiplier) points backing the
// interpolation model. It contains:
//
//   - Point / Sequence: the immutable calibration data
//   - Load: read the table from disk, creating the built-in default first if
//     the file does not exist
//   - the sentinel errors describing every way a table can be rejected
//
// A table that fails validation is unusable; callers are expected to treat
// every error from this package as fatal to the run.
package calibration
