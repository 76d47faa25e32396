// Package exitcode maps the typed errors of the core packages to process
// exit statuses. Core packages return errors; only the command entry point
// decides what the process does with them.
package exitcode

import (
	"errors"

	"github.com/3dptools/flowcomp/pkg/calibration"
	"github.com/3dptools/flowcomp/pkg/gcode"
)

// Exit statuses. Every fatal failure class has its own code so wrapper
// scripts and slicers can tell them apart.
const (
	OK                 = 0
	Unknown            = 1
	AlreadyProcessed   = 2
	MalformedLine      = 3
	InvalidLength      = 4
	InvalidMultiplier  = 5
	StorageError       = 6
	FieldCount         = 7
	BoundaryViolation  = 8
	InsufficientPoints = 9
	CreateFailure      = 10
)

// FromError returns the exit status for err, Unknown for anything without a
// dedicated code, and OK for nil.
func FromError(err error) int {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, gcode.ErrAlreadyProcessed):
		return AlreadyProcessed
	case errors.Is(err, calibration.ErrMalformedLine):
		return MalformedLine
	case errors.Is(err, calibration.ErrInvalidLength):
		return InvalidLength
	case errors.Is(err, calibration.ErrInvalidMultiplier):
		return InvalidMultiplier
	case errors.Is(err, calibration.ErrStorage):
		return StorageError
	case errors.Is(err, calibration.ErrFieldCount):
		return FieldCount
	case errors.Is(err, calibration.ErrBoundaryViolation):
		return BoundaryViolation
	case errors.Is(err, calibration.ErrInsufficientPoints):
		return InsufficientPoints
	case errors.Is(err, calibration.ErrCreateDefault):
		return CreateFailure
	default:
		return Unknown
	}
}
