package calibration

import "errors"

var (
	// ErrFieldCount means a table line did not split into exactly two
	// comma-separated fields.
	ErrFieldCount = errors.New("calibration line must have exactly two comma-separated fields")

	// ErrMalformedLine means a table line had the right arity but an empty
	// or otherwise unusable field.
	ErrMalformedLine = errors.New("malformed calibration line")

	// ErrInvalidLength means the length field is not a non-negative decimal
	// number.
	ErrInvalidLength = errors.New("invalid calibration length")

	// ErrInvalidMultiplier means the multiplier field is not a decimal
	// number in [0, 1].
	ErrInvalidMultiplier = errors.New("invalid calibration multiplier")

	// ErrBoundaryViolation means the loaded table violates a structural
	// invariant: first length not 0, last multiplier not 1, or lengths not
	// strictly increasing.
	ErrBoundaryViolation = errors.New("calibration boundary violation")

	// ErrInsufficientPoints means the table has fewer than MinPoints rows.
	ErrInsufficientPoints = errors.New("too few calibration points")

	// ErrStorage means the table file could not be read.
	ErrStorage = errors.New("calibration storage error")

	// ErrCreateDefault means the default table could not be written for a
	// missing file.
	ErrCreateDefault = errors.New("cannot create default calibration file")
)
