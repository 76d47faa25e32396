// Package flow implements the flow-compensation model: a natural cubic
// spline fitted once over a calibration table, answering "what multiplier
// applies to an extrusion segment of this length".
package flow

import (
	"math"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/interp"

	"github.com/3dptools/flowcomp/pkg/calibration"
)

// Model owns the calibration sequence and the spline built from it. It is
// immutable after New and safe for concurrent readers.
type Model struct {
	points calibration.Sequence
	spline interp.NaturalCubic
	max    float64
}

// New fits a natural cubic spline (C2-continuous, zero second derivative at
// both endpoints) through the calibration points. The sequence must already
// be validated by the calibration package.
func New(seq calibration.Sequence) (*Model, error) {
	m := &Model{
		points: append(calibration.Sequence(nil), seq...),
		max:    seq.MaxLength(),
	}
	if err := m.spline.Fit(seq.Lengths(), seq.Multipliers()); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to fit spline to calibration points")
	}
	return m, nil
}

// MaxLength returns the last calibrated length. Segments at or beyond it are
// not eligible for compensation.
func (m *Model) MaxLength() float64 {
	return m.max
}

// MultiplierAt returns the flow multiplier for an extrusion segment of the
// given length. Lengths outside [0, MaxLength] fall back to 1.0 (no
// compensation) with a warning. Inside the range the raw spline value is
// returned unclamped: a natural cubic spline can overshoot [0, 1] between
// steep calibration points, and that behavior is intentionally preserved.
func (m *Model) MultiplierAt(length float64) float64 {
	if length < 0 {
		logrus.Warnf("extrusion length %v is negative, not compensating", length)
		return 1.0
	}
	if length > m.max {
		logrus.Warnf("extrusion length %v exceeds calibrated maximum %v, not compensating", length, m.max)
		return 1.0
	}
	return m.spline.Predict(length)
}

// Apply scales rawExtrusion by the multiplier for length and rounds the
// result to 5 decimal places, half away from zero (math.Round). The printed
// decimal text feeds printer firmware directly, so the rounding mode is part
// of the contract.
func (m *Model) Apply(length, rawExtrusion float64) float64 {
	return math.Round(rawExtrusion*m.MultiplierAt(length)*1e5) / 1e5
}

// Describe returns a copy of the calibration points for diagnostic output.
func (m *Model) Describe() calibration.Sequence {
	return append(calibration.Sequence(nil), m.points...)
}

// Sample evaluates the spline at n evenly spaced lengths across [0,
// MaxLength], endpoints included. Used by the curve command and the HTTP
// service to visualize the fitted curve. n < 2 yields just the endpoints.
func (m *Model) Sample(n int) calibration.Sequence {
	if n < 2 {
		n = 2
	}
	out := make(calibration.Sequence, 0, n)
	step := m.max / float64(n-1)
	for i := 0; i < n; i++ {
		l := float64(i) * step
		if i == n-1 {
			l = m.max
		}
		out = append(out, calibration.Point{Length: l, Multiplier: m.spline.Predict(l)})
	}
	return out
}
