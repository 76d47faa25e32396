package calibration

// Point maps one extrusion-segment length to a flow multiplier.
type Point struct {
	// Length is the XY travel of the extrusion segment, in mm. Never negative.
	Length float64 `json:"length"`
	// Multiplier scales the extrusion amount, in [0, 1].
	Multiplier float64 `json:"multiplier"`
}

// Sequence is an ordered calibration table: lengths strictly increasing,
// first length 0, last multiplier 1, at least 3 points. Treated as immutable
// once loaded.
type Sequence []Point

// Lengths returns the length column.
func (s Sequence) Lengths() []float64 {
	xs := make([]float64, len(s))
	for i, p := range s {
		xs[i] = p.Length
	}
	return xs
}

// Multipliers returns the multiplier column.
func (s Sequence) Multipliers() []float64 {
	ys := make([]float64, len(s))
	for i, p := range s {
		ys[i] = p.Multiplier
	}
	return ys
}

// MaxLength returns the last calibrated length, or 0 for an empty sequence.
func (s Sequence) MaxLength() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Length
}
