package calibration

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MinPoints is the smallest table the spline model accepts.
const MinPoints = 3

var (
	// Unsigned decimal: "3", "3.25", ".25". No sign, no exponent.
	reDecimal = regexp.MustCompile(`^([0-9]+(\.[0-9]+)?|\.[0-9]+)$`)
)

// Default is the built-in compensation table written to disk when no
// calibration file exists. Derived from test prints on small solid-infill
// areas; lengths in mm.
func Default() Sequence {
	return Sequence{
		{Length: 0, Multiplier: 0},
		{Length: 0.2, Multiplier: 0.4444},
		{Length: 0.4, Multiplier: 0.6145},
		{Length: 0.6, Multiplier: 0.7059},
		{Length: 0.8, Multiplier: 0.7619},
		{Length: 1.5, Multiplier: 0.8571},
		{Length: 2, Multiplier: 0.8889},
		{Length: 3, Multiplier: 0.9231},
		{Length: 5, Multiplier: 0.9520},
		{Length: 10, Multiplier: 1},
	}
}

// Load reads the calibration table at path, creating it with the default
// table first if it does not exist. Every returned error is fatal: a table
// that fails validation cannot back a trustworthy model.
func Load(path string) (Sequence, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logrus.Infof("calibration file %s does not exist, creating it with the default table", path)
		if err := writeDefault(path); err != nil {
			return nil, err
		}
	}

	fp, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrStorage, "open %s: %v", path, err)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close calibration file %s", path)
		}
	}(fp)

	var seq Sequence
	scanner := bufio.NewScanner(fp)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		p, err := parseLine(line)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "%s line %d", path, lineNo)
		}
		seq = append(seq, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.Wrapf(ErrStorage, "read %s: %v", path, err)
	}

	if err := validate(seq); err != nil {
		return nil, pkgerrors.Wrapf(err, "%s", path)
	}

	logrus.Debugf("loaded %d calibration points from %s (max length %.3f)", len(seq), path, seq.MaxLength())
	return seq, nil
}

func parseLine(line string) (Point, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return Point{}, pkgerrors.Wrapf(ErrFieldCount, "got %d fields in %q", len(fields), line)
	}

	lengthText := strings.TrimSpace(fields[0])
	multText := strings.TrimSpace(fields[1])
	if lengthText == "" || multText == "" {
		return Point{}, pkgerrors.Wrapf(ErrMalformedLine, "empty field in %q", line)
	}

	if !reDecimal.MatchString(lengthText) {
		return Point{}, pkgerrors.Wrapf(ErrInvalidLength, "%q is not a non-negative decimal", lengthText)
	}
	length, err := strconv.ParseFloat(lengthText, 64)
	if err != nil {
		return Point{}, pkgerrors.Wrapf(ErrInvalidLength, "%q: %v", lengthText, err)
	}

	if !reDecimal.MatchString(multText) {
		return Point{}, pkgerrors.Wrapf(ErrInvalidMultiplier, "%q is not a decimal number", multText)
	}
	mult, err := strconv.ParseFloat(multText, 64)
	if err != nil {
		return Point{}, pkgerrors.Wrapf(ErrInvalidMultiplier, "%q: %v", multText, err)
	}
	if mult < 0 || mult > 1 {
		return Point{}, pkgerrors.Wrapf(ErrInvalidMultiplier, "%q is outside [0, 1]", multText)
	}

	return Point{Length: length, Multiplier: mult}, nil
}

func validate(seq Sequence) error {
	if len(seq) < MinPoints {
		return pkgerrors.Wrapf(ErrInsufficientPoints, "got %d, need at least %d", len(seq), MinPoints)
	}
	if seq[0].Length != 0 {
		return pkgerrors.Wrapf(ErrBoundaryViolation, "first length must be 0, got %v", seq[0].Length)
	}
	if last := seq[len(seq)-1].Multiplier; last != 1 {
		return pkgerrors.Wrapf(ErrBoundaryViolation, "last multiplier must be 1, got %v", last)
	}
	for i := 1; i < len(seq); i++ {
		if seq[i].Length <= seq[i-1].Length {
			return pkgerrors.Wrapf(ErrBoundaryViolation,
				"lengths must be strictly increasing, got %v after %v", seq[i].Length, seq[i-1].Length)
		}
	}
	return nil
}

func writeDefault(path string) error {
	fp, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(ErrCreateDefault, "open %s: %v", path, err)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close calibration file %s", path)
		}
	}(fp)

	for _, p := range Default() {
		if _, err := fmt.Fprintf(fp, "%g, %g\n", p.Length, p.Multiplier); err != nil {
			return pkgerrors.Wrapf(ErrCreateDefault, "write %s: %v", path, err)
		}
	}

	return nil
}
