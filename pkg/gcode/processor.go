package gcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/3dptools/flowcomp/pkg/flow"
	"github.com/3dptools/flowcomp/pkg/version"
)

// ProcessedMarker is the first header line. Finding it in the input means
// the file has already been through flowcomp and must never be processed a
// second time.
const ProcessedMarker = "; processed by flowcomp"

// ErrAlreadyProcessed aborts a run whose input contains ProcessedMarker.
var ErrAlreadyProcessed = errors.New("input was already processed by flowcomp")

// Processor runs one single-pass rewrite of a gcode stream. It holds the
// run-scoped state: region gate, tool position, and the length of the last
// rewritten segment. One Processor serves exactly one run.
type Processor struct {
	// DiagnosticComments controls whether a rewritten line gets the trailing
	// comment recording the original extrusion value and the segment length.
	// On by default; may be changed before Run.
	DiagnosticComments bool

	model   *flow.Model
	tracker RegionTracker

	prev       Position
	lastLength float64
}

// NewProcessor returns a Processor for one run against the given model.
func NewProcessor(model *flow.Model) *Processor {
	return &Processor{
		DiagnosticComments: true,
		model:              model,
	}
}

// LastSegmentLength returns the length of the last segment a rewrite fired
// on, 0 if none did.
func (p *Processor) LastSegmentLength() float64 {
	return p.lastLength
}

// Run copies the gcode stream from r to w, rewriting eligible extrusion
// tokens. The 4-line header is written before any input is read. Each line
// is fully processed and written before the next is read; lines no rewrite
// rule fires on are passed through byte-for-byte, original line ending
// (LF or CRLF, or none on the final line) included.
func (p *Processor) Run(r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%s\n", ProcessedMarker)
	fmt.Fprintf(out, "; flowcomp version %s\n", version.Version)
	fmt.Fprintf(out, "; flowcomp commit %s\n", version.GitCommit)
	fmt.Fprintf(out, "; flowcomp runtime %s\n", runtime.Version())

	in := bufio.NewReader(r)
	for {
		raw, readErr := in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return pkgerrors.Wrap(readErr, "failed to read input")
		}

		if raw != "" {
			line, eol := splitLineEnding(raw)

			if strings.TrimSpace(line) == ProcessedMarker {
				return ErrAlreadyProcessed
			}

			p.tracker.Observe(line)
			cur := UpdatedPosition(line, p.prev)

			if p.tracker.Active() && LineOfInterest(line) {
				line = p.rewriteLine(line, SegmentLength(p.prev, cur))
			}

			p.prev = cur

			if _, err := out.WriteString(line + eol); err != nil {
				return pkgerrors.Wrap(err, "failed to write output")
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	return pkgerrors.Wrap(out.Flush(), "failed to flush output")
}

// splitLineEnding separates a raw line from its terminator so the original
// ending survives the rewrite untouched.
func splitLineEnding(raw string) (line, eol string) {
	line = strings.TrimSuffix(raw, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, raw[len(line):]
}

// rewriteLine applies the flow model to every extrusion token on the line.
// Splitting on single spaces keeps the original spacing intact when tokens
// are joined back. A rewritten line with a changed positive extrusion gets a
// trailing diagnostic comment recording the original value and the segment
// length.
func (p *Processor) rewriteLine(line string, segment float64) string {
	tokens := strings.Split(line, " ")

	var (
		rewritten bool
		oldText   string
		oldValue  float64
		newValue  float64
	)
	for i, tok := range tokens {
		if strings.HasPrefix(tok, ";") {
			break
		}
		if !IsExtrusionToken(tok) {
			continue
		}

		v, err := strconv.ParseFloat(tok[1:], 64)
		if err != nil {
			logrus.Errorf("cannot parse extrusion token %q, leaving it untouched", tok)
			continue
		}

		if segment <= 0 || segment >= p.model.MaxLength() {
			continue
		}

		oldText = tok[1:]
		oldValue = v
		newValue = p.model.Apply(segment, v)
		tokens[i] = "E" + strconv.FormatFloat(newValue, 'f', 5, 64)
		rewritten = true
	}

	if !rewritten {
		return line
	}

	p.lastLength = segment

	line = strings.Join(tokens, " ")
	if p.DiagnosticComments && oldValue > 0 && newValue != oldValue {
		line += " ; Old Flow Value: " + oldText + " Length: " + strconv.FormatFloat(segment, 'f', 5, 64)
	}
	return line
}
