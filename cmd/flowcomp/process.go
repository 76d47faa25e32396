package main

import (
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/3dptools/flowcomp/pkg/gcode"
)

func NewProcessCommand() *cobra.Command {
	var (
		inputPath       string
		outputPath      string
		calibrationPath string
	)

	cmd := &cobra.Command{
		Use:     "process",
		Short:   "Post-process a gcode stream",
		GroupID: gProcessing,
		Long: `Post-process a gcode stream in a single pass.

Reads gcode from the input, rewrites extrusion amounts on short segments
inside flagged infill/surface regions, and writes the result to the output.
"-" means standard input/output, so flowcomp can sit in a pipeline.

Input that flowcomp has already processed is rejected: compensating twice
would under-extrude.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			model, err := buildModel(conf, calibrationPath)
			if err != nil {
				return err
			}

			in, closeIn, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer closeIn()

			out, closeOut, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer closeOut()

			proc := gcode.NewProcessor(model)
			proc.DiagnosticComments = conf.DiagnosticComments()
			if err := proc.Run(in, out); err != nil {
				return err
			}

			logrus.Debugf("processing finished, last compensated segment %.5f mm", proc.LastSegmentLength())
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input gcode file, - for stdin")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output gcode file, - for stdout")
	cmd.Flags().StringVar(&calibrationPath, "calibration", "", "calibration file path (overrides config)")

	return cmd
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, nil, pkgerrors.Wrapf(err, "failed to open input %s", path)
	}
	return fp, func() {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close input %s", path)
		}
	}, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	fp, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, pkgerrors.Wrapf(err, "failed to open output %s", path)
	}
	return fp, func() {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close output %s", path)
		}
	}, nil
}
