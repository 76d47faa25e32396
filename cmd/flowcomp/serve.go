package main

import (
	"github.com/spf13/cobra"

	"github.com/3dptools/flowcomp/pkg/server"
)

func NewServeCommand() *cobra.Command {
	var (
		listenAddr      string
		calibrationPath string
	)

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run flowcomp as an HTTP service",
		GroupID: gProcessing,
		Long: `Run flowcomp as an HTTP service.

The flow model is built once at startup and shared across requests; each
request is processed with independent run state.

    POST /process   gcode in the body, processed gcode back
    GET  /curve     calibration points and sampled spline as JSON
    GET  /version   build identity`,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			model, err := buildModel(conf, calibrationPath)
			if err != nil {
				return err
			}

			return server.New(model, conf.SplineSamples(), conf.DiagnosticComments()).Run(listenAddr)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "127.0.0.1:8744", "address to listen on")
	cmd.Flags().StringVar(&calibrationPath, "calibration", "", "calibration file path (overrides config)")

	return cmd
}
