package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewCurveCommand() *cobra.Command {
	var (
		calibrationPath string
		samples         int
	)

	cmd := &cobra.Command{
		Use:     "curve",
		Short:   "Show the fitted compensation curve",
		GroupID: gDiagnostics,
		Long: `Show the calibration points and the natural cubic spline fitted through
them. Useful for sanity-checking a calibration file before a long print:
look for multipliers overshooting [0, 1] between steep calibration points.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			if samples == 0 {
				samples = conf.SplineSamples()
			}

			model, err := buildModel(conf, calibrationPath)
			if err != nil {
				return err
			}

			heading := color.New(color.FgCyan, color.Bold)
			warn := color.New(color.FgYellow)

			heading.Fprintln(cmd.OutOrStdout(), "Calibration points")
			for _, p := range model.Describe() {
				cmd.Printf("  %8.3f mm  ->  %.4f\n", p.Length, p.Multiplier)
			}

			heading.Fprintln(cmd.OutOrStdout(), "Fitted spline")
			for _, p := range model.Sample(samples) {
				cmd.Printf("  %8.3f mm  ->  %.4f", p.Length, p.Multiplier)
				if p.Multiplier < 0 || p.Multiplier > 1 {
					warn.Fprintf(cmd.OutOrStdout(), "  (overshoots [0, 1])")
				}
				cmd.Println()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&calibrationPath, "calibration", "", "calibration file path (overrides config)")
	cmd.Flags().IntVar(&samples, "samples", 0, "spline sample count (defaults to config value)")

	return cmd
}
