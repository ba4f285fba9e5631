package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"calibra/adapters/excel"
	"calibra/adapters/render"
	"calibra/app"
	"calibra/domain/calibration"
	"calibra/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		input      string
		unitName   string
		outDir     string
		analyte    string
		layoutPath string
		logLevel   string
		recovery   float64
		jobs       int
	)

	cmd := &cobra.Command{
		Use:   "calibra",
		Short: "Compute assay calibration curves from kinetic plate readings",
		Long: `calibra reduces replicate kinetic traces from an Excel workbook into
per-concentration AUC values, fits a straight calibration line per
sheet, and derives regression diagnostics (ANOVA, lack of fit, LOD/LOQ,
back-calculated concentration). It writes one plot per sheet and a
consolidated results workbook.

Example: calibra -i kinetics.xlsx -u micromolar --out Results`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			logrus.SetLevel(level)

			unit, err := calibration.ParseUnit(unitName)
			if err != nil {
				return err
			}

			opts := config.Default()
			opts.InputPath = input
			opts.OutputDir = outDir
			opts.Unit = unit
			opts.Analyte = analyte
			opts.RecoveryFactor = recovery
			opts.Jobs = jobs
			if layoutPath != "" {
				layout, err := config.LoadLayout(layoutPath)
				if err != nil {
					return err
				}
				opts.Layout = layout
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			pipeline := app.NewSheetPipeline(opts.Layout, opts.Unit, opts.Analyte, opts.RecoveryFactor)
			runner := app.NewRunner(
				excel.NewWorkbookReader(opts.InputPath),
				render.NewRenderer(),
				excel.NewResultsWriter(),
				pipeline,
				opts,
			)
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input Excel workbook (required)")
	cmd.Flags().StringVarP(&unitName, "unit", "u", string(calibration.UnitMicromolar), "concentration unit: micromolar or millimolar")
	cmd.Flags().StringVar(&outDir, "out", "Results", "output directory for graphs and the summary table")
	cmd.Flags().StringVar(&analyte, "analyte", "Caffeic acid", "analyte name used in labels")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "optional YAML file overriding the plate layout")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().Float64Var(&recovery, "recovery-factor", 1.0, "method recovery factor dividing the reported concentration (0.99 for the standard-addition variant)")
	cmd.Flags().IntVar(&jobs, "jobs", 1, "number of sheets processed concurrently")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
