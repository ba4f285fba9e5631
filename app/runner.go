package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"calibra/domain/calibration"
	"calibra/internal/config"
	"calibra/ports"
)

// Runner drives every sheet of a workbook through the pipeline and
// hands the collected rows to the summary writer. Sheets are
// independent, so they may run concurrently; the output keeps workbook
// order regardless because each sheet writes its own slot.
type Runner struct {
	source   ports.SheetSource
	renderer ports.PlotRenderer
	writer   ports.SummaryWriter
	pipeline *SheetPipeline
	opts     config.Options
}

// NewRunner wires a runner from its collaborators.
func NewRunner(source ports.SheetSource, renderer ports.PlotRenderer, writer ports.SummaryWriter, pipeline *SheetPipeline, opts config.Options) *Runner {
	return &Runner{
		source:   source,
		renderer: renderer,
		writer:   writer,
		pipeline: pipeline,
		opts:     opts,
	}
}

// Run processes the whole workbook. Per-sheet degeneracies never abort
// the run; only an unreadable workbook, an empty workbook or a failed
// summary write do.
func (r *Runner) Run(ctx context.Context) error {
	sheets, err := r.source.Sheets(ctx)
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}
	if len(sheets) == 0 {
		return fmt.Errorf("workbook %s has no sheets", r.opts.InputPath)
	}

	runID := uuid.NewString()
	log := logrus.WithField("run", runID)
	log.Infof("processing %d sheets from %s (unit %s)", len(sheets), r.opts.InputPath, r.opts.Unit.Symbol())

	graphDir := filepath.Join(r.opts.OutputDir, "graphs")
	rows := make([]calibration.SummaryRow, len(sheets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)
	for i, sheet := range sheets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, series := r.pipeline.Run(sheet)
			rows[i] = row
			log.Debugf("sheet %q: %d groups, slope %s, r %s",
				sheet.Name, len(row.Labels), row.Fit.Slope.Format("%.3f"), row.Fit.R.Format("%.3f"))

			plotPath := filepath.Join(graphDir, sanitizeName(sheet.Name)+".png")
			if err := r.renderer.Render(series, plotPath); err != nil {
				// The plot is a side effect; the sheet's row survives.
				log.Errorf("render plot for sheet %q: %v", sheet.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	summaryPath := filepath.Join(r.opts.OutputDir, "summary_results.xlsx")
	if err := r.writer.Write(rows, r.opts.Unit, r.opts.Analyte, summaryPath); err != nil {
		return fmt.Errorf("write summary table: %w", err)
	}
	log.Infof("summary written to %s, graphs in %s", summaryPath, graphDir)
	return nil
}

// sanitizeName keeps sheet-named files from escaping the graph dir.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, "\\", "_")
}
