package app

import (
	"calibra/domain/calibration"
	"calibra/internal/analysis"
)

// SheetPipeline runs the full estimation chain for one sheet: group
// extraction, AUC reduction, calibration fit and diagnostics. A
// pipeline owns no mutable state across sheets; Run is a pure function
// of the sheet grid and is safe to call concurrently.
type SheetPipeline struct {
	analyte string
	unit    calibration.Unit
	extract *analysis.GroupExtractor
	reduce  *analysis.SeriesReducer
	fitter  *analysis.CalibrationFitter
	diag    *analysis.DiagnosticsEngine
}

// NewSheetPipeline wires the pipeline stages for one layout and one
// set of reporting options.
func NewSheetPipeline(layout calibration.Layout, unit calibration.Unit, analyte string, recoveryFactor float64) *SheetPipeline {
	return &SheetPipeline{
		analyte: analyte,
		unit:    unit,
		extract: analysis.NewGroupExtractor(layout),
		reduce:  analysis.NewSeriesReducer(layout),
		fitter:  analysis.NewCalibrationFitter(),
		diag:    analysis.NewDiagnosticsEngine(recoveryFactor),
	}
}

// Run produces the sheet's summary row and the series its plot needs.
// Groups with an undefined label stay in the reported statistics but
// are excluded from the fit and from the plot; a sheet whose data is
// entirely malformed still completes, with undefined fields.
func (p *SheetPipeline) Run(sheet calibration.RawSheet) (calibration.SummaryRow, calibration.PlotSeries) {
	groups := p.extract.Extract(sheet)
	time := p.reduce.TimeVector(sheet)

	stats := make([]calibration.GroupStatistic, 0, len(groups))
	levels := make([]analysis.LevelSamples, 0, len(groups))
	for _, g := range groups {
		aucs := p.reduce.Reduce(sheet, g, time)
		gs := analysis.Summarize(g.Label, aucs)
		stats = append(stats, gs)
		if g.Label.IsDefined() {
			levels = append(levels, analysis.LevelSamples{
				Concentration: g.Label.Float64(),
				AUCs:          aucs,
			})
		}
	}

	var x, y, yerr []float64
	for _, gs := range stats {
		if !gs.Label.IsDefined() {
			continue
		}
		x = append(x, gs.Label.Float64())
		y = append(y, gs.Mean.Float64())
		yerr = append(yerr, gs.SD.Float64())
	}

	fit := p.fitter.Fit(x, y)
	diag := p.diag.Evaluate(fit, x, y, levels)

	row := calibration.SummaryRow{
		SheetName: sheet.Name,
		Fit:       fit,
		Diag:      diag,
	}
	for _, gs := range stats {
		row.Labels = append(row.Labels, gs.Label)
		row.MeanAUCs = append(row.MeanAUCs, gs.Mean)
		row.SDAUCs = append(row.SDAUCs, gs.SD)
	}

	series := calibration.PlotSeries{
		SheetName: sheet.Name,
		Analyte:   p.analyte,
		Unit:      p.unit,
		X:         x,
		Y:         y,
		YErr:      yerr,
		R:         fit.R,
	}
	for _, xi := range x {
		series.YFit = append(series.YFit, fit.Predict(xi).Float64())
	}

	return row, series
}
