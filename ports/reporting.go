package ports

import "calibra/domain/calibration"

// PlotRenderer draws one sheet's calibration plot to the given path.
// Rendering is a side effect outside the pipeline's correctness
// contract; a failed render must not sink the sheet's summary row.
type PlotRenderer interface {
	Render(series calibration.PlotSeries, path string) error
}

// SummaryWriter persists the consolidated results table, one row per
// sheet, to the given path.
type SummaryWriter interface {
	Write(rows []calibration.SummaryRow, unit calibration.Unit, analyte, path string) error
}
