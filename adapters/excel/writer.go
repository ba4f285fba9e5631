package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"calibra/domain/calibration"
)

// ResultsWriter writes the consolidated results workbook, one row per
// input sheet. It implements ports.SummaryWriter.
type ResultsWriter struct{}

// NewResultsWriter creates a results writer.
func NewResultsWriter() *ResultsWriter {
	return &ResultsWriter{}
}

// Write renders the rows into summary_results-style columns and saves
// the workbook, creating the output directory if needed. All numeric
// formatting lives here, at the reporting boundary.
func (w *ResultsWriter) Write(rows []calibration.SummaryRow, unit calibration.Unit, analyte, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	headers := []string{
		"Sheet name",
		fmt.Sprintf("[%s] (%s)", analyte, unit.Symbol()),
		"Average AUC",
		"SD (AUC)",
		"R",
		"Slope",
		"SE(Slope)",
		"Intercept",
		"SE(Intercept)",
		"F value",
		"Prob > F",
		"Lack-of-fit F",
		"Prob > F (lack of fit)",
		"Concentration (± error)",
		"LOD",
		"LOQ",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %q: %w", h, err)
		}
	}

	for rowIdx, row := range rows {
		lof := lackOfFitCell(row.Diag.LackOfFit)
		values := []string{
			row.SheetName,
			joinValues(row.Labels, "%.2f"),
			joinValues(row.MeanAUCs, "%.2f"),
			joinValues(row.SDAUCs, "%.2f"),
			row.Fit.R.Format("%.3f"),
			row.Fit.Slope.Format("%.3f"),
			row.Fit.SESlope.Format("%.2e"),
			row.Fit.Intercept.Format("%.3f"),
			row.Fit.SEIntercept.Format("%.2e"),
			row.Diag.F.Format("%.3f"),
			row.Diag.PANOVA.Format("%.3e"),
			lof.f,
			lof.p,
			concentrationCell(row.Diag),
			row.Diag.LOD.Format("%.3f"),
			row.Diag.LOQ.Format("%.3f"),
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("summary cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set summary cell for sheet %q: %w", row.SheetName, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save summary workbook: %w", err)
	}
	return nil
}

// joinValues renders a value list the way the summary table shows
// per-group columns: comma-separated, "n/a" for undefined entries.
func joinValues(vals []calibration.Value, verb string) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, v.Format(verb))
	}
	return strings.Join(parts, ", ")
}

type lofCells struct {
	f, p string
}

func lackOfFitCell(lof calibration.LackOfFit) lofCells {
	if !lof.Applicable {
		return lofCells{f: "n/a", p: "n/a"}
	}
	return lofCells{f: lof.F.Format("%.3f"), p: lof.PValue.Format("%.3e")}
}

// concentrationCell renders the back-calculated concentration with its
// propagated uncertainty as a single "value ± error" cell.
func concentrationCell(d calibration.Diagnostics) string {
	if !d.Concentration.IsDefined() || !d.ConcentrationSD.IsDefined() {
		return "n/a"
	}
	return fmt.Sprintf("%s ± %s", d.Concentration.Format("%.3f"), d.ConcentrationSD.Format("%.3f"))
}
