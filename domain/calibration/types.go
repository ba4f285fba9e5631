package calibration

import "fmt"

// Unit selects the concentration unit used for axis and column labels.
type Unit string

const (
	UnitMicromolar Unit = "micromolar"
	UnitMillimolar Unit = "millimolar"
)

// ParseUnit maps a CLI unit name to its Unit.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitMicromolar, UnitMillimolar:
		return Unit(s), nil
	}
	return "", fmt.Errorf("unknown unit %q (want micromolar or millimolar)", s)
}

// Symbol returns the chemical shorthand for the unit.
func (u Unit) Symbol() string {
	if u == UnitMillimolar {
		return "mM"
	}
	return "µM"
}

// RawSheet is one sheet of the input workbook as a raw cell grid.
// Rows may be ragged; Cell treats anything outside the grid as empty.
type RawSheet struct {
	Name  string
	Cells [][]string
}

// Cell returns the cell at (row, col), or "" when out of bounds.
func (s RawSheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Cells) {
		return ""
	}
	r := s.Cells[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Width returns the widest row of the grid.
func (s RawSheet) Width() int {
	w := 0
	for _, r := range s.Cells {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// ReplicateGroup is one concentration level on the plate: the column
// indices of its replicates plus the label parsed from the header row.
type ReplicateGroup struct {
	Columns []int
	Label   Value
}

// GroupStatistic reduces one ReplicateGroup to its per-replicate AUCs,
// their arithmetic mean and their sample standard deviation.
type GroupStatistic struct {
	Label Value
	AUCs  []float64
	Mean  Value
	SD    Value
}

// FitResult is the ordinary least-squares line over (label, mean AUC)
// pairs. N counts the groups with a defined label that entered the fit.
// Residual-based terms need N >= 3 (N-2 degrees of freedom) and stay
// undefined below that.
type FitResult struct {
	N           int
	Slope       Value
	Intercept   Value
	R           Value
	PValue      Value
	SESlope     Value
	SEIntercept Value
}

// Predict evaluates the fitted line at x. Undefined when the fit is.
func (f FitResult) Predict(x float64) Value {
	if !f.Slope.IsDefined() || !f.Intercept.IsDefined() {
		return Undefined()
	}
	return Defined(f.Slope.Float64()*x + f.Intercept.Float64())
}

// LackOfFit is the replicate-level linearity check. Applicable is false
// when replication is too thin to separate lack of fit from pure error,
// or when the pure-error sum of squares is zero.
type LackOfFit struct {
	Applicable bool
	F          Value
	PValue     Value
	DFLack     int
	DFPure     int
}

// Diagnostics are the derived regression statistics for one sheet.
// XIntercept is the signed root of the fitted line; Concentration is
// the reported back-calculated concentration, recovery-corrected when
// a recovery factor is configured.
type Diagnostics struct {
	F               Value
	PANOVA          Value
	LackOfFit       LackOfFit
	XIntercept      Value
	Concentration   Value
	ConcentrationSD Value
	LOD             Value
	LOQ             Value
}

// SummaryRow is the flat per-sheet record written to the results
// workbook. Labels, means and SDs run parallel, one entry per group.
type SummaryRow struct {
	SheetName string
	Labels    []Value
	MeanAUCs  []Value
	SDAUCs    []Value
	Fit       FitResult
	Diag      Diagnostics
}

// PlotSeries carries what the renderer needs for one sheet: group
// means with SD error bars and the fitted value at each concentration.
// Only groups with a defined label appear here.
type PlotSeries struct {
	SheetName string
	Analyte   string
	Unit      Unit
	X         []float64
	Y         []float64
	YErr      []float64
	YFit      []float64
	R         Value
}
