package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"

	"calibra/domain/calibration"
)

// SeriesReducer converts replicate kinetic traces into one
// area-under-curve scalar per replicate column.
type SeriesReducer struct {
	layout calibration.Layout
}

// NewSeriesReducer creates a reducer for the given layout.
func NewSeriesReducer(layout calibration.Layout) *SeriesReducer {
	return &SeriesReducer{layout: layout}
}

// TimeVector reads and coerces the time axis over the body row range.
func (r *SeriesReducer) TimeVector(sheet calibration.RawSheet) []float64 {
	t := make([]float64, 0, r.layout.BodyRows())
	for row := r.layout.BodyStartRow; row <= r.layout.BodyEndRow; row++ {
		t = append(t, CoerceNumeric(sheet.Cell(row, r.layout.TimeColumn)))
	}
	return t
}

// Reduce integrates each replicate column of the group against the
// time vector with the trapezoidal rule, returning one AUC per column.
// Malformed cells enter the integral as NaN and surface as a NaN AUC.
func (r *SeriesReducer) Reduce(sheet calibration.RawSheet, group calibration.ReplicateGroup, time []float64) []float64 {
	aucs := make([]float64, 0, len(group.Columns))
	for _, col := range group.Columns {
		signal := make([]float64, len(time))
		for i := range time {
			signal[i] = CoerceNumeric(sheet.Cell(r.layout.BodyStartRow+i, col))
		}
		aucs = append(aucs, trapezoid(time, signal))
	}
	return aucs
}

// trapezoid wraps integrate.Trapezoidal with the guards it needs: the
// routine panics on unsorted abscissae, and a NaN time point makes the
// axis count as unsorted. Those cases are undefined integrals here.
func trapezoid(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	for _, v := range x {
		if math.IsNaN(v) {
			return math.NaN()
		}
	}
	if !sort.Float64sAreSorted(x) {
		return math.NaN()
	}
	return integrate.Trapezoidal(x, y)
}
