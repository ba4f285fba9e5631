package analysis

import (
	"math"
	"strconv"
	"testing"

	"calibra/domain/calibration"
)

// traceSheet builds a sheet with a time axis in column 0 and one data
// column per provided signal, all over the default body row range.
func traceSheet(times []string, signals ...[]string) calibration.RawSheet {
	layout := calibration.DefaultLayout()
	rows := make([][]string, layout.BodyEndRow+1)
	for i := range rows {
		rows[i] = make([]string, 1+len(signals))
	}
	for i, tv := range times {
		rows[layout.BodyStartRow+i][0] = tv
	}
	for c, sig := range signals {
		for i, v := range sig {
			rows[layout.BodyStartRow+i][1+c] = v
		}
	}
	return calibration.RawSheet{Name: "trace", Cells: rows}
}

func linearTrace(n int, slope, intercept float64) (times, signal []string) {
	for i := 0; i < n; i++ {
		times = append(times, strconv.Itoa(i))
		signal = append(signal, strconv.FormatFloat(slope*float64(i)+intercept, 'g', -1, 64))
	}
	return times, signal
}

func TestSeriesReducer_TrapezoidExactForLinearSignal(t *testing.T) {
	layout := calibration.DefaultLayout()
	times, signal := linearTrace(layout.BodyRows(), 2, 1)
	sheet := traceSheet(times, signal)
	r := NewSeriesReducer(layout)

	group := calibration.ReplicateGroup{Columns: []int{1}}
	aucs := r.Reduce(sheet, group, r.TimeVector(sheet))

	// Integral of 2t+1 over [0, 29] is 29^2 + 29; the trapezoidal rule
	// has no error on a line.
	want := 29.0*29.0 + 29.0
	if len(aucs) != 1 {
		t.Fatalf("expected 1 AUC, got %d", len(aucs))
	}
	if math.Abs(aucs[0]-want) > 1e-9 {
		t.Errorf("AUC = %v, want %v", aucs[0], want)
	}
}

func TestSeriesReducer_MalformedSignalCellPropagatesNaN(t *testing.T) {
	layout := calibration.DefaultLayout()
	times, signal := linearTrace(layout.BodyRows(), 1, 0)
	signal[7] = "overflow"
	sheet := traceSheet(times, signal)
	r := NewSeriesReducer(layout)

	aucs := r.Reduce(sheet, calibration.ReplicateGroup{Columns: []int{1}}, r.TimeVector(sheet))
	if !math.IsNaN(aucs[0]) {
		t.Errorf("expected NaN AUC from a malformed cell, got %v", aucs[0])
	}
}

func TestSeriesReducer_MalformedTimeCellPropagatesNaN(t *testing.T) {
	layout := calibration.DefaultLayout()
	times, signal := linearTrace(layout.BodyRows(), 1, 0)
	times[3] = "??"
	sheet := traceSheet(times, signal)
	r := NewSeriesReducer(layout)

	aucs := r.Reduce(sheet, calibration.ReplicateGroup{Columns: []int{1}}, r.TimeVector(sheet))
	if !math.IsNaN(aucs[0]) {
		t.Errorf("expected NaN AUC from a malformed time cell, got %v", aucs[0])
	}
}

func TestSeriesReducer_UnsortedTimeAxisIsUndefined(t *testing.T) {
	layout := calibration.DefaultLayout()
	times, signal := linearTrace(layout.BodyRows(), 1, 0)
	times[0], times[1] = times[1], times[0]
	sheet := traceSheet(times, signal)
	r := NewSeriesReducer(layout)

	aucs := r.Reduce(sheet, calibration.ReplicateGroup{Columns: []int{1}}, r.TimeVector(sheet))
	if !math.IsNaN(aucs[0]) {
		t.Errorf("expected NaN AUC from an unsorted time axis, got %v", aucs[0])
	}
}

func TestSeriesReducer_TimeVectorCoercesUnits(t *testing.T) {
	layout := calibration.DefaultLayout()
	times, _ := linearTrace(layout.BodyRows(), 1, 0)
	for i := range times {
		times[i] += " s"
	}
	sheet := traceSheet(times)
	tv := NewSeriesReducer(layout).TimeVector(sheet)

	if len(tv) != layout.BodyRows() {
		t.Fatalf("expected %d time points, got %d", layout.BodyRows(), len(tv))
	}
	if tv[5] != 5 {
		t.Errorf("time[5] = %v, want 5", tv[5])
	}
}
