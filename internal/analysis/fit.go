package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"calibra/domain/calibration"
)

// CalibrationFitter fits mean AUC against concentration by ordinary
// least squares and attaches the closed-form standard errors:
//
//	s           = sqrt(SS_res / (n-2))
//	SE(slope)   = s / sqrt(Sxx)
//	SE(intcpt)  = s * sqrt(1/n + xbar^2/Sxx)
type CalibrationFitter struct{}

// NewCalibrationFitter creates a calibration fitter.
func NewCalibrationFitter() *CalibrationFitter {
	return &CalibrationFitter{}
}

// Fit regresses y (group mean AUC) on x (concentration). Fewer than 2
// points leaves the whole fit undefined; 2 points pin the line but
// leave every residual-based term undefined (n-2 degrees of freedom).
// A NaN anywhere in the inputs collapses the fit to undefined.
func (f *CalibrationFitter) Fit(x, y []float64) calibration.FitResult {
	res := calibration.FitResult{N: len(x)}
	n := len(x)
	if n < 2 {
		return res
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	res.Slope = calibration.Defined(slope)
	res.Intercept = calibration.Defined(intercept)
	res.R = calibration.Defined(stat.Correlation(x, y, nil))

	if n < 3 || !res.Slope.IsDefined() {
		return res
	}

	xbar := stat.Mean(x, nil)
	var ssRes, sxx float64
	for i := range x {
		d := y[i] - (slope*x[i] + intercept)
		ssRes += d * d
		dx := x[i] - xbar
		sxx += dx * dx
	}
	if sxx > 0 {
		s := math.Sqrt(ssRes / float64(n-2))
		res.SESlope = calibration.Defined(s / math.Sqrt(sxx))
		res.SEIntercept = calibration.Defined(s * math.Sqrt(1/float64(n)+xbar*xbar/sxx))
	}

	res.PValue = slopePValue(res.R, n)
	return res
}

// slopePValue is the two-sided p-value for slope != 0, via the exact
// identity t = r * sqrt((n-2) / (1-r^2)) on n-2 degrees of freedom.
func slopePValue(r calibration.Value, n int) calibration.Value {
	if !r.IsDefined() {
		return calibration.Undefined()
	}
	rv := r.Float64()
	if rv*rv >= 1 {
		// Perfectly collinear points: the slope term explains
		// everything and the test degenerates to p = 0.
		return calibration.Defined(0)
	}
	t := rv * math.Sqrt(float64(n-2)/(1-rv*rv))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return calibration.Defined(2 * dist.Survival(math.Abs(t)))
}
