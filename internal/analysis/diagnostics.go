package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"calibra/domain/calibration"
)

// LevelSamples is the set of per-replicate AUCs observed at one
// concentration.
type LevelSamples struct {
	Concentration float64
	AUCs          []float64
}

// DiagnosticsEngine derives the regression ANOVA, the lack-of-fit
// test, the back-calculated concentration with its propagated
// uncertainty, and the detection limits from a fit and the underlying
// replicate data.
type DiagnosticsEngine struct {
	recovery float64
}

// NewDiagnosticsEngine creates a diagnostics engine. The recovery
// factor divides the reported concentration and its uncertainty; pass
// 1 for no correction.
func NewDiagnosticsEngine(recovery float64) *DiagnosticsEngine {
	if recovery <= 0 {
		recovery = 1
	}
	return &DiagnosticsEngine{recovery: recovery}
}

// Evaluate computes the full diagnostics block. x and y are the
// (concentration, mean AUC) pairs that entered the fit; levels carries
// the per-replicate AUCs for the lack-of-fit test. Every degenerate
// case comes back as an undefined field, never as a panic or error.
func (e *DiagnosticsEngine) Evaluate(fit calibration.FitResult, x, y []float64, levels []LevelSamples) calibration.Diagnostics {
	d := calibration.Diagnostics{}
	d.F, d.PANOVA = regressionANOVA(fit, x, y)
	d.LackOfFit = lackOfFit(fit, levels)

	if !fit.Slope.IsDefined() || fit.Slope.Float64() == 0 {
		// Slope-dependent quantities have no root to solve for.
		return d
	}
	slope := fit.Slope.Float64()

	if fit.Intercept.IsDefined() {
		xint := -fit.Intercept.Float64() / slope
		d.XIntercept = calibration.Defined(xint)
		d.Concentration = calibration.Defined(math.Abs(xint) / e.recovery)
	}

	if fit.SEIntercept.IsDefined() && fit.SESlope.IsDefined() && fit.Intercept.IsDefined() {
		seInt := fit.SEIntercept.Float64()
		seSlope := fit.SESlope.Float64()
		intercept := fit.Intercept.Float64()
		// First-order propagation through x = -b/a.
		sd := math.Sqrt(math.Pow(seInt/slope, 2) + math.Pow(intercept*seSlope/(slope*slope), 2))
		d.ConcentrationSD = calibration.Defined(sd / e.recovery)
		d.LOD = calibration.Defined(3.3 * seInt / slope)
		d.LOQ = calibration.Defined(10 * seInt / slope)
	}

	return d
}

// regressionANOVA tests overall regression significance over the group
// means: F = MS_reg/MS_res on (1, n-2) degrees of freedom. Zero
// residual variance leaves both outputs undefined.
func regressionANOVA(fit calibration.FitResult, x, y []float64) (f, p calibration.Value) {
	n := len(x)
	if n < 3 || !fit.Slope.IsDefined() || !fit.Intercept.IsDefined() {
		return calibration.Undefined(), calibration.Undefined()
	}

	ybar := stat.Mean(y, nil)
	var ssReg, ssRes float64
	for i := range x {
		yhat := fit.Slope.Float64()*x[i] + fit.Intercept.Float64()
		ssReg += (yhat - ybar) * (yhat - ybar)
		ssRes += (y[i] - yhat) * (y[i] - yhat)
	}

	msRes := ssRes / float64(n-2)
	if !(msRes > 0) {
		return calibration.Undefined(), calibration.Undefined()
	}
	fv := ssReg / msRes
	dist := distuv.F{D1: 1, D2: float64(n - 2)}
	return calibration.Defined(fv), calibration.Defined(dist.Survival(fv))
}

// lackOfFit compares the model's replicate-level deviation against
// pure within-level scatter. Levels sharing a concentration are pooled
// first; replicate counts per level are taken as observed, not assumed
// equal. The test needs df_lof >= 1, df_pure >= 1 and a positive
// pure-error sum of squares, else it is reported as not applicable.
func lackOfFit(fit calibration.FitResult, levels []LevelSamples) calibration.LackOfFit {
	out := calibration.LackOfFit{}
	if !fit.Slope.IsDefined() || !fit.Intercept.IsDefined() {
		return out
	}

	merged := mergeLevels(levels)
	slope := fit.Slope.Float64()
	intercept := fit.Intercept.Float64()

	var ssTotal, ssPure float64
	dfPure := 0
	for _, lv := range merged {
		mean := stat.Mean(lv.AUCs, nil)
		for _, a := range lv.AUCs {
			dt := a - (slope*lv.Concentration + intercept)
			ssTotal += dt * dt
			dp := a - mean
			ssPure += dp * dp
		}
		dfPure += len(lv.AUCs) - 1
	}

	dfLack := len(merged) - 2
	if dfLack < 1 || dfPure < 1 {
		return out
	}
	if !(ssPure > 0) || math.IsNaN(ssPure) || math.IsNaN(ssTotal) {
		// No pure-error variation to test against: not applicable
		// rather than a division by zero.
		return out
	}

	ssLack := ssTotal - ssPure
	fv := (ssLack / float64(dfLack)) / (ssPure / float64(dfPure))
	dist := distuv.F{D1: float64(dfLack), D2: float64(dfPure)}

	out.Applicable = true
	out.DFLack = dfLack
	out.DFPure = dfPure
	out.F = calibration.Defined(fv)
	out.PValue = calibration.Defined(dist.Survival(fv))
	return out
}

// mergeLevels pools samples that share a concentration so that two
// plate groups at the same level count as one level.
func mergeLevels(levels []LevelSamples) []LevelSamples {
	byConc := make(map[float64][]float64, len(levels))
	concs := make([]float64, 0, len(levels))
	for _, lv := range levels {
		if _, seen := byConc[lv.Concentration]; !seen {
			concs = append(concs, lv.Concentration)
		}
		byConc[lv.Concentration] = append(byConc[lv.Concentration], lv.AUCs...)
	}
	sort.Float64s(concs)

	merged := make([]LevelSamples, 0, len(concs))
	for _, c := range concs {
		merged = append(merged, LevelSamples{Concentration: c, AUCs: byConc[c]})
	}
	return merged
}
