package analysis

import (
	"github.com/montanaflynn/stats"

	"calibra/domain/calibration"
)

// Summarize reduces one replicate group's AUC samples to their
// arithmetic mean and sample (n-1) standard deviation. A NaN AUC makes
// both undefined; fewer than 2 samples leave the SD undefined.
func Summarize(label calibration.Value, aucs []float64) calibration.GroupStatistic {
	gs := calibration.GroupStatistic{Label: label, AUCs: aucs}
	if len(aucs) > 0 {
		m, _ := stats.Mean(aucs)
		gs.Mean = calibration.Defined(m)
	}
	if len(aucs) > 1 {
		sd, _ := stats.StandardDeviationSample(aucs)
		gs.SD = calibration.Defined(sd)
	}
	return gs
}
