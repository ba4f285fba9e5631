package analysis

import (
	"math"
	"strconv"
	"strings"

	"calibra/domain/calibration"
)

// CoerceNumeric strips every character that cannot be part of a decimal
// number and parses the rest. Irreducible cells come back as NaN, which
// then propagates through integration and the group statistics.
func CoerceNumeric(cell string) float64 {
	var b strings.Builder
	for _, r := range cell {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseLabel extracts the numeric concentration embedded in a group
// header cell. Only digits and periods survive the strip, matching how
// plate headers carry the number inside arbitrary text ("CA 12.5 uM").
// An empty or unparseable remainder yields the undefined label.
func ParseLabel(cell string) calibration.Value {
	var b strings.Builder
	for _, r := range cell {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return calibration.Undefined()
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return calibration.Undefined()
	}
	return calibration.Defined(v)
}
