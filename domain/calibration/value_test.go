package calibration

import (
	"math"
	"testing"
)

func TestValue_DefinedRoundTrip(t *testing.T) {
	v := Defined(2.5)
	if !v.IsDefined() || v.Float64() != 2.5 {
		t.Errorf("Defined(2.5) = %v (defined=%t)", v.Float64(), v.IsDefined())
	}
}

func TestValue_NaNCollapsesToUndefined(t *testing.T) {
	v := Defined(math.NaN())
	if v.IsDefined() {
		t.Error("Defined(NaN) must be undefined")
	}
	if !math.IsNaN(v.Float64()) {
		t.Errorf("undefined Float64() = %v, want NaN", v.Float64())
	}
}

func TestValue_FormatAtReportingBoundary(t *testing.T) {
	if got := Defined(1.23456).Format("%.3f"); got != "1.235" {
		t.Errorf("Format = %q, want %q", got, "1.235")
	}
	if got := Undefined().Format("%.3f"); got != "n/a" {
		t.Errorf("Format of undefined = %q, want %q", got, "n/a")
	}
	if got := Defined(0.000123).Format("%.2e"); got != "1.23e-04" {
		t.Errorf("Format = %q, want %q", got, "1.23e-04")
	}
}

func TestValue_ZeroIsDefined(t *testing.T) {
	// Zero is a legitimate statistic (e.g. LOD with a zero intercept
	// SE) and must stay distinct from undefined.
	if !Defined(0).IsDefined() {
		t.Error("Defined(0) must be defined")
	}
}
