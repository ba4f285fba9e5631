package calibration

import (
	"fmt"
	"math"
)

// Value is a float64 that is either defined or explicitly undefined.
// Degenerate statistics (zero slope, zero residual variance, too few
// replicates) surface as undefined values instead of aborting a sheet,
// and the reporting layer renders them as "n/a".
type Value struct {
	v  float64
	ok bool
}

// Defined wraps v. NaN collapses to the undefined value so that
// arithmetic on malformed cells and explicit degeneracies render the
// same way downstream.
func Defined(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// Undefined returns the undefined value.
func Undefined() Value {
	return Value{}
}

// IsDefined reports whether the value carries a number.
func (v Value) IsDefined() bool {
	return v.ok
}

// Float64 returns the wrapped number, or NaN when undefined.
func (v Value) Float64() float64 {
	if !v.ok {
		return math.NaN()
	}
	return v.v
}

// Format renders the value with the given fmt verb, or "n/a" when
// undefined. Fixed-precision formatting happens only here, at the
// reporting boundary.
func (v Value) Format(verb string) string {
	if !v.ok {
		return "n/a"
	}
	return fmt.Sprintf(verb, v.v)
}
